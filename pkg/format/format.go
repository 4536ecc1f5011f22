// Package format converts between the upstream's locale-formatted
// values (comma decimal separator, dash for "no value") and the
// canonical forms stored in the database and written to spreadsheets.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const noValue = "-"

// ParseLocaleNumber parses a figure like "1234,56" into a float.
// An empty string or a lone dash means the upstream has no value and
// yields (nil, nil). Anything else that does not parse yields an error
// so the caller can log it; the value is nil either way.
func ParseLocaleNumber(raw string) (*float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == noValue {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(trimmed, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("parse locale number %q: %w", raw, err)
	}
	return &v, nil
}

// MoneyString renders a figure with exactly two fractional digits and a
// comma separator, e.g. 1234.5 -> "1234,50". Nil in, nil out.
func MoneyString(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strings.Replace(strconv.FormatFloat(*v, 'f', 2, 64), ".", ",", 1)
	return &s
}

// DisplayDate renders a calendar date as zero-padded DD.MM.YYYY.
func DisplayDate(t time.Time) string {
	return t.Format("02.01.2006")
}
