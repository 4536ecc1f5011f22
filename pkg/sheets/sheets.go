// Package sheets wraps the Google Sheets API behind the two operations
// the publisher needs: clear a range, write a grid.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Gateway is the spreadsheet contract consumed by the report service.
type Gateway interface {
	Clear(ctx context.Context, spreadsheetID, rng string) error
	Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
}

type googleGateway struct {
	svc *gsheets.Service
}

// NewGoogle builds a Gateway authenticated with a service-account
// credentials file, scoped to spreadsheet read/write.
func NewGoogle(ctx context.Context, credentialsFile string) (Gateway, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &googleGateway{svc: svc}, nil
}

func (g *googleGateway) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := g.svc.Spreadsheets.Values.
		Clear(spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear range %s: %w", rng, err)
	}
	return nil
}

func (g *googleGateway) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	// USER_ENTERED lets the sheet engine coerce numeric-looking strings,
	// matching how a human would paste the values in.
	_, err := g.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update range %s: %w", rng, err)
	}
	return nil
}
