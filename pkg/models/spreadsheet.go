package models

import "time"

// Spreadsheet is one publish target, identified by its opaque Google
// spreadsheet ID.
type Spreadsheet struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
