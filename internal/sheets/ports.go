// Package sheets defines the spreadsheet mirror that keeps a copy of every
// transaction outside the primary store.
package sheets

import (
	"context"

	"fintrack/internal/core"
)

// Header is the column layout of a mirrored sheet.
var Header = []string{"ID", "Description", "Amount", "Category", "Type", "Date", "UserID"}

// Mirror receives transaction changes.
type Mirror interface {
	// Upsert writes tx, replacing the row with the same id if there is one.
	Upsert(ctx context.Context, tx core.Transaction) error
	// Remove deletes the row for id. A missing row is not an error.
	Remove(ctx context.Context, id string) error
}
