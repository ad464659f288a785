// Package ledger implements the list operations on a transaction snapshot.
// Every function returns a new slice and leaves its input untouched.
package ledger

import (
	"strings"

	"fintrack/internal/core"
)

// Filter selects records for display. Empty fields match everything.
type Filter struct {
	Query    string        // case-insensitive substring of the description
	Category core.Category // exact match
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.Category == ""
}

// Match reports whether tx satisfies both predicates.
func (f Filter) Match(tx core.Transaction) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	return true
}

// Add puts tx at the front, newest first.
func Add(list []core.Transaction, tx core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(list)+1)
	out = append(out, tx)
	return append(out, list...)
}

// Prepend puts txs, in order, in front of list.
func Prepend(list []core.Transaction, txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(list)+len(txs))
	out = append(out, txs...)
	return append(out, list...)
}

// Replace overwrites the record with the given id. The stored id is kept
// whatever tx.ID holds. The second result is false when no record matched.
func Replace(list []core.Transaction, id string, tx core.Transaction) ([]core.Transaction, bool) {
	out := make([]core.Transaction, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			tx.ID = id
			out[i] = tx
			return out, true
		}
	}
	return out, false
}

// Delete removes the record with the given id; absent ids are a no-op.
func Delete(list []core.Transaction, id string) []core.Transaction {
	out := make([]core.Transaction, 0, len(list))
	for _, tx := range list {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	return out
}

// Find returns the record with the given id.
func Find(list []core.Transaction, id string) (core.Transaction, bool) {
	for _, tx := range list {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

// Apply returns the records matching f, in list order.
func Apply(list []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(list))
	for _, tx := range list {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}
