package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// allCategories is the filter value the list view uses for "no filter".
const allCategories = "all"

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// parseFilter reads the q and category query parameters.
func parseFilter(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	f := ledger.Filter{Query: sanitizeInput(q.Get("q"))}

	raw := sanitizeInput(q.Get("category"))
	if raw == "" || strings.EqualFold(raw, allCategories) {
		return f, nil
	}
	c, err := core.ParseCategory(raw)
	if err != nil {
		return ledger.Filter{}, err
	}
	f.Category = c
	return f, nil
}
