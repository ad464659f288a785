// Package core holds the transaction model shared by every other package.
//
// This file contains helpers for reading amounts typed by a person and
// rendering amounts the way exports and the API show them.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a manually typed decimal string to a float.
//
// It accepts an optional leading currency symbol ($ or ₹), grouping commas
// and a dot as decimal separator. Negative values are rejected.
//
// Examples:
//
//	ParseAmount("12.34")     -> 12.34, nil
//	ParseAmount("$1,200.50") -> 1200.5, nil
//	ParseAmount("-1")        -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidAmount
			}
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders the shortest decimal form of v ("6.5", "2000").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
