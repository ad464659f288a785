package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Input is a manually typed edit, every field as text. Empty fields leave
// the corresponding draft field alone.
type Input struct {
	Description string
	Amount      string
	Type        string
	Category    string
	Date        string
}

// Apply overlays the non-empty fields of in on base.
func (in Input) Apply(base Draft) (Draft, error) {
	d := base

	if v := strings.TrimSpace(in.Description); v != "" {
		d.Description = v
	}
	if v := strings.TrimSpace(in.Amount); v != "" {
		amount, err := ParseAmount(v)
		if err != nil {
			return Draft{}, err
		}
		d.Amount = amount
	}
	if v := strings.TrimSpace(in.Type); v != "" {
		t, err := ParseTxType(v)
		if err != nil {
			return Draft{}, err
		}
		d.Type = t
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		c, err := ParseCategory(v)
		if err != nil {
			return Draft{}, err
		}
		d.Category = c
	}
	if v := strings.TrimSpace(in.Date); v != "" {
		date, err := ParseDate(v)
		if err != nil {
			return Draft{}, err
		}
		d.Date = date
	}
	return d, nil
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date, read as UTC
// midnight.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
