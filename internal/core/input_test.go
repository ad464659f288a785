package core

import (
	"errors"
	"testing"
	"time"
)

func TestInputApply(t *testing.T) {
	base := Draft{Amount: 5, Type: Expense, Category: Food, Description: "Tea"}

	got, err := Input{}.Apply(base)
	if err != nil || got != base {
		t.Fatalf("empty input = %+v, %v", got, err)
	}

	got, err = Input{
		Description: " Salary ",
		Amount:      "$2,000",
		Type:        "INCOME",
		Category:    "income",
		Date:        "2024-03-01",
	}.Apply(base)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := Draft{
		Amount: 2000, Type: Income, Category: IncomeCat, Description: "Salary",
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}

	for _, tc := range []struct {
		in   Input
		want error
	}{
		{Input{Amount: "-1"}, ErrInvalidAmount},
		{Input{Type: "transfer"}, ErrInvalidType},
		{Input{Category: "Pets"}, ErrInvalidCategory},
		{Input{Date: "03/01/2024"}, ErrInvalidDate},
	} {
		if _, err := tc.in.Apply(base); !errors.Is(err, tc.want) {
			t.Errorf("Apply(%+v) error = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-01T10:00:00+02:00")
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(rfc3339) = %v, %v", got, err)
	}
	if _, err := ParseDate(""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate(\"\") error = %v", err)
	}
}
