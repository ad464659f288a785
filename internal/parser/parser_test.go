package parser

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

var fixed = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	p := New(WithClock(func() time.Time { return fixed }))

	cases := []struct {
		in       string
		amount   float64
		typ      core.TxType
		category core.Category
	}{
		{"Coffee at Starbucks $6.50 - Food", 6.50, core.Expense, core.Food},
		{"Salary received $2000", 2000, core.Income, core.IncomeCat},
		{"no numbers here", 0, core.Expense, core.Other},
		{"", 0, core.Expense, core.Other},
		{"   ", 0, core.Expense, core.Other},
		{"Uber ride home 250", 250, core.Expense, core.Transport},
		{"Shell petrol 1,200.50", 1200.50, core.Expense, core.Gas},
		{"Groceries at market ₹450", 450, core.Expense, core.Groceries},
		{"Netflix subscription 15.99", 15.99, core.Expense, core.Entertainment},
		{"New laptop 999", 999, core.Expense, core.Electronics},
		{"Electricity bill 80", 80, core.Expense, core.Bills},
		{"Amazon order 35", 35, core.Expense, core.Shopping},
		{"Paid rent 1200", 1200, core.Income, core.Bills},
		{"Monthly pay 3000", 3000, core.Expense, core.IncomeCat},
		{"Steak dinner 40", 40, core.Expense, core.Food},
		{"Coffee at the train station 4", 4, core.Expense, core.Food},
		{"bonus 1,000,000", 1000000, core.Expense, core.Other},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d := p.Parse(tc.in)
			if d.Amount != tc.amount {
				t.Errorf("amount = %v, want %v", d.Amount, tc.amount)
			}
			if d.Type != tc.typ {
				t.Errorf("type = %q, want %q", d.Type, tc.typ)
			}
			if d.Category != tc.category {
				t.Errorf("category = %q, want %q", d.Category, tc.category)
			}
			if d.Description != tc.in {
				t.Errorf("description = %q, want verbatim input", d.Description)
			}
			if !d.Date.Equal(fixed) {
				t.Errorf("date = %v, want %v", d.Date, fixed)
			}
		})
	}
}

func TestExtractAmountFirstTokenOnly(t *testing.T) {
	if got := ExtractAmount("2 coffees for $6.50 each"); got != 2 {
		t.Fatalf("expected first numeric token 2, got %v", got)
	}
	if got := ExtractAmount("$ 12"); got != 12 {
		t.Fatalf("expected 12 with spaced currency symbol, got %v", got)
	}
	if got := ExtractAmount("99999999999999999999999999999999999999" +
		"9999999999999999999999999999999999999999999999999999999999999" +
		"9999999999999999999999999999999999999999999999999999999999999" +
		"9999999999999999999999999999999999999999999999999999999999999" +
		"9999999999999999999999999999999999999999999999999999999999999" +
		"9999999999999999999999999999999999999999999999999999999999999"); got != 0 {
		t.Fatalf("expected overflow to fall back to 0, got %v", got)
	}
}

func TestClassifyTypeIsPresenceTest(t *testing.T) {
	for _, kw := range IncomeKeywords() {
		if got := ClassifyType("i " + kw + " something"); got != core.Income {
			t.Errorf("keyword %q: type = %q, want income", kw, got)
		}
	}
	if got := ClassifyType("GOT MONEY"); got != core.Income {
		t.Errorf("case-insensitive match failed: %q", got)
	}
}

func TestEveryRuleKeywordMapsToItsCategory(t *testing.T) {
	p := New()
	for _, r := range Rules() {
		for _, kw := range r.Keywords {
			if got := p.Classify(kw); got != r.Category {
				t.Errorf("keyword %q: category = %q, want %q", kw, got, r.Category)
			}
		}
	}
}

func TestRuleOrderFirstMatchWins(t *testing.T) {
	rules := Rules()
	if rules[0].Category != core.Food || rules[len(rules)-1].Category != core.IncomeCat {
		t.Fatalf("unexpected rule order: first=%q last=%q", rules[0].Category, rules[len(rules)-1].Category)
	}
	// "salary" is both an income keyword and an Income category keyword, but
	// Food is checked first.
	if got := New().Classify("salary lunch"); got != core.Food {
		t.Fatalf("expected Food to win over Income, got %q", got)
	}
}

func TestWithRules(t *testing.T) {
	p := New(WithRules([]Rule{{Category: core.Bills, Keywords: []string{"gym"}}}))
	if got := p.Classify("Gym membership"); got != core.Bills {
		t.Fatalf("custom rule not applied: %q", got)
	}
	if got := p.Classify("coffee"); got != core.Other {
		t.Fatalf("default rules should be replaced: %q", got)
	}
}

func TestParseInvariants(t *testing.T) {
	inputs := []string{
		"", "$", "₹", "-5", "refund -20", "1e10", "credit card 4,5,6", "\n\t", "💸 300",
		"paid 0.0001", "12.", ".5", "abc,def",
	}
	for _, in := range inputs {
		d := Parse(in)
		if d.Amount < 0 {
			t.Errorf("%q: negative amount %v", in, d.Amount)
		}
		if !d.Type.IsValid() {
			t.Errorf("%q: invalid type %q", in, d.Type)
		}
		if !d.Category.IsValid() {
			t.Errorf("%q: invalid category %q", in, d.Category)
		}
	}
}
