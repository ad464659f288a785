package parser

import (
	"strings"

	"fintrack/internal/core"
)

// Rule maps a keyword set to a category. Keywords match as case-insensitive
// substrings.
type Rule struct {
	Category core.Category
	Keywords []string
}

// Matches reports whether any keyword occurs in the lowercased text.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Order matters: vocabularies overlap and the first matching rule wins.
var defaultRules = []Rule{
	{core.Food, []string{"food", "lunch", "dinner", "starbucks", "restaurant", "coffee", "tea"}},
	{core.Gas, []string{"gas", "shell", "petrol", "fuel"}},
	{core.Transport, []string{"uber", "ride", "bus", "train", "metro"}},
	{core.Groceries, []string{"grocery", "groceries", "market"}},
	{core.Entertainment, []string{"netflix", "subscription", "prime", "spotify"}},
	{core.Electronics, []string{"electronics", "phone", "laptop"}},
	{core.Bills, []string{"bill", "electricity", "water", "rent"}},
	{core.Shopping, []string{"amazon", "shopping", "mall", "store"}},
	{core.IncomeCat, []string{"salary", "income", "pay"}},
}

// Checked independently of the category rules; the two may disagree.
var incomeKeywords = []string{"salary", "paid", "income", "credit", "received", "got"}

// Rules returns a copy of the ordered category rules.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	for i, r := range defaultRules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// IncomeKeywords returns the words that mark a text as income.
func IncomeKeywords() []string {
	return append([]string(nil), incomeKeywords...)
}
