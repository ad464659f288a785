package core

// Summary holds the headline totals.
type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category Category `json:"name"`
	Total    float64  `json:"value"`
}

// MonthTrend holds income and expense totals for a "YYYY-MM" month.
type MonthTrend struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"saving"`
}

// Dashboard is every view derived from the transaction list.
type Dashboard struct {
	Summary    Summary         `json:"summary"`
	Categories []CategoryTotal `json:"categories"`
	Trend      []MonthTrend    `json:"trends"`
}
