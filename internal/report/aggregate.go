// Package report derives the dashboard views from a transaction list.
package report

import (
	"fmt"
	"sort"

	"fintrack/internal/core"
)

// MonthKey returns the zero-padded "YYYY-MM" key of a transaction's date in
// the location it was stored with.
func MonthKey(tx core.Transaction) string {
	return fmt.Sprintf("%04d-%02d", tx.Date.Year(), int(tx.Date.Month()))
}

// Aggregate recomputes every derived view from txs in a single pass. It keeps
// no state, so equal inputs give equal outputs.
func Aggregate(txs []core.Transaction) core.Dashboard {
	var (
		sum      core.Summary
		catIndex = map[core.Category]int{}
		cats     = []core.CategoryTotal{}
		months   = map[string]*core.MonthTrend{}
	)

	for _, tx := range txs {
		key := MonthKey(tx)
		m, ok := months[key]
		if !ok {
			m = &core.MonthTrend{Month: key}
			months[key] = m
		}

		switch tx.Type {
		case core.Income:
			sum.Income += tx.Amount
			m.Income += tx.Amount
		case core.Expense:
			sum.Expenses += tx.Amount
			m.Expense += tx.Amount

			i, seen := catIndex[tx.Category]
			if !seen {
				i = len(cats)
				catIndex[tx.Category] = i
				cats = append(cats, core.CategoryTotal{Category: tx.Category})
			}
			cats[i].Total += tx.Amount
		}
	}
	sum.Savings = sum.Income - sum.Expenses

	trend := make([]core.MonthTrend, 0, len(months))
	for _, m := range months {
		m.Savings = m.Income - m.Expense
		trend = append(trend, *m)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	return core.Dashboard{Summary: sum, Categories: cats, Trend: trend}
}
