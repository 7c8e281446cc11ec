// Package metrics reduces transaction lists into the dashboard's summary
// figures and the expense breakdown by category.
//
// Only completed transactions count toward any total. Both functions are pure
// and total over valid input, including empty lists.
package metrics

import (
	"sort"
	"time"

	"orbital/internal/core"
)

// BaseBalance is the starting balance added to the lifetime net flow.
var BaseBalance = core.FromUnits(15000)

// ComputeMetrics derives the summary cards. Monthly figures cover completed
// transactions dated within now's calendar month; the total balance covers
// every completed transaction in txns.
func ComputeMetrics(txns []core.Transaction, now time.Time) core.DashboardMetrics {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var (
		monthlyIncome, monthlyExpenses core.Money
		totalIncome, totalExpenses     core.Money
	)
	for _, tx := range txns {
		if !tx.IsCompleted() {
			continue
		}
		inMonth := !tx.Date.Before(monthStart) && tx.Date.Before(nextMonth)
		if tx.IsIncome() {
			totalIncome = totalIncome.Add(tx.Amount)
			if inMonth {
				monthlyIncome = monthlyIncome.Add(tx.Amount)
			}
		} else {
			totalExpenses = totalExpenses.Add(tx.Amount)
			if inMonth {
				monthlyExpenses = monthlyExpenses.Add(tx.Amount)
			}
		}
	}

	return core.DashboardMetrics{
		TotalBalance:       totalIncome.Sub(totalExpenses).Add(BaseBalance),
		MonthlyIncome:      monthlyIncome,
		MonthlyExpenses:    monthlyExpenses,
		SavingsRatePercent: SavingsRate(monthlyIncome, monthlyExpenses),
	}
}

// SavingsRate returns (income-expenses)/income*100 clamped to [0, 100].
// Spending more than was earned reads as 0, not as a negative rate.
func SavingsRate(income, expenses core.Money) float64 {
	if income.Cents <= 0 {
		return 0
	}
	rate := float64(income.Cents-expenses.Cents) / float64(income.Cents) * 100
	return min(100, max(0, rate))
}

// ComputeCategoryBreakdown groups completed expenses by category, ordered by
// amount descending. Categories without expenses are omitted.
func ComputeCategoryBreakdown(txns []core.Transaction) []core.CategoryBreakdown {
	sums := make(map[core.Category]int64)
	var total int64
	for _, tx := range txns {
		if tx.IsIncome() || !tx.IsCompleted() {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
		total += tx.Amount.Cents
	}

	out := make([]core.CategoryBreakdown, 0, len(sums))
	for cat, cents := range sums {
		pct := 0.0
		if total > 0 {
			pct = float64(cents) / float64(total) * 100
		}
		out = append(out, core.CategoryBreakdown{
			Category:   cat,
			Amount:     core.Money{Cents: cents},
			Percentage: pct,
			Color:      cat.Color(),
		})
	}

	// Ties fall back to the category id so map iteration order never leaks.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}
