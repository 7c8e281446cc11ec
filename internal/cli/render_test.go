package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orbital/internal/core"
	"orbital/internal/filter"
	"orbital/internal/services"
	"orbital/internal/state"
)

var renderNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, lightPalette, PaletteFor(state.ResolvedLight))
	assert.Equal(t, darkPalette, PaletteFor(state.ResolvedDark))
	assert.Equal(t, darkPalette, PaletteFor(""))
}

func TestPageSummary(t *testing.T) {
	page := filter.PageResult{
		Items:     make([]core.Transaction, 10),
		PageIndex: 1,
		PageSize:  10,
		PageCount: 9,
		Total:     87,
	}
	assert.Equal(t, "Showing 11-20 of 87 (page 2 of 9)", PageSummary(page))

	last := filter.PageResult{
		Items:     make([]core.Transaction, 7),
		PageIndex: 8,
		PageSize:  10,
		PageCount: 9,
		Total:     87,
	}
	assert.Equal(t, "Showing 81-87 of 87 (page 9 of 9)", PageSummary(last))

	assert.Equal(t, "No transactions found", PageSummary(filter.PageResult{PageCount: 1}))
}

func TestRenderer_Dashboard(t *testing.T) {
	r := NewRenderer(state.ResolvedDark, renderNow)

	ov := services.Overview{
		Range: core.DateRange{From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), To: renderNow},
		Metrics: core.DashboardMetrics{
			TotalBalance:       core.Money{Cents: 123456},
			MonthlyIncome:      core.Money{Cents: 500000},
			MonthlyExpenses:    core.Money{Cents: 125000},
			SavingsRatePercent: 75,
		},
		CategoryBreakdown: []core.CategoryBreakdown{
			{Category: core.Food, Amount: core.Money{Cents: 100000}, Percentage: 80, Color: core.Food.Color()},
			{Category: core.Travel, Amount: core.Money{Cents: 25000}, Percentage: 20, Color: core.Travel.Color()},
		},
		BalanceEvolution: []core.BalancePoint{
			{Label: "Feb", Balance: core.Money{Cents: 2000000}},
			{Label: "Mar", Balance: core.Money{Cents: 2430000}},
		},
	}
	page := filter.PageResult{
		Items: []core.Transaction{{
			ID:       "t1",
			Amount:   core.Money{Cents: 4599},
			Date:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			Category: core.Food,
			Type:     core.Expense,
			Status:   core.Completed,
			Merchant: core.Merchant{Name: "Whole Foods"},
		}},
		PageSize:  10,
		PageCount: 1,
		Total:     1,
	}

	out := r.Dashboard(ov, page, "whole")

	for _, want := range []string{
		"March 1, 2025",
		`search: "whole"`,
		"Total Balance",
		"$1,234.56",
		"$5,000.00",
		"75.0%",
		"Spending by category",
		"Food & Dining",
		"Travel",
		"Balance trend",
		"$24.3K",
		"Whole Foods",
		"-$45.99",
		"Showing 1-1 of 1 (page 1 of 1)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Loading")
}

func TestRenderer_EmptyStates(t *testing.T) {
	r := NewRenderer(state.ResolvedLight, renderNow)

	assert.Contains(t, r.Breakdown(nil), "No expenses in this period")
	assert.Contains(t, r.Balance(nil), "No balance history")
	assert.Contains(t, r.Transactions(filter.PageResult{PageCount: 1}), "No transactions found")
}

func TestRenderer_LoadingBanner(t *testing.T) {
	r := NewRenderer(state.ResolvedDark, renderNow)
	out := r.Dashboard(services.Overview{Range: core.DateRange{From: renderNow, To: renderNow}, Loading: true}, filter.PageResult{PageCount: 1}, "")

	assert.Contains(t, out, "Loading dashboard data...")
	assert.NotContains(t, out, "search:")
}
