package mockdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/internal/core"
)

var fixedNow = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestGenerateCountAndOrder(t *testing.T) {
	for _, count := range []int{0, 1, 10, 100, 500} {
		txns := NewGenerator(42, clock).Generate(count)
		require.Len(t, txns, count)
		for i := 1; i < len(txns); i++ {
			assert.False(t, txns[i].Date.After(txns[i-1].Date),
				"transaction %d is newer than its predecessor", i)
		}
	}
}

func TestGenerateNegativeCount(t *testing.T) {
	txns := NewGenerator(1, clock).Generate(-5)
	assert.NotNil(t, txns)
	assert.Empty(t, txns)
}

func TestGeneratePolicy(t *testing.T) {
	txns := NewGenerator(7, clock).Generate(2000)
	oldest := fixedNow.AddDate(0, 0, -maxDaysAgo)
	ids := make(map[string]bool, len(txns))

	var income, completed, pending, failed int
	for _, tx := range txns {
		require.NoError(t, tx.Validate())
		require.False(t, ids[tx.ID], "duplicate id %s", tx.ID)
		ids[tx.ID] = true

		units := tx.Amount.Cents / 100
		assert.Zero(t, tx.Amount.Cents%100, "amounts have integer granularity")
		if tx.IsIncome() {
			income++
			assert.Contains(t, core.IncomeCategories, tx.Category)
			assert.GreaterOrEqual(t, units, int64(minIncome))
			assert.LessOrEqual(t, units, int64(maxIncome))
		} else {
			assert.Contains(t, core.ExpenseCategories, tx.Category)
			assert.GreaterOrEqual(t, units, int64(minExpense))
			assert.LessOrEqual(t, units, int64(maxExpense))
		}

		switch tx.Status {
		case core.Completed:
			completed++
		case core.Pending:
			pending++
		case core.Failed:
			failed++
		}

		assert.GreaterOrEqual(t, tx.Date.Hour(), firstHour)
		assert.LessOrEqual(t, tx.Date.Hour(), lastHour)
		assert.Zero(t, tx.Date.Second())
		day := time.Date(tx.Date.Year(), tx.Date.Month(), tx.Date.Day(), 0, 0, 0, 0, time.UTC)
		assert.False(t, day.Before(time.Date(oldest.Year(), oldest.Month(), oldest.Day(), 0, 0, 0, 0, time.UTC)))
		assert.False(t, day.After(fixedNow))
	}

	n := float64(len(txns))
	assert.InDelta(t, 0.25, float64(income)/n, 0.05)
	assert.InDelta(t, 0.85, float64(completed)/n, 0.05)
	assert.InDelta(t, 0.10, float64(pending)/n, 0.04)
	assert.InDelta(t, 0.05, float64(failed)/n, 0.03)
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	a := NewGenerator(99, clock).Generate(20)
	b := NewGenerator(99, clock).Generate(20)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Amount, b[i].Amount)
		assert.Equal(t, a[i].Date, b[i].Date)
		assert.Equal(t, a[i].Category, b[i].Category)
		assert.Equal(t, a[i].Status, b[i].Status)
	}
}

func TestBalanceEvolution(t *testing.T) {
	points := NewGenerator(3, clock).BalanceEvolution(DefaultMonths)
	require.Len(t, points, DefaultMonths)

	wantLabels := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	for i, p := range points {
		assert.Equal(t, wantLabels[i], p.Label)
		assert.Equal(t, 1, p.Date.Day())
		assert.GreaterOrEqual(t, p.Balance.Cents, int64(0))
		if i > 0 {
			assert.True(t, p.Date.After(points[i-1].Date))
		}
	}
	assert.Empty(t, NewGenerator(3, clock).BalanceEvolution(0))
}

func TestPackageDefaults(t *testing.T) {
	assert.Len(t, Generate(5), 5)
	assert.Len(t, BalanceEvolution(3), 3)
}
