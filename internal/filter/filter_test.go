package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/internal/core"
	"orbital/internal/mockdata"
)

var day = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Amount: core.FromUnits(45), Date: day, Description: "Grocery shopping", Category: core.Food, Type: core.Expense, Status: core.Completed, Merchant: core.Merchant{Name: "Whole Foods"}},
		{ID: "2", Amount: core.FromUnits(5000), Date: day.AddDate(0, 0, -1), Description: "Monthly salary", Category: core.Salary, Type: core.Income, Status: core.Completed, Merchant: core.Merchant{Name: "Acme Corp"}},
		{ID: "3", Amount: core.FromUnits(15), Date: day.AddDate(0, 0, -2), Description: "Streaming", Category: core.Subscription, Type: core.Expense, Status: core.Pending, Merchant: core.Merchant{Name: "Netflix"}},
		{ID: "4", Amount: core.FromUnits(300), Date: day.AddDate(0, 0, -5), Description: "Flight", Category: core.Travel, Type: core.Expense, Status: core.Failed, Merchant: core.Merchant{Name: "Delta"}},
	}
}

func ids(txns []core.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, tx := range txns {
		out = append(out, tx.ID)
	}
	return out
}

func TestByDateRangeInclusive(t *testing.T) {
	txns := sample()
	r := core.DateRange{From: day.AddDate(0, 0, -2), To: day}
	assert.Equal(t, []string{"1", "2", "3"}, ids(ByDateRange(txns, r)))

	point := core.DateRange{From: day, To: day}
	assert.Equal(t, []string{"1"}, ids(ByDateRange(txns, point)))

	assert.Empty(t, ByDateRange(nil, r))
}

func TestByDateRangeIsSubsequence(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	txns := mockdata.NewGenerator(21, func() time.Time { return now }).Generate(300)
	r := core.DateRange{From: now.AddDate(0, 0, -60), To: now.AddDate(0, 0, -10)}

	got := ByDateRange(txns, r)
	j := 0
	for _, tx := range got {
		require.True(t, r.Contains(tx.Date))
		for j < len(txns) && txns[j].ID != tx.ID {
			require.False(t, r.Contains(txns[j].Date), "skipped an in-range transaction")
			j++
		}
		require.Less(t, j, len(txns), "output is not an ordered subsequence")
		j++
	}
}

func TestBySearch(t *testing.T) {
	txns := sample()
	cases := []struct {
		term string
		want []string
	}{
		{"grocery", []string{"1"}},
		{"NETFLIX", []string{"3"}},
		{"salary", []string{"2"}},
		{"travel", []string{"4"}},
		{"flight", []string{"4"}},
		{" ", []string{"1", "2"}},
		{" flight", []string{}},
		{"zzz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(BySearch(txns, tc.term)))
		})
	}
}

func TestBySearchEmptyIsIdentity(t *testing.T) {
	txns := sample()
	got := BySearch(txns, "")
	require.Len(t, got, len(txns))
	assert.Same(t, &txns[0], &got[0])
}

func TestCombinedSearch(t *testing.T) {
	assert.Equal(t, "rent", CombinedSearch("rent", "food"))
	assert.Equal(t, "food", CombinedSearch("", "food"))
	assert.Equal(t, "  ", CombinedSearch("  ", "food"))
	assert.Equal(t, "", CombinedSearch("", ""))
}

func TestByStatus(t *testing.T) {
	txns := sample()
	assert.Len(t, ByStatus(txns), len(txns))
	assert.Equal(t, []string{"1", "2"}, ids(ByStatus(txns, core.Completed)))
	assert.Equal(t, []string{"3", "4"}, ids(ByStatus(txns, core.Pending, core.Failed)))
}

func TestByAmount(t *testing.T) {
	txns := sample()
	lo, hi := core.FromUnits(15), core.FromUnits(300)
	assert.Equal(t, []string{"1", "3", "4"}, ids(ByAmount(txns, &lo, &hi)))
	assert.Equal(t, []string{"2", "4"}, ids(ByAmount(txns, &hi, nil)))
	assert.Equal(t, []string{"1", "3"}, ids(ByAmount(txns, nil, &core.Money{Cents: 4500})))
	assert.Len(t, ByAmount(txns, nil, nil), len(txns))
}
