package mockdata

import (
	"time"

	"orbital/internal/core"
)

// BalanceEvolution returns one point per month, oldest first, ending with the
// current month. The series is a random walk and is not derived from any
// transaction list.
func (g *Generator) BalanceEvolution(months int) []core.BalancePoint {
	if months <= 0 {
		return []core.BalancePoint{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]core.BalancePoint, 0, months)
	balance := int64(startingBalance)
	for i := months - 1; i >= 0; i-- {
		date := firstOfMonth.AddDate(0, -i, 0)

		income := g.between(minMonthIncome, maxMonthIncome)
		expenses := g.between(minMonthExpenses, maxMonthExpenses)
		balance += income - expenses

		points = append(points, core.BalancePoint{
			Date:    date,
			Balance: core.FromUnits(max(0, balance)),
			Label:   date.Format("Jan"),
		})
	}
	return points
}
