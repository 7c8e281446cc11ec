package core

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("range start is after range end")

// DashboardMetrics holds the summary card figures.
type DashboardMetrics struct {
	TotalBalance       Money   `json:"totalBalance"`
	MonthlyIncome      Money   `json:"monthlyIncome"`
	MonthlyExpenses    Money   `json:"monthlyExpenses"`
	SavingsRatePercent float64 `json:"savingsRatePercent"`
}

// CategoryBreakdown is the share of completed expenses spent in one category.
type CategoryBreakdown struct {
	Category   Category `json:"category"`
	Amount     Money    `json:"amount"`
	Percentage float64  `json:"percentage"`
	Color      string   `json:"color"`
}

// BalancePoint is one month of the synthetic balance evolution series.
type BalancePoint struct {
	Date    time.Time `json:"date"`
	Balance Money     `json:"balance"`
	Label   string    `json:"label"`
}

// DateRange is a closed interval [From, To].
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls within the range, both bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

func (r DateRange) Validate() error {
	if r.From.After(r.To) {
		return ErrInvalidRange
	}
	return nil
}
