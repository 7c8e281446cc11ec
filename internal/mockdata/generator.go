// Package mockdata produces the synthetic dataset the dashboard runs on.
//
// Values are random; only the shape of the output is deterministic. A fixed
// seed makes a generator reproducible, which the tests and the CLI rely on.
package mockdata

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"orbital/internal/core"
)

const (
	// DefaultCount matches the dataset size the dashboard loads at startup.
	DefaultCount = 100
	// DefaultMonths is the balance evolution lookback window.
	DefaultMonths = 6

	incomeShare = 0.25

	minIncome, maxIncome   = 500, 8000
	minExpense, maxExpense = 5, 500

	maxDaysAgo          = 180
	firstHour, lastHour = 8, 22

	startingBalance                    = 18000
	minMonthIncome, maxMonthIncome     = 4000, 8000
	minMonthExpenses, maxMonthExpenses = 2000, 5000
)

// Generator builds transactions and balance series from a random source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator seeded with seed. A zero seed picks a random
// one. A nil clock defaults to time.Now.
func NewGenerator(seed uint64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Generate returns count transactions sorted most recent first.
func (g *Generator) Generate(count int) []core.Transaction {
	if count <= 0 {
		return []core.Transaction{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	txns := make([]core.Transaction, 0, count)
	for i := 0; i < count; i++ {
		txns = append(txns, g.transaction(now))
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns
}

func (g *Generator) transaction(now time.Time) core.Transaction {
	isIncome := g.rng.Float64() < incomeShare

	var (
		typ      core.TransactionType
		category core.Category
		amount   int64
		merchant string
	)
	if isIncome {
		typ = core.Income
		category = pick(g.rng, core.IncomeCategories)
		amount = g.between(minIncome, maxIncome)
		merchant = pick(g.rng, incomeMerchants)
	} else {
		typ = core.Expense
		category = pick(g.rng, core.ExpenseCategories)
		amount = g.between(minExpense, maxExpense)
		merchant = pick(g.rng, expenseMerchants)
	}

	return core.Transaction{
		ID:          "txn_" + uuid.NewString(),
		Amount:      core.FromUnits(amount),
		Date:        g.date(now, int(g.between(0, maxDaysAgo))),
		Description: pick(g.rng, descriptions[category]),
		Category:    category,
		Type:        typ,
		Status:      g.status(),
		Merchant:    core.Merchant{Name: merchant},
	}
}

// status draws from 85% completed, 10% pending, 5% failed.
func (g *Generator) status() core.TransactionStatus {
	roll := g.rng.Float64()
	switch {
	case roll < 0.85:
		return core.Completed
	case roll < 0.95:
		return core.Pending
	default:
		return core.Failed
	}
}

func (g *Generator) date(now time.Time, daysAgo int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	hour := int(g.between(firstHour, lastHour))
	minute := int(g.between(0, 59))
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

var defaultGenerator = NewGenerator(0, nil)

// Generate uses a randomly seeded package generator.
func Generate(count int) []core.Transaction {
	return defaultGenerator.Generate(count)
}

// BalanceEvolution uses a randomly seeded package generator.
func BalanceEvolution(months int) []core.BalancePoint {
	return defaultGenerator.BalanceEvolution(months)
}
