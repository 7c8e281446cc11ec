package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"orbital/internal/cache"
	"orbital/internal/core"
	"orbital/internal/filter"
	"orbital/internal/log"
	"orbital/internal/metrics"
	"orbital/internal/mockdata"
	"orbital/internal/state"
)

// Snapshot is the dataset generated at startup. It never changes afterwards.
type Snapshot struct {
	ID               string
	Transactions     []core.Transaction
	BalanceEvolution []core.BalancePoint
	GeneratedAt      time.Time
}

// Overview is everything the dashboard page renders for one date range.
type Overview struct {
	Range             core.DateRange           `json:"range"`
	Metrics           core.DashboardMetrics    `json:"metrics"`
	CategoryBreakdown []core.CategoryBreakdown `json:"categoryBreakdown"`
	BalanceEvolution  []core.BalancePoint      `json:"balanceEvolution"`
	Loading           bool                     `json:"loading"`
}

type DashboardConfig struct {
	TransactionCount int
	BalanceMonths    int
	LoadingDelay     time.Duration
	CacheSize        int
	CacheTTL         time.Duration
}

// DashboardService serves derived views over a single generated snapshot
type DashboardService struct {
	snapshot     Snapshot
	loadingUntil time.Time
	now          func() time.Time
	logger       *log.Logger

	overviews *cache.LRUCache[Overview]
	pages     *cache.LRUCache[filter.PageResult]
}

// NewDashboardService generates the dataset with gen and starts the loading
// window. A nil clock defaults to time.Now.
func NewDashboardService(gen *mockdata.Generator, cfg DashboardConfig, now func() time.Time, logger *log.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentDashboard)

	start := time.Now()
	txns := gen.Generate(cfg.TransactionCount)
	slices.SortStableFunc(txns, func(a, b core.Transaction) int { return b.Date.Compare(a.Date) })

	snap := Snapshot{
		ID:               uuid.NewString(),
		Transactions:     txns,
		BalanceEvolution: gen.BalanceEvolution(cfg.BalanceMonths),
		GeneratedAt:      now(),
	}

	logger.Info("Generated dataset",
		log.FieldOperation, log.OpGenerate,
		log.FieldRows, len(snap.Transactions),
		"months", len(snap.BalanceEvolution),
		log.FieldDuration, time.Since(start).Milliseconds())

	return &DashboardService{
		snapshot:     snap,
		loadingUntil: snap.GeneratedAt.Add(cfg.LoadingDelay),
		now:          now,
		logger:       logger,
		overviews:    cache.NewLRUCache[Overview](cfg.CacheSize, cfg.CacheTTL),
		pages:        cache.NewLRUCache[filter.PageResult](cfg.CacheSize, cfg.CacheTTL),
	}
}

// Snapshot returns the generated dataset
func (s *DashboardService) Snapshot() Snapshot {
	return s.snapshot
}

// Loading reports whether the startup loading window is still open.
func (s *DashboardService) Loading() bool {
	return s.now().Before(s.loadingUntil)
}

// Overview computes metrics and breakdown over the transactions inside the
// state's date range. The global search does not narrow them.
func (s *DashboardService) Overview(ctx context.Context, st state.AppState) Overview {
	now := s.now()
	key := strings.Join([]string{s.snapshot.ID, s.window(st.DateRange), now.Format("2006-01")}, "|")

	ov, hit := s.overviews.GetOrCompute(key, func() Overview {
		inRange := filter.ByDateRange(s.snapshot.Transactions, st.DateRange)
		return Overview{
			Range:             st.DateRange,
			Metrics:           metrics.ComputeMetrics(inRange, now),
			CategoryBreakdown: metrics.ComputeCategoryBreakdown(inRange),
			BalanceEvolution:  s.snapshot.BalanceEvolution,
		}
	})
	log.FromContext(ctx).DebugContext(ctx, "Computed overview", log.FieldCacheHit, hit)

	ov.Range = st.DateRange
	ov.Loading = now.Before(s.loadingUntil)
	return ov
}

// Rows returns the table rows before pagination: the state's date range,
// the combined global and local search, then status and amount filters,
// sorted.
func (s *DashboardService) Rows(st state.AppState, q filter.Query) []core.Transaction {
	return s.tableQuery(st, q).Rows(s.snapshot.Transactions)
}

// Transactions returns one page of the transactions table.
func (s *DashboardService) Transactions(ctx context.Context, st state.AppState, q filter.Query) filter.PageResult {
	q = s.tableQuery(st, q)

	page, hit := s.pages.GetOrCompute(s.pageKey(q), func() filter.PageResult {
		return q.Apply(s.snapshot.Transactions)
	})
	log.FromContext(ctx).DebugContext(ctx, "Computed transactions page",
		log.FieldCacheHit, hit, log.FieldSearch, q.Search, log.FieldRows, page.Total)

	return page
}

// Caches exposes the memo caches so a cache.Manager can expire them.
func (s *DashboardService) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.overviews, s.pages}
}

// CacheStats reports overview and page cache statistics
func (s *DashboardService) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"overview":     s.overviews.Stats(),
		"transactions": s.pages.Stats(),
	}
}

func (s *DashboardService) tableQuery(st state.AppState, q filter.Query) filter.Query {
	r := st.DateRange
	q.Range = &r
	q.Search = filter.CombinedSearch(st.GlobalSearch, q.Search)
	return q
}

// window names the span of snapshot transactions inside r. The snapshot is
// sorted newest first, so a range always covers one contiguous span, and
// ranges covering the same transactions share cache entries even while
// their open end follows the clock.
func (s *DashboardService) window(r core.DateRange) string {
	txns := s.snapshot.Transactions
	start := sort.Search(len(txns), func(i int) bool { return !txns[i].Date.After(r.To) })
	end := sort.Search(len(txns), func(i int) bool { return txns[i].Date.Before(r.From) })
	if end <= start {
		return "empty"
	}
	return fmt.Sprintf("%d:%d", start, end)
}

func (s *DashboardService) pageKey(q filter.Query) string {
	statuses := make([]string, 0, len(q.Statuses))
	for _, st := range q.Statuses {
		statuses = append(statuses, string(st))
	}
	slices.Sort(statuses)

	bound := func(m *core.Money) string {
		if m == nil {
			return "-"
		}
		return fmt.Sprint(m.Cents)
	}

	return strings.Join([]string{
		s.snapshot.ID,
		s.window(*q.Range),
		strings.ToLower(q.Search),
		strings.Join(statuses, ","),
		bound(q.Min),
		bound(q.Max),
		string(q.Sort.Field),
		fmt.Sprint(q.Sort.Desc),
		fmt.Sprint(q.Page.Index),
		fmt.Sprint(q.Page.Size),
	}, "|")
}
