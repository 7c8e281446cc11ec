package http

import (
	"time"

	"orbital/internal/core"
	"orbital/internal/daterange"
	"orbital/internal/filter"
	"orbital/internal/format"
	"orbital/internal/services"
	"orbital/internal/state"
)

const emptyTableMessage = "No transactions found"

type RangeView struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Display string    `json:"display"`
}

type MetricsView struct {
	core.DashboardMetrics
	Display struct {
		TotalBalance    string `json:"totalBalance"`
		MonthlyIncome   string `json:"monthlyIncome"`
		MonthlyExpenses string `json:"monthlyExpenses"`
		SavingsRate     string `json:"savingsRate"`
	} `json:"display"`
}

type BreakdownView struct {
	core.CategoryBreakdown
	Label   string `json:"label"`
	Display struct {
		Amount     string `json:"amount"`
		Percentage string `json:"percentage"`
	} `json:"display"`
}

type BalanceView struct {
	core.BalancePoint
	Display string `json:"display"`
}

type DashboardView struct {
	Range             RangeView       `json:"range"`
	Search            string          `json:"search"`
	Metrics           MetricsView     `json:"metrics"`
	CategoryBreakdown []BreakdownView `json:"categoryBreakdown"`
	BalanceEvolution  []BalanceView   `json:"balanceEvolution"`
	Loading           bool            `json:"loading"`
}

type TransactionView struct {
	core.Transaction
	CategoryLabel string `json:"categoryLabel"`
	CategoryColor string `json:"categoryColor"`
	StatusLabel   string `json:"statusLabel"`
	Display       struct {
		Amount   string `json:"amount"`
		Date     string `json:"date"`
		Relative string `json:"relative"`
	} `json:"display"`
}

type TransactionsView struct {
	Items     []TransactionView `json:"items"`
	PageIndex int               `json:"pageIndex"`
	PageSize  int               `json:"pageSize"`
	PageCount int               `json:"pageCount"`
	Total     int               `json:"total"`
	HasPrev   bool              `json:"hasPrev"`
	HasNext   bool              `json:"hasNext"`
	PageSizes []int             `json:"pageSizes"`
	Empty     bool              `json:"empty"`
	Message   string            `json:"message,omitempty"`
}

type PresetView struct {
	Preset daterange.Preset `json:"preset"`
	Label  string           `json:"label"`
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
}

type PreferencesView struct {
	Theme            state.Theme         `json:"theme"`
	ResolvedTheme    state.ResolvedTheme `json:"resolvedTheme"`
	SidebarCollapsed bool                `json:"sidebarCollapsed"`
}

type ExportAcceptedView struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Rows        int       `json:"rows"`
	RequestedAt time.Time `json:"requestedAt"`
}

func newRangeView(r core.DateRange) RangeView {
	return RangeView{
		From:    r.From,
		To:      r.To,
		Display: format.ShortDate(r.From) + " - " + format.ShortDate(r.To),
	}
}

func newDashboardView(ov services.Overview, search string) DashboardView {
	view := DashboardView{
		Range:             newRangeView(ov.Range),
		Search:            search,
		CategoryBreakdown: make([]BreakdownView, 0, len(ov.CategoryBreakdown)),
		BalanceEvolution:  make([]BalanceView, 0, len(ov.BalanceEvolution)),
		Loading:           ov.Loading,
	}

	view.Metrics.DashboardMetrics = ov.Metrics
	view.Metrics.Display.TotalBalance = format.Currency(ov.Metrics.TotalBalance)
	view.Metrics.Display.MonthlyIncome = format.Currency(ov.Metrics.MonthlyIncome)
	view.Metrics.Display.MonthlyExpenses = format.Currency(ov.Metrics.MonthlyExpenses)
	view.Metrics.Display.SavingsRate = format.Percentage(ov.Metrics.SavingsRatePercent, false, 1)

	for _, b := range ov.CategoryBreakdown {
		bv := BreakdownView{CategoryBreakdown: b, Label: b.Category.Label()}
		bv.Display.Amount = format.Currency(b.Amount)
		bv.Display.Percentage = format.Percentage(b.Percentage, false, 1)
		view.CategoryBreakdown = append(view.CategoryBreakdown, bv)
	}

	for _, p := range ov.BalanceEvolution {
		view.BalanceEvolution = append(view.BalanceEvolution, BalanceView{
			BalancePoint: p,
			Display:      format.CompactCurrency(p.Balance),
		})
	}

	return view
}

func newTransactionView(tx core.Transaction, now time.Time) TransactionView {
	v := TransactionView{
		Transaction:   tx,
		CategoryLabel: tx.Category.Label(),
		CategoryColor: tx.Category.Color(),
		StatusLabel:   tx.Status.Label(),
	}
	v.Display.Amount = format.SignedAmount(tx)
	v.Display.Date = format.ShortDate(tx.Date)
	v.Display.Relative = format.RelativeDate(tx.Date, now)
	return v
}

func newTransactionsView(page filter.PageResult, now time.Time) TransactionsView {
	view := TransactionsView{
		Items:     make([]TransactionView, 0, len(page.Items)),
		PageIndex: page.PageIndex,
		PageSize:  page.PageSize,
		PageCount: page.PageCount,
		Total:     page.Total,
		HasPrev:   page.HasPrev,
		HasNext:   page.HasNext,
		PageSizes: filter.PageSizes,
		Empty:     page.Total == 0,
	}
	for _, tx := range page.Items {
		view.Items = append(view.Items, newTransactionView(tx, now))
	}
	if view.Empty {
		view.Message = emptyTableMessage
	}
	return view
}

func newPresetViews(now time.Time) []PresetView {
	infos := daterange.Presets()
	out := make([]PresetView, 0, len(infos))
	for _, info := range infos {
		r := daterange.Resolve(info.Preset, now)
		out = append(out, PresetView{Preset: info.Preset, Label: info.Label, From: r.From, To: r.To})
	}
	return out
}

func newPreferencesView(p state.Preferences, prefersDark func() bool) PreferencesView {
	return PreferencesView{
		Theme:            p.Theme,
		ResolvedTheme:    state.Resolve(p.Theme, prefersDark),
		SidebarCollapsed: p.SidebarCollapsed,
	}
}
