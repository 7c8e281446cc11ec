package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"orbital/internal/core"
	"orbital/internal/filter"
	"orbital/internal/format"
	"orbital/internal/services"
	"orbital/internal/state"
)

const balanceBarWidth = 24

// Palette holds the terminal colors for one resolved theme.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Income  lipgloss.Color
	Expense lipgloss.Color
	Border  lipgloss.Color
}

var (
	darkPalette = Palette{
		Text:    lipgloss.Color("#F4F4F5"),
		Muted:   lipgloss.Color("#A1A1AA"),
		Accent:  lipgloss.Color("#8B5CF6"),
		Income:  lipgloss.Color("#10B981"),
		Expense: lipgloss.Color("#F43F5E"),
		Border:  lipgloss.Color("#3F3F46"),
	}
	lightPalette = Palette{
		Text:    lipgloss.Color("#18181B"),
		Muted:   lipgloss.Color("#71717A"),
		Accent:  lipgloss.Color("#7C3AED"),
		Income:  lipgloss.Color("#059669"),
		Expense: lipgloss.Color("#E11D48"),
		Border:  lipgloss.Color("#D4D4D8"),
	}
)

// PaletteFor returns the palette for a resolved theme.
func PaletteFor(t state.ResolvedTheme) Palette {
	if t == state.ResolvedLight {
		return lightPalette
	}
	return darkPalette
}

// Renderer draws the dashboard for a terminal.
type Renderer struct {
	palette Palette
	now     time.Time

	title   lipgloss.Style
	card    lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	income  lipgloss.Style
	expense lipgloss.Style
	section lipgloss.Style
}

func NewRenderer(theme state.ResolvedTheme, now time.Time) *Renderer {
	p := PaletteFor(theme)
	return &Renderer{
		palette: p,
		now:     now,
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 2).
			Width(22),
		label:   lipgloss.NewStyle().Foreground(p.Muted),
		value:   lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		income:  lipgloss.NewStyle().Foreground(p.Income),
		expense: lipgloss.NewStyle().Foreground(p.Expense),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}

// Dashboard renders the header, summary cards, category breakdown, balance
// trend and one page of transactions.
func (r *Renderer) Dashboard(ov services.Overview, page filter.PageResult, search string) string {
	sections := []string{r.header(ov.Range, search)}
	if ov.Loading {
		sections = append(sections, r.muted.Render("Loading dashboard data..."))
	}
	sections = append(sections,
		r.Cards(ov.Metrics),
		r.section.Render(r.Breakdown(ov.CategoryBreakdown)),
		r.section.Render(r.Balance(ov.BalanceEvolution)),
		r.section.Render(r.Transactions(page)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (r *Renderer) header(rng core.DateRange, search string) string {
	line := r.title.Render("Orbital") + "  " +
		r.muted.Render(format.LongDate(rng.From)+" - "+format.LongDate(rng.To))
	if search != "" {
		line += "  " + r.muted.Render(fmt.Sprintf("search: %q", search))
	}
	return line
}

// Cards renders the four summary cards side by side.
func (r *Renderer) Cards(m core.DashboardMetrics) string {
	savings := r.value
	if m.SavingsRatePercent < 0 {
		savings = r.expense.Bold(true)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		r.metricCard("Total Balance", r.value.Render(format.Currency(m.TotalBalance))),
		r.metricCard("Monthly Income", r.income.Bold(true).Render(format.Currency(m.MonthlyIncome))),
		r.metricCard("Monthly Expenses", r.expense.Bold(true).Render(format.Currency(m.MonthlyExpenses))),
		r.metricCard("Savings Rate", savings.Render(format.Percentage(m.SavingsRatePercent, false, 1))),
	)
}

func (r *Renderer) metricCard(label, value string) string {
	return r.card.Render(r.label.Render(label) + "\n" + value)
}

// Breakdown renders expense categories as a tree, largest share first.
func (r *Renderer) Breakdown(items []core.CategoryBreakdown) string {
	t := tree.New().Root(r.title.Render("Spending by category"))
	if len(items) == 0 {
		t.Child(r.muted.Render("No expenses in this period"))
		return t.String()
	}
	for _, b := range items {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●")
		t.Child(fmt.Sprintf("%s %-14s %12s  %s",
			swatch,
			b.Category.Label(),
			format.Currency(b.Amount),
			r.muted.Render(format.Percentage(b.Percentage, false, 1))))
	}
	return t.String()
}

// Balance renders the monthly balance series as horizontal bars.
func (r *Renderer) Balance(points []core.BalancePoint) string {
	lines := []string{r.title.Render("Balance trend")}
	if len(points) == 0 {
		return strings.Join(append(lines, r.muted.Render("No balance history")), "\n")
	}

	var peak int64
	for _, p := range points {
		peak = max(peak, p.Balance.Cents)
	}

	bar := lipgloss.NewStyle().Foreground(r.palette.Accent)
	for _, p := range points {
		width := 0
		if peak > 0 && p.Balance.Cents > 0 {
			width = max(1, int(p.Balance.Cents*balanceBarWidth/peak))
		}
		lines = append(lines, fmt.Sprintf("%-4s %s %s",
			p.Label,
			bar.Render(strings.Repeat("█", width)+strings.Repeat(" ", balanceBarWidth-width)),
			format.CompactCurrency(p.Balance)))
	}
	return strings.Join(lines, "\n")
}

// Transactions renders one page of the transactions table with its footer.
func (r *Renderer) Transactions(page filter.PageResult) string {
	heading := r.title.Render("Recent transactions")
	if len(page.Items) == 0 {
		return heading + "\n" + r.muted.Render("No transactions found")
	}

	rows := make([][]string, 0, len(page.Items))
	for _, tx := range page.Items {
		rows = append(rows, []string{
			format.ShortDate(tx.Date),
			tx.Merchant.Name,
			tx.Category.Label(),
			tx.Status.Label(),
			format.SignedAmount(tx),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.palette.Border)).
		Headers("Date", "Merchant", "Category", "Status", "Amount").
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left, heading, t.String(), r.muted.Render(PageSummary(page)))
}

// PageSummary describes which rows a page shows, e.g.
// "Showing 11-20 of 87 (page 2 of 9)".
func PageSummary(page filter.PageResult) string {
	if page.Total == 0 {
		return "No transactions found"
	}
	first := page.PageIndex*page.PageSize + 1
	last := first + len(page.Items) - 1
	return fmt.Sprintf("Showing %s-%s of %s (page %d of %d)",
		format.Number(int64(first)),
		format.Number(int64(last)),
		format.Number(int64(page.Total)),
		page.PageIndex+1,
		page.PageCount)
}
