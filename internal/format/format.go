// Package format renders money, numbers and dates the way the dashboard
// displays them (en-US, USD).
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"orbital/internal/core"
)

var compactUnits = []string{"", "K", "M", "B", "T"}

var thousand = decimal.NewFromInt(1000)

// Currency formats m as "$1,234.56", with a leading minus for negatives.
func Currency(m core.Money) string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// SignedAmount formats a transaction amount with "+" for income and "-" for
// expenses.
func SignedAmount(tx core.Transaction) string {
	if tx.IsIncome() {
		return "+" + Currency(tx.Amount)
	}
	return "-" + Currency(tx.Amount)
}

// CompactCurrency formats m as "$24.3K". Amounts under a thousand keep the
// full Currency form.
func CompactCurrency(m core.Money) string {
	d := m.Decimal()
	if d.Abs().LessThan(thousand) {
		return Currency(m)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + compact(d.Abs())
}

// Percentage formats v with the given number of decimals. With showSign,
// positive values get a leading "+".
func Percentage(v float64, showSign bool, decimals int) string {
	sign := ""
	if showSign && v > 0 {
		sign = "+"
	}
	return sign + decimal.NewFromFloat(v).StringFixed(int32(decimals)) + "%"
}

// Number formats n with thousand separators.
func Number(n int64) string {
	return humanize.Comma(n)
}

// CompactNumber formats n as "1.2K" or "3.4M".
func CompactNumber(n int64) string {
	d := decimal.NewFromInt(n)
	if d.Abs().LessThan(thousand) {
		return d.String()
	}
	sign := ""
	if n < 0 {
		sign = "-"
	}
	return sign + compact(d.Abs())
}

// compact scales a non-negative value to one decimal of the largest unit
// that keeps it under a thousand.
func compact(d decimal.Decimal) string {
	unit := 0
	for unit < len(compactUnits)-1 && d.GreaterThanOrEqual(thousand) {
		d = d.Div(thousand)
		unit++
	}
	d = d.Round(1)
	if d.GreaterThanOrEqual(thousand) && unit < len(compactUnits)-1 {
		d = d.Div(thousand).Round(1)
		unit++
	}
	return strings.TrimSuffix(d.StringFixed(1), ".0") + compactUnits[unit]
}

// ShortDate formats t as "Jan 15".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// LongDate formats t as "January 15, 2024".
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// ChartMonth formats t as "Jan".
func ChartMonth(t time.Time) string {
	return t.Format("Jan")
}

// RelativeDate describes t relative to now, e.g. "2 days ago".
func RelativeDate(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
