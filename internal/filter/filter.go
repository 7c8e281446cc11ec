// Package filter narrows transaction lists for the dashboard views.
//
// None of the functions mutate their input. The returned slice may share the
// input's backing array when no narrowing happens.
package filter

import (
	"strings"

	"orbital/internal/core"
)

// ByDateRange keeps transactions dated within r, both ends inclusive.
func ByDateRange(txns []core.Transaction, r core.DateRange) []core.Transaction {
	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// BySearch keeps transactions whose description, merchant name or category id
// contains term, ignoring case. Only the empty term returns txns as is;
// whitespace is matched like any other character.
func BySearch(txns []core.Transaction, term string) []core.Transaction {
	if term == "" {
		return txns
	}
	needle := strings.ToLower(term)

	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		if matches(tx, needle) {
			out = append(out, tx)
		}
	}
	return out
}

func matches(tx core.Transaction, needle string) bool {
	return strings.Contains(strings.ToLower(tx.Description), needle) ||
		strings.Contains(strings.ToLower(tx.Merchant.Name), needle) ||
		strings.Contains(strings.ToLower(string(tx.Category)), needle)
}

// CombinedSearch picks the header search when it is set and the table's own
// search box otherwise.
func CombinedSearch(global, local string) string {
	if global != "" {
		return global
	}
	return local
}

// ByStatus keeps transactions in any of the given statuses. No statuses means
// no filtering.
func ByStatus(txns []core.Transaction, statuses ...core.TransactionStatus) []core.Transaction {
	if len(statuses) == 0 {
		return txns
	}
	want := make(map[core.TransactionStatus]struct{}, len(statuses))
	for _, s := range statuses {
		want[s] = struct{}{}
	}

	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		if _, ok := want[tx.Status]; ok {
			out = append(out, tx)
		}
	}
	return out
}

// ByAmount keeps transactions whose amount lies within [lo, hi]. A nil bound
// is open.
func ByAmount(txns []core.Transaction, lo, hi *core.Money) []core.Transaction {
	if lo == nil && hi == nil {
		return txns
	}
	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		if lo != nil && tx.Amount.Cents < lo.Cents {
			continue
		}
		if hi != nil && tx.Amount.Cents > hi.Cents {
			continue
		}
		out = append(out, tx)
	}
	return out
}
