package filter

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"orbital/internal/core"
)

type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
	SortByMerchant SortField = "merchant"
)

// DefaultPageSize is the page size the transactions table opens with.
const DefaultPageSize = 10

// PageSizes are the page sizes the table offers.
var PageSizes = []int{5, 10, 20, 50}

var (
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidPageSize  = errors.New("invalid page size")
)

// SortSpec orders the table. The zero value sorts by date, oldest first.
type SortSpec struct {
	Field SortField
	Desc  bool
}

// DefaultSort shows the most recent transactions first.
var DefaultSort = SortSpec{Field: SortByDate, Desc: true}

// ParseSortField accepts the lowercase field names. An empty string means date.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByDate, nil
	case SortByDate, SortByAmount, SortByCategory, SortByMerchant:
		return f, nil
	default:
		return "", ErrInvalidSortField
	}
}

// ValidatePageSize reports ErrInvalidPageSize for sizes the table does not offer.
func ValidatePageSize(size int) error {
	if !slices.Contains(PageSizes, size) {
		return ErrInvalidPageSize
	}
	return nil
}

// Sort returns a stably sorted copy of txns.
func Sort(txns []core.Transaction, spec SortSpec) []core.Transaction {
	out := slices.Clone(txns)
	if out == nil {
		out = []core.Transaction{}
	}
	less := lessFunc(spec.Field)
	sort.SliceStable(out, func(i, j int) bool {
		if spec.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b core.Transaction) bool {
	switch field {
	case SortByAmount:
		return func(a, b core.Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortByCategory:
		return func(a, b core.Transaction) bool { return a.Category < b.Category }
	case SortByMerchant:
		return func(a, b core.Transaction) bool {
			return strings.ToLower(a.Merchant.Name) < strings.ToLower(b.Merchant.Name)
		}
	default:
		return func(a, b core.Transaction) bool { return a.Date.Before(b.Date) }
	}
}

// Page selects a zero-based page. A zero Size means DefaultPageSize.
type Page struct {
	Index int
	Size  int
}

type PageResult struct {
	Items     []core.Transaction `json:"items"`
	PageIndex int                `json:"pageIndex"`
	PageSize  int                `json:"pageSize"`
	PageCount int                `json:"pageCount"`
	Total     int                `json:"total"`
	HasPrev   bool               `json:"hasPrev"`
	HasNext   bool               `json:"hasNext"`
}

// Paginate cuts one page out of txns. Out-of-range indexes are clamped and an
// unsupported size falls back to DefaultPageSize.
func Paginate(txns []core.Transaction, p Page) PageResult {
	size := p.Size
	if ValidatePageSize(size) != nil {
		size = DefaultPageSize
	}

	total := len(txns)
	pageCount := max(1, (total+size-1)/size)
	index := min(max(p.Index, 0), pageCount-1)

	start := min(index*size, total)
	end := min(start+size, total)
	items := make([]core.Transaction, end-start)
	copy(items, txns[start:end])

	return PageResult{
		Items:     items,
		PageIndex: index,
		PageSize:  size,
		PageCount: pageCount,
		Total:     total,
		HasPrev:   index > 0,
		HasNext:   index < pageCount-1,
	}
}

// Query is everything the transactions table filters on.
type Query struct {
	Range    *core.DateRange
	Search   string
	Statuses []core.TransactionStatus
	Min, Max *core.Money
	Sort     SortSpec
	Page     Page
}

// Filter runs every narrowing step of the query without sorting or paging.
func (q Query) Filter(txns []core.Transaction) []core.Transaction {
	out := txns
	if q.Range != nil {
		out = ByDateRange(out, *q.Range)
	}
	out = BySearch(out, q.Search)
	out = ByStatus(out, q.Statuses...)
	return ByAmount(out, q.Min, q.Max)
}

// Rows returns the filtered and sorted rows, i.e. the table before paging.
func (q Query) Rows(txns []core.Transaction) []core.Transaction {
	return Sort(q.Filter(txns), q.Sort)
}

// Apply runs date, search, status and amount filters, then sorts and paginates.
func (q Query) Apply(txns []core.Transaction) PageResult {
	return Paginate(q.Rows(txns), q.Page)
}
