package core

// Category is one of a closed set of 13 transaction categories.
type Category string

const (
	Salary        Category = "salary"
	Freelance     Category = "freelance"
	Investments   Category = "investments"
	Food          Category = "food"
	Transport     Category = "transport"
	Entertainment Category = "entertainment"
	Shopping      Category = "shopping"
	Utilities     Category = "utilities"
	Healthcare    Category = "healthcare"
	Education     Category = "education"
	Travel        Category = "travel"
	Subscription  Category = "subscription"
	Other         Category = "other"
)

var (
	IncomeCategories = []Category{Salary, Freelance, Investments}

	ExpenseCategories = []Category{
		Food,
		Transport,
		Entertainment,
		Shopping,
		Utilities,
		Healthcare,
		Education,
		Travel,
		Subscription,
		Other,
	}
)

type categoryInfo struct {
	label  string
	color  string
	income bool
}

var categories = map[Category]categoryInfo{
	Salary:        {"Salary", "#22c55e", true},
	Freelance:     {"Freelance", "#10b981", true},
	Investments:   {"Investments", "#14b8a6", true},
	Food:          {"Food & Dining", "#f97316", false},
	Transport:     {"Transport", "#3b82f6", false},
	Entertainment: {"Entertainment", "#a855f7", false},
	Shopping:      {"Shopping", "#ec4899", false},
	Utilities:     {"Utilities", "#6366f1", false},
	Healthcare:    {"Healthcare", "#ef4444", false},
	Education:     {"Education", "#8b5cf6", false},
	Travel:        {"Travel", "#06b6d4", false},
	Subscription:  {"Subscriptions", "#f59e0b", false},
	Other:         {"Other", "#6b7280", false},
}

// AllCategories returns the 13 categories, income first.
func AllCategories() []Category {
	out := make([]Category, 0, len(IncomeCategories)+len(ExpenseCategories))
	out = append(out, IncomeCategories...)
	return append(out, ExpenseCategories...)
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// IsIncome reports whether the category belongs to the income group.
func (c Category) IsIncome() bool {
	return categories[c].income
}

// Label returns the display label, or the raw identifier for unknown values.
func (c Category) Label() string {
	if info, ok := categories[c]; ok {
		return info.label
	}
	return string(c)
}

// Color returns the chart color as a hex string.
func (c Category) Color() string {
	if info, ok := categories[c]; ok {
		return info.color
	}
	return categories[Other].color
}
