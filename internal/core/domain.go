package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Completed TransactionStatus = "completed"
	Pending   TransactionStatus = "pending"
	Failed    TransactionStatus = "failed"
)

type (
	TransactionType   string
	TransactionStatus string

	Money struct {
		Cents int64
	}

	Merchant struct {
		Name    string `json:"name"`
		LogoURL string `json:"logoUrl,omitempty"`
	}

	// Transaction is immutable once produced by the generator.
	Transaction struct {
		ID          string            `json:"id"`
		Amount      Money             `json:"amount"`
		Date        time.Time         `json:"date"`
		Description string            `json:"description"`
		Category    Category          `json:"category"`
		Type        TransactionType   `json:"type"`
		Status      TransactionStatus `json:"status"`
		Merchant    Merchant          `json:"merchant"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidStatus    = errors.New("invalid transaction status")
	ErrEmptyID          = errors.New("empty transaction id")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyMerchant    = errors.New("empty merchant name")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrTypeMismatch     = errors.New("category does not belong to transaction type")
)

// Statuses lists every settlement status in display order.
var Statuses = []TransactionStatus{Completed, Pending, Failed}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case Completed, Pending, Failed:
		return true
	default:
		return false
	}
}

// Label returns the human readable status name.
func (s TransactionStatus) Label() string {
	switch s {
	case Completed:
		return "Completed"
	case Pending:
		return "Pending"
	case Failed:
		return "Failed"
	default:
		return string(s)
	}
}

// ParseTransactionType accepts the lowercase wire form.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// ParseTransactionStatus accepts the lowercase wire form.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// IsCompleted reports whether the transaction counts toward financial totals.
func (t Transaction) IsCompleted() bool {
	return t.Status == Completed
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.Merchant.Name) == "" {
		return ErrEmptyMerchant
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.Category.IsIncome() != t.IsIncome() {
		return ErrTypeMismatch
	}
	return nil
}
