package pettycash

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("petty cash entry not found")
	ErrInvalidKind  = errors.New("invalid entry kind")
	ErrInvalidEntry = errors.New("amount must be greater than zero")
)

// Kind tells whether an entry tops up the float or spends from it.
type Kind string

const (
	KindFund    Kind = "fund"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindFund || k == KindExpense
}

// Entry is one movement of the clinic's petty cash float. Receipts live in
// external object storage; only their URL is kept.
type Entry struct {
	ID          uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Description string
	ReceiptURL  string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Summary totals the entries of a period.
type Summary struct {
	Funded  decimal.Decimal
	Spent   decimal.Decimal
	Balance decimal.Decimal
	Entries int
}
