package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("membership not found")
	ErrAlreadyExists       = errors.New("emr already has a membership")
	ErrInvalidEMR          = errors.New("emr number is required")
	ErrInvalidTreatment    = errors.New("treatment needs a name, at least one unit and a non-negative price")
	ErrInvalidTransfer     = errors.New("transfer amount must be positive")
	ErrSelfTransfer        = errors.New("cannot transfer a membership balance to the same emr")
	ErrInsufficientBalance = errors.New("transfer exceeds the remaining balance")
)

// Membership is a prepaid package of treatment credit held by one EMR.
type Membership struct {
	ID            uuid.UUID
	EMRNumber     string
	PatientName   string
	PackageName   string
	PackageAmount decimal.Decimal
	Treatments    []Treatment
	Transfers     []Transfer
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Treatment is one consumed line of a membership.
type Treatment struct {
	ID            uuid.UUID
	MembershipID  uuid.UUID
	TreatmentName string
	UnitCount     int
	UnitPrice     decimal.Decimal
	CreatedAt     time.Time
}

// LineTotal returns UnitCount * UnitPrice.
func (t Treatment) LineTotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.UnitCount)))
}

// Transfer is an entry of the append-only transfer log. Records are never
// updated once written.
type Transfer struct {
	ID                uuid.UUID
	FromEMR           string
	ToEMR             string
	ToName            string
	TransferredAmount decimal.Decimal
	Note              string
	TransferredAt     time.Time
}

// Balance returns the membership's balance with transfers applied.
func (m *Membership) Balance() Balance {
	var in, out decimal.Decimal

	for _, t := range m.Transfers {
		switch m.EMRNumber {
		case t.FromEMR:
			out = out.Add(t.TransferredAmount)
		case t.ToEMR:
			in = in.Add(t.TransferredAmount)
		}
	}

	b := ComputeBalance(m.PackageAmount.Add(in).Sub(out), m.Treatments)
	b.PackageAmount = m.PackageAmount
	b.TransferredIn = in
	b.TransferredOut = out

	return b
}
