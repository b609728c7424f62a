package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("invoice not found")
	ErrInvalidEMR       = errors.New("emr number is required")
	ErrAlreadyCancelled = errors.New("invoice already cancelled")
	ErrInvalidKind      = errors.New("kind must be service, treatment or package")
)

// Insurance says whether the visit is billed through an insurer.
type Insurance string

const (
	InsuranceYes Insurance = "Yes"
	InsuranceNo  Insurance = "No"
)

// InsuranceType says how the insurer settles the visit.
type InsuranceType string

const (
	InsuranceTypePaid    InsuranceType = "Paid"
	InsuranceTypeAdvance InsuranceType = "Advance"
)

// Kind is what the patient is billed for.
type Kind string

const (
	KindService   Kind = "service"
	KindTreatment Kind = "treatment"
	KindPackage   Kind = "package"
)

func (k Kind) Valid() bool {
	return k == KindService || k == KindTreatment || k == KindPackage
}

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Invoice is the payment record created by a patient registration.
type Invoice struct {
	ID          uuid.UUID
	EMRNumber   string
	PatientName string
	Kind        Kind
	ItemName    string

	Amount             decimal.Decimal
	Paid               decimal.Decimal
	Advance            decimal.Decimal
	Pending            decimal.Decimal
	NeedToPay          decimal.Decimal
	UsedFromAdvance    decimal.Decimal
	Insurance          Insurance
	InsuranceType      InsuranceType
	AdvanceGivenAmount decimal.Decimal
	CoPayPercent       *decimal.Decimal
	AdvanceBase        *decimal.Decimal
	ManualAdvance      bool
	Mode               Mode

	Status       Status
	CancelReason string
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// apply copies derived figures onto the invoice.
func (inv *Invoice) apply(d Derived) {
	inv.Amount = d.Amount
	inv.Paid = d.Paid
	inv.Advance = d.Advance
	inv.Pending = d.Pending
	inv.NeedToPay = d.NeedToPay
	inv.UsedFromAdvance = d.UsedFromAdvance
	inv.Mode = d.Mode
}
