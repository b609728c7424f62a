package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	CancelInvoice(ctx context.Context, id uuid.UUID, reason string) error

	// LatestAdvance returns the advance carried by the most recent active
	// invoice of an EMR, and false when the EMR has none.
	LatestAdvance(ctx context.Context, emrNumber string) (decimal.Decimal, bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	EMRNumber *string
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
}

// PaymentParams are the payment fields of the registration form.
type PaymentParams struct {
	Amount             money.Field
	Paid               money.Field
	Advance            money.Field
	ManualAdvance      bool
	Insurance          Insurance
	InsuranceType      InsuranceType
	AdvanceGivenAmount money.Field
	CoPayPercent       money.Field
}

func (p PaymentParams) form() Form {
	return Form{
		Amount:             p.Amount,
		Paid:               p.Paid,
		Advance:            p.Advance,
		ManualAdvance:      p.ManualAdvance,
		Insurance:          p.Insurance,
		InsuranceType:      p.InsuranceType,
		AdvanceGivenAmount: p.AdvanceGivenAmount,
		CoPayPercent:       p.CoPayPercent,
	}
}

type RegisterParams struct {
	EMRNumber   string
	PatientName string
	Kind        Kind
	ItemName    string
	Payment     PaymentParams

	// UseStoredAdvance draws the payment from the advance carried by the
	// EMR's previous invoice, when there is one.
	UseStoredAdvance bool
}

// Preview derives the payment fields without persisting anything.
func (s *Service) Preview(f Form) Derived {
	return Derive(f)
}

// Register derives the payment fields of a new registration and stores the
// invoice. Derived values sent by clients are never trusted.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Invoice, error) {
	emr := strings.TrimSpace(params.EMRNumber)
	if emr == "" {
		return nil, ErrInvalidEMR
	}

	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	form := params.Payment.form()

	if params.UseStoredAdvance {
		base, found, err := s.repo.LatestAdvance(ctx, emr)
		if err != nil {
			return nil, fmt.Errorf("loading stored advance: %w", err)
		}

		// An exhausted balance is no stored advance at all.
		if found && base.IsPositive() {
			form.AdvanceBase = &base
		}
	}

	inv := &Invoice{
		EMRNumber:          emr,
		PatientName:        strings.TrimSpace(params.PatientName),
		Kind:               params.Kind,
		ItemName:           params.ItemName,
		Insurance:          params.Payment.Insurance,
		InsuranceType:      params.Payment.InsuranceType,
		AdvanceGivenAmount: params.Payment.AdvanceGivenAmount.Decimal(),
		CoPayPercent:       coPay(params.Payment.CoPayPercent),
		AdvanceBase:        form.AdvanceBase,
		ManualAdvance:      params.Payment.ManualAdvance,
		Status:             StatusActive,
	}
	inv.apply(Derive(form))

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

type UpdateParams struct {
	PatientName *string
	ItemName    *string
	Payment     *PaymentParams
}

// UpdatePatientInfo edits an active invoice and re-derives its payment fields.
func (s *Service) UpdatePatientInfo(ctx context.Context, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if params.PatientName != nil {
		inv.PatientName = strings.TrimSpace(*params.PatientName)
	}

	if params.ItemName != nil {
		inv.ItemName = *params.ItemName
	}

	form := inv.form()
	if params.Payment != nil {
		form = params.Payment.form()
		form.AdvanceBase = inv.AdvanceBase

		inv.Insurance = params.Payment.Insurance
		inv.InsuranceType = params.Payment.InsuranceType
		inv.AdvanceGivenAmount = params.Payment.AdvanceGivenAmount.Decimal()
		inv.CoPayPercent = coPay(params.Payment.CoPayPercent)
		inv.ManualAdvance = params.Payment.ManualAdvance
	}

	inv.apply(Derive(form))

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) ListByEMR(ctx context.Context, emrNumber string) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, ListFilter{EMRNumber: &emrNumber})
}

// ListCancelled returns the cancelled invoices up for claims review.
func (s *Service) ListCancelled(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, ListFilter{Status: new(StatusCancelled)})
}

// AdvanceBalance returns the advance an EMR can still draw from, zero if none.
func (s *Service) AdvanceBalance(ctx context.Context, emrNumber string) (decimal.Decimal, error) {
	emr := strings.TrimSpace(emrNumber)
	if emr == "" {
		return decimal.Zero, ErrInvalidEMR
	}

	base, found, err := s.repo.LatestAdvance(ctx, emr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading stored advance: %w", err)
	}

	if !found {
		return decimal.Zero, nil
	}

	return base, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	if inv.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	return s.repo.CancelInvoice(ctx, id, strings.TrimSpace(reason))
}

// form rebuilds the form an invoice was derived from.
func (inv *Invoice) form() Form {
	f := Form{
		Amount:             money.FieldOf(inv.Amount),
		Paid:               money.FieldOf(inv.Paid),
		Advance:            money.FieldOf(inv.Advance),
		ManualAdvance:      inv.ManualAdvance,
		AdvanceBase:        inv.AdvanceBase,
		Insurance:          inv.Insurance,
		InsuranceType:      inv.InsuranceType,
		AdvanceGivenAmount: money.FieldOf(inv.AdvanceGivenAmount),
	}

	if inv.CoPayPercent != nil {
		f.CoPayPercent = money.FieldOf(*inv.CoPayPercent)
	}

	return f
}

// coPay returns the percentage to store, limited to [0, 100].
func coPay(f money.Field) *decimal.Decimal {
	if !f.Valid() {
		return nil
	}

	return new(money.Round(decimal.Min(f.Decimal(), decimal.NewFromInt(100))))
}
