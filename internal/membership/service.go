package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=membership
type Repository interface {
	CreateMembership(ctx context.Context, m *Membership) error
	GetMembership(ctx context.Context, emrNumber string) (*Membership, error)
	ListMemberships(ctx context.Context) ([]*Membership, error)
	AddTreatment(ctx context.Context, t *Treatment) error

	BeginTransfer(ctx context.Context) (TransferTx, error)
}

// TransferTx moves credit between two memberships atomically.
type TransferTx interface {
	// LockMembership loads a membership and holds it until Commit or Rollback.
	LockMembership(ctx context.Context, emrNumber string) (*Membership, error)
	AppendTransfer(ctx context.Context, t *Transfer) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	EMRNumber     string
	PatientName   string
	PackageName   string
	PackageAmount money.Field
}

// Create assigns a package to an EMR for the first time.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Membership, error) {
	emr := strings.TrimSpace(params.EMRNumber)
	if emr == "" {
		return nil, ErrInvalidEMR
	}

	m := &Membership{
		EMRNumber:     emr,
		PatientName:   strings.TrimSpace(params.PatientName),
		PackageName:   strings.TrimSpace(params.PackageName),
		PackageAmount: money.Round(params.PackageAmount.Decimal()),
	}
	if err := s.repo.CreateMembership(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, emrNumber string) (*Membership, error) {
	return s.repo.GetMembership(ctx, strings.TrimSpace(emrNumber))
}

func (s *Service) List(ctx context.Context) ([]*Membership, error) {
	return s.repo.ListMemberships(ctx)
}

type TreatmentParams struct {
	TreatmentName string
	UnitCount     int
	UnitPrice     decimal.Decimal
}

// AddTreatment records a consumed treatment line and returns the updated membership.
func (s *Service) AddTreatment(ctx context.Context, emrNumber string, params TreatmentParams) (*Membership, error) {
	name := strings.TrimSpace(params.TreatmentName)
	price := money.Round(params.UnitPrice)

	if name == "" || params.UnitCount < 1 || price.IsNegative() {
		return nil, ErrInvalidTreatment
	}

	m, err := s.repo.GetMembership(ctx, strings.TrimSpace(emrNumber))
	if err != nil {
		return nil, err
	}

	t := Treatment{
		MembershipID:  m.ID,
		TreatmentName: name,
		UnitCount:     params.UnitCount,
		UnitPrice:     price,
	}
	if err := s.repo.AddTreatment(ctx, &t); err != nil {
		return nil, err
	}

	m.Treatments = append(m.Treatments, t)

	return m, nil
}

type TransferParams struct {
	FromEMR string
	ToEMR   string
	ToName  string
	Amount  decimal.Decimal
	Note    string
}

// Transfer moves part of the remaining balance of one membership to another.
func (s *Service) Transfer(ctx context.Context, params TransferParams) (*Transfer, error) {
	from := strings.TrimSpace(params.FromEMR)
	to := strings.TrimSpace(params.ToEMR)

	if from == "" || to == "" {
		return nil, ErrInvalidEMR
	}

	if from == to {
		return nil, ErrSelfTransfer
	}

	// Amounts are stored to the cent, so a sub-cent transfer moves nothing.
	amount := money.Round(params.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidTransfer
	}

	ttx, err := s.repo.BeginTransfer(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer ttx.Rollback()

	// Lock in a stable order so two opposite transfers cannot deadlock.
	first, second := from, to
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]*Membership, 2)

	for _, emr := range []string{first, second} {
		m, err := ttx.LockMembership(ctx, emr)
		if err != nil {
			return nil, fmt.Errorf("lock membership %s: %w", emr, err)
		}

		locked[emr] = m
	}

	src, dst := locked[from], locked[to]

	if amount.GreaterThan(src.Balance().Remaining) {
		return nil, ErrInsufficientBalance
	}

	toName := strings.TrimSpace(params.ToName)
	if toName == "" {
		toName = dst.PatientName
	}

	t := &Transfer{
		FromEMR:           from,
		ToEMR:             to,
		ToName:            toName,
		TransferredAmount: amount,
		Note:              strings.TrimSpace(params.Note),
	}
	if err := ttx.AppendTransfer(ctx, t); err != nil {
		return nil, fmt.Errorf("append transfer: %w", err)
	}

	if err := ttx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	return t, nil
}
