package pettycash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pettycash
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Kind      *Kind
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateParams struct {
	Kind        Kind
	Amount      money.Field
	Category    string
	Description string
	ReceiptURL  string
	Date        time.Time
}

type UpdateParams struct {
	Amount      *money.Field
	Category    *string
	Description *string
	ReceiptURL  *string
	Date        *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	amount := money.Round(params.Amount.Decimal())
	if !amount.IsPositive() {
		return nil, ErrInvalidEntry
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	e := &Entry{
		Kind:        params.Kind,
		Amount:      amount,
		Category:    strings.TrimSpace(params.Category),
		Description: strings.TrimSpace(params.Description),
		ReceiptURL:  strings.TrimSpace(params.ReceiptURL),
		Date:        date,
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Entry, error) {
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		amount := money.Round(params.Amount.Decimal())
		if !amount.IsPositive() {
			return nil, ErrInvalidEntry
		}

		e.Amount = amount
	}

	if params.Category != nil {
		e.Category = strings.TrimSpace(*params.Category)
	}

	if params.Description != nil {
		e.Description = strings.TrimSpace(*params.Description)
	}

	if params.ReceiptURL != nil {
		e.ReceiptURL = strings.TrimSpace(*params.ReceiptURL)
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}

// Summary totals funding and spending between from and to, both inclusive
// and both optional.
func (s *Service) Summary(ctx context.Context, from, to *time.Time) (*Summary, error) {
	entries, err := s.repo.ListEntries(ctx, ListFilter{StartDate: from, EndDate: to})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var funded, spent []decimal.Decimal

	for _, e := range entries {
		switch e.Kind {
		case KindFund:
			funded = append(funded, e.Amount)
		case KindExpense:
			spent = append(spent, e.Amount)
		}
	}

	sum := &Summary{
		Funded:  money.Sum(funded...),
		Spent:   money.Sum(spent...),
		Entries: len(entries),
	}
	sum.Balance = money.Round(sum.Funded.Sub(sum.Spent))

	return sum, nil
}
