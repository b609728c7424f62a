package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, filter ListFilter) ([]*Item, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindByNames(ctx context.Context, names []string) ([]*Item, error)
	CreateItems(ctx context.Context, items []*Item) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Kind   *Kind
	Active *bool
	Query  string
}

type CreateParams struct {
	Name      string
	Kind      Kind
	UnitPrice decimal.Decimal
	Active    bool
}

type UpdateParams struct {
	Name      *string
	Kind      *Kind
	UnitPrice *decimal.Decimal
	Active    *bool
}

func (p CreateParams) item() (*Item, error) {
	name := strings.Join(strings.Fields(p.Name), " ")
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}

	kind, ok := ParseKind(string(p.Kind))
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, p.Kind)
	}

	if p.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidItem)
	}

	return &Item{
		Name:      name,
		Kind:      kind,
		UnitPrice: money.Round(p.UnitPrice),
		Active:    p.Active,
	}, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Item, error) {
	item, err := params.item()
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	next := CreateParams{Name: item.Name, Kind: item.Kind, UnitPrice: item.UnitPrice, Active: item.Active}

	if params.Name != nil {
		next.Name = *params.Name
	}

	if params.Kind != nil {
		next.Kind = *params.Kind
	}

	if params.UnitPrice != nil {
		next.UnitPrice = *params.UnitPrice
	}

	if params.Active != nil {
		next.Active = *params.Active
	}

	updated, err := next.item()
	if err != nil {
		return nil, err
	}

	updated.ID = item.ID
	updated.CreatedAt = item.CreatedAt

	if err := s.repo.UpdateItem(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

// ImportResult holds either the committed items or, when any incoming row
// collides with an existing item, the split between new and conflicting rows.
// Nothing is written in the second case.
type ImportResult struct {
	Imported  []*Item
	New       []CreateParams
	Conflicts []Conflict
	// Repeated rows of the same batch, dropped in favour of the first.
	Repeated []CreateParams
}

type Conflict struct {
	Incoming CreateParams
	Existing *Item
}

// ImportBatch stores parsed catalog rows unless some of them already exist,
// in which case the caller reviews the conflicts and confirms with CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	unique, repeated := dedupe(params)
	if len(unique) == 0 {
		return &ImportResult{Repeated: repeated}, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	names := make([]string, 0, len(unique))
	for _, p := range unique {
		names = append(names, p.Name)
	}

	existing, err := itx.FindByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	lookup := make(map[string]*Item, len(existing))
	for _, item := range existing {
		lookup[nameKey(item.Name)] = item
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range unique {
		if item, found := lookup[nameKey(p.Name)]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: item})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts, Repeated: repeated}, nil
	}

	items, err := toItems(newParams)
	if err != nil {
		return nil, err
	}

	if err := itx.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create items: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: items, Repeated: repeated}, nil
}

// CreateBatch stores reviewed rows without conflict detection.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Item, error) {
	if len(params) == 0 {
		return nil, nil
	}

	items, err := toItems(params)
	if err != nil {
		return nil, err
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create items: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return items, nil
}

func dedupe(params []CreateParams) (unique, repeated []CreateParams) {
	seen := make(map[string]struct{}, len(params))

	for _, p := range params {
		k := nameKey(p.Name)
		if _, ok := seen[k]; ok {
			repeated = append(repeated, p)
			continue
		}

		seen[k] = struct{}{}
		unique = append(unique, p)
	}

	return unique, repeated
}

func toItems(params []CreateParams) ([]*Item, error) {
	items := make([]*Item, len(params))

	for i, p := range params {
		item, err := p.item()
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", p.Name, err)
		}

		items[i] = item
	}

	return items, nil
}

// Overwrite replaces each conflicting item with its incoming row. The stored
// ID and creation time are kept.
func (s *Service) Overwrite(ctx context.Context, conflicts []Conflict) ([]*Item, error) {
	items := make([]*Item, 0, len(conflicts))

	for _, c := range conflicts {
		in := c.Incoming

		item, err := s.Update(ctx, c.Existing.ID, UpdateParams{
			Name:      &in.Name,
			Kind:      &in.Kind,
			UnitPrice: &in.UnitPrice,
			Active:    &in.Active,
		})
		if err != nil {
			return nil, fmt.Errorf("overwrite %q: %w", in.Name, err)
		}

		items = append(items, item)
	}

	return items, nil
}
