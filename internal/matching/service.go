package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, rawName string) (string, error)
	CreateMapping(ctx context.Context, mapping *Mapping) error
	ListMappings(ctx context.Context) ([]*Mapping, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the catalog item name learned for a spreadsheet label, or
// an empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, rawName string) (string, error) {
	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, rawName)
}

// Learn remembers that labels containing rawPattern name itemName.
func (s *Service) Learn(ctx context.Context, rawPattern, itemName string) (*Mapping, error) {
	m := &Mapping{
		RawPattern: strings.TrimSpace(rawPattern),
		ItemName:   strings.TrimSpace(itemName),
	}

	if m.RawPattern == "" || m.ItemName == "" {
		return nil, ErrEmptyMapping
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) List(ctx context.Context) ([]*Mapping, error) {
	return s.repo.ListMappings(ctx)
}

func (s *Service) Forget(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMapping(ctx, id)
}
