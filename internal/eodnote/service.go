package eodnote

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=eodnote
type Repository interface {
	CreateNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, id uuid.UUID) (*Note, error)
	UpdateNote(ctx context.Context, n *Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
	ListNotes(ctx context.Context, filter ListFilter) ([]*Note, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Author    *string
	TasksDone *bool
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateParams struct {
	Author    string
	Date      time.Time
	Body      string
	TasksDone bool
}

type UpdateParams struct {
	Body      *string
	Date      *time.Time
	TasksDone *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Note, error) {
	author := strings.TrimSpace(params.Author)
	if author == "" {
		return nil, ErrEmptyAuthor
	}

	body := strings.TrimSpace(params.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	n := &Note{
		Author:    author,
		Date:      truncateDay(date),
		Body:      body,
		TasksDone: params.TasksDone,
	}

	if err := s.repo.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.GetNote(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Note, error) {
	return s.repo.ListNotes(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Note, error) {
	n, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Body != nil {
		body := strings.TrimSpace(*params.Body)
		if body == "" {
			return nil, ErrEmptyBody
		}

		n.Body = body
	}

	if params.Date != nil {
		n.Date = truncateDay(*params.Date)
	}

	if params.TasksDone != nil {
		n.TasksDone = *params.TasksDone
	}

	if err := s.repo.UpdateNote(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteNote(ctx, id)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
