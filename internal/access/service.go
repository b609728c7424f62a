// Package access turns a user's upstream permission records into the
// decisions the API enforces: CRUD checks and the filtered sidebar.
package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=access

// Source provides the raw permission data for a token.
type Source interface {
	FetchPermissions(ctx context.Context, token string) ([]permission.Record, error)
	FetchNavigation(ctx context.Context, token string) ([]permission.NavItem, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Snapshot fetches the permissions for token. A failed fetch is logged and
// yields a loaded snapshot that denies everything.
func (s *Service) Snapshot(ctx context.Context, token string) permission.Snapshot {
	records, err := s.source.FetchPermissions(ctx, token)
	if err != nil {
		slog.Warn("permission fetch failed, denying all actions", "error", err)
		return permission.FailedSnapshot(err)
	}

	return permission.NewSnapshot(records)
}

// Sidebar resolves permissions first and only then fetches and filters the
// navigation tree. When permissions cannot be loaded nothing is shown and the
// navigation endpoint is not called.
func (s *Service) Sidebar(ctx context.Context, token string) ([]permission.NavItem, error) {
	snap := s.Snapshot(ctx, token)
	if snap.Err != nil {
		return []permission.NavItem{}, nil
	}

	items, err := s.source.FetchNavigation(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("loading sidebar: %w", err)
	}

	return snap.Filter(items), nil
}

// Check resolves the four CRUD actions of token's owner on a module.
func (s *Service) Check(ctx context.Context, token, moduleKey string, match permission.Matcher) permission.CRUD {
	return s.Snapshot(ctx, token).Check(moduleKey, match)
}
