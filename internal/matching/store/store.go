package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch prefers the longest pattern contained in rawName, then the newest.
func (s *Store) FindMatch(ctx context.Context, rawName string) (string, error) {
	query := `
		SELECT item_name
		FROM item_name_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var name string

	err := s.db.QueryRowContext(ctx, query, rawName).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding item name mapping: %w", err)
	}

	return name, nil
}

// CreateMapping stores a mapping. Learning the same pattern again
// repoints it at the new item name.
func (s *Store) CreateMapping(ctx context.Context, mapping *matching.Mapping) error {
	query := `
		INSERT INTO item_name_mappings (raw_pattern, item_name)
		VALUES ($1, $2)
		ON CONFLICT (LOWER(raw_pattern)) DO UPDATE
		SET item_name = EXCLUDED.item_name, created_at = NOW()
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, mapping.RawPattern, mapping.ItemName).
		Scan(&mapping.ID, &mapping.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item name mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context) ([]*matching.Mapping, error) {
	query := `
		SELECT id, raw_pattern, item_name, created_at
		FROM item_name_mappings
		ORDER BY item_name, raw_pattern
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing item name mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.ID, &m.RawPattern, &m.ItemName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item name mapping: %w", err)
		}

		mappings = append(mappings, &m)
	}

	return mappings, rows.Err()
}

func (s *Store) DeleteMapping(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM item_name_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item name mapping: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item name mapping: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
