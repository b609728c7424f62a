package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/eodnote"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectNoteColumns = `id, author, date, body, tasks_done, created_at, updated_at`

func scanNote(s scanner) (*eodnote.Note, error) {
	var n eodnote.Note

	if err := s.Scan(&n.ID, &n.Author, &n.Date, &n.Body, &n.TasksDone, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	return &n, nil
}

func (s *Store) CreateNote(ctx context.Context, n *eodnote.Note) error {
	query := `
		INSERT INTO eod_notes (author, date, body, tasks_done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, n.Author, n.Date, n.Body, n.TasksDone).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return fmt.Errorf("creating eod note: %w", err)
	}

	return nil
}

func (s *Store) GetNote(ctx context.Context, id uuid.UUID) (*eodnote.Note, error) {
	query := `SELECT ` + selectNoteColumns + ` FROM eod_notes WHERE id = $1`

	n, err := scanNote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eodnote.ErrNotFound
		}

		return nil, fmt.Errorf("getting eod note: %w", err)
	}

	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, n *eodnote.Note) error {
	query := `
		UPDATE eod_notes SET date = $1, body = $2, tasks_done = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, n.Date, n.Body, n.TasksDone, n.ID).Scan(&n.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return eodnote.ErrNotFound
		}

		return fmt.Errorf("updating eod note: %w", err)
	}

	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM eod_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting eod note: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return eodnote.ErrNotFound
	}

	return nil
}

func (s *Store) ListNotes(ctx context.Context, filter eodnote.ListFilter) ([]*eodnote.Note, error) {
	query := `SELECT ` + selectNoteColumns + ` FROM eod_notes WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Author != nil {
		query += fmt.Sprintf(" AND LOWER(author) = LOWER($%d)", argIdx)

		args = append(args, *filter.Author)
		argIdx++
	}

	if filter.TasksDone != nil {
		query += fmt.Sprintf(" AND tasks_done = $%d", argIdx)

		args = append(args, *filter.TasksDone)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing eod notes: %w", err)
	}
	defer rows.Close()

	var notes []*eodnote.Note

	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning eod note: %w", err)
		}

		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating eod notes: %w", err)
	}

	return notes, nil
}
