package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
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

const selectEntryColumns = `id, kind, amount, category, description, receipt_url, date, created_at, updated_at`

func scanEntry(s scanner) (*pettycash.Entry, error) {
	var e pettycash.Entry

	var kind string

	var receiptURL sql.NullString

	if err := s.Scan(
		&e.ID, &kind, &e.Amount, &e.Category, &e.Description, &receiptURL, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = pettycash.Kind(kind)
	e.ReceiptURL = receiptURL.String

	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateEntry(ctx context.Context, e *pettycash.Entry) error {
	query := `
		INSERT INTO petty_cash_entries (kind, amount, category, description, receipt_url, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Kind, e.Amount, e.Category, e.Description, nullString(e.ReceiptURL), e.Date,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating petty cash entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*pettycash.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM petty_cash_entries WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pettycash.ErrNotFound
		}

		return nil, fmt.Errorf("getting petty cash entry: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *pettycash.Entry) error {
	query := `
		UPDATE petty_cash_entries
		SET amount = $1, category = $2, description = $3, receipt_url = $4, date = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Amount, e.Category, e.Description, nullString(e.ReceiptURL), e.Date, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pettycash.ErrNotFound
		}

		return fmt.Errorf("updating petty cash entry: %w", err)
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE petty_cash_entries SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting petty cash entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return pettycash.ErrNotFound
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter pettycash.ListFilter) ([]*pettycash.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM petty_cash_entries WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argIdx)

		args = append(args, *filter.Category)
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

	query += " ORDER BY date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing petty cash entries: %w", err)
	}
	defer rows.Close()

	var entries []*pettycash.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning petty cash entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating petty cash entries: %w", err)
	}

	return entries, nil
}
