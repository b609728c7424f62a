package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectItemColumns = `id, name, kind, unit_price, active, created_at, updated_at`

func scanItem(s scanner) (*catalog.Item, error) {
	var item catalog.Item

	var kind string

	if err := s.Scan(&item.ID, &item.Name, &kind, &item.UnitPrice, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	item.Kind = catalog.Kind(kind)

	return &item, nil
}

func mapWriteErr(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return catalog.ErrAlreadyExists
	}

	return fmt.Errorf("%s catalog item: %w", action, err)
}

const insertItemQuery = `
	INSERT INTO catalog_items (name, kind, unit_price, active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func (s *Store) CreateItem(ctx context.Context, item *catalog.Item) error {
	err := s.db.QueryRowContext(ctx, insertItemQuery, item.Name, item.Kind, item.UnitPrice, item.Active).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "creating")
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM catalog_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting catalog item: %w", err)
	}

	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *catalog.Item) error {
	query := `
		UPDATE catalog_items
		SET name = $1, kind = $2, unit_price = $3, active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, item.Name, item.Kind, item.UnitPrice, item.Active, item.ID).
		Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.ErrNotFound
		}

		return mapWriteErr(err, "updating")
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting catalog item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM catalog_items WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)

		args = append(args, "%"+q+"%")
	}

	query += " ORDER BY kind ASC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing catalog items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalog item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog items: %w", err)
	}

	return items, nil
}

// importLockKey serialises concurrent catalog imports.
func importLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("catalog_items:import"))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (catalog.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindByNames(ctx context.Context, names []string) ([]*catalog.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = strings.ToLower(strings.Join(strings.Fields(n), " "))
	}

	query := `SELECT ` + selectItemColumns + ` FROM catalog_items WHERE LOWER(name) = ANY($1)`

	rows, err := itx.tx.QueryContext(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("finding catalog items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalog item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog items: %w", err)
	}

	return items, nil
}

func (itx *importTx) CreateItems(ctx context.Context, items []*catalog.Item) error {
	for _, item := range items {
		err := itx.tx.QueryRowContext(ctx, insertItemQuery, item.Name, item.Kind, item.UnitPrice, item.Active).
			Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return mapWriteErr(err, "importing")
		}
	}

	return nil
}
