package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectMembershipColumns = `id, emr_number, patient_name, package_name, package_amount, created_at, updated_at`

func (s *Store) CreateMembership(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO memberships (emr_number, patient_name, package_name, package_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.EMRNumber,
		m.PatientName,
		m.PackageName,
		m.PackageAmount,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return membership.ErrAlreadyExists
		}

		return fmt.Errorf("creating membership: %w", err)
	}

	return nil
}

func (s *Store) GetMembership(ctx context.Context, emrNumber string) (*membership.Membership, error) {
	return getMembership(ctx, s.db, emrNumber, "")
}

func getMembership(ctx context.Context, q querier, emrNumber, suffix string) (*membership.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE emr_number = $1` + suffix

	var m membership.Membership

	err := q.QueryRowContext(ctx, query, emrNumber).Scan(
		&m.ID, &m.EMRNumber, &m.PatientName, &m.PackageName, &m.PackageAmount, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, membership.ErrNotFound
		}

		return nil, fmt.Errorf("getting membership: %w", err)
	}

	if err := loadChildren(ctx, q, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Store) ListMemberships(ctx context.Context) ([]*membership.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*membership.Membership

	for rows.Next() {
		var m membership.Membership
		if err := rows.Scan(
			&m.ID, &m.EMRNumber, &m.PatientName, &m.PackageName, &m.PackageAmount, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}

		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating membership rows: %w", err)
	}

	for _, m := range memberships {
		if err := loadChildren(ctx, s.db, m); err != nil {
			return nil, err
		}
	}

	return memberships, nil
}

func (s *Store) AddTreatment(ctx context.Context, t *membership.Treatment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO membership_treatments (membership_id, treatment_name, unit_count, unit_price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query, t.MembershipID, t.TreatmentName, t.UnitCount, t.UnitPrice).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("adding treatment: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE memberships SET updated_at = NOW() WHERE id = $1`, t.MembershipID); err != nil {
		return fmt.Errorf("touching membership: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func loadChildren(ctx context.Context, q querier, m *membership.Membership) error {
	treatments, err := q.QueryContext(ctx, `
		SELECT id, membership_id, treatment_name, unit_count, unit_price, created_at
		FROM membership_treatments
		WHERE membership_id = $1
		ORDER BY created_at ASC`, m.ID)
	if err != nil {
		return fmt.Errorf("listing treatments: %w", err)
	}
	defer treatments.Close()

	for treatments.Next() {
		var t membership.Treatment
		if err := treatments.Scan(&t.ID, &t.MembershipID, &t.TreatmentName, &t.UnitCount, &t.UnitPrice, &t.CreatedAt); err != nil {
			return fmt.Errorf("scanning treatment: %w", err)
		}

		m.Treatments = append(m.Treatments, t)
	}

	if err := treatments.Err(); err != nil {
		return fmt.Errorf("iterating treatment rows: %w", err)
	}

	transfers, err := q.QueryContext(ctx, `
		SELECT id, from_emr, to_emr, to_name, transferred_amount, note, transferred_at
		FROM membership_transfers
		WHERE from_emr = $1 OR to_emr = $1
		ORDER BY transferred_at ASC`, m.EMRNumber)
	if err != nil {
		return fmt.Errorf("listing transfers: %w", err)
	}
	defer transfers.Close()

	for transfers.Next() {
		var t membership.Transfer
		if err := transfers.Scan(&t.ID, &t.FromEMR, &t.ToEMR, &t.ToName, &t.TransferredAmount, &t.Note, &t.TransferredAt); err != nil {
			return fmt.Errorf("scanning transfer: %w", err)
		}

		m.Transfers = append(m.Transfers, t)
	}

	if err := transfers.Err(); err != nil {
		return fmt.Errorf("iterating transfer rows: %w", err)
	}

	return nil
}

type transferTx struct {
	tx *sql.Tx
}

func (s *Store) BeginTransfer(ctx context.Context) (membership.TransferTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transfer tx: %w", err)
	}

	return &transferTx{tx: dbTx}, nil
}

func (ttx *transferTx) Commit() error   { return ttx.tx.Commit() }
func (ttx *transferTx) Rollback() error { return ttx.tx.Rollback() }

func (ttx *transferTx) LockMembership(ctx context.Context, emrNumber string) (*membership.Membership, error) {
	return getMembership(ctx, ttx.tx, emrNumber, " FOR UPDATE")
}

func (ttx *transferTx) AppendTransfer(ctx context.Context, t *membership.Transfer) error {
	query := `
		INSERT INTO membership_transfers (from_emr, to_emr, to_name, transferred_amount, note, transferred_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, transferred_at
	`

	err := ttx.tx.QueryRowContext(ctx, query, t.FromEMR, t.ToEMR, t.ToName, t.TransferredAmount, t.Note).
		Scan(&t.ID, &t.TransferredAt)
	if err != nil {
		return fmt.Errorf("appending transfer: %w", err)
	}

	return nil
}
