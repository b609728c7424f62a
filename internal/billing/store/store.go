package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, emr_number, patient_name, kind, item_name,
	amount, paid, advance, pending, need_to_pay, used_from_advance,
	insurance, insurance_type, advance_given_amount, co_pay_percent, advance_base, manual_advance, mode,
	status, cancel_reason, cancelled_at, created_at, updated_at
`

// scanInvoice reads a row in selectInvoiceColumns order.
func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	var kind, insurance, insuranceType, mode, status string

	var coPay, base decimal.NullDecimal

	var cancelReason sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.EMRNumber, &inv.PatientName, &kind, &inv.ItemName,
		&inv.Amount, &inv.Paid, &inv.Advance, &inv.Pending, &inv.NeedToPay, &inv.UsedFromAdvance,
		&insurance, &insuranceType, &inv.AdvanceGivenAmount, &coPay, &base, &inv.ManualAdvance, &mode,
		&status, &cancelReason, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Kind = billing.Kind(kind)
	inv.Insurance = billing.Insurance(insurance)
	inv.InsuranceType = billing.InsuranceType(insuranceType)
	inv.Mode = billing.Mode(mode)
	inv.Status = billing.Status(status)
	inv.CancelReason = cancelReason.String

	if coPay.Valid {
		inv.CoPayPercent = &coPay.Decimal
	}

	if base.Valid {
		inv.AdvanceBase = &base.Decimal
	}

	return &inv, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	query := `
		INSERT INTO invoices (
			emr_number, patient_name, kind, item_name,
			amount, paid, advance, pending, need_to_pay, used_from_advance,
			insurance, insurance_type, advance_given_amount, co_pay_percent, advance_base, manual_advance, mode,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.EMRNumber, inv.PatientName, inv.Kind, inv.ItemName,
		inv.Amount, inv.Paid, inv.Advance, inv.Pending, inv.NeedToPay, inv.UsedFromAdvance,
		inv.Insurance, inv.InsuranceType, inv.AdvanceGivenAmount,
		nullDecimal(inv.CoPayPercent), nullDecimal(inv.AdvanceBase), inv.ManualAdvance, inv.Mode,
		inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *billing.Invoice) error {
	query := `
		UPDATE invoices
		SET patient_name = $1, item_name = $2,
			amount = $3, paid = $4, advance = $5, pending = $6, need_to_pay = $7, used_from_advance = $8,
			insurance = $9, insurance_type = $10, advance_given_amount = $11, co_pay_percent = $12,
			manual_advance = $13, mode = $14, updated_at = NOW()
		WHERE id = $15 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		inv.PatientName, inv.ItemName,
		inv.Amount, inv.Paid, inv.Advance, inv.Pending, inv.NeedToPay, inv.UsedFromAdvance,
		inv.Insurance, inv.InsuranceType, inv.AdvanceGivenAmount, nullDecimal(inv.CoPayPercent),
		inv.ManualAdvance, inv.Mode,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return expectOne(res)
}

func (s *Store) ListInvoices(ctx context.Context, filter billing.ListFilter) ([]*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.EMRNumber != nil {
		query += fmt.Sprintf(" AND emr_number = $%d", argIdx)

		args = append(args, *filter.EMRNumber)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*billing.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) CancelInvoice(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE invoices
		SET status = 'cancelled', cancel_reason = $1, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, reason, id)
	if err != nil {
		return fmt.Errorf("cancelling invoice: %w", err)
	}

	return expectOne(res)
}

func (s *Store) LatestAdvance(ctx context.Context, emrNumber string) (decimal.Decimal, bool, error) {
	query := `
		SELECT advance
		FROM invoices
		WHERE emr_number = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var advance decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, emrNumber).Scan(&advance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, fmt.Errorf("loading latest advance: %w", err)
	}

	return advance, true, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return billing.ErrNotFound
	}

	return nil
}
