package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cityview-school/admissions-payments/internal/domain"
)

const admissionColumns = `id, full_name, email, program, payment_status, amount,
	payment_reference, payment_provider, paid_at, created_at, updated_at`

// AdmissionRepository is the Postgres adapter behind the AdmissionStore
// contract. Admission records are created by the admissions workflow; this
// repository only reads them and merges payment fields.
type AdmissionRepository struct {
	db *sql.DB
}

func NewAdmissionRepository(db *sql.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

func (r *AdmissionRepository) Get(ctx context.Context, admissionID string) (*domain.AdmissionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+admissionColumns+` FROM admissions WHERE id = $1`,
		admissionID,
	)

	record, err := scanAdmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return record, nil
}

// MergePayment applies a partial payment update in a single atomic upsert.
// Only payment columns are written; applicant fields stay whatever the
// admissions workflow set them to. The WHERE clause skips updates that would
// revise a terminal status for the same reference, which is reported as
// applied=false. A row is created if the webhook outruns record creation,
// mirroring the document store's merge-on-absent behavior.
func (r *AdmissionRepository) MergePayment(ctx context.Context, admissionID string, update domain.PaymentUpdate) (bool, error) {
	amount := decimal.NullDecimal{}
	if update.Amount != nil {
		amount = decimal.NewNullDecimal(*update.Amount)
	}

	provider := sql.NullString{String: update.Provider, Valid: update.Provider != ""}
	paidAt := sql.NullTime{}
	if update.PaidAt != nil {
		paidAt = sql.NullTime{Time: *update.PaidAt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admissions (id, payment_status, amount, payment_reference, payment_provider, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			payment_status = EXCLUDED.payment_status,
			amount = COALESCE(EXCLUDED.amount, admissions.amount),
			payment_reference = EXCLUDED.payment_reference,
			payment_provider = COALESCE(EXCLUDED.payment_provider, admissions.payment_provider),
			paid_at = COALESCE(EXCLUDED.paid_at, admissions.paid_at),
			updated_at = now()
		WHERE NOT (admissions.payment_status IN ('paid', 'failed')
			AND admissions.payment_reference = EXCLUDED.payment_reference)`,
		admissionID, update.Status, amount, update.Reference, provider, paidAt,
	)
	if err != nil {
		return false, fmt.Errorf("MergePayment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("MergePayment: rows affected: %w", err)
	}
	return rows > 0, nil
}

func scanAdmission(s scanner) (*domain.AdmissionRecord, error) {
	var (
		rec       domain.AdmissionRecord
		fullName  sql.NullString
		email     sql.NullString
		program   sql.NullString
		amount    decimal.NullDecimal
		reference sql.NullString
		provider  sql.NullString
		paidAt    sql.NullTime
	)
	err := s.Scan(
		&rec.ID, &fullName, &email, &program, &rec.PaymentStatus, &amount,
		&reference, &provider, &paidAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.FullName = fullName.String
	rec.Email = email.String
	rec.Program = program.String
	if amount.Valid {
		rec.Amount = amount.Decimal
	}
	rec.PaymentReference = reference.String
	rec.PaymentProvider = provider.String
	if paidAt.Valid {
		t := paidAt.Time
		rec.PaidAt = &t
	}
	return &rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}
