package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks the payment lifecycle of an admission record.
// Transitions only ever advance: none -> pending -> {paid, failed}.
type PaymentStatus string

const (
	PaymentStatusNone    PaymentStatus = "none"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

const ProviderPaystack = "paystack"

// AdmissionRecord is one applicant's admission and payment state. Records are
// created by the admissions workflow before any payment is attempted; this
// subsystem only ever touches the payment fields.
type AdmissionRecord struct {
	ID               string
	FullName         string
	Email            string
	Program          string
	PaymentStatus    PaymentStatus
	Amount           decimal.Decimal
	PaymentReference string
	PaymentProvider  string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PaymentUpdate is a partial update of an admission record's payment fields.
// Nil/empty members are left untouched by the store; everything outside this
// set is never written by this subsystem.
type PaymentUpdate struct {
	Status    PaymentStatus
	Amount    *decimal.Decimal
	Reference string
	Provider  string
	PaidAt    *time.Time
}

// StaleFor reports whether applying this update to the current record would
// revise a terminal outcome for the same reference. A terminal status with a
// different reference is a new payment attempt and may proceed.
func (u PaymentUpdate) StaleFor(current *AdmissionRecord) bool {
	if current == nil {
		return false
	}
	return current.PaymentStatus.IsTerminal() && current.PaymentReference == u.Reference
}
