package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/logging"
)

type admissionGetter interface {
	Get(ctx context.Context, admissionID string) (*domain.AdmissionRecord, error)
}

type AdmissionHandler struct {
	store admissionGetter
}

func NewAdmissionHandler(store admissionGetter) *AdmissionHandler {
	return &AdmissionHandler{store: store}
}

type admissionPaymentDTO struct {
	AdmissionID      string          `json:"admission_id"`
	PaymentStatus    string          `json:"payment_status"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PaymentProvider  string          `json:"payment_provider,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// GetPayment returns the payment view of one admission record for operators.
func (h *AdmissionHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("admission lookup failed", "admission_id", id, "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, admissionPaymentDTO{
		AdmissionID:      record.ID,
		PaymentStatus:    string(record.PaymentStatus),
		Amount:           record.Amount,
		PaymentReference: record.PaymentReference,
		PaymentProvider:  record.PaymentProvider,
		PaidAt:           record.PaidAt,
		UpdatedAt:        record.UpdatedAt,
	})
}
