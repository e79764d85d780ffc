package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/obs"
	"github.com/cityview-school/admissions-payments/internal/service"
)

type paymentInitiator interface {
	Initiate(ctx context.Context, req service.InitiateRequest) (*service.InitiateResult, error)
}

type InitiateHandler struct {
	initiator paymentInitiator
	metrics   *obs.Metrics
}

func NewInitiateHandler(initiator paymentInitiator, metrics *obs.Metrics) *InitiateHandler {
	return &InitiateHandler{initiator: initiator, metrics: metrics}
}

type initiateRequest struct {
	AdmissionID string          `json:"admissionId"`
	Email       string          `json:"email"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r initiateRequest) validate() []FieldError {
	var errs []FieldError

	if r.AdmissionID == "" {
		errs = append(errs, FieldError{Field: "admissionId", Message: "required"})
	} else if strings.Contains(r.AdmissionID, "_") {
		errs = append(errs, FieldError{Field: "admissionId", Message: "must not contain underscores"})
	}

	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}

	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}

	return errs
}

type initiateResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

func (h *InitiateHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.InitiationsTotal.WithLabelValues("invalid_request").Inc()
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.validate(); len(fields) > 0 {
		h.metrics.InitiationsTotal.WithLabelValues("validation_failed").Inc()
		RespondValidationError(w, fields)
		return
	}

	result, err := h.initiator.Initiate(r.Context(), service.InitiateRequest{
		AdmissionID: req.AdmissionID,
		Email:       req.Email,
		Amount:      req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSecretNotConfigured):
			h.metrics.InitiationsTotal.WithLabelValues("unconfigured").Inc()
			log.Error("payment initiation rejected: gateway secret missing")
		case errors.Is(err, domain.ErrGatewayFailure):
			h.metrics.InitiationsTotal.WithLabelValues("gateway_error").Inc()
			log.Error("payment initiation failed at gateway", "admission_id", req.AdmissionID, "error", err)
		default:
			h.metrics.InitiationsTotal.WithLabelValues("internal_error").Inc()
			log.Error("payment initiation failed", "admission_id", req.AdmissionID, "error", err)
		}
		RespondDomainError(w, err)
		return
	}

	h.metrics.InitiationsTotal.WithLabelValues("success").Inc()
	RespondSuccess(w, http.StatusOK, initiateResponse{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        result.Reference,
	})
}
