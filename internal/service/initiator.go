package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/gateway"
	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/reference"
)

// PaymentInitiator starts a payment attempt: generate a reference, initialize
// the transaction with the gateway, then record the pending state. The gateway
// call comes first on purpose: a crash in between leaves no local state, and
// the webhook path is the source of truth for the final status anyway.
type PaymentInitiator struct {
	gateway   gatewayClient
	store     AdmissionStore
	secretKey string
	now       func() time.Time
}

func NewPaymentInitiator(gw gatewayClient, store AdmissionStore, secretKey string) *PaymentInitiator {
	return &PaymentInitiator{
		gateway:   gw,
		store:     store,
		secretKey: secretKey,
		now:       time.Now,
	}
}

type InitiateRequest struct {
	AdmissionID string
	Email       string
	Amount      decimal.Decimal
}

type InitiateResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

func (r InitiateRequest) validate() error {
	if r.AdmissionID == "" {
		return fmt.Errorf("admissionId required: %w", domain.ErrInvalidArgument)
	}
	if !reference.ValidID(r.AdmissionID) {
		return fmt.Errorf("admissionId must not contain %q: %w", "_", domain.ErrInvalidArgument)
	}
	if r.Email == "" {
		return fmt.Errorf("email required: %w", domain.ErrInvalidArgument)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", domain.ErrInvalidArgument)
	}
	return nil
}

func (s *PaymentInitiator) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	log := logging.FromContext(ctx)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("Initiate: %w", err)
	}
	if s.secretKey == "" {
		return nil, fmt.Errorf("Initiate: %w", domain.ErrSecretNotConfigured)
	}

	ref := reference.Generate(req.AdmissionID, s.now())

	auth, err := s.gateway.InitializeTransaction(ctx, gateway.InitializeRequest{
		Email:       req.Email,
		AmountMinor: minorUnits(req.Amount),
		Reference:   ref,
		AdmissionID: req.AdmissionID,
	})
	if err != nil {
		// No local state yet, so nothing to clean up.
		return nil, fmt.Errorf("Initiate: %w", err)
	}

	amount := req.Amount
	if _, err := s.store.MergePayment(ctx, req.AdmissionID, domain.PaymentUpdate{
		Status:    domain.PaymentStatusPending,
		Amount:    &amount,
		Reference: ref,
		Provider:  domain.ProviderPaystack,
	}); err != nil {
		return nil, fmt.Errorf("Initiate: record pending: %w", err)
	}

	log.Info("payment initiated",
		"admission_id", req.AdmissionID,
		"reference", ref,
		"amount", req.Amount.String(),
	)

	return &InitiateResult{
		AuthorizationURL: auth.URL,
		AccessCode:       auth.AccessCode,
		Reference:        ref,
	}, nil
}

// minorUnits converts a major-unit amount to the gateway's minor unit,
// rounding halves away from zero (12.345 -> 1235).
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
