package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/obs"
	"github.com/cityview-school/admissions-payments/internal/reference"
)

// WebhookReconciler applies authenticated gateway events to admission records.
// It only ever runs after signature verification: everything in here trusts
// the payload but still treats it as possibly irrelevant, duplicated, or
// stale. Errors it returns are for observation only; the transport layer
// acknowledges the gateway regardless.
type WebhookReconciler struct {
	store      AdmissionStore
	deliveries deliveryLog
	metrics    *obs.Metrics
	now        func() time.Time
}

func NewWebhookReconciler(store AdmissionStore, deliveries deliveryLog, metrics *obs.Metrics) *WebhookReconciler {
	return &WebhookReconciler{
		store:      store,
		deliveries: deliveries,
		metrics:    metrics,
		now:        time.Now,
	}
}

const (
	gatewayStatusSuccess = "success"
	gatewayStatusFailed  = "failed"
)

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Metadata  struct {
			AdmissionID string `json:"admissionId"`
		} `json:"metadata"`
	} `json:"data"`
}

// Reconcile processes one verified delivery. The returned error accompanies
// ReconcileErrored and exists for logging and metrics; callers must not let it
// influence the response to the gateway.
func (r *WebhookReconciler) Reconcile(ctx context.Context, rawBody []byte) (domain.ReconcileOutcome, error) {
	log := logging.FromContext(ctx)

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		log.Warn("unparseable webhook payload", "error", err)
		r.finish(ctx, "", "", rawBody, domain.ReconcileUnresolved)
		return domain.ReconcileUnresolved, nil
	}

	ref := event.Data.Reference
	status := event.Data.Status

	admissionID, ok := resolveAdmissionID(event)
	if ref == "" || !ok {
		log.Info("webhook event not actionable", "reference", ref, "status", status)
		r.finish(ctx, ref, status, rawBody, domain.ReconcileUnresolved)
		return domain.ReconcileUnresolved, nil
	}

	outcome, err := r.apply(ctx, admissionID, ref, status)
	r.finish(ctx, ref, status, rawBody, outcome)
	if err != nil {
		return outcome, fmt.Errorf("Reconcile: %w", err)
	}

	log.Info("webhook reconciled",
		"admission_id", admissionID,
		"reference", ref,
		"status", status,
		"outcome", outcome,
	)
	return outcome, nil
}

func (r *WebhookReconciler) apply(ctx context.Context, admissionID, ref, status string) (domain.ReconcileOutcome, error) {
	update := domain.PaymentUpdate{Reference: ref, Provider: domain.ProviderPaystack}

	switch status {
	case gatewayStatusSuccess:
		now := r.now().UTC()
		update.Status = domain.PaymentStatusPaid
		update.PaidAt = &now
	case gatewayStatusFailed:
		update.Status = domain.PaymentStatusFailed
	default:
		return domain.ReconcileIgnored, nil
	}

	applied, err := r.store.MergePayment(ctx, admissionID, update)
	if err != nil {
		return domain.ReconcileErrored, err
	}
	if !applied {
		return domain.ReconcileStale, nil
	}
	return domain.ReconcileApplied, nil
}

// resolveAdmissionID prefers the structured metadata the initiator attached;
// parsing the reference is the fallback for events the gateway emits without
// metadata.
func resolveAdmissionID(event webhookEvent) (string, bool) {
	if id := event.Data.Metadata.AdmissionID; id != "" {
		return id, true
	}
	return reference.Parse(event.Data.Reference)
}

// finish records the delivery for audit and counts the outcome. Failures here
// are themselves suppressed: the audit trail must never cause a gateway retry.
func (r *WebhookReconciler) finish(ctx context.Context, ref, status string, rawBody []byte, outcome domain.ReconcileOutcome) {
	r.metrics.ReconcileTotal.WithLabelValues(string(outcome)).Inc()
	if outcome == domain.ReconcileErrored {
		r.metrics.SuppressedErrors.Inc()
	}

	err := r.deliveries.Create(ctx, &domain.WebhookDelivery{
		ID:        uuid.New(),
		Reference: ref,
		Status:    status,
		Payload:   json.RawMessage(rawBody),
		Outcome:   outcome,
		CreatedAt: r.now().UTC(),
	})
	if err != nil {
		r.metrics.SuppressedErrors.Inc()
		logging.FromContext(ctx).Error("failed to record webhook delivery", "reference", ref, "error", err)
	}
}
