package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/obs"
	"github.com/cityview-school/admissions-payments/internal/signature"
)

const signatureHeader = "X-Paystack-Signature"

type webhookReconciler interface {
	Reconcile(ctx context.Context, rawBody []byte) (domain.ReconcileOutcome, error)
}

// WebhookHandler is the trust boundary for inbound gateway callbacks. Before
// authentication it rejects loudly so the gateway's retry and alerting work;
// after authentication it always acknowledges, whatever reconciliation did,
// so an authentic but unprocessable event cannot cause a retry storm.
type WebhookHandler struct {
	reconciler webhookReconciler
	secretKey  string
	metrics    *obs.Metrics
}

func NewWebhookHandler(reconciler webhookReconciler, secretKey string, metrics *obs.Metrics) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler, secretKey: secretKey, metrics: metrics}
}

func (h *WebhookHandler) ReceiveGatewayWebhook(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	if r.Method != http.MethodPost {
		h.metrics.WebhooksTotal.WithLabelValues("method_not_allowed").Inc()
		RespondAppError(w, ErrMethodNotAllowed, nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.metrics.WebhooksTotal.WithLabelValues("unreadable").Inc()
		log.Error("failed to read webhook body", "error", err)
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	// The signature covers the exact bytes on the wire; body must not be
	// re-serialized before verification. Payload detail is deliberately kept
	// out of the rejection logs.
	sig := r.Header.Get(signatureHeader)
	if !signature.Verify(h.secretKey, body, sig) {
		h.metrics.WebhooksTotal.WithLabelValues("unauthorized").Inc()
		log.Warn("webhook signature verification failed")
		RespondAppError(w, ErrInvalidSignature, nil)
		return
	}

	h.metrics.WebhooksTotal.WithLabelValues("accepted").Inc()

	// Past the trust boundary: reconciliation failures are observed through
	// logs and metrics only, never through the response.
	if _, err := h.reconciler.Reconcile(r.Context(), body); err != nil {
		log.Error("webhook reconciliation failed", "error", err)
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
