package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReconcileOutcome classifies what a webhook delivery did to local state.
type ReconcileOutcome string

const (
	ReconcileApplied    ReconcileOutcome = "applied"
	ReconcileIgnored    ReconcileOutcome = "ignored"
	ReconcileUnresolved ReconcileOutcome = "unresolved"
	ReconcileStale      ReconcileOutcome = "stale"
	ReconcileErrored    ReconcileOutcome = "errored"
)

// WebhookDelivery is the audit trail of one authenticated gateway delivery.
// Stored after signature verification regardless of outcome, so suppressed
// post-authentication failures remain reconstructable.
type WebhookDelivery struct {
	ID        uuid.UUID
	Reference string
	Status    string
	Payload   json.RawMessage
	Outcome   ReconcileOutcome
	CreatedAt time.Time
}
