package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cityview-school/admissions-payments/internal/domain"
)

// WebhookDeliveryRepository appends the audit trail of authenticated gateway
// deliveries. Rows are never updated or deleted by the service.
type WebhookDeliveryRepository struct {
	db *sql.DB
}

func NewWebhookDeliveryRepository(db *sql.DB) *WebhookDeliveryRepository {
	return &WebhookDeliveryRepository{db: db}
}

func (r *WebhookDeliveryRepository) Create(ctx context.Context, delivery *domain.WebhookDelivery) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webhook_deliveries (id, reference, status, payload, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		delivery.ID, delivery.Reference, delivery.Status, []byte(delivery.Payload),
		delivery.Outcome, delivery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *WebhookDeliveryRepository) GetByReference(ctx context.Context, ref string) ([]domain.WebhookDelivery, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reference, status, payload, outcome, created_at
		FROM webhook_deliveries WHERE reference = $1 ORDER BY created_at`,
		ref,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByReference: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.WebhookDelivery
	for rows.Next() {
		var d domain.WebhookDelivery
		var payload []byte
		if err := rows.Scan(&d.ID, &d.Reference, &d.Status, &payload, &d.Outcome, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("GetByReference: scan: %w", err)
		}
		d.Payload = payload
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByReference: rows: %w", err)
	}
	return deliveries, nil
}
