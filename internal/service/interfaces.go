package service

import (
	"context"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/gateway"
)

// AdmissionStore is the contract over the document store holding admission
// records. MergePayment must be atomic per admission id: only the payment
// fields carried by the update are written, everything else on the record is
// preserved. It reports applied=false when the update would revise a terminal
// status for the same reference.
type AdmissionStore interface {
	Get(ctx context.Context, admissionID string) (*domain.AdmissionRecord, error)
	MergePayment(ctx context.Context, admissionID string, update domain.PaymentUpdate) (applied bool, err error)
}

type gatewayClient interface {
	InitializeTransaction(ctx context.Context, req gateway.InitializeRequest) (*gateway.Authorization, error)
}

type deliveryLog interface {
	Create(ctx context.Context, delivery *domain.WebhookDelivery) error
}
