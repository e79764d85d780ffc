package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/cityview-school/admissions-payments/internal/domain"
)

// MemAdmissionStore is an in-memory AdmissionStore for service and handler
// tests. It mirrors the Postgres adapter's merge semantics, including the
// terminal-state guard and create-on-absent behavior.
type MemAdmissionStore struct {
	mu      sync.Mutex
	Records map[string]*domain.AdmissionRecord

	GetErr     error
	MergeErr   error
	MergeCalls int
}

func NewMemAdmissionStore() *MemAdmissionStore {
	return &MemAdmissionStore{Records: make(map[string]*domain.AdmissionRecord)}
}

func (s *MemAdmissionStore) Get(_ context.Context, admissionID string) (*domain.AdmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	rec, ok := s.Records[admissionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *MemAdmissionStore) MergePayment(_ context.Context, admissionID string, update domain.PaymentUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MergeCalls++
	if s.MergeErr != nil {
		return false, s.MergeErr
	}

	rec, ok := s.Records[admissionID]
	if !ok {
		rec = &domain.AdmissionRecord{ID: admissionID, PaymentStatus: domain.PaymentStatusNone}
		s.Records[admissionID] = rec
	} else if update.StaleFor(rec) {
		return false, nil
	}

	rec.PaymentStatus = update.Status
	rec.PaymentReference = update.Reference
	if update.Amount != nil {
		rec.Amount = *update.Amount
	}
	if update.Provider != "" {
		rec.PaymentProvider = update.Provider
	}
	if update.PaidAt != nil {
		t := *update.PaidAt
		rec.PaidAt = &t
	}
	rec.UpdatedAt = time.Now().UTC()
	return true, nil
}

// MemDeliveryLog collects webhook delivery audit rows in memory.
type MemDeliveryLog struct {
	mu         sync.Mutex
	Deliveries []domain.WebhookDelivery

	Err error
}

func (l *MemDeliveryLog) Create(_ context.Context, delivery *domain.WebhookDelivery) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Err != nil {
		return l.Err
	}
	l.Deliveries = append(l.Deliveries, *delivery)
	return nil
}
