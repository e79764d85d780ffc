package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/testutil"
)

func TestGetPayment(t *testing.T) {
	store := testutil.NewMemAdmissionStore()
	paidAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.Records["A1"] = &domain.AdmissionRecord{
		ID:               "A1",
		PaymentStatus:    domain.PaymentStatusPaid,
		Amount:           decimal.NewFromInt(5000),
		PaymentReference: "admissions_A1_1",
		PaymentProvider:  domain.ProviderPaystack,
		PaidAt:           &paidAt,
	}
	h := NewAdmissionHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/admissions/{id}/payment", h.GetPayment)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/A1/payment", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data admissionPaymentDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A1", resp.Data.AdmissionID)
	assert.Equal(t, "paid", resp.Data.PaymentStatus)
	assert.Equal(t, "admissions_A1_1", resp.Data.PaymentReference)
	require.NotNil(t, resp.Data.PaidAt)
	assert.True(t, resp.Data.PaidAt.Equal(paidAt))
}

func TestGetPaymentNotFound(t *testing.T) {
	h := NewAdmissionHandler(testutil.NewMemAdmissionStore())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/admissions/{id}/payment", h.GetPayment)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/missing/payment", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_NOT_FOUND")
}
