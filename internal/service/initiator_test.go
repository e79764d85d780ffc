package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/gateway"
	"github.com/cityview-school/admissions-payments/internal/testutil"
)

type fakeGateway struct {
	req   *gateway.InitializeRequest
	calls int
	auth  *gateway.Authorization
	err   error
}

func (f *fakeGateway) InitializeTransaction(_ context.Context, req gateway.InitializeRequest) (*gateway.Authorization, error) {
	f.calls++
	f.req = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.auth, nil
}

func newTestInitiator(gw *fakeGateway, store *testutil.MemAdmissionStore) *PaymentInitiator {
	s := NewPaymentInitiator(gw, store, "sk_test_abc")
	s.now = func() time.Time { return time.UnixMilli(1699000000000) }
	return s
}

func TestInitiate(t *testing.T) {
	gw := &fakeGateway{auth: &gateway.Authorization{URL: "https://pay/x", AccessCode: "AC1"}}
	store := testutil.NewMemAdmissionStore()
	s := newTestInitiator(gw, store)

	result, err := s.Initiate(context.Background(), InitiateRequest{
		AdmissionID: "A1",
		Email:       "a@b.com",
		Amount:      decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pay/x", result.AuthorizationURL)
	assert.Equal(t, "AC1", result.AccessCode)
	assert.Equal(t, "admissions_A1_1699000000000", result.Reference)

	require.NotNil(t, gw.req)
	assert.Equal(t, "a@b.com", gw.req.Email)
	assert.Equal(t, int64(500000), gw.req.AmountMinor)
	assert.Equal(t, "A1", gw.req.AdmissionID)
	assert.Equal(t, result.Reference, gw.req.Reference)

	record := store.Records["A1"]
	require.NotNil(t, record)
	assert.Equal(t, domain.PaymentStatusPending, record.PaymentStatus)
	assert.True(t, record.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, result.Reference, record.PaymentReference)
	assert.Equal(t, domain.ProviderPaystack, record.PaymentProvider)
	assert.Nil(t, record.PaidAt)
}

func TestInitiateMinorUnitRounding(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"5000", 500000},
		{"12.34", 1234},
		{"12.345", 1235},
		{"50.005", 5001},
		{"0.01", 1},
	}

	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			gw := &fakeGateway{auth: &gateway.Authorization{URL: "https://pay/x", AccessCode: "AC1"}}
			s := newTestInitiator(gw, testutil.NewMemAdmissionStore())

			_, err := s.Initiate(context.Background(), InitiateRequest{
				AdmissionID: "A1",
				Email:       "a@b.com",
				Amount:      decimal.RequireFromString(tc.amount),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, gw.req.AmountMinor)
		})
	}
}

func TestInitiateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  InitiateRequest
	}{
		{"missing admission id", InitiateRequest{Email: "a@b.com", Amount: decimal.NewFromInt(10)}},
		{"admission id with separator", InitiateRequest{AdmissionID: "A_1", Email: "a@b.com", Amount: decimal.NewFromInt(10)}},
		{"missing email", InitiateRequest{AdmissionID: "A1", Amount: decimal.NewFromInt(10)}},
		{"zero amount", InitiateRequest{AdmissionID: "A1", Email: "a@b.com"}},
		{"negative amount", InitiateRequest{AdmissionID: "A1", Email: "a@b.com", Amount: decimal.NewFromInt(-5)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			store := testutil.NewMemAdmissionStore()
			s := newTestInitiator(gw, store)

			_, err := s.Initiate(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
			assert.Zero(t, gw.calls, "gateway must not be called")
			assert.Zero(t, store.MergeCalls, "store must not be written")
		})
	}
}

func TestInitiateSecretNotConfigured(t *testing.T) {
	gw := &fakeGateway{}
	store := testutil.NewMemAdmissionStore()
	s := NewPaymentInitiator(gw, store, "")

	_, err := s.Initiate(context.Background(), InitiateRequest{
		AdmissionID: "A1",
		Email:       "a@b.com",
		Amount:      decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSecretNotConfigured))
	assert.Zero(t, gw.calls)
	assert.Zero(t, store.MergeCalls)
}

func TestInitiateGatewayFailureWritesNoState(t *testing.T) {
	gw := &fakeGateway{err: domain.ErrGatewayFailure}
	store := testutil.NewMemAdmissionStore()
	s := newTestInitiator(gw, store)

	_, err := s.Initiate(context.Background(), InitiateRequest{
		AdmissionID: "A1",
		Email:       "a@b.com",
		Amount:      decimal.NewFromInt(5000),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGatewayFailure))
	assert.Zero(t, store.MergeCalls, "no pending record for a transaction the gateway never accepted")
}

func TestInitiateStoreFailure(t *testing.T) {
	gw := &fakeGateway{auth: &gateway.Authorization{URL: "https://pay/x", AccessCode: "AC1"}}
	store := testutil.NewMemAdmissionStore()
	store.MergeErr = errors.New("store unavailable")
	s := newTestInitiator(gw, store)

	_, err := s.Initiate(context.Background(), InitiateRequest{
		AdmissionID: "A1",
		Email:       "a@b.com",
		Amount:      decimal.NewFromInt(5000),
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidArgument))
}
