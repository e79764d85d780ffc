package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityview-school/admissions-payments/internal/auth"
)

const testSecret = "test-jwt-secret"

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()

	var caller string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := auth.CallerFromContext(r.Context())
		caller = c
		w.WriteHeader(http.StatusOK)
	})
	return Auth(testSecret)(next), &caller
}

func TestAuthMiddleware(t *testing.T) {
	token, err := auth.GenerateToken("registrar-01", "registrar@cityview.edu", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.valid.jwt", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, caller := protected(t)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admissions/payments/initiate", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "registrar-01", *caller)
			}
		})
	}
}
