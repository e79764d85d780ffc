package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("registrar-01", "registrar@cityview.edu", testJWTSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "registrar-01", claims.Subject)
	assert.Equal(t, "registrar@cityview.edu", claims.Email)
}

func TestValidateTokenFailures(t *testing.T) {
	valid, err := GenerateToken("registrar-01", "registrar@cityview.edu", testJWTSecret, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken("registrar-01", "registrar@cityview.edu", testJWTSecret, -time.Minute)
	require.NoError(t, err)

	noSubject, err := GenerateToken("", "registrar@cityview.edu", testJWTSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"garbage token", "not.a.valid.jwt", testJWTSecret},
		{"wrong secret", valid, "wrong-secret"},
		{"expired", expired, testJWTSecret},
		{"missing subject", noSubject, testJWTSecret},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, tc.secret)
			assert.Error(t, err)
		})
	}
}
