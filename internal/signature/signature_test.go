package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "sk_test_secret"

func TestVerify(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"admissions_A1_1700000000000"}}`)
	valid := Sign(testSecret, body)

	tests := []struct {
		name     string
		secret   string
		body     []byte
		provided string
		want     bool
	}{
		{"valid signature", testSecret, body, valid, true},
		{"mutated body", testSecret, []byte(`{"event":"charge.success","data":{"reference":"admissions_A2_1700000000000"}}`), valid, false},
		{"mutated signature", testSecret, body, flipLastHexDigit(valid), false},
		{"truncated signature", testSecret, body, valid[:len(valid)-2], false},
		{"empty signature", testSecret, body, "", false},
		{"missing secret", "", body, valid, false},
		{"wrong secret", "sk_other_secret", body, valid, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Verify(tc.secret, tc.body, tc.provided))
		})
	}
}

func TestSignMatchesReferenceHMAC(t *testing.T) {
	body := []byte("payload bytes")

	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	got := Sign(testSecret, body)
	require.Equal(t, expected, got)
	require.Len(t, got, 128)
}

func flipLastHexDigit(s string) string {
	b := []byte(s)
	if b[len(b)-1] == '0' {
		b[len(b)-1] = '1'
	} else {
		b[len(b)-1] = '0'
	}
	return string(b)
}
