// Package signature authenticates webhook bodies sent by the payment gateway.
// The gateway signs the exact bytes it puts on the wire, so callers must pass
// the raw request body, never a re-serialized copy.
package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Verify reports whether provided is the hex-encoded HMAC-SHA512 of body under
// secret. It returns false for a missing secret or signature and never reveals
// which part of the check failed. The comparison is constant-time.
func Verify(secret string, body []byte, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(provided))
}

// Sign computes the hex-encoded HMAC-SHA512 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
