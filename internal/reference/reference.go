// Package reference generates and parses payment references, the only
// correlation key between a payment initiation and its eventual webhook.
package reference

import (
	"fmt"
	"strings"
	"time"
)

const (
	namespace = "admissions"
	separator = "_"
)

// Generate builds a reference of the form admissions_{admissionID}_{unixMillis}.
// The timestamp component keeps concurrent attempts for the same admission
// distinct. Callers must reject admission ids containing the separator first
// (see ValidID); Parse would otherwise be ambiguous.
func Generate(admissionID string, now time.Time) string {
	return fmt.Sprintf("%s%s%s%s%d", namespace, separator, admissionID, separator, now.UnixMilli())
}

// Parse recovers the admission id from a reference. ok is false when the
// reference does not carry the admissions namespace or has no id segment.
func Parse(ref string) (admissionID string, ok bool) {
	parts := strings.SplitN(ref, separator, 3)
	if len(parts) != 3 || parts[0] != namespace || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ValidID reports whether id can be embedded in a reference unambiguously.
func ValidID(id string) bool {
	return id != "" && !strings.Contains(id, separator)
}
