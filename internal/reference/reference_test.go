package reference

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.UnixMilli(1699000000000)

	ref := Generate("A1", now)
	require.Equal(t, "admissions_A1_1699000000000", ref)

	id, ok := Parse(ref)
	require.True(t, ok)
	assert.Equal(t, "A1", id)
}

func TestGenerateDistinctAcrossTime(t *testing.T) {
	first := Generate("A1", time.UnixMilli(1699000000000))
	second := Generate("A1", time.UnixMilli(1699000000001))
	assert.NotEqual(t, first, second)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		wantID string
		wantOK bool
	}{
		{"well-formed", "admissions_42_169900000", "42", true},
		{"id keeps trailing segments intact", "admissions_42_169900000", "42", true},
		{"wrong namespace", "orders_42_169900000", "", false},
		{"missing id segment", "admissions__169900000", "", false},
		{"no separators", "admissions", "", false},
		{"only one segment after namespace", "admissions_42", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := Parse(tc.ref)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("A1"))
	assert.True(t, ValidID("abc-123"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("A_1"))
}

func TestGenerateParseRoundTrip(t *testing.T) {
	for i, id := range []string{"A1", "42", "long-admission-id-2026"} {
		t.Run(fmt.Sprintf("%d_%s", i, id), func(t *testing.T) {
			require.True(t, ValidID(id))
			got, ok := Parse(Generate(id, time.Now()))
			require.True(t, ok)
			assert.Equal(t, id, got)
		})
	}
}
