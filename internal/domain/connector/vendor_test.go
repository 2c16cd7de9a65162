package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorCode_IsValid(t *testing.T) {
	for _, code := range AllVendorCodes() {
		t.Run(string(code), func(t *testing.T) {
			assert.True(t, code.IsValid())
		})
	}

	invalid := []VendorCode{"", "bamboohr", "SAP", "UNKNOWN"}
	for _, code := range invalid {
		assert.False(t, code.IsValid(), "code %q", code)
	}
}

func TestAllVendorCodes_ClosedSet(t *testing.T) {
	codes := AllVendorCodes()

	assert.Len(t, codes, 14)
	assert.Contains(t, codes, VendorGeneric)

	seen := make(map[VendorCode]bool, len(codes))
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}

func TestAuthScheme_IsValid(t *testing.T) {
	tests := []struct {
		scheme AuthScheme
		valid  bool
	}{
		{AuthSchemeAPIKey, true},
		{AuthSchemeOAuth2, true},
		{AuthSchemeBasic, true},
		{AuthScheme(""), false},
		{AuthScheme("api_key"), false},
		{AuthScheme("JWT"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.scheme.IsValid(), "scheme %q", tt.scheme)
	}
}
