package currencies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
		ok       bool
	}{
		{"upper code", "USD", "USD", true},
		{"lower code", "eur", "EUR", true},
		{"mixed case code", "Gbp", "GBP", true},
		{"unknown but valid code shape", "XXX", "XXX", true},
		{"symbol dollar", "$", "USD", true},
		{"symbol euro", "€", "EUR", true},
		{"name singular", "dollar", "USD", true},
		{"name plural", "euros", "EUR", true},
		{"name yen", "yen", "JPY", true},
		{"name rupees", "rupees", "INR", true},
		{"too long word", "monies", "", false},
		{"too short", "us", "", false},
		{"digits", "123", "", false},
		{"empty", "", "", false},
		{"whitespace padded", "  usd  ", "USD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := Resolve(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, 0, Precision("JPY"))
	assert.Equal(t, 0, Precision("KRW"))
	assert.Equal(t, 0, Precision("ISK"))
	assert.Equal(t, 2, Precision("USD"))
	assert.Equal(t, 2, Precision("eur"))
	// Codes outside the table fall back to 2 decimals.
	assert.Equal(t, 2, Precision("XXX"))
}

func TestLookupAndAll(t *testing.T) {
	info, ok := Lookup("usd")
	assert.True(t, ok)
	assert.Equal(t, "United States Dollar", info.Name)
	assert.Equal(t, "$", info.Symbol)

	_, ok = Lookup("XXX")
	assert.False(t, ok)
	assert.False(t, IsSupported("XXX"))
	assert.True(t, IsSupported("inr"))

	all := All()
	assert.Len(t, all, len(table))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Code, all[i].Code, "All must be sorted by code")
	}
}
