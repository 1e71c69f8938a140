package format

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		precision int
		want      string
	}{
		{name: "zero", value: "0", precision: 3, want: "0"},
		{name: "integer", value: "42", precision: 3, want: "42"},
		{name: "trailing zeros removed", value: "2.500", precision: 3, want: "2.5"},
		{name: "rounded half up", value: "1.23456", precision: 3, want: "1.235"},
		{name: "rounds to integer", value: "0.9999", precision: 2, want: "1"},
		{name: "zero precision", value: "1609.344", precision: 0, want: "1609"},
		{name: "negative", value: "-40.000", precision: 3, want: "-40"},
		{name: "positive exponent kept plain", value: "1E+3", precision: 3, want: "1000"},
		{name: "large value in exponent notation", value: "1234567890123456789012", precision: 3, want: "1.235E+21"},
		{name: "tiny value in exponent notation", value: "0.0000001", precision: 3, want: "1E-7"},
		{name: "negative precision treated as zero", value: "2.7", precision: -1, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(mustDecimal(t, tt.value), tt.precision))
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	d := mustDecimal(t, "1234567.891")

	assert.Equal(t, "1 234 567.89", New(types.SeparatorSpaces).FormatDecimal(d, 2))
	assert.Equal(t, "1,234,567.891", New(types.SeparatorComma).FormatDecimal(d, 3))
	assert.Equal(t, "1.234.567,9", New(types.SeparatorPeriod).FormatDecimal(d, 1))
	assert.Equal(t, "1,235E+21", New(types.SeparatorPeriod).FormatDecimal(mustDecimal(t, "1234567890123456789012"), 3))
}
