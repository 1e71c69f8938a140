package expr

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestEvaluateValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "single number", src: "42", want: "42"},
		{name: "addition", src: "1+2", want: "3"},
		{name: "decimal sum is exact", src: "0.1+0.2", want: "0.3"},
		{name: "precedence of multiply", src: "2+3×4", want: "14"},
		{name: "left associative subtraction", src: "10-4-3", want: "3"},
		{name: "left associative division", src: "100÷10÷5", want: "2"},
		{name: "ascii operators", src: "7*6/3", want: "14"},
		{name: "en dash minus", src: "10–4", want: "6"},
		{name: "power is right associative", src: "2^3^2", want: "512"},
		{name: "power binds tighter than unary minus", src: "-2^2", want: "-4"},
		{name: "negative exponent", src: "2^-1", want: "0.5"},
		{name: "unary minus at start", src: "-5+3", want: "-2"},
		{name: "unary minus after operator", src: "3×-2", want: "-6"},
		{name: "unary minus after paren", src: "(-3)×2", want: "-6"},
		{name: "double negation", src: "--4", want: "4"},
		{name: "unary plus", src: "+4", want: "4"},
		{name: "sqrt", src: "√9", want: "3"},
		{name: "sqrt applies to power", src: "√9^2", want: "9"},
		{name: "sqrt then multiply", src: "√9×2", want: "6"},
		{name: "nested sqrt", src: "√√16", want: "2"},
		{name: "parentheses", src: "2×(9+8×7)", want: "130"},
		{name: "unclosed parenthesis is closed", src: "2×(9+8×7", want: "130"},
		{name: "several unclosed parentheses", src: "((1+2)×(3", want: "9"},
		{name: "trailing point", src: "123.", want: "123"},
		{name: "exponent literal", src: "1.5E+3", want: "1500"},
		{name: "full expression", src: "50+123456÷8×0.8–12+0-√9*4^9+2×(9+8×7)", want: "-773918.4"},
		{name: "one third keeps precision", src: "1÷3×3", want: "0.9999999999999999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.src)
			require.Equal(t, KindValue, res.Kind, "err: %v", res.Err)
			require.True(t, res.OK())
			assert.Zero(t, res.Value.Cmp(decimal(t, tt.want)), "got %s, want %s", res.Value, tt.want)
		})
	}
}

func TestEvaluateIncomplete(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "blank", src: "   "},
		{name: "trailing operator", src: "50+123456÷8×0.8–12+"},
		{name: "trailing minus", src: "5-"},
		{name: "consecutive binary operators", src: "5×÷3"},
		{name: "only brackets", src: "(((((((("},
		{name: "empty parentheses", src: "()"},
		{name: "stray closing parenthesis", src: "2)"},
		{name: "trailing sqrt", src: "2+√"},
		{name: "trailing power", src: "2^"},
		{name: "partial exponent", src: "1E+"},
		{name: "unknown character", src: "2x"},
		{name: "implicit multiplication is not supported", src: "2(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.src)
			assert.Equal(t, KindIncomplete, res.Kind)
			assert.Nil(t, res.Value)
			assert.Error(t, res.Err)
		})
	}
}

func TestEvaluateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "division by zero", src: "1÷0", wantErr: ErrDivisionByZero},
		{name: "division by zero expression", src: "5/(3-3)", wantErr: ErrDivisionByZero},
		{name: "division by unclosed zero", src: "1÷(0", wantErr: ErrDivisionByZero},
		{name: "negative sqrt", src: "√-4", wantErr: ErrNegativeSqrt},
		{name: "sqrt of negative expression", src: "√(1-5)", wantErr: ErrNegativeSqrt},
		{name: "overflow", src: "10^10^10", wantErr: ErrUndefinedOp},
		{name: "zero to negative power", src: "0^–1", wantErr: ErrDivisionByZero},
		{name: "zero expression to negative power", src: "(1–1)^–2", wantErr: ErrDivisionByZero},
		{name: "zero to negative fractional power", src: "0^–0.5", wantErr: ErrDivisionByZero},
		{name: "nested zero to negative power", src: "2÷0^–1", wantErr: ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.src)
			assert.Equal(t, KindInvalid, res.Kind)
			assert.ErrorIs(t, res.Err, tt.wantErr)
		})
	}
}

func TestEvaluatorPrecision(t *testing.T) {
	res := NewEvaluator(5).Evaluate("1÷3")
	require.True(t, res.OK())
	assert.Equal(t, "0.33333", res.Value.String())

	assert.Equal(t, uint32(DefaultPrecision), NewEvaluator(0).Context().Precision)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "incomplete", KindIncomplete.String())
	assert.Equal(t, "invalid", KindInvalid.String())
}
