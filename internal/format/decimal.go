package format

import (
	"github.com/cockroachdb/apd/v3"
)

// plainDigitLimit is the number of integer digits above which a result is
// shown in exponent notation.
const plainDigitLimit = 15

// FormatDecimal renders d rounded to precision fractional digits, without
// trailing zeros, and grouped with the current setting.
func (f *Formatter) FormatDecimal(d *apd.Decimal, precision int) string {
	return f.FormatCanonical(Canonical(d, precision))
}

// Canonical renders d as a canonical string. Values too large for plain
// notation, and non-zero values that would round to zero, use exponent
// notation ("1.5E+21", "3E-7") with precision+1 significant digits.
func Canonical(d *apd.Decimal, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if d.IsZero() {
		return "0"
	}

	adjusted := d.NumDigits() + int64(d.Exponent) - 1
	if adjusted >= plainDigitLimit {
		return scientific(d, precision)
	}

	intDigits := adjusted + 1
	if intDigits < 1 {
		intDigits = 1
	}
	ctx := apd.BaseContext.WithPrecision(uint32(intDigits) + uint32(precision) + 1)
	ctx.Rounding = apd.RoundHalfUp

	var r apd.Decimal
	if _, err := ctx.Quantize(&r, d, -int32(precision)); err != nil {
		return scientific(d, precision)
	}
	if r.IsZero() {
		return scientific(d, precision)
	}
	r.Reduce(&r)
	return r.Text('f')
}

func scientific(d *apd.Decimal, precision int) string {
	ctx := apd.BaseContext.WithPrecision(uint32(precision) + 1)
	ctx.Rounding = apd.RoundHalfUp

	var r apd.Decimal
	if _, err := ctx.Round(&r, d); err != nil {
		return d.Text('E')
	}
	r.Reduce(&r)
	return r.Text('E')
}
