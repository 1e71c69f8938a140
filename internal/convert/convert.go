// Package convert implements the unit conversion arithmetic of the core.
//
// A value v in unit u equals (v + u.Offset) * u.Factor base units of the
// unit's group. Linear units have no offset, so a conversion reduces to
// v * from.Factor / to.Factor; temperature units carry an offset. Currency
// units get their factor from a rate injected at call time.
package convert

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// DefaultPrecision is the number of significant digits carried by
// intermediate results.
const DefaultPrecision = 34

// Converter converts values between units of the same group. It is
// immutable and safe for concurrent use.
type Converter struct {
	ctx *apd.Context
}

// Option configures a Converter.
type Option func(*Converter)

// WithPrecision sets the number of significant digits of intermediate
// results.
func WithPrecision(precision uint32) Option {
	return func(c *Converter) {
		if precision > 0 {
			c.ctx = apd.BaseContext.WithPrecision(precision)
			c.ctx.Rounding = apd.RoundHalfEven
		}
	}
}

// New returns a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{}
	WithPrecision(DefaultPrecision)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert returns value expressed in unit to. Both units must belong to the
// same group; ErrGroupMismatch is returned otherwise. ErrFactorMissing is
// returned for a currency whose rate was not injected.
func (c *Converter) Convert(value *apd.Decimal, from, to types.Unit) (*apd.Decimal, error) {
	if from.Group != to.Group {
		return nil, fmt.Errorf("%w: %s (%s) and %s (%s)",
			types.ErrGroupMismatch, from.ID, from.Group, to.ID, to.Group)
	}
	if from.Factor == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrFactorMissing, from.ID)
	}
	if to.Factor == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrFactorMissing, to.ID)
	}
	if to.Factor.IsZero() {
		return nil, fmt.Errorf("%w: %s has a zero factor", types.ErrFactorMissing, to.ID)
	}

	if from.ID == to.ID {
		return new(apd.Decimal).Set(value), nil
	}

	base := new(apd.Decimal).Set(value)
	if !from.Linear() {
		if _, err := c.ctx.Add(base, base, from.Offset); err != nil {
			return nil, fmt.Errorf("converting %s to base: %w", from.ID, err)
		}
	}
	if _, err := c.ctx.Mul(base, base, from.Factor); err != nil {
		return nil, fmt.Errorf("converting %s to base: %w", from.ID, err)
	}

	out := new(apd.Decimal)
	if _, err := c.ctx.Quo(out, base, to.Factor); err != nil {
		return nil, fmt.Errorf("converting base to %s: %w", to.ID, err)
	}
	if !to.Linear() {
		if _, err := c.ctx.Sub(out, out, to.Offset); err != nil {
			return nil, fmt.Errorf("converting base to %s: %w", to.ID, err)
		}
	}
	return out, nil
}

// WithRate returns a copy of the currency unit u whose factor is derived
// from rate, the amount of u equal to one unit of the base currency.
func (c *Converter) WithRate(u types.Unit, rate *apd.Decimal) (types.Unit, error) {
	if u.Group != types.GroupCurrency {
		return u, fmt.Errorf("%w: %s", types.ErrNotCurrency, u.ID)
	}
	if rate == nil || rate.Sign() <= 0 {
		return u, fmt.Errorf("%w: %s", types.ErrRateInvalid, u.ID)
	}
	factor := new(apd.Decimal)
	if _, err := c.ctx.Quo(factor, apd.New(1, 0), rate); err != nil {
		return u, fmt.Errorf("deriving factor for %s: %w", u.ID, err)
	}
	u.Factor = factor
	return u, nil
}

// ParseRate parses decimal rate text as stored by the rate source.
func ParseRate(text string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", types.ErrRateInvalid, text)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", types.ErrRateInvalid, text)
	}
	return d, nil
}
