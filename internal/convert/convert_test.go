package convert

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/unitto/internal/catalog"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

func dec(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func unit(t *testing.T, id string) types.Unit {
	t.Helper()
	u, err := catalog.Default().Get(id)
	require.NoError(t, err)
	return u
}

// assertClose checks |got-want| <= 1e-25 * max(1, |want|).
func assertClose(t *testing.T, want, got *apd.Decimal) {
	t.Helper()
	ctx := apd.BaseContext.WithPrecision(50)

	var diff, scale, tol apd.Decimal
	_, err := ctx.Sub(&diff, got, want)
	require.NoError(t, err)
	diff.Abs(&diff)

	scale.Abs(want)
	if scale.Cmp(apd.New(1, 0)) < 0 {
		scale.SetInt64(1)
	}
	_, err = ctx.Mul(&tol, &scale, apd.New(1, -25))
	require.NoError(t, err)

	assert.True(t, diff.Cmp(&tol) <= 0, "got %s, want %s", got, want)
}

func TestConvertLinear(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		value string
		from  string
		to    string
		want  string
	}{
		{name: "mile to kilometer", value: "1", from: "mile", to: "kilometer", want: "1.609344"},
		{name: "kilometer to meter", value: "2.5", from: "kilometer", to: "meter", want: "2500"},
		{name: "inch to centimeter", value: "12", from: "inch", to: "centimeter", want: "30.48"},
		{name: "pound to gram", value: "1", from: "pound", to: "gram", want: "453.59237"},
		{name: "gallon to liter", value: "2", from: "us_gallon", to: "liter", want: "7.570823568"},
		{name: "hour to minute", value: "1.5", from: "hour", to: "minute", want: "90"},
		{name: "gibibyte to mebibyte", value: "1", from: "gibibyte", to: "mebibyte", want: "1024"},
		{name: "km/h to m/s", value: "36", from: "kilometer_per_hour", to: "meter_per_second", want: "10"},
		{name: "negative value", value: "-3", from: "foot", to: "inch", want: "-36"},
		{name: "same unit", value: "7.25", from: "meter", to: "meter", want: "7.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(dec(t, tt.value), unit(t, tt.from), unit(t, tt.to))
			require.NoError(t, err)
			assertClose(t, dec(t, tt.want), got)
		})
	}
}

func TestConvertTemperature(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		value string
		from  string
		to    string
		want  string
	}{
		{name: "boiling point", value: "100", from: "celsius", to: "fahrenheit", want: "212"},
		{name: "freezing point", value: "32", from: "fahrenheit", to: "celsius", want: "0"},
		{name: "minus forty", value: "-40", from: "celsius", to: "fahrenheit", want: "-40"},
		{name: "absolute zero", value: "0", from: "kelvin", to: "celsius", want: "-273.15"},
		{name: "kelvin to rankine", value: "100", from: "kelvin", to: "rankine", want: "180"},
		{name: "fahrenheit to kelvin", value: "212", from: "fahrenheit", to: "kelvin", want: "373.15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(dec(t, tt.value), unit(t, tt.from), unit(t, tt.to))
			require.NoError(t, err)
			assertClose(t, dec(t, tt.want), got)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := New()
	cat := catalog.Default()
	values := []string{"1", "0.001", "123456.789", "-42.5"}

	for _, g := range cat.Groups() {
		if g == types.GroupCurrency {
			continue
		}
		units := cat.Group(g)
		for _, a := range units {
			for _, b := range units {
				for _, v := range values {
					x := dec(t, v)
					there, err := c.Convert(x, a, b)
					require.NoError(t, err)
					back, err := c.Convert(there, b, a)
					require.NoError(t, err)
					assertClose(t, x, back)
				}
			}
		}
	}
}

func TestConvertCurrency(t *testing.T) {
	c := New()

	eur, err := c.WithRate(unit(t, "eur"), dec(t, "0.92"))
	require.NoError(t, err)
	gbp, err := c.WithRate(unit(t, "gbp"), dec(t, "0.79"))
	require.NoError(t, err)
	usd := unit(t, catalog.CurrencyBase)

	got, err := c.Convert(dec(t, "100"), usd, eur)
	require.NoError(t, err)
	assertClose(t, dec(t, "92"), got)

	got, err = c.Convert(dec(t, "92"), eur, gbp)
	require.NoError(t, err)
	assertClose(t, dec(t, "79"), got)
}

func TestConvertErrors(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		from    types.Unit
		to      types.Unit
		wantErr error
	}{
		{name: "group mismatch", from: unit(t, "meter"), to: unit(t, "kilogram"), wantErr: types.ErrGroupMismatch},
		{name: "currency without rate as target", from: unit(t, "usd"), to: unit(t, "eur"), wantErr: types.ErrFactorMissing},
		{name: "currency without rate as source", from: unit(t, "jpy"), to: unit(t, "usd"), wantErr: types.ErrFactorMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(dec(t, "1"), tt.from, tt.to)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestGroupMismatchNamesUnits(t *testing.T) {
	_, err := New().Convert(dec(t, "1"), unit(t, "meter"), unit(t, "celsius"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meter (length)")
	assert.Contains(t, err.Error(), "celsius (temperature)")
}

func TestWithRateErrors(t *testing.T) {
	c := New()

	_, err := c.WithRate(unit(t, "meter"), dec(t, "2"))
	assert.ErrorIs(t, err, types.ErrNotCurrency)

	_, err = c.WithRate(unit(t, "eur"), dec(t, "0"))
	assert.ErrorIs(t, err, types.ErrRateInvalid)

	_, err = c.WithRate(unit(t, "eur"), nil)
	assert.ErrorIs(t, err, types.ErrRateInvalid)
}

func TestParseRate(t *testing.T) {
	d, err := ParseRate("0.92")
	require.NoError(t, err)
	assert.Equal(t, "0.92", d.String())

	for _, bad := range []string{"", "abc", "-1", "0"} {
		_, err := ParseRate(bad)
		assert.ErrorIs(t, err, types.ErrRateInvalid, "rate %q", bad)
	}
}

func TestWithPrecision(t *testing.T) {
	c := New(WithPrecision(5))
	got, err := c.Convert(dec(t, "1"), unit(t, "foot"), unit(t, "yard"))
	require.NoError(t, err)
	assert.Equal(t, "0.33333", got.String())
}
