package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

func TestDefaultCatalogGroups(t *testing.T) {
	c := Default()

	assert.Equal(t, []types.Group{
		types.GroupLength,
		types.GroupMass,
		types.GroupTemperature,
		types.GroupVolume,
		types.GroupArea,
		types.GroupTime,
		types.GroupSpeed,
		types.GroupData,
		types.GroupCurrency,
	}, c.Groups())

	for _, g := range c.Groups() {
		units := c.Group(g)
		require.NotEmpty(t, units, "group %s", g)
		for _, u := range units {
			assert.Equal(t, g, u.Group, "unit %s", u.ID)
			assert.NotEmpty(t, u.Symbol, "unit %s", u.ID)
		}
	}
}

func TestEveryGroupHasBaseUnit(t *testing.T) {
	c := Default()
	one := "1"

	for _, g := range c.Groups() {
		found := false
		for _, u := range c.Group(g) {
			if u.Factor != nil && u.Factor.String() == one && u.Linear() {
				found = true
			}
		}
		assert.True(t, found, "group %s has no base unit", g)
	}
}

func TestNonCurrencyUnitsHaveFactors(t *testing.T) {
	c := Default()
	for _, id := range c.IDs() {
		u, err := c.Get(id)
		require.NoError(t, err)
		if u.Group == types.GroupCurrency && u.ID != CurrencyBase {
			assert.Nil(t, u.Factor, "currency %s should wait for a rate", id)
			continue
		}
		require.NotNil(t, u.Factor, "unit %s", id)
		assert.Equal(t, 1, u.Factor.Sign(), "unit %s factor must be positive", id)
	}
}

func TestGet(t *testing.T) {
	c := Default()

	tests := []struct {
		name    string
		id      string
		group   types.Group
		factor  string
		wantErr error
	}{
		{name: "mile", id: "mile", group: types.GroupLength, factor: "1609.344"},
		{name: "case insensitive", id: "KiloGram", group: types.GroupMass, factor: "1"},
		{name: "fraction factor", id: "kilometer_per_hour", group: types.GroupSpeed, factor: "0.2777777777777777777777777777777778"},
		{name: "unknown unit", id: "furlong", wantErr: types.ErrUnitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := c.Get(tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.group, u.Group)
			assert.Equal(t, tt.factor, u.Factor.String())
		})
	}
}

func TestTemperatureOffsets(t *testing.T) {
	c := Default()

	celsius, err := c.Get("celsius")
	require.NoError(t, err)
	assert.False(t, celsius.Linear())
	assert.Equal(t, "273.15", celsius.Offset.String())

	kelvin, err := c.Get("kelvin")
	require.NoError(t, err)
	assert.True(t, kelvin.Linear())
}

func TestGroupReturnsCopy(t *testing.T) {
	c := Default()
	units := c.Group(types.GroupLength)
	units[0].ID = "changed"

	assert.NotEqual(t, "changed", c.Group(types.GroupLength)[0].ID)
	assert.Nil(t, c.Group(types.Group("luminance")))
}

func TestBuildRejectsDuplicates(t *testing.T) {
	_, err := build([]builtInGroup{
		{group: types.GroupLength, units: []builtInUnit{
			{id: "meter", symbol: "m", factor: "1"},
			{id: "meter", symbol: "m", factor: "1"},
		}},
	})
	assert.Error(t, err)
}

func TestBuildRejectsBadFactor(t *testing.T) {
	_, err := build([]builtInGroup{
		{group: types.GroupLength, units: []builtInUnit{
			{id: "meter", symbol: "m", factor: "one"},
		}},
	})
	assert.Error(t, err)
}
