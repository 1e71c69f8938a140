package sqlite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

func ratesTableOf(t *testing.T, b *Backend) types.Table {
	t.Helper()
	tbl, err := b.GetTable(types.TableRates)
	require.NoError(t, err)
	return tbl
}

func TestRatesTable_CRUD(t *testing.T) {
	b, _ := attachTemp(t)
	rates := ratesTableOf(t, b)

	fetched := time.Date(2026, 3, 1, 12, 30, 0, 123, time.UTC)
	id, err := rates.Set("", &types.Rate{Currency: " GBP ", Value: "0.7891234567890123456789", FetchedAt: fetched})
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	got, err := rates.Get(id)
	require.NoError(t, err)
	r := got.(*types.Rate)
	assert.Equal(t, id, r.RateID)
	assert.Equal(t, "gbp", r.Currency)
	assert.Equal(t, "0.7891234567890123456789", r.Value, "value keeps every digit")
	assert.True(t, fetched.Equal(r.FetchedAt))

	require.NoError(t, rates.Delete(id))
	_, err = rates.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, rates.Delete(id), types.ErrNotFound)
}

func TestRatesTable_SetDefaultsFetchedAt(t *testing.T) {
	b, _ := attachTemp(t)
	rates := ratesTableOf(t, b)

	before := time.Now().UTC().Add(-time.Second)
	r := &types.Rate{Currency: "eur", Value: "0.9"}
	_, err := rates.Set("", r)
	require.NoError(t, err)
	assert.True(t, r.FetchedAt.After(before))
}

func TestRatesTable_SetInvalid(t *testing.T) {
	b, _ := attachTemp(t)
	rates := ratesTableOf(t, b)

	tests := []struct {
		name    string
		data    any
		wantErr error
	}{
		{"wrong type", types.Rate{Currency: "eur", Value: "1"}, types.ErrInvalidData},
		{"no currency", &types.Rate{Value: "1"}, types.ErrInvalidData},
		{"not a number", &types.Rate{Currency: "eur", Value: "abc"}, types.ErrRateInvalid},
		{"zero", &types.Rate{Currency: "eur", Value: "0"}, types.ErrRateInvalid},
		{"negative", &types.Rate{Currency: "eur", Value: "-1.5"}, types.ErrRateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rates.Set("", tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRatesTable_Fetch(t *testing.T) {
	b, _ := attachTemp(t)
	rates := ratesTableOf(t, b)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range []types.Rate{
		{Currency: "eur", Value: "0.90"},
		{Currency: "eur", Value: "0.91"},
		{Currency: "jpy", Value: "150"},
		{Currency: "eur", Value: "0.92"},
	} {
		r.FetchedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := rates.Set("", &r)
		require.NoError(t, err)
	}

	eur, err := rates.Fetch(map[string]any{"currency": "EUR"})
	require.NoError(t, err)
	require.Len(t, eur, 3)
	assert.Equal(t, "0.92", eur[0].(*types.Rate).Value, "newest first")
	assert.Equal(t, "0.90", eur[2].(*types.Rate).Value)

	limited, err := rates.Fetch(map[string]any{"limit": 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := rates.Fetch(map[string]any{"currency": "chf"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = rates.Fetch(map[string]any{"currency": 1})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
	_, err = rates.Fetch(map[string]any{"limit": "2"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}
