package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// attachTemp attaches a backend to a fresh temporary data directory.
func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err, "database file created")
	for _, name := range jsonlFiles {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s created", name)
	}

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres", DataDir: t.TempDir()}, types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackend().Attach(tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)
	units, err := b.GetTable(types.TableUnits)
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach is a no-op")

	_, err = b.GetTable(types.TableUnits)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = units.Get("meter")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.LatestRates()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_GetTable(t *testing.T) {
	b, _ := attachTemp(t)

	for _, name := range []string{types.TableUnits, types.TableRates} {
		tbl, err := b.GetTable(name)
		require.NoError(t, err, name)
		assert.NotNil(t, tbl, name)
	}

	_, err := b.GetTable("conversions")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackend_ReattachKeepsData(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	_, err := b.ToggleFavorite("light_year")
	require.NoError(t, err)
	rates, err := b.GetTable(types.TableRates)
	require.NoError(t, err)
	_, err = rates.Set("", &types.Rate{Currency: "EUR", Value: "0.92"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	s, err := b2.UnitState("light_year")
	require.NoError(t, err)
	assert.True(t, s.IsFavorite)

	latest, err := b2.LatestRates()
	require.NoError(t, err)
	require.Contains(t, latest, "eur")
	assert.Equal(t, "0.92", latest["eur"].Value)
}
