package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// builtInPair is a pairing seeded on first startup so that a unit has a
// sensible counterpart before the user ever converts it.
type builtInPair struct {
	from, to string
}

var builtInPairs = []builtInPair{
	{"kilometer", "mile"},
	{"meter", "foot"},
	{"centimeter", "inch"},
	{"kilogram", "pound"},
	{"celsius", "fahrenheit"},
	{"liter", "us_gallon"},
	{"square_meter", "square_foot"},
	{"kilometer_per_hour", "mile_per_hour"},
	{"megabyte", "mebibyte"},
	{"usd", "eur"},
}

// seedDefaultPairs writes the built-in pairings in both directions when the
// units table is empty, as on first run. It reports whether anything was
// seeded.
func seedDefaultPairs(db *sql.DB, dataDir string) (bool, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM units").Scan(&count); err != nil {
		return false, fmt.Errorf("counting units: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range builtInPairs {
		for _, s := range []types.UnitState{
			{UnitID: p.from, PairedUnitID: p.to},
			{UnitID: p.to, PairedUnitID: p.from},
		} {
			if err := upsertUnitState(tx, &s); err != nil {
				return false, err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}

	if err := persistUnitsJSONL(db, filepath.Join(dataDir, unitsJSONL)); err != nil {
		return false, err
	}
	return true, nil
}
