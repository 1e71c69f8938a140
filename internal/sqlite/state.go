package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// UnitState returns the state of a unit, or the zero state when the unit
// was never written.
func (b *Backend) UnitState(unitID string) (types.UnitState, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.UnitState{}, types.ErrStoreDetached
	}
	return loadUnitState(b.db, unitID)
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func loadUnitState(q rowQuerier, unitID string) (types.UnitState, error) {
	s, err := scanUnitState(q.QueryRow(selectUnits+" WHERE unit_id = ?", unitID))
	if errors.Is(err, sql.ErrNoRows) {
		return types.UnitState{UnitID: unitID}, nil
	}
	if err != nil {
		return types.UnitState{}, fmt.Errorf("getting unit %s: %w", unitID, err)
	}
	return *s, nil
}

// ToggleFavorite flips the favorite flag of a unit and returns the new
// value.
func (b *Backend) ToggleFavorite(unitID string) (bool, error) {
	if unitID == "" {
		return false, types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return false, types.ErrStoreDetached
	}

	s, err := loadUnitState(b.db, unitID)
	if err != nil {
		return false, err
	}
	s.IsFavorite = !s.IsFavorite
	if err := upsertUnitState(b.db, &s); err != nil {
		return false, err
	}
	if err := persistUnitsJSONL(b.db, b.dataPath(unitsJSONL)); err != nil {
		return false, err
	}
	return s.IsFavorite, nil
}

// RecordConversion notes that a value was converted from one unit to
// another: both units gain one use and each becomes the other's pair.
func (b *Backend) RecordConversion(fromID, toID string) error {
	if fromID == "" || toID == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	pairs := [][2]string{{fromID, toID}, {toID, fromID}}
	if fromID == toID {
		pairs = pairs[:1]
	}
	for _, p := range pairs {
		s, err := loadUnitState(tx, p[0])
		if err != nil {
			return err
		}
		s.Frequency++
		s.PairedUnitID = p[1]
		if err := upsertUnitState(tx, &s); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing conversion: %w", err)
	}
	return persistUnitsJSONL(b.db, b.dataPath(unitsJSONL))
}

// LatestRates returns the most recently fetched rate of every currency,
// keyed by currency ID.
func (b *Backend) LatestRates() (map[string]types.Rate, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(selectRates + " ORDER BY fetched_at ASC, rate_id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying rates: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]types.Rate)
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}
		latest[r.Currency] = *r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rates: %w", err)
	}
	return latest, nil
}
