package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

var _ types.Table = (*unitsTable)(nil)

// unitsTable stores *types.UnitState rows keyed by unit ID and persists them
// to units.jsonl after every write.
type unitsTable struct {
	backend *Backend
}

const selectUnits = "SELECT unit_id, is_favorite, paired_unit_id, frequency FROM units"

// Get returns the *types.UnitState of a unit. Units never written have no
// row; Get returns ErrNotFound for them.
func (ut *unitsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ut.backend.mu.RLock()
	defer ut.backend.mu.RUnlock()
	if !ut.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := ut.backend.db.QueryRow(selectUnits+" WHERE unit_id = ?", id)
	s, err := scanUnitState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting unit %s: %w", id, err)
	}
	return s, nil
}

// Set creates or replaces the state of a unit. id may be empty, in which
// case data.UnitID is the key; when both are given they must match.
func (ut *unitsTable) Set(id string, data any) (string, error) {
	s, ok := data.(*types.UnitState)
	if !ok || s == nil {
		return "", types.ErrInvalidData
	}
	switch {
	case id == "" && s.UnitID == "":
		return "", types.ErrInvalidID
	case id == "":
		id = s.UnitID
	case s.UnitID == "":
		s.UnitID = id
	case s.UnitID != id:
		return "", types.ErrInvalidData
	}
	if s.Frequency < 0 {
		return "", types.ErrInvalidData
	}

	ut.backend.mu.Lock()
	defer ut.backend.mu.Unlock()
	if !ut.backend.attached {
		return "", types.ErrStoreDetached
	}

	if err := upsertUnitState(ut.backend.db, s); err != nil {
		return "", err
	}
	if err := ut.persist(); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the state of a unit, resetting it to the defaults.
func (ut *unitsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ut.backend.mu.Lock()
	defer ut.backend.mu.Unlock()
	if !ut.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := ut.backend.db.Exec("DELETE FROM units WHERE unit_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting unit %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return ut.persist()
}

// Fetch returns unit states ordered by frequency, most used first. Filter
// keys: "is_favorite" (bool) and "unit_ids" ([]string).
func (ut *unitsTable) Fetch(filter map[string]any) ([]any, error) {
	var conditions []string
	var args []any

	if v, ok := filter["is_favorite"]; ok {
		fav, ok := v.(bool)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "is_favorite = ?")
		args = append(args, fav)
	}
	if v, ok := filter["unit_ids"]; ok {
		ids, ok := v.([]string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		if len(ids) == 0 {
			return []any{}, nil
		}
		conditions = append(conditions,
			"unit_id IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")+")")
		for _, id := range ids {
			args = append(args, id)
		}
	}

	query := selectUnits
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY frequency DESC, unit_id ASC"

	ut.backend.mu.RLock()
	defer ut.backend.mu.RUnlock()
	if !ut.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := ut.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching units: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		s, err := scanUnitState(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return results, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnitState(row rowScanner) (*types.UnitState, error) {
	var s types.UnitState
	if err := row.Scan(&s.UnitID, &s.IsFavorite, &s.PairedUnitID, &s.Frequency); err != nil {
		return nil, err
	}
	return &s, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertUnitState(db execer, s *types.UnitState) error {
	_, err := db.Exec(`INSERT INTO units (unit_id, is_favorite, paired_unit_id, frequency)
VALUES (?, ?, ?, ?)
ON CONFLICT(unit_id) DO UPDATE SET
    is_favorite = excluded.is_favorite,
    paired_unit_id = excluded.paired_unit_id,
    frequency = excluded.frequency`,
		s.UnitID, s.IsFavorite, s.PairedUnitID, s.Frequency)
	if err != nil {
		return fmt.Errorf("persisting unit %s: %w", s.UnitID, err)
	}
	return nil
}

// persist rewrites units.jsonl from the table. The caller holds the write
// lock.
func (ut *unitsTable) persist() error {
	return persistUnitsJSONL(ut.backend.db, ut.backend.dataPath(unitsJSONL))
}

func persistUnitsJSONL(db *sql.DB, path string) error {
	rows, err := db.Query(selectUnits + " ORDER BY unit_id ASC")
	if err != nil {
		return fmt.Errorf("querying units for JSONL: %w", err)
	}
	defer rows.Close()

	var out []unitStateJSON
	for rows.Next() {
		s, err := scanUnitState(rows)
		if err != nil {
			return fmt.Errorf("scanning unit for JSONL: %w", err)
		}
		out = append(out, unitStateJSON{
			UnitID:       s.UnitID,
			IsFavorite:   s.IsFavorite,
			PairedUnitID: s.PairedUnitID,
			Frequency:    s.Frequency,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating units for JSONL: %w", err)
	}

	records, err := marshalJSONL(out)
	if err != nil {
		return fmt.Errorf("marshaling units: %w", err)
	}
	if err := writeJSONL(path, records); err != nil {
		return fmt.Errorf("persisting %s: %w", unitsJSONL, err)
	}
	return nil
}
