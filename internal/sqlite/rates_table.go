package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/unitto/internal/convert"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

var _ types.Table = (*ratesTable)(nil)

// timeLayout is a fixed-width UTC layout so that fetched_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ratesTable stores *types.Rate rows. Rates are never updated in place in
// normal use: each fetch adds a row and the latest row per currency wins.
type ratesTable struct {
	backend *Backend
}

const selectRates = "SELECT rate_id, currency, value, fetched_at FROM rates"

// Get returns the *types.Rate with the given ID.
func (rt *ratesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	r, err := scanRate(rt.backend.db.QueryRow(selectRates+" WHERE rate_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting rate %s: %w", id, err)
	}
	return r, nil
}

// Set stores a rate. An empty id creates a new rate with a UUID v7; a zero
// FetchedAt is set to the current time. The currency ID is lowercased and
// the value must be a positive decimal.
func (rt *ratesTable) Set(id string, data any) (string, error) {
	r, ok := data.(*types.Rate)
	if !ok || r == nil {
		return "", types.ErrInvalidData
	}
	r.Currency = strings.ToLower(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		return "", types.ErrInvalidData
	}
	if _, err := convert.ParseRate(r.Value); err != nil {
		return "", err
	}

	if id == "" {
		newID, err := newUUID()
		if err != nil {
			return "", err
		}
		id = newID
	}
	r.RateID = id
	if r.FetchedAt.IsZero() {
		r.FetchedAt = time.Now()
	}
	r.FetchedAt = r.FetchedAt.UTC()

	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return "", types.ErrStoreDetached
	}

	_, err := rt.backend.db.Exec(`INSERT INTO rates (rate_id, currency, value, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(rate_id) DO UPDATE SET
    currency = excluded.currency,
    value = excluded.value,
    fetched_at = excluded.fetched_at`,
		r.RateID, r.Currency, r.Value, r.FetchedAt.Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("persisting rate: %w", err)
	}
	if err := rt.persist(); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a rate by ID.
func (rt *ratesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := rt.backend.db.Exec("DELETE FROM rates WHERE rate_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rate %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return rt.persist()
}

// Fetch returns rates ordered newest first. Filter keys: "currency"
// (string) and "limit" (int).
func (rt *ratesTable) Fetch(filter map[string]any) ([]any, error) {
	query := selectRates
	var args []any

	if v, ok := filter["currency"]; ok {
		cur, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		query += " WHERE currency = ?"
		args = append(args, strings.ToLower(cur))
	}
	query += " ORDER BY fetched_at DESC, rate_id DESC"
	if v, ok := filter["limit"]; ok {
		limit, ok := v.(int)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		if limit > 0 {
			query += fmt.Sprintf(" LIMIT %d", limit)
		}
	}

	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rates: %w", err)
	}
	return results, nil
}

func scanRate(row rowScanner) (*types.Rate, error) {
	var r types.Rate
	var fetchedAt string
	if err := row.Scan(&r.RateID, &r.Currency, &r.Value, &fetchedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, fetchedAt)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing fetched_at %q: %w", fetchedAt, err)
		}
	}
	r.FetchedAt = t.UTC()
	return &r, nil
}

func (rt *ratesTable) persist() error {
	rows, err := rt.backend.db.Query(selectRates + " ORDER BY fetched_at ASC, rate_id ASC")
	if err != nil {
		return fmt.Errorf("querying rates for JSONL: %w", err)
	}
	defer rows.Close()

	var out []rateJSON
	for rows.Next() {
		var rec rateJSON
		if err := rows.Scan(&rec.RateID, &rec.Currency, &rec.Value, &rec.FetchedAt); err != nil {
			return fmt.Errorf("scanning rate for JSONL: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rates for JSONL: %w", err)
	}

	records, err := marshalJSONL(out)
	if err != nil {
		return fmt.Errorf("marshaling rates: %w", err)
	}
	if err := writeJSONL(rt.backend.dataPath(ratesJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", ratesJSONL, err)
	}
	return nil
}
