package sqlite

// JSONL record formats. Field names match the SQLite column names so that
// loadAllJSONL can insert records by column.

// unitStateJSON is one line of units.jsonl.
type unitStateJSON struct {
	UnitID       string `json:"unit_id"`
	IsFavorite   bool   `json:"is_favorite"`
	PairedUnitID string `json:"paired_unit_id"`
	Frequency    int64  `json:"frequency"`
}

// rateJSON is one line of rates.jsonl. Value stays text so that no digits
// are lost in a float round trip.
type rateJSON struct {
	RateID    string `json:"rate_id"`
	Currency  string `json:"currency"`
	Value     string `json:"value"`
	FetchedAt string `json:"fetched_at"`
}
