package sqlite

// Schema DDL. The database is rebuilt from the JSONL files on every attach,
// so the schema carries no migrations.
const (
	createUnits = `CREATE TABLE units (
    unit_id TEXT PRIMARY KEY,
    is_favorite INTEGER NOT NULL DEFAULT 0,
    paired_unit_id TEXT NOT NULL DEFAULT '',
    frequency INTEGER NOT NULL DEFAULT 0
);`

	createRates = `CREATE TABLE rates (
    rate_id TEXT PRIMARY KEY,
    currency TEXT NOT NULL,
    value TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);`
)

const (
	idxUnitsFavorite = `CREATE INDEX idx_units_favorite ON units(is_favorite);`
	idxRatesCurrency = `CREATE INDEX idx_rates_currency ON rates(currency, fetched_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createUnits,
	createRates,
}

var indexDDL = []string{
	idxUnitsFavorite,
	idxRatesCurrency,
}
