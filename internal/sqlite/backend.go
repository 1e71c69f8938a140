// Package sqlite implements the persistence collaborator of unitto: the
// per-unit state (favorites, pairings, usage frequency) and the currency
// rates. JSONL files in the data directory are the source of truth; SQLite
// is the query engine and is rebuilt from them on every attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// dbFile is the name of the SQLite database in the data directory.
const dbFile = "unitto.db"

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on SQLite with JSONL persistence.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
	log      zerolog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for attach and persistence events.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// NewBackend creates a new backend. The backend is not attached; call
// Attach with a Config to initialize it.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]types.Table),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns the table with the given name.
// Returns ErrTableNotFound for an unknown name and ErrStoreDetached if the
// backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach creates DataDir if needed, builds a fresh SQLite database, and
// loads the JSONL files into it. On the first attach the default unit
// pairings are seeded. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, dbFile)
	// The database is a cache of the JSONL files.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return err
	}
	loaded, err := loadAllJSONL(db, config.DataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}
	seeded, err := seedDefaultPairs(db, config.DataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("seed units: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	b.tables[types.TableUnits] = &unitsTable{backend: b}
	b.tables[types.TableRates] = &ratesTable{backend: b}

	b.log.Debug().
		Str("data_dir", config.DataDir).
		Int("units", loaded["units"]).
		Int("rates", loaded["rates"]).
		Bool("seeded", seeded).
		Msg("store attached")
	return nil
}

func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// Detach closes the SQLite connection. After Detach, table operations
// return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.tables = make(map[string]types.Table)
	b.log.Debug().Msg("store detached")
	return nil
}

// dataPath returns the path of a file in the data directory.
func (b *Backend) dataPath(name string) string {
	return filepath.Join(b.config.DataDir, name)
}

// newUUID generates a UUID v7 string.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
