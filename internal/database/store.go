// file: internal/database/store.go
// version: 2.1.0
// guid: 17977f49-0f87-45ff-a3f5-42b7908d5f5a

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/practiceops/practice-directory/internal/models"
)

// ErrNotFound is returned when a record or setting does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for practice-directory persistence.
// This abstraction allows us to support both PebbleDB (default) and
// SQLite3 (opt-in), plus an in-memory store for tests and dev mode.
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Practice records (owned by the ingestion pipeline)
	UpsertPractice(rec *models.PracticeRecord) error
	GetPracticeByCode(code string) (*models.PracticeRecord, error)
	DeletePractice(code string) error
	ListPractices(limit, offset int) ([]models.PracticeRecord, error)
	CountPractices() (int, error)

	// FetchCandidates performs the coarse candidate pre-filter for the
	// search engine: a cheap substring/prefix match on the relevant fields,
	// returning an order-stable list of at most fetchLimit records. It must
	// never rank; relevance scoring belongs to the engine.
	FetchCandidates(ctx context.Context, searchType models.SearchType, query string, fetchLimit int, includeRaw bool) ([]models.PracticeRecord, error)

	// Settings keyspace (import bookkeeping and similar small state)
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// GlobalStore is the active store instance, set by InitializeStore.
var GlobalStore Store

// InitializeStore creates the configured store backend.
func InitializeStore(dbType, path string, enableSQLite bool) error {
	var err error

	switch dbType {
	case "sqlite", "sqlite3":
		if !enableSQLite {
			return fmt.Errorf("SQLite3 is not enabled. To use SQLite3, you must explicitly enable it with --enable-sqlite3-i-know-the-risks or set 'enable_sqlite3_i_know_the_risks: true' in your config file. PebbleDB is the recommended database for production use")
		}
		GlobalStore, err = NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
	case "pebble", "":
		// PebbleDB is the default
		GlobalStore, err = NewPebbleStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
	case "memory":
		GlobalStore = NewMemoryStore()
	default:
		return fmt.Errorf("unsupported database type: %s (supported: pebble, sqlite, memory)", dbType)
	}

	return nil
}

// CloseStore closes the active store, if any.
func CloseStore() error {
	if GlobalStore == nil {
		return nil
	}
	err := GlobalStore.Close()
	GlobalStore = nil
	return err
}
