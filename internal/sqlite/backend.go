// Package sqlite implements the SQLite record store for scoutbase.
// The backend owns one database per data directory and exposes tables
// through the types.Store interface; multi-table mutation goes through
// declared transactions.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// Backend implements types.Store using SQLite as the storage engine.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist and initializes the SQLite schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, "scoutbase.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Transactions rely on a single connection; the modernc driver opens one
	// file handle per connection and concurrent writers would contend.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend. Idempotent.
// After Detach, all operations return ErrStoreDetached.
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
	return nil
}

// GetTable returns a Table bound to the backend's database connection.
// Returns ErrTableNotFound if the name is not in the schema,
// ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	spec, ok := tableSpecs[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return &table{name: name, spec: spec, backend: b, q: b.db}, nil
}

// Transaction runs fn inside a single SQLite transaction covering exactly the
// named tables. Tables obtained through the Tx write against the transaction;
// a nil return from fn commits every write, an error rolls all of them back.
// Commit rejection surfaces as an error wrapping types.ErrTransactionFailure.
func (b *Backend) Transaction(tables []string, fn func(tx types.Tx) error) error {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrStoreDetached
	}
	db := b.db
	b.mu.RUnlock()

	declared := make(map[string]bool, len(tables))
	for _, name := range tables {
		if _, ok := tableSpecs[name]; !ok {
			return fmt.Errorf("%w: %s", types.ErrTableNotFound, name)
		}
		declared[name] = true
	}

	sqlTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", types.ErrTransactionFailure, err)
	}

	if err := fn(&storeTx{backend: b, tx: sqlTx, declared: declared}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback after %v: %v", types.ErrTransactionFailure, err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", types.ErrTransactionFailure, err)
	}
	return nil
}

// storeTx implements types.Tx over a *sql.Tx with a declared table set.
type storeTx struct {
	backend  *Backend
	tx       *sql.Tx
	declared map[string]bool
}

// Table returns the named table bound to the transaction.
// Returns ErrTableNotDeclared for names outside the declared set, so a
// transaction cannot silently touch an unlisted table.
func (t *storeTx) Table(name string) (types.Table, error) {
	if !t.declared[name] {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotDeclared, name)
	}
	spec, ok := tableSpecs[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return &table{name: name, spec: spec, backend: t.backend, q: t.tx}, nil
}
