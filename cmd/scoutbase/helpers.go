// Shared helpers for scoutbase CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frc-tools/scoutbase/internal/catalog"
	"github.com/frc-tools/scoutbase/internal/game"
	"github.com/frc-tools/scoutbase/internal/sqlite"
	"github.com/frc-tools/scoutbase/internal/transfer"
	"github.com/frc-tools/scoutbase/pkg/types"
)

// app bundles the wired core: an attached backend, the season registry
// instantiated from the factory table, the event catalog, and the
// import/export engine. The caller must defer close.
type app struct {
	backend  *sqlite.Backend
	registry *game.Registry
	catalog  *catalog.Catalog
	engine   *transfer.Engine
}

// newApp resolves the data directory, attaches the backend, and wires the
// core. The catalog is loaded with games synced before return.
func newApp() (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	registry := game.NewRegistry(backend, logger)
	cat := catalog.New(backend, registry, logger)
	if err := cat.SyncGames(); err != nil {
		backend.Detach()
		return nil, fmt.Errorf("sync games: %w", err)
	}

	return &app{
		backend:  backend,
		registry: registry,
		catalog:  cat,
		engine:   transfer.New(backend, registry, cat, logger),
	}, nil
}

// close detaches the backend.
func (a *app) close() error {
	return a.backend.Detach()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
