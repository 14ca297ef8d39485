// Package catalog holds the list of known events and loaded season
// descriptors, and coordinates the multi-table deletion of an event.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/internal/game"
	"github.com/frc-tools/scoutbase/pkg/types"
)

// Catalog caches the event list and season-descriptor map. Load replaces the
// cache in one assignment, so readers never observe a partial view; the last
// completed Load wins.
type Catalog struct {
	store    types.Store
	registry *game.Registry
	logger   *logrus.Logger

	mu     sync.RWMutex
	events []*types.Event
	games  map[string]*types.Game
}

// New creates a catalog over a store and season registry.
func New(store types.Store, registry *game.Registry, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.New()
	}
	return &Catalog{
		store:    store,
		registry: registry,
		logger:   logger,
		games:    make(map[string]*types.Game),
	}
}

// Load reads all events and season descriptors from the store and swaps the
// in-memory view atomically. Every mutating operation re-runs Load after a
// successful commit before surfacing success.
func (c *Catalog) Load() error {
	eventsTbl, err := c.store.GetTable(types.EventsTable)
	if err != nil {
		return err
	}
	rows, err := eventsTbl.ToArray()
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	events := make([]*types.Event, len(rows))
	for i, r := range rows {
		events[i] = r.(*types.Event)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Year != events[j].Year {
			return events[i].Year > events[j].Year
		}
		return events[i].EventCode < events[j].EventCode
	})

	gamesTbl, err := c.store.GetTable(types.GamesTable)
	if err != nil {
		return err
	}
	gameRows, err := gamesTbl.ToArray()
	if err != nil {
		return fmt.Errorf("loading games: %w", err)
	}
	games := make(map[string]*types.Game, len(gameRows))
	for _, r := range gameRows {
		g := r.(*types.Game)
		games[g.Year] = g
	}

	c.mu.Lock()
	c.events = events
	c.games = games
	c.mu.Unlock()
	return nil
}

// Events returns the cached event list.
func (c *Catalog) Events() []*types.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*types.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Event returns the cached event with the given year and code.
// Returns ErrNotFound when no such event is loaded.
func (c *Catalog) Event(year, eventCode string) (*types.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.Year == year && e.EventCode == eventCode {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: event %s %s", types.ErrNotFound, year, eventCode)
}

// Game returns the cached season descriptor for a year.
func (c *Catalog) Game(year string) (*types.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.games[year]
	return g, ok
}

// SyncGames persists a season descriptor for every registered adapter, then
// reloads. Called once at startup after registry construction, so season
// data stays deletable even if its adapter later disappears.
func (c *Catalog) SyncGames() error {
	tbl, err := c.store.GetTable(types.GamesTable)
	if err != nil {
		return err
	}
	for _, info := range c.registry.Games() {
		g := &types.Game{Year: info.Year, GameCode: info.GameCode, Name: info.Name}
		if err := tbl.BulkPut([]any{g}); err != nil {
			return fmt.Errorf("persisting game %s: %w", info.Year, err)
		}
	}
	return c.Load()
}

// DeleteEvent removes an event and all dependent rows across the base tables
// and every season table in one atomic transaction. If the event's year has
// no registered adapter the base tables are still cleaned: a season
// descriptor need not stay registered for its data to be deletable.
// All-or-nothing: a failing sub-delete leaves every row in place.
func (c *Catalog) DeleteEvent(event *types.Event) error {
	adapter, err := c.registry.Lookup(event.Year)
	if err != nil && !errors.Is(err, types.ErrUnknownSeason) {
		return err
	}
	if adapter == nil {
		c.logger.WithField("year", event.Year).Warn("no adapter for season, deleting base tables only")
	}

	tables := append([]string{}, types.BaseTableNames...)
	if adapter != nil {
		tables = append(tables, adapter.LocalTables()...)
	}

	err = c.store.Transaction(tables, func(tx types.Tx) error {
		eventsTbl, err := tx.Table(types.EventsTable)
		if err != nil {
			return err
		}
		if err := eventsTbl.BulkDelete([]string{event.ID}); err != nil {
			return err
		}

		byEvent := map[string]any{"year": event.Year, "event_code": event.EventCode}
		teamsTbl, err := tx.Table(types.EventTeamsTable)
		if err != nil {
			return err
		}
		if _, err := teamsTbl.DeleteWhere(byEvent); err != nil {
			return err
		}
		matchesTbl, err := tx.Table(types.EventMatchesTable)
		if err != nil {
			return err
		}
		if _, err := matchesTbl.DeleteWhere(byEvent); err != nil {
			return err
		}

		if adapter != nil {
			return adapter.DeleteEvent(tx, event)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"year":  event.Year,
		"event": event.EventCode,
	}).Info("event deleted")
	return c.Load()
}
