// Package game provides the season registry and the merge classification
// shared by every game adapter. Season packages register an adapter factory
// at init; a Registry instantiates adapters from the factory table against a
// concrete store.
package game

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// Factory builds a season's adapter bound to a store.
type Factory func(store types.Store, logger *logrus.Logger) types.GameAdapter

// factoryRegistry is the process-wide factory table, populated by season
// package init functions before any registry is constructed.
var factoryRegistry = make(map[string]Factory)

// RegisterFactory records a season's adapter factory under its year.
// A duplicate year overwrites the previous factory: last writer wins.
func RegisterFactory(year string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("nil adapter factory for season %s", year))
	}
	factoryRegistry[year] = factory
}

// ListFactories returns the years with a registered factory, sorted.
func ListFactories() []string {
	years := make([]string, 0, len(factoryRegistry))
	for y := range factoryRegistry {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Registry maps season years to instantiated game adapters. It is built once
// at startup and read-only afterwards; tests construct isolated registries
// with NewEmpty and Register.
type Registry struct {
	logger   *logrus.Logger
	adapters map[string]types.GameAdapter
	byBlock  map[string]types.GameAdapter
}

// NewRegistry instantiates an adapter for every registered factory.
func NewRegistry(store types.Store, logger *logrus.Logger) *Registry {
	r := NewEmpty(logger)
	for _, year := range ListFactories() {
		adapter := factoryRegistry[year](store, logger)
		r.Register(adapter)
	}
	return r
}

// NewEmpty returns a registry with no adapters.
func NewEmpty(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		logger:   logger,
		adapters: make(map[string]types.GameAdapter),
		byBlock:  make(map[string]types.GameAdapter),
	}
}

// Register adds an adapter under its year. Registering a year twice
// overwrites the earlier adapter: last writer wins.
func (r *Registry) Register(adapter types.GameAdapter) {
	info := adapter.Info()
	if prev, exists := r.adapters[info.Year]; exists {
		delete(r.byBlock, prev.BlockKey())
		r.logger.WithFields(logrus.Fields{
			"year": info.Year,
			"game": info.GameCode,
		}).Warn("season already registered, overwriting")
	}
	r.adapters[info.Year] = adapter
	r.byBlock[adapter.BlockKey()] = adapter
	r.logger.WithFields(logrus.Fields{
		"year": info.Year,
		"game": info.GameCode,
		"name": info.Name,
	}).Debug("season registered")
}

// Lookup returns the adapter for a year.
// Returns ErrUnknownSeason when the year has no registered adapter.
func (r *Registry) Lookup(year string) (types.GameAdapter, error) {
	adapter, ok := r.adapters[year]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownSeason, year)
	}
	return adapter, nil
}

// LookupBlock returns the adapter owning a document block key.
// Returns ErrUnknownSeason when no adapter claims the key.
func (r *Registry) LookupBlock(key string) (types.GameAdapter, error) {
	adapter, ok := r.byBlock[key]
	if !ok {
		return nil, fmt.Errorf("%w: block %q", types.ErrUnknownSeason, key)
	}
	return adapter, nil
}

// Games returns the identities of all registered seasons, sorted by year.
func (r *Registry) Games() []types.GameInfo {
	infos := make([]types.GameInfo, 0, len(r.adapters))
	for _, a := range r.adapters {
		infos = append(infos, a.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Year < infos[j].Year })
	return infos
}
