// Package transfer converts between transportable event documents and record
// store rows, delegating season-specific shapes to game adapters. A document
// may come from a local file or a cloud-storage pick; both collapse to the
// same import entry point.
package transfer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/internal/catalog"
	"github.com/frc-tools/scoutbase/internal/game"
	"github.com/frc-tools/scoutbase/pkg/types"
)

// Import modes.
const (
	// ModeReplaceAll strips local identifiers and writes every block
	// wholesale, inside one transaction.
	ModeReplaceAll = "replaceAll"
	// ModeMergeExisting classifies season blocks against existing local rows
	// and defers to caller-confirmed merge decisions.
	ModeMergeExisting = "mergeExisting"
)

// Engine is the import/export engine.
type Engine struct {
	store    types.Store
	registry *game.Registry
	catalog  *catalog.Catalog
	logger   *logrus.Logger
}

// New creates an engine over a store, season registry, and catalog.
func New(store types.Store, registry *game.Registry, cat *catalog.Catalog, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{store: store, registry: registry, catalog: cat, logger: logger}
}

// ExportEvent wraps the event's metadata, teams, matches, and its season
// block into a transportable document. Pure, no store writes.
// Returns ErrUnknownSeason when the event's year has no registered adapter.
func (e *Engine) ExportEvent(event *types.Event) (*types.EventDocument, error) {
	adapter, err := e.registry.Lookup(event.Year)
	if err != nil {
		return nil, err
	}

	byEvent := map[string]any{"year": event.Year, "event_code": event.EventCode}
	teamsTbl, err := e.store.GetTable(types.EventTeamsTable)
	if err != nil {
		return nil, err
	}
	teamRows, err := teamsTbl.Fetch(byEvent)
	if err != nil {
		return nil, err
	}
	matchesTbl, err := e.store.GetTable(types.EventMatchesTable)
	if err != nil {
		return nil, err
	}
	matchRows, err := matchesTbl.Fetch(byEvent)
	if err != nil {
		return nil, err
	}

	block, err := adapter.ExportBlock(event)
	if err != nil {
		return nil, err
	}

	doc := &types.EventDocument{
		Event:   event,
		Teams:   make([]*types.EventTeam, len(teamRows)),
		Matches: make([]*types.EventMatch, len(matchRows)),
		Seasons: map[string]types.RawBlock{adapter.BlockKey(): block},
	}
	for i, r := range teamRows {
		doc.Teams[i] = r.(*types.EventTeam)
	}
	for i, r := range matchRows {
		doc.Matches[i] = r.(*types.EventMatch)
	}
	return doc, nil
}

// MergePlan is the intermediate state of a mergeExisting import: the season
// sessions awaiting caller confirmation and the blocks that can be written
// wholesale because the event has no local rows for them. CompleteImport
// commits the whole plan in one transaction.
type MergePlan struct {
	Doc      *types.EventDocument
	Sessions map[string]*types.MergeSession // block key -> session needing decisions
	simple   []string                       // block keys with no local data
}

// ImportDocument validates and imports a document.
//
// ModeReplaceAll commits immediately and returns a nil plan. Partial imports
// are never observable: event, teams, matches, and every season block land
// in one transaction.
//
// ModeMergeExisting writes nothing; it returns a MergePlan whose sessions
// the caller resolves before CompleteImport.
//
// A document without a recognizable event block, or without at least one
// season block matching a registered adapter, fails with ErrUnsupportedFormat
// before any store access.
func (e *Engine) ImportDocument(doc *types.EventDocument, mode string) (*MergePlan, error) {
	matched, err := e.matchAdapters(doc)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeReplaceAll:
		return nil, e.importReplaceAll(doc, matched)
	case ModeMergeExisting:
		return e.planMerge(doc, matched)
	default:
		return nil, fmt.Errorf("%w: import mode %q", types.ErrInvalidData, mode)
	}
}

// matchAdapters validates the document and resolves the adapter for each
// season block. Unknown blocks are skipped with a log line; a document with
// no matching block at all is unsupported.
func (e *Engine) matchAdapters(doc *types.EventDocument) (map[string]types.GameAdapter, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	matched := make(map[string]types.GameAdapter)
	for key := range doc.Seasons {
		adapter, err := e.registry.LookupBlock(key)
		if err != nil {
			e.logger.WithField("block", key).Warn("skipping unrecognized season block")
			continue
		}
		matched[key] = adapter
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no season block matches a registered game", types.ErrUnsupportedFormat)
	}
	return matched, nil
}

// importReplaceAll writes base rows and all matched season blocks in one
// transaction, stripping local identifiers first.
func (e *Engine) importReplaceAll(doc *types.EventDocument, matched map[string]types.GameAdapter) error {
	tables := append([]string{}, types.BaseTableNames...)
	for _, adapter := range matched {
		tables = append(tables, adapter.LocalTables()...)
	}

	err := e.store.Transaction(tables, func(tx types.Tx) error {
		if err := e.putBaseRows(tx, doc); err != nil {
			return err
		}
		for key, adapter := range matched {
			block, err := adapter.StripLocalIDs(doc.Seasons[key])
			if err != nil {
				return err
			}
			if err := adapter.ImportSimple(tx, block); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"year":  doc.Event.Year,
		"event": doc.Event.EventCode,
		"mode":  ModeReplaceAll,
	}).Info("event imported")
	return e.catalog.Load()
}

// planMerge classifies every matched block. Blocks whose candidates include
// local rows need confirmation; the rest import wholesale at CompleteImport.
func (e *Engine) planMerge(doc *types.EventDocument, matched map[string]types.GameAdapter) (*MergePlan, error) {
	plan := &MergePlan{
		Doc:      doc,
		Sessions: make(map[string]*types.MergeSession),
	}
	for key, adapter := range matched {
		block, err := adapter.StripLocalIDs(doc.Seasons[key])
		if err != nil {
			return nil, err
		}
		session, err := adapter.BeginMerge(block, doc.Event)
		if err != nil {
			return nil, err
		}
		if hasLocal(session) {
			plan.Sessions[key] = session
		} else {
			plan.simple = append(plan.simple, key)
		}
	}
	return plan, nil
}

// hasLocal reports whether any candidate carries an existing local row.
func hasLocal(session *types.MergeSession) bool {
	for _, c := range session.Candidates {
		if c.Local != nil {
			return true
		}
	}
	return false
}

// CompleteImport commits a merge plan: base rows, wholesale blocks, and the
// resolved decisions for every session, all in one transaction. Decisions
// must cover each session under its block key; a session resolved against
// superseded state aborts the whole import with ErrStaleMergeState.
func (e *Engine) CompleteImport(plan *MergePlan, decisions map[string][]types.MergeDecision) error {
	doc := plan.Doc
	tables := append([]string{}, types.BaseTableNames...)
	adapters := make(map[string]types.GameAdapter, len(plan.Sessions)+len(plan.simple))
	for key := range plan.Sessions {
		adapter, err := e.registry.LookupBlock(key)
		if err != nil {
			return err
		}
		adapters[key] = adapter
		tables = append(tables, adapter.LocalTables()...)
	}
	for _, key := range plan.simple {
		adapter, err := e.registry.LookupBlock(key)
		if err != nil {
			return err
		}
		adapters[key] = adapter
		tables = append(tables, adapter.LocalTables()...)
	}

	err := e.store.Transaction(tables, func(tx types.Tx) error {
		if err := e.putBaseRows(tx, doc); err != nil {
			return err
		}
		for _, key := range plan.simple {
			block, err := adapters[key].StripLocalIDs(doc.Seasons[key])
			if err != nil {
				return err
			}
			if err := adapters[key].ImportSimple(tx, block); err != nil {
				return err
			}
		}
		for key, session := range plan.Sessions {
			if err := adapters[key].CompleteMerge(tx, session, decisions[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"year":  doc.Event.Year,
		"event": doc.Event.EventCode,
		"mode":  ModeMergeExisting,
	}).Info("event imported")
	return e.catalog.Load()
}

// putBaseRows upserts the event, team, and match rows from a document with
// local identifiers cleared, normalizing each row's year and event code to
// the document's event block.
func (e *Engine) putBaseRows(tx types.Tx, doc *types.EventDocument) error {
	event := *doc.Event
	event.ID = ""
	if event.Source == "" {
		event.Source = types.SourceImport
	}
	eventsTbl, err := tx.Table(types.EventsTable)
	if err != nil {
		return err
	}
	// An existing event row with the same (year, eventCode) is replaced by
	// the natural-key index; its metadata comes from the document.
	if err := eventsTbl.BulkPut([]any{&event}); err != nil {
		return err
	}

	teamsTbl, err := tx.Table(types.EventTeamsTable)
	if err != nil {
		return err
	}
	teamRows := make([]any, len(doc.Teams))
	for i, t := range doc.Teams {
		team := *t
		team.ID = ""
		team.Year = event.Year
		team.EventCode = event.EventCode
		teamRows[i] = &team
	}
	if err := teamsTbl.BulkPut(teamRows); err != nil {
		return err
	}

	matchesTbl, err := tx.Table(types.EventMatchesTable)
	if err != nil {
		return err
	}
	matchRows := make([]any, len(doc.Matches))
	for i, m := range doc.Matches {
		match := *m
		match.ID = ""
		match.Year = event.Year
		match.EventCode = event.EventCode
		matchRows[i] = &match
	}
	return matchesTbl.BulkPut(matchRows)
}
