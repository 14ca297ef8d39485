// Package deepspace implements the game adapter for the 2019 season,
// Destination: Deep Space. Its scouting records live in the
// team_matches_2019 table and travel under the "matches2019" document block.
package deepspace

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/internal/game"
	"github.com/frc-tools/scoutbase/pkg/types"
)

// Season identity.
const (
	Year     = "2019"
	GameCode = "2019"
	Name     = "Destination: Deep Space"
	blockKey = "matches2019"
)

func init() {
	game.RegisterFactory(Year, func(store types.Store, logger *logrus.Logger) types.GameAdapter {
		return New(store, logger)
	})
}

// Adapter implements types.GameAdapter for the 2019 season.
type Adapter struct {
	store  types.Store
	logger *logrus.Logger
	gen    game.Generation
}

// New creates a 2019 adapter bound to a store.
func New(store types.Store, logger *logrus.Logger) *Adapter {
	if logger == nil {
		logger = logrus.New()
	}
	return &Adapter{store: store, logger: logger}
}

// Info returns the season's identity.
func (a *Adapter) Info() types.GameInfo {
	return types.GameInfo{GameCode: GameCode, Year: Year, Name: Name}
}

// BlockKey returns the document key for this season's records.
func (a *Adapter) BlockKey() string { return blockKey }

// LocalTables lists the store tables owned by this adapter.
func (a *Adapter) LocalTables() []string {
	return []string{types.TeamMatches2019Table}
}

// ExportBlock serializes all 2019 records for the event, sorted by match and
// team. Pure, no store writes.
func (a *Adapter) ExportBlock(event *types.Event) (types.RawBlock, error) {
	records, err := a.loadLocal(event.EventCode)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].MatchNumber != records[j].MatchNumber {
			return records[i].MatchNumber < records[j].MatchNumber
		}
		return records[i].TeamNumber < records[j].TeamNumber
	})
	return json.Marshal(records)
}

// StripLocalIDs clears store-assigned IDs from a season block.
func (a *Adapter) StripLocalIDs(block types.RawBlock) (types.RawBlock, error) {
	records, err := decodeBlock(block)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		r.ID = ""
	}
	return json.Marshal(records)
}

// ImportSimple inserts or replaces the block's rows wholesale, no merge.
func (a *Adapter) ImportSimple(tx types.Tx, block types.RawBlock) error {
	records, err := decodeBlock(block)
	if err != nil {
		return err
	}
	tbl, err := tx.Table(types.TeamMatches2019Table)
	if err != nil {
		return err
	}
	defer a.gen.Invalidate()
	return tbl.BulkPut(asRows(records))
}

// DeleteEvent removes all 2019 records for the event.
func (a *Adapter) DeleteEvent(tx types.Tx, event *types.Event) error {
	tbl, err := tx.Table(types.TeamMatches2019Table)
	if err != nil {
		return err
	}
	defer a.gen.Invalidate()
	_, err = tbl.DeleteWhere(map[string]any{"event_code": event.EventCode})
	return err
}

// BeginMerge classifies the block's rows against existing local rows for the
// event.
func (a *Adapter) BeginMerge(block types.RawBlock, event *types.Event) (*types.MergeSession, error) {
	incoming, err := decodeBlock(block)
	if err != nil {
		return nil, err
	}
	for _, r := range incoming {
		r.ID = ""
	}
	local, err := a.loadLocal(event.EventCode)
	if err != nil {
		return nil, err
	}

	candidates := game.Classify(asRows(local), asRows(incoming),
		func(row any) types.NaturalKey { return row.(*types.TeamMatch2019).Key() },
		func(x, y any) bool { return x.(*types.TeamMatch2019).Equal(y.(*types.TeamMatch2019)) },
	)
	return &types.MergeSession{
		Year:       Year,
		EventCode:  event.EventCode,
		Token:      a.gen.Next(),
		Candidates: candidates,
	}, nil
}

// CompleteMerge applies resolved decisions from a live session.
func (a *Adapter) CompleteMerge(tx types.Tx, session *types.MergeSession, decisions []types.MergeDecision) error {
	if !a.gen.Valid(session.Token) {
		return fmt.Errorf("%w: merge session superseded", types.ErrStaleMergeState)
	}

	var rows []any
	for _, d := range decisions {
		cand := session.Candidate(d.Key)
		if cand == nil {
			return fmt.Errorf("%w: no candidate for %s", types.ErrStaleMergeState, d.Key)
		}
		row, err := resolve(cand, d)
		if err != nil {
			return err
		}
		if row != nil {
			rows = append(rows, row)
		}
	}

	tbl, err := tx.Table(types.TeamMatches2019Table)
	if err != nil {
		return err
	}
	defer a.gen.Invalidate()
	return tbl.BulkPut(rows)
}

// resolve maps one decision to the row to write, or nil for a no-op.
func resolve(cand *types.MergeCandidate, d types.MergeDecision) (*types.TeamMatch2019, error) {
	switch d.Action {
	case types.DecideKeepLocal:
		return nil, nil
	case types.DecideInsert, types.DecideAcceptIncoming:
		if cand.Incoming == nil {
			return nil, fmt.Errorf("%w: no incoming row for %s", types.ErrStaleMergeState, d.Key)
		}
		row := cand.Incoming.(*types.TeamMatch2019)
		if cand.Local != nil {
			row.ID = cand.Local.(*types.TeamMatch2019).ID
		}
		return row, nil
	case types.DecideCustom:
		row, ok := d.Custom.(*types.TeamMatch2019)
		if !ok {
			return nil, fmt.Errorf("%w: custom row for %s", types.ErrInvalidData, d.Key)
		}
		if row.Key() != d.Key {
			return nil, fmt.Errorf("%w: custom row key mismatch for %s", types.ErrInvalidData, d.Key)
		}
		if cand.Local != nil {
			row.ID = cand.Local.(*types.TeamMatch2019).ID
		}
		return row, nil
	default:
		return nil, fmt.Errorf("%w: unknown merge action %q", types.ErrInvalidData, d.Action)
	}
}

// loadLocal fetches the event's records outside any transaction.
func (a *Adapter) loadLocal(eventCode string) ([]*types.TeamMatch2019, error) {
	tbl, err := a.store.GetTable(types.TeamMatches2019Table)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(map[string]any{"event_code": eventCode})
	if err != nil {
		return nil, err
	}
	records := make([]*types.TeamMatch2019, len(rows))
	for i, r := range rows {
		records[i] = r.(*types.TeamMatch2019)
	}
	return records, nil
}

// decodeBlock parses a season block.
// Returns ErrUnsupportedFormat when the block is not a record array.
func decodeBlock(block types.RawBlock) ([]*types.TeamMatch2019, error) {
	var records []*types.TeamMatch2019
	if err := json.Unmarshal(block, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, err)
	}
	return records, nil
}

func asRows(records []*types.TeamMatch2019) []any {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = r
	}
	return rows
}
