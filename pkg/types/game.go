package types

import "errors"

// GameInfo identifies a season's ruleset.
type GameInfo struct {
	GameCode string
	Year     string
	Name     string
}

// GameAdapter is the per-season implementation of the import, export, merge,
// and delete capability set. Each season plugs in its own record shape and
// identity rules; orchestrating code never sees the concrete shapes.
//
// Adapters receive a Tx for every mutating operation so the caller can span
// adapter writes and base-table writes in one atomic unit.
type GameAdapter interface {
	// Info returns the season's identity.
	Info() GameInfo

	// BlockKey returns the top-level document key this adapter's records are
	// stored under in an EventDocument (for example "matches2018").
	BlockKey() string

	// LocalTables lists the store tables owned by this adapter. The deletion
	// coordinator declares them in its transaction.
	LocalTables() []string

	// ExportBlock serializes all of this adapter's rows for the event into
	// the season block of a document. Pure, no store writes.
	ExportBlock(event *Event) (RawBlock, error)

	// StripLocalIDs removes store-assigned IDs from the season block so the
	// document is safe to import into a different store.
	StripLocalIDs(block RawBlock) (RawBlock, error)

	// ImportSimple inserts or replaces the season block's rows wholesale,
	// with no merge. Used when the target has no existing data for the event.
	ImportSimple(tx Tx, block RawBlock) error

	// DeleteEvent removes all of this adapter's rows for the event.
	DeleteEvent(tx Tx, event *Event) error

	// BeginMerge classifies the season block's rows against existing local
	// rows and returns the candidates for caller confirmation.
	BeginMerge(block RawBlock, event *Event) (*MergeSession, error)

	// CompleteMerge applies the resolved decisions against the session's
	// candidates. Decisions referencing keys outside the session, or a
	// session computed from superseded store state, fail with
	// ErrStaleMergeState and nothing is applied.
	CompleteMerge(tx Tx, session *MergeSession, decisions []MergeDecision) error
}

// ErrUnknownSeason indicates a document or operation referenced a year with
// no registered game adapter.
var ErrUnknownSeason = errors.New("unknown season")
