package types

import "errors"

// Suggested merge actions produced by classification.
const (
	MergeInsert    = "insert"    // record only present in the import
	MergeKeepLocal = "keepLocal" // record only present locally, or identical
	MergeConflict  = "conflict"  // both present with differing fields
)

// Merge decision actions supplied by the caller when resolving candidates.
const (
	DecideInsert         = "insert"
	DecideKeepLocal      = "keepLocal"
	DecideAcceptIncoming = "acceptIncoming"
	DecideCustom         = "custom"
)

// MergeCandidate pairs the local and incoming versions of one natural key,
// with a suggested action. Classification never resolves conflicts itself;
// the caller confirms or edits each candidate before CompleteMerge.
type MergeCandidate struct {
	Key       NaturalKey
	Local     any // existing row, or nil
	Incoming  any // imported row, or nil
	Suggested string
}

// MergeDecision resolves one candidate. Custom carries a caller-edited row
// when Action is DecideCustom.
type MergeDecision struct {
	Key    NaturalKey
	Action string
	Custom any
}

// MergeSession is the intermediate value between classification and commit.
// The token ties decisions to the store state the candidates were computed
// from; CompleteMerge rejects a session whose token no longer matches with
// ErrStaleMergeState.
type MergeSession struct {
	Year       string
	EventCode  string
	Token      uint64
	Candidates []MergeCandidate
}

// Candidate returns the candidate for the given natural key, or nil when the
// key is not part of the session.
func (s *MergeSession) Candidate(key NaturalKey) *MergeCandidate {
	for i := range s.Candidates {
		if s.Candidates[i].Key == key {
			return &s.Candidates[i]
		}
	}
	return nil
}

// ErrStaleMergeState indicates a merge decision referenced a natural key or
// session no longer matching the current store state. The commit aborts with
// nothing applied.
var ErrStaleMergeState = errors.New("stale merge state")
