package game

import (
	"sort"
	"sync/atomic"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// Classify reconciles incoming rows against existing local rows by natural
// key. It only classifies; conflict resolution belongs to the caller.
//
//   - a key present only in incoming suggests insert
//   - a key present only locally, or with equal rows, suggests keepLocal
//   - both present with differing fields is a conflict
//
// Equal rows never surface as conflicts; adapters normalize representation
// differences before handing rows in. Candidates come back sorted by key for
// stable presentation.
func Classify(local, incoming []any, key func(any) types.NaturalKey, equal func(a, b any) bool) []types.MergeCandidate {
	localByKey := make(map[types.NaturalKey]any, len(local))
	for _, row := range local {
		localByKey[key(row)] = row
	}

	candidates := make([]types.MergeCandidate, 0, len(local)+len(incoming))
	seen := make(map[types.NaturalKey]bool, len(incoming))

	for _, row := range incoming {
		k := key(row)
		seen[k] = true
		existing, ok := localByKey[k]
		switch {
		case !ok:
			candidates = append(candidates, types.MergeCandidate{
				Key: k, Incoming: row, Suggested: types.MergeInsert,
			})
		case equal(existing, row):
			candidates = append(candidates, types.MergeCandidate{
				Key: k, Local: existing, Incoming: row, Suggested: types.MergeKeepLocal,
			})
		default:
			candidates = append(candidates, types.MergeCandidate{
				Key: k, Local: existing, Incoming: row, Suggested: types.MergeConflict,
			})
		}
	}

	for _, row := range local {
		k := key(row)
		if !seen[k] {
			candidates = append(candidates, types.MergeCandidate{
				Key: k, Local: row, Suggested: types.MergeKeepLocal,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Key.String() < candidates[j].Key.String()
	})
	return candidates
}

// Generation is a monotonically increasing merge token source. An adapter
// holds one per season table: BeginMerge stamps the session with the next
// value, and any later mutation of the table advances the generation so
// outstanding sessions turn stale.
type Generation struct {
	n atomic.Uint64
}

// Next advances the generation and returns the new value.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// Valid reports whether a session token still matches the current generation.
func (g *Generation) Valid(token uint64) bool {
	return token == g.n.Load()
}

// Invalidate advances the generation without issuing a token, turning every
// outstanding session stale.
func (g *Generation) Invalidate() {
	g.n.Add(1)
}
