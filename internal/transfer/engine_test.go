package transfer

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc-tools/scoutbase/internal/catalog"
	"github.com/frc-tools/scoutbase/internal/game"
	"github.com/frc-tools/scoutbase/internal/game/deepspace"
	"github.com/frc-tools/scoutbase/internal/game/powerup"
	"github.com/frc-tools/scoutbase/internal/sqlite"
	"github.com/frc-tools/scoutbase/pkg/types"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// setupEngine wires a full engine with the 2018 and 2019 adapters over a
// fresh store.
func setupEngine(t *testing.T) (*Engine, types.Store) {
	t.Helper()
	b := sqlite.NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })

	logger := quietLogger()
	registry := game.NewEmpty(logger)
	registry.Register(powerup.New(b, logger))
	registry.Register(deepspace.New(b, logger))
	cat := catalog.New(b, registry, logger)
	require.NoError(t, cat.SyncGames())
	return New(b, registry, cat, logger), b
}

func sampleDoc() *types.EventDocument {
	block, _ := json.Marshal([]*types.TeamMatch2018{
		{ID: "foreign-id", EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100", Score: 30},
		{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "200", Score: 20},
	})
	return &types.EventDocument{
		Event: &types.Event{Year: "2018", EventCode: "TEST1", Name: "Test Event"},
		Teams: []*types.EventTeam{
			{Year: "2018", EventCode: "TEST1", TeamNumber: "100"},
			{Year: "2018", EventCode: "TEST1", TeamNumber: "200"},
		},
		Matches: []*types.EventMatch{
			{Year: "2018", EventCode: "TEST1", MatchNumber: "1", Red: []string{"100"}, Blue: []string{"200"}},
		},
		Seasons: map[string]types.RawBlock{"matches2018": block},
	}
}

func TestImportReplaceAll(t *testing.T) {
	e, store := setupEngine(t)

	plan, err := e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)
	assert.Nil(t, plan, "replaceAll commits without a plan")

	event, err := e.catalog.Event("2018", "TEST1")
	require.NoError(t, err)
	assert.Equal(t, types.SourceImport, event.Source)

	seasonTbl, err := store.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)
	rows, err := seasonTbl.ToArray()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		m := r.(*types.TeamMatch2018)
		assert.NotEmpty(t, m.ID)
		assert.NotEqual(t, "foreign-id", m.ID, "imported rows get fresh local IDs")
	}
}

func TestImportReplaceAllIdempotent(t *testing.T) {
	e, store := setupEngine(t)

	_, err := e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)
	_, err = e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)

	eventsTbl, err := store.GetTable(types.EventsTable)
	require.NoError(t, err)
	events, err := eventsTbl.ToArray()
	require.NoError(t, err)
	assert.Len(t, events, 1, "re-import must not duplicate the event")

	teamsTbl, err := store.GetTable(types.EventTeamsTable)
	require.NoError(t, err)
	teams, err := teamsTbl.ToArray()
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	seasonTbl, err := store.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)
	rows, err := seasonTbl.ToArray()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestImportMalformedBlockRollsBackEverything(t *testing.T) {
	e, store := setupEngine(t)

	doc := sampleDoc()
	doc.Seasons["matches2018"] = types.RawBlock(`{"bad":"shape"}`)

	_, err := e.ImportDocument(doc, ModeReplaceAll)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	eventsTbl, err := store.GetTable(types.EventsTable)
	require.NoError(t, err)
	events, err := eventsTbl.ToArray()
	require.NoError(t, err)
	assert.Empty(t, events, "a failing season block must roll back the base rows too")
}

func TestImportRejectsDocumentWithoutEvent(t *testing.T) {
	e, _ := setupEngine(t)
	doc := sampleDoc()
	doc.Event = nil
	_, err := e.ImportDocument(doc, ModeReplaceAll)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestImportRejectsDocumentWithNoKnownSeason(t *testing.T) {
	e, _ := setupEngine(t)
	doc := sampleDoc()
	doc.Seasons = map[string]types.RawBlock{"matches1992": types.RawBlock(`[]`)}
	_, err := e.ImportDocument(doc, ModeReplaceAll)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestImportRejectsUnknownMode(t *testing.T) {
	e, _ := setupEngine(t)
	_, err := e.ImportDocument(sampleDoc(), "upsert")
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestExportEventRoundTrip(t *testing.T) {
	e, _ := setupEngine(t)

	_, err := e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)

	event, err := e.catalog.Event("2018", "TEST1")
	require.NoError(t, err)
	doc, err := e.ExportEvent(event)
	require.NoError(t, err)

	assert.Equal(t, "TEST1", doc.Event.EventCode)
	assert.Len(t, doc.Teams, 2)
	assert.Len(t, doc.Matches, 1)
	require.Contains(t, doc.Seasons, "matches2018")

	var records []*types.TeamMatch2018
	require.NoError(t, json.Unmarshal(doc.Seasons["matches2018"], &records))
	require.Len(t, records, 2)
	assert.Equal(t, "100", records[0].TeamNumber)
	assert.Equal(t, "200", records[1].TeamNumber)

	// The document survives a wire round trip with the season block intact.
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var back types.EventDocument
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc.Event.EventCode, back.Event.EventCode)
	assert.Len(t, back.Teams, 2)
	require.Contains(t, back.Seasons, "matches2018")
}

func TestExportEventUnknownSeason(t *testing.T) {
	e, _ := setupEngine(t)
	_, err := e.ExportEvent(&types.Event{Year: "1992", EventCode: "OLD1"})
	assert.ErrorIs(t, err, types.ErrUnknownSeason)
}

func TestMergeImportFreshEventSkipsConfirmation(t *testing.T) {
	e, store := setupEngine(t)

	plan, err := e.ImportDocument(sampleDoc(), ModeMergeExisting)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Empty(t, plan.Sessions, "no local rows means nothing to confirm")

	require.NoError(t, e.CompleteImport(plan, nil))

	seasonTbl, err := store.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)
	rows, err := seasonTbl.ToArray()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMergeImportResolvesConflicts(t *testing.T) {
	e, store := setupEngine(t)

	// Seed local data, then re-import with one changed score.
	_, err := e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)

	doc := sampleDoc()
	block, err := json.Marshal([]*types.TeamMatch2018{
		{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100", Score: 45},
		{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "200", Score: 20},
		{EventCode: "TEST1", MatchNumber: "2", TeamNumber: "100", Score: 15},
	})
	require.NoError(t, err)
	doc.Seasons["matches2018"] = block

	plan, err := e.ImportDocument(doc, ModeMergeExisting)
	require.NoError(t, err)
	session, ok := plan.Sessions["matches2018"]
	require.True(t, ok)
	require.Len(t, session.Candidates, 3)

	decisions := make([]types.MergeDecision, 0, len(session.Candidates))
	for _, cand := range session.Candidates {
		action := types.DecideKeepLocal
		switch cand.Suggested {
		case types.MergeInsert:
			action = types.DecideInsert
		case types.MergeConflict:
			action = types.DecideAcceptIncoming
		}
		decisions = append(decisions, types.MergeDecision{Key: cand.Key, Action: action})
	}
	require.NoError(t, e.CompleteImport(plan, map[string][]types.MergeDecision{"matches2018": decisions}))

	seasonTbl, err := store.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)
	rows, err := seasonTbl.ToArray()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	scores := make(map[string]int)
	for _, r := range rows {
		m := r.(*types.TeamMatch2018)
		scores[m.MatchNumber+"/"+m.TeamNumber] = m.Score
	}
	assert.Equal(t, 45, scores["1/100"], "conflict resolved to incoming")
	assert.Equal(t, 20, scores["1/200"], "identical row untouched")
	assert.Equal(t, 15, scores["2/100"], "new row inserted")
}

func TestMergeImportStalePlanAborts(t *testing.T) {
	e, store := setupEngine(t)

	_, err := e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)

	doc := sampleDoc()
	block, err := json.Marshal([]*types.TeamMatch2018{
		{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100", Score: 45},
	})
	require.NoError(t, err)
	doc.Seasons["matches2018"] = block

	plan, err := e.ImportDocument(doc, ModeMergeExisting)
	require.NoError(t, err)
	require.Contains(t, plan.Sessions, "matches2018")

	// Another import lands between planning and confirmation.
	_, err = e.ImportDocument(sampleDoc(), ModeReplaceAll)
	require.NoError(t, err)

	session := plan.Sessions["matches2018"]
	decisions := map[string][]types.MergeDecision{"matches2018": {
		{Key: session.Candidates[0].Key, Action: types.DecideAcceptIncoming},
	}}
	err = e.CompleteImport(plan, decisions)
	assert.ErrorIs(t, err, types.ErrStaleMergeState)

	seasonTbl, err := store.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)
	rows, err := seasonTbl.ToArray()
	require.NoError(t, err)
	for _, r := range rows {
		m := r.(*types.TeamMatch2018)
		if m.MatchNumber == "1" && m.TeamNumber == "100" {
			assert.Equal(t, 30, m.Score, "stale commit must not apply")
		}
	}
}
