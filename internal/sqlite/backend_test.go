// Unit tests for the SQLite backend lifecycle, table operations, and
// declared-table transactions.
package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// setupBackend creates an attached Backend over a temp directory.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachDetachLifecycle(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	require.NoError(t, b.Attach(config))
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.GetTable(types.EventsTable)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestAttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "papyrus"}), types.ErrBackendUnknown)
}

func TestGetTableUnknownName(t *testing.T) {
	b := setupBackend(t)
	_, err := b.GetTable("team_matches_1992")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestEventsBulkPutAndFetch(t *testing.T) {
	b := setupBackend(t)
	tbl, err := b.GetTable(types.EventsTable)
	require.NoError(t, err)

	e := &types.Event{Year: "2018", EventCode: "TEST1", Name: "Test Event"}
	require.NoError(t, tbl.BulkPut([]any{e}))
	assert.NotEmpty(t, e.ID, "BulkPut assigns a local ID in place")
	assert.False(t, e.CreatedAt.IsZero())

	rows, err := tbl.Fetch(map[string]any{"year": "2018", "event_code": "TEST1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got := rows[0].(*types.Event)
	assert.Equal(t, "Test Event", got.Name)
	assert.Equal(t, types.SourceManual, got.Source)
}

func TestBulkPutDeduplicatesNaturalKey(t *testing.T) {
	b := setupBackend(t)
	tbl, err := b.GetTable(types.TeamMatches2018Table)
	require.NoError(t, err)

	first := &types.TeamMatch2018{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100", Score: 30}
	second := &types.TeamMatch2018{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100", Score: 45}
	require.NoError(t, tbl.BulkPut([]any{first}))
	require.NoError(t, tbl.BulkPut([]any{second}))

	rows, err := tbl.ToArray()
	require.NoError(t, err)
	require.Len(t, rows, 1, "same natural key must not duplicate")
	assert.Equal(t, 45, rows[0].(*types.TeamMatch2018).Score)
}

func TestFetchRejectsUnindexedColumn(t *testing.T) {
	b := setupBackend(t)
	tbl, err := b.GetTable(types.EventsTable)
	require.NoError(t, err)

	_, err = tbl.Fetch(map[string]any{"name": "sneaky"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestDeleteWhere(t *testing.T) {
	b := setupBackend(t)
	tbl, err := b.GetTable(types.EventTeamsTable)
	require.NoError(t, err)

	require.NoError(t, tbl.BulkPut([]any{
		&types.EventTeam{Year: "2018", EventCode: "TEST1", TeamNumber: "100"},
		&types.EventTeam{Year: "2018", EventCode: "TEST1", TeamNumber: "200"},
		&types.EventTeam{Year: "2018", EventCode: "OTHER", TeamNumber: "100"},
	}))

	n, err := tbl.DeleteWhere(map[string]any{"year": "2018", "event_code": "TEST1"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := tbl.ToArray()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "OTHER", rows[0].(*types.EventTeam).EventCode)

	_, err = tbl.DeleteWhere(nil)
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestBulkDelete(t *testing.T) {
	b := setupBackend(t)
	tbl, err := b.GetTable(types.TeamMatches2019Table)
	require.NoError(t, err)

	m := &types.TeamMatch2019{EventCode: "TEST1", MatchNumber: "1", TeamNumber: "100"}
	require.NoError(t, tbl.BulkPut([]any{m}))

	require.NoError(t, tbl.BulkDelete([]string{m.ID, "no-such-id"}))
	rows, err := tbl.ToArray()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactionCommitsAtomically(t *testing.T) {
	b := setupBackend(t)

	err := b.Transaction([]string{types.EventsTable, types.EventTeamsTable}, func(tx types.Tx) error {
		events, err := tx.Table(types.EventsTable)
		if err != nil {
			return err
		}
		if err := events.BulkPut([]any{&types.Event{Year: "2018", EventCode: "TEST1", Name: "Test"}}); err != nil {
			return err
		}
		teams, err := tx.Table(types.EventTeamsTable)
		if err != nil {
			return err
		}
		return teams.BulkPut([]any{&types.EventTeam{Year: "2018", EventCode: "TEST1", TeamNumber: "100"}})
	})
	require.NoError(t, err)

	events, err := mustTable(b, types.EventsTable).ToArray()
	require.NoError(t, err)
	assert.Len(t, events, 1)
	teams, err := mustTable(b, types.EventTeamsTable).ToArray()
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	b := setupBackend(t)
	boom := errors.New("boom")

	err := b.Transaction([]string{types.EventsTable}, func(tx types.Tx) error {
		events, err := tx.Table(types.EventsTable)
		if err != nil {
			return err
		}
		if err := events.BulkPut([]any{&types.Event{Year: "2018", EventCode: "TEST1", Name: "Test"}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := mustTable(b, types.EventsTable).ToArray()
	require.NoError(t, err)
	assert.Empty(t, rows, "rolled-back writes must not be visible")
}

func TestTransactionRejectsUndeclaredTable(t *testing.T) {
	b := setupBackend(t)

	err := b.Transaction([]string{types.EventsTable}, func(tx types.Tx) error {
		_, err := tx.Table(types.EventTeamsTable)
		return err
	})
	assert.ErrorIs(t, err, types.ErrTableNotDeclared)

	err = b.Transaction([]string{"team_matches_1992"}, func(tx types.Tx) error { return nil })
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func mustTable(b *Backend, name string) types.Table {
	tbl, err := b.GetTable(name)
	if err != nil {
		panic(err)
	}
	return tbl
}
