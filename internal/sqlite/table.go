package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so a
// table can run against either the backend connection or an open transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// tableSpec describes one entity table: its columns in insert order, the
// columns Fetch and DeleteWhere may filter on, and the entity-specific scan
// and value functions. Specs are registered by the per-entity table files.
type tableSpec struct {
	idCol      string          // primary key column
	columns    []string        // insert column order, idCol first
	filterCols map[string]bool // indexed columns usable in filters
	scan       func(rows *sql.Rows) (any, error)
	values     func(row any) ([]any, error) // values in column order; assigns a fresh ID in place when empty
}

// tableSpecs maps table names to their specs.
var tableSpecs = map[string]*tableSpec{
	types.EventsTable:          eventsSpec,
	types.EventTeamsTable:      eventTeamsSpec,
	types.EventMatchesTable:    eventMatchesSpec,
	types.GamesTable:           gamesSpec,
	types.TeamMatches2018Table: teamMatches2018Spec,
	types.TeamMatches2019Table: teamMatches2019Spec,
}

// table implements types.Table for a single entity type, bound to either the
// backend connection or a transaction.
type table struct {
	name    string
	spec    *tableSpec
	backend *Backend
	q       querier
}

// newUUID generates a UUID v7 string for store-assigned local IDs.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Name returns the table name.
func (t *table) Name() string { return t.name }

// ensureAttached fails fast when the backend has been detached underneath us.
func (t *table) ensureAttached() error {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// ToArray returns every row in the table.
func (t *table) ToArray() ([]any, error) {
	return t.Fetch(nil)
}

// Fetch returns all rows matching the filter. Filter keys must be indexed
// columns of this table; unknown keys fail with ErrInvalidFilter.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	if err := t.ensureAttached(); err != nil {
		return nil, err
	}
	where, args, err := t.buildWhere(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(t.spec.columns, ", "), t.name, where)
	rows, err := t.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		row, err := t.spec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", t.name, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// BulkPut inserts or replaces rows. Rows without a local ID are assigned a
// UUID v7 in place; rows colliding on a natural key replace the existing row.
func (t *table) BulkPut(rows []any) error {
	if err := t.ensureAttached(); err != nil {
		return err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.spec.columns)), ", ")
	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.spec.columns, ", "), placeholders)

	for _, row := range rows {
		args, err := t.spec.values(row)
		if err != nil {
			return err
		}
		if _, err := t.q.Exec(query, args...); err != nil {
			return fmt.Errorf("putting %s row: %w", t.name, err)
		}
	}
	return nil
}

// BulkDelete removes rows by local ID. Missing IDs are ignored.
func (t *table) BulkDelete(ids []string) error {
	if err := t.ensureAttached(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", t.name, t.spec.idCol, placeholders)
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := t.q.Exec(query, args...); err != nil {
		return fmt.Errorf("deleting %s rows: %w", t.name, err)
	}
	return nil
}

// DeleteWhere removes all rows matching the filter and reports how many were
// deleted. An empty filter is refused; callers wanting a full wipe should say
// so with an explicit filter per row class.
func (t *table) DeleteWhere(filter map[string]any) (int, error) {
	if err := t.ensureAttached(); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, types.ErrInvalidFilter
	}
	where, args, err := t.buildWhere(filter)
	if err != nil {
		return 0, err
	}
	res, err := t.q.Exec(fmt.Sprintf("DELETE FROM %s%s", t.name, where), args...)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// buildWhere turns a filter into a WHERE clause with deterministic column
// order. Unknown columns fail with ErrInvalidFilter.
func (t *table) buildWhere(filter map[string]any) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !t.spec.filterCols[k] {
			return "", nil, fmt.Errorf("%w: column %q on table %s", types.ErrInvalidFilter, k, t.name)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conds[i] = k + " = ?"
		args[i] = filter[k]
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
