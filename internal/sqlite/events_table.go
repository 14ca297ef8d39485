package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// eventsSpec wires the events table: one row per competition instance,
// natural key (year, event_code).
var eventsSpec = &tableSpec{
	idCol:   "id",
	columns: []string{"id", "year", "event_code", "name", "source", "created_at", "updated_at"},
	filterCols: map[string]bool{
		"id":         true,
		"year":       true,
		"event_code": true,
	},
	scan:   scanEvent,
	values: eventValues,
}

func scanEvent(rows *sql.Rows) (any, error) {
	var e types.Event
	var createdAt, updatedAt string
	if err := rows.Scan(&e.ID, &e.Year, &e.EventCode, &e.Name, &e.Source, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing event created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing event updated_at: %w", err)
	}
	return &e, nil
}

func eventValues(row any) ([]any, error) {
	e, ok := row.(*types.Event)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if e.Year == "" || e.EventCode == "" {
		return nil, types.ErrInvalidData
	}
	now := time.Now().UTC().Truncate(time.Second)
	if e.ID == "" {
		e.ID = newUUID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if e.Source == "" {
		e.Source = types.SourceManual
	}
	return []any{
		e.ID, e.Year, e.EventCode, e.Name, e.Source,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339),
	}, nil
}
