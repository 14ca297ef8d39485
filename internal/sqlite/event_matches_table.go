package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// eventMatchesSpec wires the event_matches table: schedule and alliances per
// match, natural key (year, event_code, match_number).
var eventMatchesSpec = &tableSpec{
	idCol:   "id",
	columns: []string{"id", "year", "event_code", "match_number", "scheduled_time", "red", "blue"},
	filterCols: map[string]bool{
		"id":           true,
		"year":         true,
		"event_code":   true,
		"match_number": true,
	},
	scan:   scanEventMatch,
	values: eventMatchValues,
}

func scanEventMatch(rows *sql.Rows) (any, error) {
	var m types.EventMatch
	var scheduled sql.NullString
	var red, blue string
	if err := rows.Scan(&m.ID, &m.Year, &m.EventCode, &m.MatchNumber, &scheduled, &red, &blue); err != nil {
		return nil, err
	}
	if scheduled.Valid && scheduled.String != "" {
		t, err := time.Parse(time.RFC3339, scheduled.String)
		if err != nil {
			return nil, fmt.Errorf("parsing match scheduled_time: %w", err)
		}
		m.ScheduledTime = t
	}
	if err := json.Unmarshal([]byte(red), &m.Red); err != nil {
		return nil, fmt.Errorf("parsing match red alliance: %w", err)
	}
	if err := json.Unmarshal([]byte(blue), &m.Blue); err != nil {
		return nil, fmt.Errorf("parsing match blue alliance: %w", err)
	}
	return &m, nil
}

func eventMatchValues(row any) ([]any, error) {
	m, ok := row.(*types.EventMatch)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if m.Year == "" || m.EventCode == "" || m.MatchNumber == "" {
		return nil, types.ErrInvalidData
	}
	if m.ID == "" {
		m.ID = newUUID()
	}
	var scheduled string
	if !m.ScheduledTime.IsZero() {
		scheduled = m.ScheduledTime.Format(time.RFC3339)
	}
	red, err := json.Marshal(m.Red)
	if err != nil {
		return nil, err
	}
	blue, err := json.Marshal(m.Blue)
	if err != nil {
		return nil, err
	}
	return []any{m.ID, m.Year, m.EventCode, m.MatchNumber, scheduled, string(red), string(blue)}, nil
}
