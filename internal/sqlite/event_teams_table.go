package sqlite

import (
	"database/sql"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// eventTeamsSpec wires the event_teams table: one row per team attending an
// event, natural key (year, event_code, team_number).
var eventTeamsSpec = &tableSpec{
	idCol:   "id",
	columns: []string{"id", "year", "event_code", "team_number"},
	filterCols: map[string]bool{
		"id":          true,
		"year":        true,
		"event_code":  true,
		"team_number": true,
	},
	scan:   scanEventTeam,
	values: eventTeamValues,
}

func scanEventTeam(rows *sql.Rows) (any, error) {
	var t types.EventTeam
	if err := rows.Scan(&t.ID, &t.Year, &t.EventCode, &t.TeamNumber); err != nil {
		return nil, err
	}
	return &t, nil
}

func eventTeamValues(row any) ([]any, error) {
	t, ok := row.(*types.EventTeam)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if t.Year == "" || t.EventCode == "" || t.TeamNumber == "" {
		return nil, types.ErrInvalidData
	}
	if t.ID == "" {
		t.ID = newUUID()
	}
	return []any{t.ID, t.Year, t.EventCode, t.TeamNumber}, nil
}
