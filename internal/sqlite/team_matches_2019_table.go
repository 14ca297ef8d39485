package sqlite

import (
	"database/sql"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// teamMatches2019Spec wires the 2019 season match table, natural key
// (event_code, match_number, team_number).
var teamMatches2019Spec = &tableSpec{
	idCol: "id",
	columns: []string{
		"id", "event_code", "team_number", "match_number",
		"hatch_panels", "cargo_balls", "hab_level", "notes", "score",
	},
	filterCols: map[string]bool{
		"id":           true,
		"event_code":   true,
		"team_number":  true,
		"match_number": true,
	},
	scan:   scanTeamMatch2019,
	values: teamMatch2019Values,
}

func scanTeamMatch2019(rows *sql.Rows) (any, error) {
	var m types.TeamMatch2019
	if err := rows.Scan(
		&m.ID, &m.EventCode, &m.TeamNumber, &m.MatchNumber,
		&m.HatchPanels, &m.CargoBalls, &m.HabLevel, &m.Notes, &m.Score,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func teamMatch2019Values(row any) ([]any, error) {
	m, ok := row.(*types.TeamMatch2019)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if m.EventCode == "" || m.MatchNumber == "" || m.TeamNumber == "" {
		return nil, types.ErrInvalidData
	}
	if m.ID == "" {
		m.ID = newUUID()
	}
	return []any{
		m.ID, m.EventCode, m.TeamNumber, m.MatchNumber,
		m.HatchPanels, m.CargoBalls, m.HabLevel, m.Notes, m.Score,
	}, nil
}
