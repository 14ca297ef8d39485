package sqlite

import (
	"database/sql"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// teamMatches2018Spec wires the 2018 season match table, natural key
// (event_code, match_number, team_number).
var teamMatches2018Spec = &tableSpec{
	idCol: "id",
	columns: []string{
		"id", "event_code", "team_number", "match_number",
		"auto_line", "ownership_sec", "vault_cubes", "climbed",
		"foul_count", "notes", "score",
	},
	filterCols: map[string]bool{
		"id":           true,
		"event_code":   true,
		"team_number":  true,
		"match_number": true,
	},
	scan:   scanTeamMatch2018,
	values: teamMatch2018Values,
}

func scanTeamMatch2018(rows *sql.Rows) (any, error) {
	var m types.TeamMatch2018
	if err := rows.Scan(
		&m.ID, &m.EventCode, &m.TeamNumber, &m.MatchNumber,
		&m.AutoLine, &m.OwnershipSec, &m.VaultCubes, &m.Climbed,
		&m.FoulCount, &m.Notes, &m.Score,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func teamMatch2018Values(row any) ([]any, error) {
	m, ok := row.(*types.TeamMatch2018)
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
		m.AutoLine, m.OwnershipSec, m.VaultCubes, m.Climbed,
		m.FoulCount, m.Notes, m.Score,
	}, nil
}
