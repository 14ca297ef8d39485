package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// gamesSpec wires the games table: one season descriptor per year. The year
// is the primary key; registering a game for a year that already has one
// replaces it.
var gamesSpec = &tableSpec{
	idCol:   "year",
	columns: []string{"year", "game_code", "name", "modules"},
	filterCols: map[string]bool{
		"year":      true,
		"game_code": true,
	},
	scan:   scanGame,
	values: gameValues,
}

func scanGame(rows *sql.Rows) (any, error) {
	var g types.Game
	var modules string
	if err := rows.Scan(&g.Year, &g.GameCode, &g.Name, &modules); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(modules), &g.Modules); err != nil {
		return nil, fmt.Errorf("parsing game modules: %w", err)
	}
	return &g, nil
}

func gameValues(row any) ([]any, error) {
	g, ok := row.(*types.Game)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if g.Year == "" || g.GameCode == "" {
		return nil, types.ErrInvalidData
	}
	modules, err := json.Marshal(g.Modules)
	if err != nil {
		return nil, err
	}
	return []any{g.Year, g.GameCode, g.Name, string(modules)}, nil
}
