package sqlite

import "database/sql"

// Schema DDL. Natural keys are enforced with unique indexes so bulk imports
// and merges cannot create duplicates.
const (
	createEvents = `CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    year TEXT NOT NULL,
    event_code TEXT NOT NULL,
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createEventTeams = `CREATE TABLE IF NOT EXISTS event_teams (
    id TEXT PRIMARY KEY,
    year TEXT NOT NULL,
    event_code TEXT NOT NULL,
    team_number TEXT NOT NULL
);`

	createEventMatches = `CREATE TABLE IF NOT EXISTS event_matches (
    id TEXT PRIMARY KEY,
    year TEXT NOT NULL,
    event_code TEXT NOT NULL,
    match_number TEXT NOT NULL,
    scheduled_time TEXT,
    red TEXT NOT NULL,
    blue TEXT NOT NULL
);`

	createGames = `CREATE TABLE IF NOT EXISTS games (
    year TEXT PRIMARY KEY,
    game_code TEXT NOT NULL,
    name TEXT NOT NULL,
    modules TEXT NOT NULL
);`

	createTeamMatches2018 = `CREATE TABLE IF NOT EXISTS team_matches_2018 (
    id TEXT PRIMARY KEY,
    event_code TEXT NOT NULL,
    team_number TEXT NOT NULL,
    match_number TEXT NOT NULL,
    auto_line INTEGER NOT NULL,
    ownership_sec INTEGER NOT NULL,
    vault_cubes INTEGER NOT NULL,
    climbed INTEGER NOT NULL,
    foul_count INTEGER NOT NULL,
    notes TEXT NOT NULL,
    score INTEGER NOT NULL
);`

	createTeamMatches2019 = `CREATE TABLE IF NOT EXISTS team_matches_2019 (
    id TEXT PRIMARY KEY,
    event_code TEXT NOT NULL,
    team_number TEXT NOT NULL,
    match_number TEXT NOT NULL,
    hatch_panels INTEGER NOT NULL,
    cargo_balls INTEGER NOT NULL,
    hab_level INTEGER NOT NULL,
    notes TEXT NOT NULL,
    score INTEGER NOT NULL
);`
)

// Index DDL for natural keys and the composite lookups the catalog and
// deletion coordinator use.
const (
	idxEventsNatural       = `CREATE UNIQUE INDEX IF NOT EXISTS idx_events_year_code ON events(year, event_code);`
	idxEventTeamsNatural   = `CREATE UNIQUE INDEX IF NOT EXISTS idx_event_teams_natural ON event_teams(year, event_code, team_number);`
	idxEventMatchesNatural = `CREATE UNIQUE INDEX IF NOT EXISTS idx_event_matches_natural ON event_matches(year, event_code, match_number);`
	idxTM2018Natural       = `CREATE UNIQUE INDEX IF NOT EXISTS idx_tm2018_natural ON team_matches_2018(event_code, match_number, team_number);`
	idxTM2018Event         = `CREATE INDEX IF NOT EXISTS idx_tm2018_event ON team_matches_2018(event_code);`
	idxTM2019Natural       = `CREATE UNIQUE INDEX IF NOT EXISTS idx_tm2019_natural ON team_matches_2019(event_code, match_number, team_number);`
	idxTM2019Event         = `CREATE INDEX IF NOT EXISTS idx_tm2019_event ON team_matches_2019(event_code);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createEvents,
	createEventTeams,
	createEventMatches,
	createGames,
	createTeamMatches2018,
	createTeamMatches2019,
	idxEventsNatural,
	idxEventTeamsNatural,
	idxEventMatchesNatural,
	idxTM2018Natural,
	idxTM2018Event,
	idxTM2019Natural,
	idxTM2019Event,
}

// initSchema applies the schema, which is idempotent across attaches.
func initSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
