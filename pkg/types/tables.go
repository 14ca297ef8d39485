package types

// Standard table names for Store.GetTable. Season tables beyond these are
// declared by their game adapters via LocalTables.
const (
	EventsTable       = "events"
	EventTeamsTable   = "event_teams"
	EventMatchesTable = "event_matches"
	GamesTable        = "games"
)

// Season-specific match tables, one per registered game.
const (
	TeamMatches2018Table = "team_matches_2018"
	TeamMatches2019Table = "team_matches_2019"
)

// BaseTableNames lists the season-independent tables that every event owns
// rows in. The deletion coordinator always covers these.
var BaseTableNames = []string{
	EventsTable,
	EventTeamsTable,
	EventMatchesTable,
}
