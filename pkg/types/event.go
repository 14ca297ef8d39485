package types

import "time"

// Event sources. Records where an event's data originally came from.
const (
	SourceManual = "manual"
	SourceTBA    = "tba"
	SourceImport = "import"
)

// Event represents one competition instance, identified by year + event code.
type Event struct {
	ID        string    `json:"id,omitempty"` // UUID v7, store-assigned.
	Year      string    `json:"year"`
	EventCode string    `json:"eventCode"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// EventTeam records a team's attendance at an event.
type EventTeam struct {
	ID         string `json:"id,omitempty"` // UUID v7, store-assigned.
	Year       string `json:"year"`
	EventCode  string `json:"eventCode"`
	TeamNumber string `json:"teamNumber"`
}

// EventMatch holds cross-season match metadata: schedule and alliances.
// Season-specific scouting data lives in the per-season match tables.
type EventMatch struct {
	ID            string    `json:"id,omitempty"` // UUID v7, store-assigned.
	Year          string    `json:"year"`
	EventCode     string    `json:"eventCode"`
	MatchNumber   string    `json:"matchNumber"`
	ScheduledTime time.Time `json:"scheduledTime,omitzero"`
	Red           []string  `json:"red"`  // red alliance team numbers
	Blue          []string  `json:"blue"` // blue alliance team numbers
}

// Game is a season descriptor: a year-scoped ruleset with its own match
// record schema. Modules lists the UI module references the original client
// loads per season; the core carries them but never interprets them.
// A Game is immutable once registered.
type Game struct {
	Year     string   `json:"year"`
	GameCode string   `json:"gameCode"`
	Name     string   `json:"name"`
	Modules  []string `json:"modules,omitempty"`
}
