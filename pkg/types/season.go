package types

// NaturalKey is the business identifier of a season match record, distinct
// from the store-assigned local ID. Merge and bulk import de-duplicate by it.
type NaturalKey struct {
	EventCode   string
	MatchNumber string
	TeamNumber  string
}

// String returns the canonical form used for map indexing.
func (k NaturalKey) String() string {
	return k.EventCode + "/" + k.MatchNumber + "/" + k.TeamNumber
}

// TeamMatch2018 is the scouting record for FIRST POWER UP (2018).
type TeamMatch2018 struct {
	ID           string `json:"id,omitempty"` // UUID v7, store-assigned.
	EventCode    string `json:"eventCode"`
	TeamNumber   string `json:"teamNumber"`
	MatchNumber  string `json:"matchNumber"`
	AutoLine     bool   `json:"autoLine"`
	OwnershipSec int    `json:"ownershipSec"`
	VaultCubes   int    `json:"vaultCubes"`
	Climbed      bool   `json:"climbed"`
	FoulCount    int    `json:"foulCount"`
	Notes        string `json:"notes"`
	Score        int    `json:"score"`
}

// Key returns the record's natural key.
func (m *TeamMatch2018) Key() NaturalKey {
	return NaturalKey{EventCode: m.EventCode, MatchNumber: m.MatchNumber, TeamNumber: m.TeamNumber}
}

// Equal reports whether two records carry identical field values, ignoring
// the store-assigned ID. Equal records are never surfaced as merge conflicts.
func (m *TeamMatch2018) Equal(o *TeamMatch2018) bool {
	a, b := *m, *o
	a.ID, b.ID = "", ""
	return a == b
}

// TeamMatch2019 is the scouting record for Destination: Deep Space (2019).
type TeamMatch2019 struct {
	ID          string `json:"id,omitempty"` // UUID v7, store-assigned.
	EventCode   string `json:"eventCode"`
	TeamNumber  string `json:"teamNumber"`
	MatchNumber string `json:"matchNumber"`
	HatchPanels int    `json:"hatchPanels"`
	CargoBalls  int    `json:"cargoBalls"`
	HabLevel    int    `json:"habLevel"`
	Notes       string `json:"notes"`
	Score       int    `json:"score"`
}

// Key returns the record's natural key.
func (m *TeamMatch2019) Key() NaturalKey {
	return NaturalKey{EventCode: m.EventCode, MatchNumber: m.MatchNumber, TeamNumber: m.TeamNumber}
}

// Equal reports whether two records carry identical field values, ignoring
// the store-assigned ID.
func (m *TeamMatch2019) Equal(o *TeamMatch2019) bool {
	a, b := *m, *o
	a.ID, b.ID = "", ""
	return a == b
}
