package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDocumentFlattensSeasonBlocks(t *testing.T) {
	doc := &EventDocument{
		Event: &Event{Year: "2018", EventCode: "TEST1", Name: "Test Event"},
		Teams: []*EventTeam{{Year: "2018", EventCode: "TEST1", TeamNumber: "100"}},
		Seasons: map[string]RawBlock{
			"matches2018": RawBlock(`[{"teamNumber":"100"}]`),
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	// Season blocks sit at the top level, not nested under a wrapper key.
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.Contains(t, top, "event")
	assert.Contains(t, top, "teams")
	assert.Contains(t, top, "matches2018")
	assert.NotContains(t, top, "seasons")
}

func TestEventDocumentRoundTrip(t *testing.T) {
	doc := &EventDocument{
		Event:   &Event{Year: "2018", EventCode: "TEST1", Name: "Test Event"},
		Teams:   []*EventTeam{{Year: "2018", EventCode: "TEST1", TeamNumber: "100"}},
		Matches: []*EventMatch{{Year: "2018", EventCode: "TEST1", MatchNumber: "1", Red: []string{"100"}, Blue: []string{"200"}}},
		Seasons: map[string]RawBlock{
			"matches2018": RawBlock(`[{"teamNumber":"100","score":30}]`),
			"matches2019": RawBlock(`[]`),
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back EventDocument
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc.Event.EventCode, back.Event.EventCode)
	require.Len(t, back.Teams, 1)
	require.Len(t, back.Matches, 1)
	assert.Equal(t, []string{"100"}, back.Matches[0].Red)
	assert.JSONEq(t, string(doc.Seasons["matches2018"]), string(back.Seasons["matches2018"]))
	assert.Contains(t, back.Seasons, "matches2019")
}

func TestEventDocumentUnknownSeasonKeysPreserved(t *testing.T) {
	raw := `{
		"event": {"year":"2018","eventCode":"TEST1","name":"Test"},
		"matches2099": [{"teamNumber":"1"}]
	}`
	var doc EventDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc.Seasons, "matches2099", "unknown blocks pass through for the engine to judge")
}

func TestEventDocumentValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  EventDocument
		ok   bool
	}{
		{"valid", EventDocument{Event: &Event{Year: "2018", EventCode: "TEST1"}}, true},
		{"nil event", EventDocument{}, false},
		{"missing year", EventDocument{Event: &Event{EventCode: "TEST1"}}, false},
		{"missing code", EventDocument{Event: &Event{Year: "2018"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
			}
		})
	}
}
