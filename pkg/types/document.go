package types

import (
	"encoding/json"
	"errors"
)

// RawBlock is one season's records as raw JSON, opaque to everything except
// the owning game adapter.
type RawBlock = json.RawMessage

// Reserved top-level document keys. Every other key names a season block.
const (
	docKeyEvent   = "event"
	docKeyTeams   = "teams"
	docKeyMatches = "matches"
)

// EventDocument is the transportable JSON form of one event: event metadata,
// generic teams and matches, and one raw block per season present in the
// export. On the wire season blocks sit at the top level keyed by each
// adapter's BlockKey.
type EventDocument struct {
	Event   *Event
	Teams   []*EventTeam
	Matches []*EventMatch
	Seasons map[string]RawBlock
}

// ErrUnsupportedFormat indicates a document failed structural validation or a
// picked file had the wrong MIME type. Surfaced before any store access.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// MarshalJSON flattens season blocks to the document's top level.
func (d *EventDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Seasons)+3)
	ev, err := json.Marshal(d.Event)
	if err != nil {
		return nil, err
	}
	out[docKeyEvent] = ev
	if d.Teams != nil {
		raw, err := json.Marshal(d.Teams)
		if err != nil {
			return nil, err
		}
		out[docKeyTeams] = raw
	}
	if d.Matches != nil {
		raw, err := json.Marshal(d.Matches)
		if err != nil {
			return nil, err
		}
		out[docKeyMatches] = raw
	}
	for key, block := range d.Seasons {
		out[key] = json.RawMessage(block)
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits reserved keys from season blocks.
func (d *EventDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = EventDocument{Seasons: make(map[string]RawBlock)}
	for key, val := range raw {
		switch key {
		case docKeyEvent:
			if err := json.Unmarshal(val, &d.Event); err != nil {
				return err
			}
		case docKeyTeams:
			if err := json.Unmarshal(val, &d.Teams); err != nil {
				return err
			}
		case docKeyMatches:
			if err := json.Unmarshal(val, &d.Matches); err != nil {
				return err
			}
		default:
			d.Seasons[key] = RawBlock(val)
		}
	}
	return nil
}

// Validate checks the document has a recognizable event block. Season block
// validation against registered adapters happens in the import engine, which
// knows the registry.
func (d *EventDocument) Validate() error {
	if d.Event == nil || d.Event.Year == "" || d.Event.EventCode == "" {
		return ErrUnsupportedFormat
	}
	return nil
}
