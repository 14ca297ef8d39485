// Package tba is a client for The Blue Alliance read API (v3), mapping event,
// team, and match payloads onto scoutbase entities. The client performs no
// retries; a failed call is surfaced to the user for re-invocation.
package tba

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// DefaultBaseURL is the production TBA API endpoint.
const DefaultBaseURL = "https://www.thebluealliance.com/api/v3"

const authHeader = "X-TBA-Auth-Key"

// Client talks to The Blue Alliance API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *logrus.Logger
}

// New creates a client. An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey string, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// eventKey is TBA's event identifier: year followed by lowercased code.
func eventKey(year, code string) string {
	return year + strings.ToLower(code)
}

// get performs one authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set(authHeader, c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tba request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("tba request")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tba request %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tba response %s: %w", path, err)
	}
	return nil
}

// tbaEvent mirrors the fields we use from the TBA event payload.
type tbaEvent struct {
	Name      string `json:"name"`
	EventCode string `json:"event_code"`
	Year      int    `json:"year"`
}

// tbaTeam mirrors the simple-team payload.
type tbaTeam struct {
	TeamNumber int `json:"team_number"`
}

// tbaMatch mirrors the simple-match payload.
type tbaMatch struct {
	MatchNumber int    `json:"match_number"`
	CompLevel   string `json:"comp_level"`
	Time        int64  `json:"time"`
	Alliances   struct {
		Red  tbaAlliance `json:"red"`
		Blue tbaAlliance `json:"blue"`
	} `json:"alliances"`
}

type tbaAlliance struct {
	TeamKeys []string `json:"team_keys"`
}

// FetchEvent retrieves one event's metadata.
func (c *Client) FetchEvent(ctx context.Context, year, code string) (*types.Event, error) {
	var payload tbaEvent
	if err := c.get(ctx, "/event/"+eventKey(year, code), &payload); err != nil {
		return nil, err
	}
	return &types.Event{
		Year:      strconv.Itoa(payload.Year),
		EventCode: strings.ToUpper(payload.EventCode),
		Name:      payload.Name,
		Source:    types.SourceTBA,
	}, nil
}

// FetchTeams retrieves the teams attending an event.
func (c *Client) FetchTeams(ctx context.Context, year, code string) ([]*types.EventTeam, error) {
	var payload []tbaTeam
	if err := c.get(ctx, "/event/"+eventKey(year, code)+"/teams/simple", &payload); err != nil {
		return nil, err
	}
	teams := make([]*types.EventTeam, len(payload))
	for i, t := range payload {
		teams[i] = &types.EventTeam{
			Year:       year,
			EventCode:  strings.ToUpper(code),
			TeamNumber: strconv.Itoa(t.TeamNumber),
		}
	}
	return teams, nil
}

// FetchMatches retrieves an event's qualification match schedule.
func (c *Client) FetchMatches(ctx context.Context, year, code string) ([]*types.EventMatch, error) {
	var payload []tbaMatch
	if err := c.get(ctx, "/event/"+eventKey(year, code)+"/matches/simple", &payload); err != nil {
		return nil, err
	}
	var matches []*types.EventMatch
	for _, m := range payload {
		if m.CompLevel != "qm" {
			continue
		}
		match := &types.EventMatch{
			Year:        year,
			EventCode:   strings.ToUpper(code),
			MatchNumber: strconv.Itoa(m.MatchNumber),
			Red:         teamNumbers(m.Alliances.Red.TeamKeys),
			Blue:        teamNumbers(m.Alliances.Blue.TeamKeys),
		}
		if m.Time > 0 {
			match.ScheduledTime = time.Unix(m.Time, 0).UTC()
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// teamNumbers strips the "frc" prefix off TBA team keys.
func teamNumbers(keys []string) []string {
	numbers := make([]string, len(keys))
	for i, k := range keys {
		numbers[i] = strings.TrimPrefix(k, "frc")
	}
	return numbers
}
