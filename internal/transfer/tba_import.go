package transfer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// EventFetcher is the tournament-API collaborator the engine needs to import
// an event's roster and schedule. Retry and backoff policy belong to the
// implementation, not the core.
type EventFetcher interface {
	FetchEvent(ctx context.Context, year, code string) (*types.Event, error)
	FetchTeams(ctx context.Context, year, code string) ([]*types.EventTeam, error)
	FetchMatches(ctx context.Context, year, code string) ([]*types.EventMatch, error)
}

// ImportFromAPI fetches an event's metadata, teams, and match schedule from
// the tournament API and writes them in one transaction. Season scouting
// records are untouched; they come from scouts, not the API.
func (e *Engine) ImportFromAPI(ctx context.Context, fetcher EventFetcher, year, code string) error {
	event, err := fetcher.FetchEvent(ctx, year, code)
	if err != nil {
		return err
	}
	teams, err := fetcher.FetchTeams(ctx, year, code)
	if err != nil {
		return err
	}
	matches, err := fetcher.FetchMatches(ctx, year, code)
	if err != nil {
		return err
	}

	doc := &types.EventDocument{Event: event, Teams: teams, Matches: matches}
	err = e.store.Transaction(types.BaseTableNames, func(tx types.Tx) error {
		return e.putBaseRows(tx, doc)
	})
	if err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"year":  event.Year,
		"event": event.EventCode,
		"teams": len(teams),
	}).Info("event imported from tournament API")
	return e.catalog.Load()
}
