package apisports

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/yourusername/edge-picks/internal/models"
)

// OddsQuery narrows an odds lookup to a fixture and optional bookmaker/bet.
type OddsQuery struct {
	League      models.League
	FixtureID   int64
	BookmakerID int
	BetID       int
}

// OddsForFixture fetches bookmaker odds for a single fixture. The raw
// response is returned for the odds normalizer; callers should not depend
// on its shape.
func (c *Client) OddsForFixture(ctx context.Context, q OddsQuery) (json.RawMessage, error) {
	params := url.Values{}
	// Soccer keys the odds endpoint by fixture, the v1 families by game.
	if q.League == models.LeagueSoccer {
		params.Set("fixture", strconv.FormatInt(q.FixtureID, 10))
	} else {
		params.Set("game", strconv.FormatInt(q.FixtureID, 10))
	}

	narrow := map[string]string{}
	if q.BookmakerID > 0 {
		narrow["bookmaker"] = strconv.Itoa(q.BookmakerID)
	}
	if q.BetID > 0 {
		narrow["bet"] = strconv.Itoa(q.BetID)
	}
	if err := applyParams(q.League, "odds", params, narrow); err != nil {
		return nil, err
	}

	env, err := c.get(ctx, q.League, "/odds", params)
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

// Bookmaker identifies a bookmaker present in an odds payload.
type Bookmaker struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BookmakersForFixture lists the bookmakers quoting a fixture. Useful for
// discovering a preferred bookmaker id.
func (c *Client) BookmakersForFixture(ctx context.Context, league models.League, fixtureID int64) ([]Bookmaker, error) {
	raw, err := c.OddsForFixture(ctx, OddsQuery{League: league, FixtureID: fixtureID})
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Bookmakers []Bookmaker `json:"bookmakers"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, NewProviderError("odds", ErrCodeInvalidData, "unparseable odds payload", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0].Bookmakers, nil
}
