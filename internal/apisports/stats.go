package apisports

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/yourusername/edge-picks/internal/models"
)

// TeamStatistics fetches season-level team statistics. The payload shape is
// league-family specific; callers normalize through the ratings layer.
func (c *Client) TeamStatistics(ctx context.Context, league models.League, season string, teamID, leagueOverride int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.LeagueID(league, leagueOverride)))
	if s := NormalizeSeason(league, season); s != "" {
		params.Set("season", s)
	}
	if teamID > 0 {
		params.Set("team", strconv.Itoa(teamID))
	}

	env, err := c.get(ctx, league, "/teams/statistics", params)
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

// PlayerStatistics fetches per-player season statistics, one page at a time.
func (c *Client) PlayerStatistics(ctx context.Context, league models.League, season string, teamID, page int) (json.RawMessage, error) {
	params := url.Values{}
	if s := NormalizeSeason(league, season); s != "" {
		params.Set("season", s)
	}
	if teamID > 0 {
		params.Set("team", strconv.Itoa(teamID))
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	env, err := c.get(ctx, league, "/players", params)
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

// Standings fetches the league table for a season.
func (c *Client) Standings(ctx context.Context, league models.League, season string, leagueOverride int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.LeagueID(league, leagueOverride)))
	if s := NormalizeSeason(league, season); s != "" {
		params.Set("season", s)
	}

	env, err := c.get(ctx, league, "/standings", params)
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

// InjuriesQuery narrows an injuries lookup.
type InjuriesQuery struct {
	League         models.League
	Season         string
	LeagueOverride int
	TeamID         int
	PlayerID       int
}

// Injuries fetches the current injury report.
//
// Provider rules differ per league family:
//   - nba/ncaab: not offered by the provider at all.
//   - nfl/ncaaf: require at least one of team or player.
//   - soccer: requires a competition (league override) and a season.
func (c *Client) Injuries(ctx context.Context, q InjuriesQuery) (json.RawMessage, error) {
	if q.League.IsBasketball() {
		return nil, NewProviderError("injuries", ErrCodeUnsupported, "injuries are not provided for basketball leagues", nil)
	}

	narrow := map[string]string{}
	if q.TeamID > 0 {
		narrow["team"] = strconv.Itoa(q.TeamID)
	}
	if q.PlayerID > 0 {
		narrow["player"] = strconv.Itoa(q.PlayerID)
	}
	switch {
	case q.League == models.LeagueSoccer:
		if q.LeagueOverride > 0 {
			narrow["league"] = strconv.Itoa(q.LeagueOverride)
		}
		narrow["season"] = NormalizeSeason(q.League, q.Season)
		if err := EnsureRequiredParams("injuries", []string{"league", "season"}, narrow); err != nil {
			return nil, err
		}
	default:
		if q.TeamID == 0 && q.PlayerID == 0 {
			return nil, NewProviderError("injuries", ErrCodeBadRequest, "injuries require at least one of team or player", nil)
		}
	}

	params := url.Values{}
	if err := applyParams(q.League, "injuries", params, narrow); err != nil {
		return nil, err
	}

	env, err := c.get(ctx, q.League, "/injuries", params)
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}
