package apisports

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/edge-picks/internal/models"
)

// FixturesQuery narrows a fixtures lookup.
type FixturesQuery struct {
	League         models.League
	Date           string // YYYY-MM-DD, single-day lookup
	From           string // YYYY-MM-DD, range lookup
	To             string // YYYY-MM-DD, range lookup
	Season         string // "2024" or "2024-2025" (basketball accepts both)
	LeagueOverride int    // soccer competition id override
	Limit          int    // 0 means no cap
}

// FixturesByDate fetches the slate for a single day.
func (c *Client) FixturesByDate(ctx context.Context, q FixturesQuery) ([]*models.Fixture, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.LeagueID(q.League, q.LeagueOverride)))
	params.Set("timezone", "UTC")
	params.Set("date", q.Date)
	if season := NormalizeSeason(q.League, q.Season); season != "" {
		params.Set("season", season)
	}
	return c.fetchFixtures(ctx, q.League, params, q.Limit)
}

// FixturesRange fetches fixtures across a from/to date window, following
// the provider's pagination.
func (c *Client) FixturesRange(ctx context.Context, q FixturesQuery) ([]*models.Fixture, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.LeagueID(q.League, q.LeagueOverride)))
	params.Set("timezone", "UTC")
	params.Set("from", q.From)
	params.Set("to", q.To)
	if season := NormalizeSeason(q.League, q.Season); season != "" {
		params.Set("season", season)
	}
	return c.fetchFixtures(ctx, q.League, params, q.Limit)
}

func (c *Client) fetchFixtures(ctx context.Context, league models.League, params url.Values, limit int) ([]*models.Fixture, error) {
	pages, err := c.getPaginated(ctx, league, fixturesPath(league), params)
	if err != nil {
		return nil, err
	}

	var out []*models.Fixture
	for _, env := range pages {
		fixtures, err := ParseFixtures(league, env.Response)
		if err != nil {
			return nil, err
		}
		out = append(out, fixtures...)
		if limit > 0 && len(out) >= limit {
			return out[:limit], nil
		}
	}
	return out, nil
}

// fixturesPath returns the per-family games endpoint. Soccer calls them
// fixtures, everything else games.
func fixturesPath(league models.League) string {
	if league == models.LeagueSoccer {
		return "/fixtures"
	}
	return "/games"
}

// NormalizeSeason normalizes a season label for the provider. Basketball
// wants the starting year only, so "2024-2025" collapses to "2024".
func NormalizeSeason(league models.League, season string) string {
	if season == "" {
		return ""
	}
	s := season
	if league.IsBasketball() {
		if i := strings.Index(s, "-"); i > 0 {
			s = s[:i]
		}
	}
	var digits strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	return digits.String()
}

// rawFixture tolerates the shape differences between the soccer v3 payload
// and the v1 basketball/american-football payloads.
type rawFixture struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Fixture *struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status *struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	Game *struct {
		ID   int64  `json:"id"`
		Date string `json:"date"`
	} `json:"game"`
	Teams *struct {
		Home rawTeamRef `json:"home"`
		Away rawTeamRef `json:"away"`
	} `json:"teams"`
	Home  *rawTeamRef `json:"home"`
	Away  *rawTeamRef `json:"away"`
	Goals *struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
	Scores *struct {
		Home rawScoreRef `json:"home"`
		Away rawScoreRef `json:"away"`
	} `json:"scores"`
	Score *struct {
		Home rawScoreRef `json:"home"`
		Away rawScoreRef `json:"away"`
	} `json:"score"`
	Status *struct {
		Short string `json:"short"`
		Long  string `json:"long"`
	} `json:"status"`
	League *struct {
		Season json.RawMessage `json:"season"`
	} `json:"league"`
}

// ParseFixtures normalizes a raw fixtures response into domain fixtures.
// Entries without a resolvable id are skipped rather than failing the page.
func ParseFixtures(league models.League, response json.RawMessage) ([]*models.Fixture, error) {
	var raws []rawFixture
	if err := json.Unmarshal(response, &raws); err != nil {
		return nil, NewProviderError("fixtures", ErrCodeInvalidData, "unparseable fixtures payload", err)
	}

	fixtures := make([]*models.Fixture, 0, len(raws))
	for _, r := range raws {
		f := normalizeFixture(league, r)
		if f == nil {
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func normalizeFixture(league models.League, r rawFixture) *models.Fixture {
	now := time.Now().UTC()
	f := &models.Fixture{
		ID:        uuid.New(),
		League:    league,
		Status:    models.FixtureScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var date, statusShort string
	switch {
	case r.Fixture != nil && r.Fixture.ID != 0:
		f.ProviderID = r.Fixture.ID
		date = r.Fixture.Date
		if r.Fixture.Status != nil {
			statusShort = r.Fixture.Status.Short
		}
	case r.ID != 0:
		f.ProviderID = r.ID
		date = r.Date
	case r.Game != nil && r.Game.ID != 0:
		f.ProviderID = r.Game.ID
		date = r.Game.Date
	default:
		return nil
	}
	if date == "" {
		date = r.Date
	}
	if statusShort == "" && r.Status != nil {
		statusShort = r.Status.Short
	}

	if r.Teams != nil {
		f.HomeTeam = r.Teams.Home.Name
		f.AwayTeam = r.Teams.Away.Name
	}
	if f.HomeTeam == "" && r.Home != nil {
		f.HomeTeam = r.Home.Name
	}
	if f.AwayTeam == "" && r.Away != nil {
		f.AwayTeam = r.Away.Name
	}

	switch {
	case r.Goals != nil:
		f.HomeScore = r.Goals.Home
		f.AwayScore = r.Goals.Away
	case r.Scores != nil:
		f.HomeScore = r.Scores.Home.Total
		f.AwayScore = r.Scores.Away.Total
	case r.Score != nil:
		f.HomeScore = r.Score.Home.Total
		f.AwayScore = r.Score.Away.Total
	}

	if t, ok := parseFixtureTime(date); ok {
		f.StartTime = t
	}

	if r.League != nil {
		f.Season = parseSeason(r.League.Season)
	}

	f.Status = classifyStatus(statusShort, f)
	return f
}

// finishedStatuses are the provider's short codes for completed games.
var finishedStatuses = map[string]bool{
	"FT": true, "AET": true, "PEN": true, "AOT": true, "OT": true, "Final": true,
}

func classifyStatus(short string, f *models.Fixture) models.FixtureStatus {
	if finishedStatuses[short] {
		return models.FixtureFinished
	}
	switch short {
	case "CANC", "ABD", "PST":
		return models.FixtureCancelled
	}
	// v1 payloads often omit a usable status; treat a game with both
	// scores in the past as final.
	if f.HomeScore != nil && f.AwayScore != nil && f.StartTime.Before(time.Now().UTC().Add(-6*time.Hour)) {
		return models.FixtureFinished
	}
	return models.FixtureScheduled
}

// parseFixtureTime accepts the handful of timestamp layouts the provider
// emits across league families.
func parseFixtureTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseSeason reads a season that arrives as either 2024 or "2024".
func parseSeason(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.SplitN(s, "-", 2)[0]); err == nil {
			return v
		}
	}
	return 0
}
