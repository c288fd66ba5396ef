package apisports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-picks/internal/models"
)

const soccerFixturesPayload = `[
  {
    "fixture": {"id": 1378969, "date": "2025-08-16T14:00:00+00:00", "status": {"short": "FT"}},
    "league": {"id": 39, "season": 2025},
    "teams": {"home": {"name": "Arsenal"}, "away": {"name": "Chelsea"}},
    "goals": {"home": 2, "away": 1}
  },
  {
    "fixture": {"id": 1378970, "date": "2025-08-16T16:30:00+00:00", "status": {"short": "NS"}},
    "league": {"id": 39, "season": 2025},
    "teams": {"home": {"name": "Liverpool"}, "away": {"name": "Everton"}},
    "goals": {"home": null, "away": null}
  }
]`

const nflFixturesPayload = `[
  {
    "id": 7712,
    "date": "2024-11-03T18:00:00Z",
    "status": {"short": "FT", "long": "Finished"},
    "teams": {"home": {"name": "Kansas City Chiefs", "code": "KC"}, "away": {"name": "Buffalo Bills", "code": "BUF"}},
    "scores": {"home": {"total": 27}, "away": {"total": 20}}
  }
]`

const basketballFixturesPayload = `[
  {
    "id": 4301,
    "date": "2025-01-15T00:30:00+00:00",
    "status": {"short": "NS"},
    "teams": {"home": {"name": "Boston Celtics"}, "away": {"name": "Miami Heat"}},
    "scores": {"home": null, "away": null}
  }
]`

func TestParseFixturesSoccer(t *testing.T) {
	fixtures, err := ParseFixtures(models.LeagueSoccer, json.RawMessage(soccerFixturesPayload))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	done := fixtures[0]
	assert.EqualValues(t, 1378969, done.ProviderID)
	assert.Equal(t, "Arsenal", done.HomeTeam)
	assert.Equal(t, "Chelsea", done.AwayTeam)
	assert.Equal(t, 2025, done.Season)
	assert.Equal(t, models.FixtureFinished, done.Status)
	require.NotNil(t, done.HomeScore)
	assert.Equal(t, 2, *done.HomeScore)
	assert.Equal(t, 1, done.Margin())
	assert.Equal(t, 3, done.TotalPoints())

	upcoming := fixtures[1]
	assert.Equal(t, models.FixtureScheduled, upcoming.Status)
	assert.Nil(t, upcoming.HomeScore)
}

func TestParseFixturesNFL(t *testing.T) {
	fixtures, err := ParseFixtures(models.LeagueNFL, json.RawMessage(nflFixturesPayload))
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	f := fixtures[0]
	assert.EqualValues(t, 7712, f.ProviderID)
	assert.Equal(t, "Kansas City Chiefs", f.HomeTeam)
	assert.Equal(t, models.FixtureFinished, f.Status)
	require.NotNil(t, f.HomeScore)
	assert.Equal(t, 27, *f.HomeScore)
	assert.Equal(t, 20, *f.AwayScore)
	assert.True(t, f.IsFinished())
}

func TestParseFixturesBasketballScheduled(t *testing.T) {
	fixtures, err := ParseFixtures(models.LeagueNBA, json.RawMessage(basketballFixturesPayload))
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, models.FixtureScheduled, fixtures[0].Status)
	assert.False(t, fixtures[0].IsFinished())
}

func TestParseFixturesSkipsEntriesWithoutID(t *testing.T) {
	payload := `[{"date": "2025-01-15T00:00:00Z", "teams": {"home": {"name": "A"}, "away": {"name": "B"}}}]`
	fixtures, err := ParseFixtures(models.LeagueNBA, json.RawMessage(payload))
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestParseFixturesInvalidPayload(t *testing.T) {
	_, err := ParseFixtures(models.LeagueNBA, json.RawMessage(`{"not":"a list"}`))
	require.Error(t, err)
	pe, ok := err.(*ProviderError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidData, pe.Code)
}

func TestNormalizeSeason(t *testing.T) {
	assert.Equal(t, "2024", NormalizeSeason(models.LeagueNBA, "2024-2025"))
	assert.Equal(t, "2024", NormalizeSeason(models.LeagueNBA, "2024"))
	assert.Equal(t, "2024", NormalizeSeason(models.LeagueNFL, "2024"))
	// Football seasons keep the full label digits.
	assert.Equal(t, "2024", NormalizeSeason(models.LeagueSoccer, "2024"))
	assert.Equal(t, "", NormalizeSeason(models.LeagueNBA, ""))
}
