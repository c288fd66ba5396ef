package odds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-picks/internal/models"
)

const soccerOddsPayload = `[
  {
    "bookmakers": [
      {
        "id": 8,
        "name": "Bet365",
        "bets": [
          {
            "id": 1,
            "name": "Match Winner",
            "values": [
              {"value": "Home", "odd": "1.90"},
              {"value": "Draw", "odd": "3.60"},
              {"value": "Away", "odd": "4.20"}
            ]
          },
          {
            "id": 3,
            "name": "Goals Over/Under",
            "values": [
              {"value": "Over 2.5", "odd": "1.95", "handicap": "2.5"},
              {"value": "Under 2.5", "odd": "1.85", "handicap": "2.5"}
            ]
          },
          {
            "id": 2,
            "name": "Asian Handicap",
            "values": [
              {"value": "Home -1.0", "odd": "1.96", "handicap": "-1.0"},
              {"value": "Away +1.0", "odd": "1.86", "handicap": "1.0"}
            ]
          }
        ]
      }
    ]
  }
]`

const nflOddsPayload = `[
  {
    "bookmakers": [
      {
        "id": 2,
        "name": "DraftKings",
        "bets": []
      },
      {
        "id": 4,
        "name": "FanDuel",
        "bets": [
          {
            "id": 1,
            "name": "Moneyline",
            "values": [
              {"value": "Home", "odd": "-135"},
              {"value": "Away", "odd": "+115"}
            ]
          },
          {
            "id": 2,
            "name": "Spreads",
            "values": [
              {"value": "Home", "odd": "-110", "handicap": "-3.5"},
              {"value": "Away", "odd": "-110", "handicap": "3.5"}
            ]
          },
          {
            "id": 3,
            "name": "Totals",
            "values": [
              {"value": "Over", "odd": "-105", "handicap": "47.5"},
              {"value": "Under", "odd": "-115", "handicap": "47.5"}
            ]
          }
        ]
      }
    ]
  }
]`

func TestNormalizeSoccerPayload(t *testing.T) {
	book := Normalize(json.RawMessage(soccerOddsPayload), models.LeagueSoccer, 1378969, 0)
	require.True(t, book.HasMarkets())
	assert.Equal(t, "Bet365", book.Bookmaker)
	assert.Equal(t, 8, book.BookmakerID)

	require.NotNil(t, book.Moneyline)
	require.NotNil(t, book.Moneyline.Home)
	require.NotNil(t, book.Moneyline.Draw)
	assert.Equal(t, "1.9", book.Moneyline.Home.Value.String())
	assert.Equal(t, models.PriceDecimal, book.Moneyline.Home.Format)

	require.NotNil(t, book.Total)
	assert.Equal(t, 2.5, book.Total.Line)
	require.NotNil(t, book.Total.Over)
	require.NotNil(t, book.Total.Under)

	require.NotNil(t, book.Spread)
	assert.Equal(t, -1.0, book.Spread.Line)
}

func TestNormalizeAmericanFootballPayload(t *testing.T) {
	book := Normalize(json.RawMessage(nflOddsPayload), models.LeagueNFL, 7712, 0)
	require.True(t, book.HasMarkets())
	// First bookmaker has no bets; normalizer falls through to FanDuel.
	assert.Equal(t, "FanDuel", book.Bookmaker)

	require.NotNil(t, book.Moneyline)
	require.NotNil(t, book.Moneyline.Home)
	assert.Nil(t, book.Moneyline.Draw)
	assert.Equal(t, models.PriceAmerican, book.Moneyline.Home.Format)
	assert.Equal(t, "-135", book.Moneyline.Home.Value.String())

	require.NotNil(t, book.Spread)
	assert.Equal(t, -3.5, book.Spread.Line)

	require.NotNil(t, book.Total)
	assert.Equal(t, 47.5, book.Total.Line)
}

func TestNormalizePreferredBookmaker(t *testing.T) {
	// Preferring the empty bookmaker is honored even when it has no bets.
	book := Normalize(json.RawMessage(nflOddsPayload), models.LeagueNFL, 7712, 2)
	assert.Equal(t, "DraftKings", book.Bookmaker)
	assert.False(t, book.HasMarkets())
}

func TestNormalizeEmptyPayload(t *testing.T) {
	book := Normalize(json.RawMessage(`[]`), models.LeagueNBA, 1, 0)
	assert.False(t, book.HasMarkets())
	assert.Equal(t, models.LeagueNBA, book.League)

	book = Normalize(json.RawMessage(`not json`), models.LeagueNBA, 1, 0)
	assert.False(t, book.HasMarkets())
}

func TestNormalizeLineEmbeddedInLabel(t *testing.T) {
	payload := `[
  {
    "bookmakers": [
      {
        "id": 4,
        "name": "Caesars",
        "bets": [
          {
            "id": 3,
            "name": "Spreads",
            "values": [
              {"value": "Home -6.5", "odd": "-108"},
              {"value": "Away +6.5", "odd": "-112"}
            ]
          },
          {
            "id": 4,
            "name": "Totals",
            "values": [
              {"value": "Over 221.5", "odd": "-110"},
              {"value": "Under 221.5", "odd": "-110"}
            ]
          }
        ]
      }
    ]
  }
]`
	book := Normalize(json.RawMessage(payload), models.LeagueNBA, 99, 0)
	require.NotNil(t, book.Spread)
	assert.Equal(t, -6.5, book.Spread.Line)
	require.NotNil(t, book.Total)
	assert.Equal(t, 221.5, book.Total.Line)
}

func TestNormalizeInferredMarketNames(t *testing.T) {
	// Nonstandard market labels resolve through alias inference. The 1st
	// half spread must not shadow the full-game one.
	payload := `[
  {
    "bookmakers": [
      {
        "id": 11,
        "name": "PointsBet",
        "bets": [
          {
            "id": 51,
            "name": "1st Half Point Spread",
            "values": [
              {"value": "Home", "odd": "-110", "handicap": "-2.0"},
              {"value": "Away", "odd": "-110", "handicap": "2.0"}
            ]
          },
          {
            "id": 2,
            "name": "Point Spread",
            "values": [
              {"value": "Home", "odd": "-110", "handicap": "-4.5"},
              {"value": "Away", "odd": "-110", "handicap": "4.5"}
            ]
          },
          {
            "id": 3,
            "name": "Game Total Points",
            "values": [
              {"value": "Over", "odd": "-112", "handicap": "212.5"},
              {"value": "Under", "odd": "-108", "handicap": "212.5"}
            ]
          }
        ]
      }
    ]
  }
]`
	book := Normalize(json.RawMessage(payload), models.LeagueNBA, 431, 0)
	require.NotNil(t, book.Spread)
	assert.Equal(t, -4.5, book.Spread.Line)
	require.NotNil(t, book.Total)
	assert.Equal(t, 212.5, book.Total.Line)
	assert.Nil(t, book.Moneyline)
}
