package picks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/models"
)

type mockProvider struct {
	fixtures     []*models.Fixture
	history      []*models.Fixture
	oddsPayloads map[int64]json.RawMessage
	fixturesErr  error
	historyErr   error
	oddsErr      error
	oddsCalls    int
}

func (m *mockProvider) FixturesByDate(_ context.Context, _ apisports.FixturesQuery) ([]*models.Fixture, error) {
	return m.fixtures, m.fixturesErr
}

func (m *mockProvider) FixturesRange(_ context.Context, _ apisports.FixturesQuery) ([]*models.Fixture, error) {
	return m.history, m.historyErr
}

func (m *mockProvider) OddsForFixture(_ context.Context, q apisports.OddsQuery) (json.RawMessage, error) {
	m.oddsCalls++
	if m.oddsErr != nil {
		return nil, m.oddsErr
	}
	payload, ok := m.oddsPayloads[q.FixtureID]
	if !ok {
		return json.RawMessage(`[]`), nil
	}
	return payload, nil
}

func intp(v int) *int { return &v }

func finishedGame(home, away string, homeScore, awayScore int) *models.Fixture {
	return &models.Fixture{
		ID:        uuid.New(),
		League:    models.LeagueNBA,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: intp(homeScore),
		AwayScore: intp(awayScore),
		Status:    models.FixtureFinished,
	}
}

func slateFixture(providerID int64, home, away string) *models.Fixture {
	return &models.Fixture{
		ID:         uuid.New(),
		ProviderID: providerID,
		League:     models.LeagueNBA,
		HomeTeam:   home,
		AwayTeam:   away,
		StartTime:  time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC),
		Status:     models.FixtureScheduled,
	}
}

// Celtics average 115 for / 105 against; Wizards 104 for / 112 against.
func sampleHistory() []*models.Fixture {
	return []*models.Fixture{
		finishedGame("Boston Celtics", "Miami Heat", 118, 104),
		finishedGame("Chicago Bulls", "Boston Celtics", 106, 112),
		finishedGame("Washington Wizards", "Miami Heat", 101, 110),
		finishedGame("Chicago Bulls", "Washington Wizards", 114, 107),
	}
}

const nbaOddsPayload = `[
  {
    "bookmakers": [
      {
        "id": 2,
        "name": "DraftKings",
        "bets": [
          {
            "id": 1,
            "name": "Moneyline",
            "values": [
              {"value": "Home", "odd": "-320"},
              {"value": "Away", "odd": "+260"}
            ]
          },
          {
            "id": 3,
            "name": "Spreads",
            "values": [
              {"value": "Home", "odd": "-110", "handicap": -7.5},
              {"value": "Away", "odd": "-110", "handicap": 7.5}
            ]
          },
          {
            "id": 4,
            "name": "Totals",
            "values": [
              {"value": "Over", "odd": "-105", "handicap": 222.5},
              {"value": "Under", "odd": "-115", "handicap": 222.5}
            ]
          }
        ]
      }
    ]
  }
]`

func newTestEngine(provider Provider, cfg Config) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(provider, cfg, log)
}

func baseRequest() SlateRequest {
	return SlateRequest{
		League: models.LeagueNBA,
		Date:   "2025-01-15",
		Season: "2024",
	}
}

func TestBuildSlateAllMarkets(t *testing.T) {
	provider := &mockProvider{
		fixtures: []*models.Fixture{slateFixture(501, "Boston Celtics", "Washington Wizards")},
		history:  sampleHistory(),
		oddsPayloads: map[int64]json.RawMessage{
			501: json.RawMessage(nbaOddsPayload),
		},
	}
	engine := newTestEngine(provider, Config{})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, slate, 3)

	byType := map[models.BetType]*models.Pick{}
	for _, p := range slate {
		byType[p.BetType] = p
	}
	require.Contains(t, byType, models.BetMoneyline)
	require.Contains(t, byType, models.BetSpread)
	require.Contains(t, byType, models.BetTotal)

	ml := byType[models.BetMoneyline]
	assert.Equal(t, models.LeagueNBA, ml.League)
	assert.Equal(t, int64(501), ml.FixtureProviderID)
	assert.NotEmpty(t, ml.Selection)
	assert.Greater(t, ml.WinProb, 0.0)
	assert.Less(t, ml.WinProb, 1.0)
	require.NotNil(t, ml.Price)

	spread := byType[models.BetSpread]
	require.NotNil(t, spread.Line)
	assert.Equal(t, 7.5, abs(*spread.Line))

	total := byType[models.BetTotal]
	require.NotNil(t, total.Line)
	assert.Equal(t, 222.5, *total.Line)
	assert.Contains(t, []string{"over", "under"}, total.Selection)
}

func TestBuildSlateMoneylineEdgeSideSelection(t *testing.T) {
	// Celtics are the stronger team but the book prices them as a huge
	// favorite (-320 implies ~76% vig-free). The model's edge sits on the
	// dog side, so the engine should take the Wizards.
	provider := &mockProvider{
		fixtures: []*models.Fixture{slateFixture(501, "Boston Celtics", "Washington Wizards")},
		history:  sampleHistory(),
		oddsPayloads: map[int64]json.RawMessage{
			501: json.RawMessage(nbaOddsPayload),
		},
	}
	engine := newTestEngine(provider, Config{})

	slate, err := engine.BuildSlate(context.Background(), SlateRequest{
		League:   models.LeagueNBA,
		Date:     "2025-01-15",
		BetTypes: []models.BetType{models.BetMoneyline},
	})
	require.NoError(t, err)
	require.Len(t, slate, 1)

	pick := slate[0]
	assert.Equal(t, "Washington Wizards", pick.Selection)
	assert.Greater(t, pick.Edge, 0.0)
}

func TestBuildSlateModelOnlyWhenOddsUnavailable(t *testing.T) {
	provider := &mockProvider{
		fixtures: []*models.Fixture{slateFixture(502, "Boston Celtics", "Washington Wizards")},
		history:  sampleHistory(),
		oddsErr:  errors.New("odds endpoint down"),
	}
	engine := newTestEngine(provider, Config{})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, slate, 3)

	for _, p := range slate {
		assert.Zero(t, p.Edge, "model-only picks carry no market edge")
		switch p.BetType {
		case models.BetMoneyline:
			assert.Equal(t, "Boston Celtics", p.Selection)
			assert.Greater(t, p.WinProb, 0.5)
			require.NotNil(t, p.Price, "model-only moneyline carries a fair price")
		case models.BetSpread:
			require.NotNil(t, p.Line)
			assert.Equal(t, 0.5, p.WinProb)
		case models.BetTotal:
			require.NotNil(t, p.Line)
			assert.Equal(t, "over", p.Selection)
		}
	}
}

func TestBuildSlateUnknownTeamsDegradeToZeroRatings(t *testing.T) {
	provider := &mockProvider{
		fixtures: []*models.Fixture{slateFixture(503, "Expansion A", "Expansion B")},
		history:  sampleHistory(),
	}
	engine := newTestEngine(provider, Config{})

	slate, err := engine.BuildSlate(context.Background(), SlateRequest{
		League:   models.LeagueNBA,
		Date:     "2025-01-15",
		BetTypes: []models.BetType{models.BetMoneyline},
	})
	require.NoError(t, err)
	require.Len(t, slate, 1)
	assert.InDelta(t, 0.5, slate[0].WinProb, 1e-9)
}

func TestBuildSlateMinEdgeThresholdFilters(t *testing.T) {
	provider := &mockProvider{
		fixtures: []*models.Fixture{slateFixture(501, "Boston Celtics", "Washington Wizards")},
		history:  sampleHistory(),
		oddsPayloads: map[int64]json.RawMessage{
			501: json.RawMessage(nbaOddsPayload),
		},
	}
	engine := newTestEngine(provider, Config{MinEdgeThreshold: 0.99})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, slate)
}

func TestBuildSlateSkipsCancelledFixtures(t *testing.T) {
	cancelled := slateFixture(504, "Boston Celtics", "Washington Wizards")
	cancelled.Status = models.FixtureCancelled

	provider := &mockProvider{
		fixtures: []*models.Fixture{cancelled},
		history:  sampleHistory(),
	}
	engine := newTestEngine(provider, Config{})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, slate)
	assert.Zero(t, provider.oddsCalls)
}

func TestBuildSlateRespectsMaxOddsLookups(t *testing.T) {
	provider := &mockProvider{
		fixtures: []*models.Fixture{
			slateFixture(601, "Boston Celtics", "Washington Wizards"),
			slateFixture(602, "Miami Heat", "Chicago Bulls"),
			slateFixture(603, "Boston Celtics", "Chicago Bulls"),
		},
		history: sampleHistory(),
	}
	engine := newTestEngine(provider, Config{MaxOddsLookups: 2})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Len(t, slate, 9)
	assert.Equal(t, 2, provider.oddsCalls)
}

func TestBuildSlateEmptyDay(t *testing.T) {
	engine := newTestEngine(&mockProvider{}, Config{})

	slate, err := engine.BuildSlate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Nil(t, slate)
}

func TestBuildSlateInvalidDate(t *testing.T) {
	engine := newTestEngine(&mockProvider{}, Config{})

	_, err := engine.BuildSlate(context.Background(), SlateRequest{
		League: models.LeagueNBA,
		Date:   "01/15/2025",
	})
	assert.Error(t, err)
}

func TestBuildSlateProviderErrorsPropagate(t *testing.T) {
	engine := newTestEngine(&mockProvider{fixturesErr: errors.New("boom")}, Config{})
	_, err := engine.BuildSlate(context.Background(), baseRequest())
	assert.Error(t, err)

	engine = newTestEngine(&mockProvider{
		fixtures:   []*models.Fixture{slateFixture(501, "A", "B")},
		historyErr: errors.New("boom"),
	}, Config{})
	_, err = engine.BuildSlate(context.Background(), baseRequest())
	assert.Error(t, err)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
