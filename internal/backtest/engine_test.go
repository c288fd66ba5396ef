package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/picks"
)

type fakeSlates struct {
	byDate map[string][]*models.Pick
}

func (f *fakeSlates) BuildSlate(ctx context.Context, req picks.SlateRequest) ([]*models.Pick, error) {
	return f.byDate[req.Date], nil
}

type fakeScores struct {
	byDate map[string][]*models.Fixture
}

func (f *fakeScores) FixturesByDate(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error) {
	return f.byDate[q.Date], nil
}

func (f *fakeScores) FixturesRange(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error) {
	return nil, nil
}

func (f *fakeScores) OddsForFixture(ctx context.Context, q apisports.OddsQuery) (json.RawMessage, error) {
	return nil, fmt.Errorf("no odds")
}

type fakeResultRepo struct {
	saved []*models.BacktestResult
}

func (r *fakeResultRepo) SaveResult(ctx context.Context, result *models.BacktestResult) error {
	r.saved = append(r.saved, result)
	return nil
}
func (r *fakeResultRepo) GetByLeague(ctx context.Context, league models.League) ([]*models.BacktestResult, error) {
	return nil, nil
}
func (r *fakeResultRepo) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	return nil, nil
}
func (r *fakeResultRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestResult, error) {
	return nil, nil
}

func day(offset int) time.Time {
	return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func mlPick(providerID int64, selection string, price float64, winProb float64) *models.Pick {
	return &models.Pick{
		ID:                uuid.New(),
		FixtureProviderID: providerID,
		League:            models.LeagueNBA,
		BetType:           models.BetMoneyline,
		Selection:         selection,
		Price:             decimalPrice(price),
		WinProb:           winProb,
	}
}

func nbaFixture(providerID int64, startTime time.Time, homeScore, awayScore int) *models.Fixture {
	return &models.Fixture{
		ID:         uuid.New(),
		ProviderID: providerID,
		League:     models.LeagueNBA,
		StartTime:  startTime,
		HomeTeam:   "Boston Celtics",
		AwayTeam:   "Washington Wizards",
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     models.FixtureFinished,
	}
}

func testConfig(startOffset, endOffset int) BacktestConfig {
	return BacktestConfig{
		StartDate:       day(startOffset),
		EndDate:         day(endOffset),
		Leagues:         []models.League{models.LeagueNBA},
		InitialBankroll: 100,
		FlatStake:       10,
		OutputPath:      "backtest.json",
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRunSettlesPicksWithFlatStakes(t *testing.T) {
	dayOne := day(0).Format("2006-01-02")
	dayTwo := day(1).Format("2006-01-02")

	slates := &fakeSlates{byDate: map[string][]*models.Pick{
		// Home pick wins at evens, away pick loses.
		dayOne: {mlPick(101, "Boston Celtics", 2.0, 0.55)},
		dayTwo: {mlPick(102, "Washington Wizards", 2.6, 0.45)},
	}}
	scores := &fakeScores{byDate: map[string][]*models.Fixture{
		dayOne: {nbaFixture(101, day(0).Add(19*time.Hour), 112, 104)},
		dayTwo: {nbaFixture(102, day(1).Add(19*time.Hour), 120, 99)},
	}}

	engine, err := NewEngine(testConfig(0, 1), scores, slates, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	state, metrics, err := engine.Run(context.Background(), models.LeagueNBA, day(0), day(1))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(state.Picks) != 2 {
		t.Fatalf("expected 2 settled picks, got %d", len(state.Picks))
	}
	// +10 on the even-money win, -10 on the loss.
	if state.CurrentBankroll != 100 {
		t.Errorf("expected bankroll 100, got %.2f", state.CurrentBankroll)
	}
	if metrics.WinningPicks != 1 || metrics.LosingPicks != 1 {
		t.Errorf("expected 1 win and 1 loss, got %d/%d", metrics.WinningPicks, metrics.LosingPicks)
	}
	if metrics.WinRate != 0.5 {
		t.Errorf("expected win rate 0.5, got %.3f", metrics.WinRate)
	}
}

func TestRunSkipsPicksWithoutFinalScores(t *testing.T) {
	dayOne := day(0).Format("2006-01-02")

	slates := &fakeSlates{byDate: map[string][]*models.Pick{
		dayOne: {mlPick(101, "Boston Celtics", 2.0, 0.55)},
	}}
	scores := &fakeScores{byDate: map[string][]*models.Fixture{}}

	engine, err := NewEngine(testConfig(0, 0), scores, slates, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	state, metrics, err := engine.Run(context.Background(), models.LeagueNBA, day(0), day(0))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(state.Picks) != 1 {
		t.Fatalf("expected 1 recorded pick, got %d", len(state.Picks))
	}
	if state.Picks[0].Outcome != OutcomeSkipped {
		t.Errorf("expected skipped outcome, got %s", state.Picks[0].Outcome)
	}
	if state.CurrentBankroll != 100 {
		t.Errorf("skipped pick should not touch the bankroll, got %.2f", state.CurrentBankroll)
	}
	if metrics.SettledPicks != 0 {
		t.Errorf("expected 0 settled picks, got %d", metrics.SettledPicks)
	}
}

func TestRunAllPersistsResults(t *testing.T) {
	dayOne := day(0).Format("2006-01-02")

	slates := &fakeSlates{byDate: map[string][]*models.Pick{
		dayOne: {mlPick(101, "Boston Celtics", 2.0, 0.55)},
	}}
	scores := &fakeScores{byDate: map[string][]*models.Fixture{
		dayOne: {nbaFixture(101, day(0).Add(19*time.Hour), 112, 104)},
	}}
	repo := &fakeResultRepo{}

	engine, err := NewEngine(testConfig(0, 0), scores, slates, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	engine.WithResultRepository(repo)

	runs, err := engine.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(runs) != 1 {
		t.Fatalf("expected 1 league run, got %d", len(runs))
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.League != models.LeagueNBA {
		t.Errorf("expected nba result, got %s", saved.League)
	}
	if saved.WinCount != 1 {
		t.Errorf("expected 1 win, got %d", saved.WinCount)
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	scores := &fakeScores{}

	cfg := testConfig(0, 1)
	cfg.FlatStake = 500 // exceeds bankroll
	if _, err := NewEngine(cfg, scores, nil, quietLogger()); err == nil {
		t.Error("expected error for stake above bankroll")
	}

	if _, err := NewEngine(testConfig(0, 1), nil, nil, quietLogger()); err == nil {
		t.Error("expected error for nil provider")
	}
}

func TestRunWindowsConsistency(t *testing.T) {
	slates := &fakeSlates{byDate: map[string][]*models.Pick{}}
	scores := &fakeScores{byDate: map[string][]*models.Fixture{}}

	// One winning pick per day across 60 days.
	for offset := 0; offset < 60; offset++ {
		date := day(offset).Format("2006-01-02")
		providerID := int64(1000 + offset)
		slates.byDate[date] = []*models.Pick{mlPick(providerID, "Boston Celtics", 2.0, 0.55)}
		scores.byDate[date] = []*models.Fixture{nbaFixture(providerID, day(offset).Add(19*time.Hour), 112, 104)}
	}

	engine, err := NewEngine(testConfig(0, 59), scores, slates, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	result, err := RunWindows(context.Background(), engine, models.LeagueNBA, WindowConfig{WindowDays: 30})
	if err != nil {
		t.Fatalf("RunWindows failed: %v", err)
	}

	if len(result.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(result.Windows))
	}
	if result.ConsistencyScore != 1.0 {
		t.Errorf("all-winning windows should score 1.0 consistency, got %.2f", result.ConsistencyScore)
	}
	if result.AggregatedMetrics.TotalReturn <= 0 {
		t.Errorf("expected positive aggregated return, got %.3f", result.AggregatedMetrics.TotalReturn)
	}
}
