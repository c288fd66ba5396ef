package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/picks"
	"github.com/yourusername/edge-picks/internal/repository"
)

// SlateBuilder regenerates a day's picks during replay. Satisfied by
// picks.Engine.
type SlateBuilder interface {
	BuildSlate(ctx context.Context, req picks.SlateRequest) ([]*models.Pick, error)
}

// Engine replays historical slates and settles the generated picks
// against final scores.
type Engine struct {
	config   BacktestConfig
	slates   SlateBuilder
	provider picks.Provider
	results  repository.BacktestResultRepository
	logger   *logrus.Logger
}

// LeagueRun is the outcome of replaying one league across the range.
type LeagueRun struct {
	League  models.League  `json:"league"`
	State   *BacktestState `json:"-"`
	Metrics Metrics        `json:"metrics"`
}

// NewEngine creates a backtest engine. When slates is nil a picks engine
// with default tuning is built over the provider.
func NewEngine(cfg BacktestConfig, provider picks.Provider, slates SlateBuilder, logger *logrus.Logger) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	if slates == nil {
		slates = picks.NewEngine(provider, picks.DefaultConfig(), logger)
	}

	return &Engine{
		config:   cfg,
		slates:   slates,
		provider: provider,
		logger:   logger,
	}, nil
}

// WithResultRepository enables persisting run summaries.
func (e *Engine) WithResultRepository(repo repository.BacktestResultRepository) *Engine {
	e.results = repo
	return e
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// RunAll replays every configured league and persists run summaries when
// a result repository is attached.
func (e *Engine) RunAll(ctx context.Context) ([]LeagueRun, error) {
	runs := make([]LeagueRun, 0, len(e.config.Leagues))
	for _, league := range e.config.Leagues {
		state, metrics, err := e.Run(ctx, league, e.config.StartDate, e.config.EndDate)
		if err != nil {
			return nil, fmt.Errorf("replay failed for %s: %w", league, err)
		}

		if err := e.SaveResult(ctx, metrics, league); err != nil {
			e.logger.WithError(err).WithField("league", league).Warn("Failed to persist backtest result")
		}

		runs = append(runs, LeagueRun{League: league, State: state, Metrics: metrics})
	}
	return runs, nil
}

// SaveResult persists a run summary. No-op when no result repository is
// attached.
func (e *Engine) SaveResult(ctx context.Context, metrics Metrics, league models.League) error {
	if e.results == nil {
		return nil
	}
	return e.results.SaveResult(ctx, metrics.ToResult(league))
}

// Run replays one league's slates across the date range and settles every
// generated pick with flat staking.
func (e *Engine) Run(ctx context.Context, league models.League, startDate, endDate time.Time) (*BacktestState, Metrics, error) {
	e.logger.WithFields(logrus.Fields{
		"league": league,
		"start":  startDate.Format("2006-01-02"),
		"end":    endDate.Format("2006-01-02"),
	}).Info("Starting backtest run")

	state := NewBacktestState(e.config.InitialBankroll, startDate)

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, Metrics{}, err
		}
		if err := e.replayDay(ctx, league, day, state); err != nil {
			return nil, Metrics{}, err
		}
	}

	cfg := e.config
	cfg.StartDate = startDate
	cfg.EndDate = endDate
	metrics := CalculateMetrics(state, cfg)
	return state, metrics, nil
}

// replayDay regenerates the day's slate and settles it against that day's
// final scores.
func (e *Engine) replayDay(ctx context.Context, league models.League, day time.Time, state *BacktestState) error {
	date := day.Format("2006-01-02")

	slate, err := e.slates.BuildSlate(ctx, picks.SlateRequest{
		League:         league,
		Date:           date,
		Season:         e.config.Season,
		LeagueOverride: e.config.LeagueOverride,
	})
	if err != nil {
		return fmt.Errorf("failed to build slate for %s: %w", date, err)
	}
	if len(slate) == 0 {
		return nil
	}

	fixtures, err := e.provider.FixturesByDate(ctx, apisports.FixturesQuery{
		League:         league,
		Date:           date,
		Season:         e.config.Season,
		LeagueOverride: e.config.LeagueOverride,
	})
	if err != nil {
		return fmt.Errorf("failed to load final scores for %s: %w", date, err)
	}

	byProviderID := make(map[int64]*models.Fixture, len(fixtures))
	for _, fixture := range fixtures {
		byProviderID[fixture.ProviderID] = fixture
	}

	for _, pick := range slate {
		fixture := byProviderID[pick.FixtureProviderID]
		outcome := GradePick(pick, fixture)

		stake := e.config.FlatStake
		if stake > state.CurrentBankroll {
			stake = state.CurrentBankroll
		}
		if stake <= 0 {
			e.logger.WithField("league", league).Warn("Bankroll exhausted, stopping replay staking")
			return nil
		}
		if outcome == OutcomeSkipped {
			stake = 0
		}

		settledAt := day
		if fixture != nil {
			settledAt = fixture.StartTime
		}

		sp := &SettledPick{
			Pick:      pick,
			Outcome:   outcome,
			Stake:     stake,
			Price:     PickDecimalOdds(pick),
			PnL:       PickPnL(pick, outcome, stake),
			EV:        PickEV(pick, stake),
			SettledAt: settledAt.UTC(),
		}
		state.UpdateState(sp)
		if outcome != OutcomeSkipped {
			state.RecordEquityPoint(sp.SettledAt, state.CurrentBankroll)
		}
	}

	return nil
}
