package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/apisports"
	applogger "github.com/yourusername/edge-picks/internal/logger"
	"github.com/yourusername/edge-picks/internal/metrics"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/odds"
	"github.com/yourusername/edge-picks/internal/repository"
)

// Provider is the slice of the API-SPORTS client the ingestion pipeline
// depends on.
type Provider interface {
	FixturesByDate(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error)
	FixturesRange(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error)
	OddsForFixture(ctx context.Context, q apisports.OddsQuery) (json.RawMessage, error)
}

// IngestionOptions tunes a sync run.
type IngestionOptions struct {
	OddsEnabled          bool
	PreferredBookmakerID int
	LeagueOverride       int // soccer competition id
}

// IngestionService handles the fixture and odds ingestion workflow
type IngestionService struct {
	provider    Provider
	fixtureRepo repository.FixtureRepository
	oddsRepo    repository.OddsRepository
	validator   *DataValidator
	metrics     *IngestionMetrics
	logger      *logrus.Logger
	ingestLog   *applogger.IngestionLogger
	opts        IngestionOptions
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	provider Provider,
	fixtureRepo repository.FixtureRepository,
	oddsRepo repository.OddsRepository,
	validator *DataValidator,
	logger *logrus.Logger,
	opts IngestionOptions,
) *IngestionService {
	if logger == nil {
		logger = logrus.New()
	}
	if validator == nil {
		validator = NewDataValidator(logger)
	}

	return &IngestionService{
		provider:    provider,
		fixtureRepo: fixtureRepo,
		oddsRepo:    oddsRepo,
		validator:   validator,
		metrics:     NewIngestionMetrics(),
		logger:      logger,
		ingestLog:   applogger.NewIngestionLogger(logger),
		opts:        opts,
	}
}

// SyncLeagueDay fetches one league's slate for a day, validates it, and
// persists fixtures plus an odds snapshot per quoted market side.
func (s *IngestionService) SyncLeagueDay(ctx context.Context, league models.League, date, season string) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()
	s.ingestLog.LogSyncStarted(league, date)

	fixtures, err := s.provider.FixturesByDate(ctx, apisports.FixturesQuery{
		League:         league,
		Date:           date,
		Season:         season,
		LeagueOverride: s.opts.LeagueOverride,
	})
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		s.ingestLog.LogSyncError(league, date, err)
		return s.metrics, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	s.metrics.TotalFixtures = len(fixtures)
	for _, fixture := range fixtures {
		if err := s.processFixture(ctx, fixture); err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			s.logger.WithError(err).WithField("fixture_id", fixture.ProviderID).
				Error("Failed to process fixture")
		}
	}

	s.metrics.Duration = time.Since(startTime)
	metrics.FixturesIngestedTotal.WithLabelValues(string(league)).Add(float64(s.metrics.SuccessfulFixtures))
	metrics.OddsSnapshotsIngestedTotal.WithLabelValues(string(league)).Add(float64(s.metrics.OddsSnapshots))
	metrics.IngestionDuration.Observe(s.metrics.Duration.Seconds())
	metrics.LastIngestionTimestamp.SetToCurrentTime()

	s.ingestLog.LogSyncCompleted(league, date,
		s.metrics.SuccessfulFixtures, s.metrics.OddsSnapshots, s.metrics.ValidationErrors, s.metrics.Duration)

	return s.metrics, nil
}

// SyncResults refreshes final scores for a league over a date range.
// Fixtures already stored get their scores and status updated in place.
func (s *IngestionService) SyncResults(ctx context.Context, league models.League, from, to, season string) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	fixtures, err := s.provider.FixturesRange(ctx, apisports.FixturesQuery{
		League:         league,
		From:           from,
		To:             to,
		Season:         season,
		LeagueOverride: s.opts.LeagueOverride,
	})
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		return s.metrics, fmt.Errorf("failed to fetch results: %w", err)
	}

	s.metrics.TotalFixtures = len(fixtures)
	for _, fixture := range fixtures {
		if !fixture.IsFinished() {
			continue
		}

		existing, err := s.fixtureRepo.GetByProviderID(ctx, league, fixture.ProviderID)
		if err == models.ErrNotFound {
			if verrs := s.validator.ValidateFixture(fixture); len(verrs) > 0 {
				s.metrics.RecordValidationError()
				continue
			}
			if err := s.fixtureRepo.Upsert(ctx, fixture); err != nil {
				s.metrics.RecordError()
				metrics.IngestionErrorsTotal.Inc()
				continue
			}
			s.metrics.RecordFixture()
			continue
		}
		if err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			continue
		}

		if existing.IsFinished() {
			continue
		}
		existing.HomeScore = fixture.HomeScore
		existing.AwayScore = fixture.AwayScore
		existing.Status = fixture.Status
		if err := s.fixtureRepo.UpdateScores(ctx, existing); err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			continue
		}
		s.metrics.RecordScoreUpdate()
	}

	s.metrics.Duration = time.Since(startTime)
	metrics.IngestionDuration.Observe(s.metrics.Duration.Seconds())
	metrics.LastIngestionTimestamp.SetToCurrentTime()

	return s.metrics, nil
}

// processFixture validates and persists one fixture plus its market odds.
func (s *IngestionService) processFixture(ctx context.Context, fixture *models.Fixture) error {
	if verrs := s.validator.ValidateFixture(fixture); len(verrs) > 0 {
		s.metrics.RecordValidationError()
		for _, verr := range verrs {
			s.ingestLog.LogValidationFailure(fixture.League, fixture.ProviderID, "fixture", verr)
		}
		return nil
	}

	if err := s.fixtureRepo.Upsert(ctx, fixture); err != nil {
		return fmt.Errorf("failed to upsert fixture: %w", err)
	}
	s.metrics.RecordFixture()

	if !s.opts.OddsEnabled || fixture.Status != models.FixtureScheduled {
		return nil
	}

	raw, err := s.provider.OddsForFixture(ctx, apisports.OddsQuery{
		League:    fixture.League,
		FixtureID: fixture.ProviderID,
	})
	if err != nil {
		// Missing odds is routine for early slates; not a sync failure.
		s.ingestLog.LogOddsUnavailable(fixture.League, fixture.ProviderID, err)
		return nil
	}

	book := odds.Normalize(raw, fixture.League, fixture.ProviderID, s.opts.PreferredBookmakerID)
	snapshots := SnapshotsFromBook(book, fixture)
	valid := snapshots[:0]
	for _, snapshot := range snapshots {
		if verrs := s.validator.ValidateSnapshot(snapshot); len(verrs) > 0 {
			s.metrics.RecordValidationError()
			for _, verr := range verrs {
				s.ingestLog.LogValidationFailure(fixture.League, fixture.ProviderID, "odds", verr)
			}
			continue
		}
		valid = append(valid, snapshot)
	}

	if len(valid) == 0 {
		return nil
	}
	if err := s.oddsRepo.InsertBatch(ctx, valid); err != nil {
		return fmt.Errorf("failed to insert odds snapshots: %w", err)
	}
	s.metrics.RecordSnapshots(len(valid))

	return nil
}

// SnapshotsFromBook flattens a unified odds book into one snapshot row per
// quoted market side. Prices are stored as decimal odds.
func SnapshotsFromBook(book *models.OddsBook, fixture *models.Fixture) []*models.OddsSnapshot {
	if !book.HasMarkets() {
		return nil
	}

	now := book.FetchedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	row := func(market models.BetType, side string, line *float64, price *models.Price) *models.OddsSnapshot {
		if price == nil {
			return nil
		}
		value, _ := price.DecimalOdds().Float64()
		return &models.OddsSnapshot{
			Time:      now,
			FixtureID: fixture.ID,
			Bookmaker: book.Bookmaker,
			Market:    market,
			Period:    models.PeriodGame,
			Side:      side,
			Line:      line,
			Price:     value,
		}
	}

	var snapshots []*models.OddsSnapshot
	add := func(s *models.OddsSnapshot) {
		if s != nil {
			snapshots = append(snapshots, s)
		}
	}

	if ml := book.Moneyline; ml != nil {
		add(row(models.BetMoneyline, "home", nil, ml.Home))
		add(row(models.BetMoneyline, "away", nil, ml.Away))
		add(row(models.BetMoneyline, "draw", nil, ml.Draw))
	}
	if sp := book.Spread; sp != nil {
		line := sp.Line
		awayLine := -sp.Line
		add(row(models.BetSpread, "home", &line, sp.Home))
		add(row(models.BetSpread, "away", &awayLine, sp.Away))
	}
	if tot := book.Total; tot != nil {
		line := tot.Line
		add(row(models.BetTotal, "over", &line, tot.Over))
		add(row(models.BetTotal, "under", &line, tot.Under))
	}

	return snapshots
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// ResetMetrics resets ingestion metrics
func (s *IngestionService) ResetMetrics() {
	s.metrics.Reset()
}
