package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/edge-picks/internal/models"
)

// FixtureRepository defines the interface for fixture data access
type FixtureRepository interface {
	Create(ctx context.Context, fixture *models.Fixture) error
	Upsert(ctx context.Context, fixture *models.Fixture) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error)
	GetByProviderID(ctx context.Context, league models.League, providerID int64) (*models.Fixture, error)
	GetByDateRange(ctx context.Context, league models.League, start, end time.Time) ([]*models.Fixture, error)
	GetFinished(ctx context.Context, league models.League, start, end time.Time) ([]*models.Fixture, error)
	UpdateScores(ctx context.Context, fixture *models.Fixture) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OddsRepository defines the interface for odds snapshot data access
type OddsRepository interface {
	Insert(ctx context.Context, snapshot *models.OddsSnapshot) error
	InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error
	GetByFixtureID(ctx context.Context, fixtureID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error)
	GetLatest(ctx context.Context, fixtureID uuid.UUID, market models.BetType) (*models.OddsSnapshot, error)
}

// PickRepository defines the interface for pick data access
type PickRepository interface {
	Create(ctx context.Context, pick *models.Pick) error
	CreateBatch(ctx context.Context, picks []*models.Pick) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pick, error)
	GetByFixtureID(ctx context.Context, fixtureID uuid.UUID) ([]*models.Pick, error)
	GetByLeagueAndDate(ctx context.Context, league models.League, start, end time.Time) ([]*models.Pick, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BacktestResultRepository defines backtest result persistence
type BacktestResultRepository interface {
	SaveResult(ctx context.Context, result *models.BacktestResult) error
	GetByLeague(ctx context.Context, league models.League) ([]*models.BacktestResult, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestResult, error)
}
