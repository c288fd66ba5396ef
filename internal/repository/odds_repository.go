package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/edge-picks/internal/database"
	"github.com/yourusername/edge-picks/internal/models"
)

const errScanOdds = "failed to scan odds snapshot: %w"

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert inserts a single odds snapshot
func (r *PostgresOddsRepository) Insert(ctx context.Context, snapshot *models.OddsSnapshot) error {
	query := `
		INSERT INTO odds_snapshots (time, fixture_id, bookmaker, market, period, side, line, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		snapshot.Time, snapshot.FixtureID, snapshot.Bookmaker, snapshot.Market,
		snapshot.Period, snapshot.Side, snapshot.Line, snapshot.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds snapshot: %w", err)
	}

	return nil
}

// InsertBatch inserts odds snapshots in a single batch
func (r *PostgresOddsRepository) InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO odds_snapshots (time, fixture_id, bookmaker, market, period, side, line, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, s := range snapshots {
		batch.Queue(query, s.Time, s.FixtureID, s.Bookmaker, s.Market, s.Period, s.Side, s.Line, s.Price)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range snapshots {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert odds snapshot batch: %w", err)
		}
	}

	return nil
}

// GetByFixtureID retrieves odds snapshots for a fixture within a time window
func (r *PostgresOddsRepository) GetByFixtureID(ctx context.Context, fixtureID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error) {
	query := `
		SELECT time, fixture_id, bookmaker, market, period, side, line, price
		FROM odds_snapshots
		WHERE fixture_id = $1 AND time >= $2 AND time <= $3
		ORDER BY time ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, fixtureID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.OddsSnapshot
	for rows.Next() {
		s := &models.OddsSnapshot{}
		err := rows.Scan(&s.Time, &s.FixtureID, &s.Bookmaker, &s.Market, &s.Period, &s.Side, &s.Line, &s.Price)
		if err != nil {
			return nil, fmt.Errorf(errScanOdds, err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// GetLatest retrieves the most recent odds snapshot for a fixture market
func (r *PostgresOddsRepository) GetLatest(ctx context.Context, fixtureID uuid.UUID, market models.BetType) (*models.OddsSnapshot, error) {
	query := `
		SELECT time, fixture_id, bookmaker, market, period, side, line, price
		FROM odds_snapshots
		WHERE fixture_id = $1 AND market = $2
		ORDER BY time DESC
		LIMIT 1
	`

	s := &models.OddsSnapshot{}
	err := r.db.GetPool().QueryRow(ctx, query, fixtureID, market).Scan(
		&s.Time, &s.FixtureID, &s.Bookmaker, &s.Market, &s.Period, &s.Side, &s.Line, &s.Price,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds snapshot: %w", err)
	}

	return s, nil
}
