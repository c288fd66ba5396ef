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

const (
	errScanFixture = "failed to scan fixture: %w"

	fixtureColumns = `id, provider_id, league, season, start_time, home_team, away_team,
	       home_score, away_score, status, created_at, updated_at`
)

// PostgresFixtureRepository implements FixtureRepository for PostgreSQL
type PostgresFixtureRepository struct {
	db *database.DB
}

// NewPostgresFixtureRepository creates a new fixture repository
func NewPostgresFixtureRepository(db *database.DB) FixtureRepository {
	return &PostgresFixtureRepository{db: db}
}

func scanFixture(row pgx.Row) (*models.Fixture, error) {
	fixture := &models.Fixture{}
	err := row.Scan(
		&fixture.ID, &fixture.ProviderID, &fixture.League, &fixture.Season,
		&fixture.StartTime, &fixture.HomeTeam, &fixture.AwayTeam,
		&fixture.HomeScore, &fixture.AwayScore, &fixture.Status,
		&fixture.CreatedAt, &fixture.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fixture, nil
}

func collectFixtures(rows pgx.Rows) ([]*models.Fixture, error) {
	defer rows.Close()

	var fixtures []*models.Fixture
	for rows.Next() {
		fixture, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanFixture, err)
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures, rows.Err()
}

// Create inserts a new fixture
func (r *PostgresFixtureRepository) Create(ctx context.Context, fixture *models.Fixture) error {
	query := `
		INSERT INTO fixtures (id, provider_id, league, season, start_time, home_team, away_team,
		                      home_score, away_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fixture.ID, fixture.ProviderID, fixture.League, fixture.Season, fixture.StartTime,
		fixture.HomeTeam, fixture.AwayTeam, fixture.HomeScore, fixture.AwayScore, fixture.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create fixture: %w", err)
	}

	return nil
}

// Upsert inserts a fixture or refreshes it when the provider already sent it.
// Fixtures are keyed by (league, provider_id) since provider ids repeat
// across league families.
func (r *PostgresFixtureRepository) Upsert(ctx context.Context, fixture *models.Fixture) error {
	query := `
		INSERT INTO fixtures (id, provider_id, league, season, start_time, home_team, away_team,
		                      home_score, away_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (league, provider_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fixture.ID, fixture.ProviderID, fixture.League, fixture.Season, fixture.StartTime,
		fixture.HomeTeam, fixture.AwayTeam, fixture.HomeScore, fixture.AwayScore, fixture.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fixture: %w", err)
	}

	return nil
}

// GetByID retrieves a fixture by ID
func (r *PostgresFixtureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error) {
	query := fmt.Sprintf("SELECT %s FROM fixtures WHERE id = $1", fixtureColumns)

	fixture, err := scanFixture(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture: %w", err)
	}

	return fixture, nil
}

// GetByProviderID retrieves a fixture by its provider id within a league
func (r *PostgresFixtureRepository) GetByProviderID(ctx context.Context, league models.League, providerID int64) (*models.Fixture, error) {
	query := fmt.Sprintf("SELECT %s FROM fixtures WHERE league = $1 AND provider_id = $2", fixtureColumns)

	fixture, err := scanFixture(r.db.GetPool().QueryRow(ctx, query, league, providerID))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture by provider id: %w", err)
	}

	return fixture, nil
}

// GetByDateRange retrieves fixtures within a date range for a league
func (r *PostgresFixtureRepository) GetByDateRange(ctx context.Context, league models.League, start, end time.Time) ([]*models.Fixture, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fixtures
		WHERE league = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time ASC
	`, fixtureColumns)

	rows, err := r.db.GetPool().Query(ctx, query, league, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures by date range: %w", err)
	}

	return collectFixtures(rows)
}

// GetFinished retrieves finished fixtures with final scores for a league
func (r *PostgresFixtureRepository) GetFinished(ctx context.Context, league models.League, start, end time.Time) ([]*models.Fixture, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fixtures
		WHERE league = $1 AND status = 'finished'
		  AND home_score IS NOT NULL AND away_score IS NOT NULL
		  AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time ASC
	`, fixtureColumns)

	rows, err := r.db.GetPool().Query(ctx, query, league, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query finished fixtures: %w", err)
	}

	return collectFixtures(rows)
}

// UpdateScores updates scores and status for an existing fixture
func (r *PostgresFixtureRepository) UpdateScores(ctx context.Context, fixture *models.Fixture) error {
	query := `
		UPDATE fixtures SET
			home_score = $2, away_score = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		fixture.ID, fixture.HomeScore, fixture.AwayScore, fixture.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update fixture scores: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete deletes a fixture
func (r *PostgresFixtureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM fixtures WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete fixture: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
