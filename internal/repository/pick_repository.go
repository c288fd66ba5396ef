package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yourusername/edge-picks/internal/database"
	"github.com/yourusername/edge-picks/internal/models"
)

const (
	errScanPick = "failed to scan pick: %w"

	pickColumns = `id, fixture_id, fixture_provider_id, league, bet_type, selection,
	       line, price_value, price_format, edge, win_prob, generated_at`
)

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

// Prices are persisted as text to keep exact decimal representation.
func pickPriceColumns(p *models.Pick) (priceValue, priceFormat *string) {
	if p.Price == nil {
		return nil, nil
	}
	v := p.Price.Value.String()
	f := string(p.Price.Format)
	return &v, &f
}

func scanPick(row pgx.Row) (*models.Pick, error) {
	pick := &models.Pick{}
	var priceValue, priceFormat *string
	err := row.Scan(
		&pick.ID, &pick.FixtureID, &pick.FixtureProviderID, &pick.League,
		&pick.BetType, &pick.Selection, &pick.Line, &priceValue, &priceFormat,
		&pick.Edge, &pick.WinProb, &pick.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}

	if priceValue != nil && priceFormat != nil {
		value, err := decimal.NewFromString(*priceValue)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", *priceValue, err)
		}
		pick.Price = &models.Price{Value: value, Format: models.PriceFormat(*priceFormat)}
	}

	return pick, nil
}

func collectPicks(rows pgx.Rows) ([]*models.Pick, error) {
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		pick, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanPick, err)
		}
		picks = append(picks, pick)
	}
	return picks, rows.Err()
}

// Create inserts a new pick
func (r *PostgresPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (id, fixture_id, fixture_provider_id, league, bet_type, selection,
		                   line, price_value, price_format, edge, win_prob, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	priceValue, priceFormat := pickPriceColumns(pick)
	_, err := r.db.GetPool().Exec(ctx, query,
		pick.ID, pick.FixtureID, pick.FixtureProviderID, pick.League, pick.BetType,
		pick.Selection, pick.Line, priceValue, priceFormat, pick.Edge, pick.WinProb,
		pick.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pick: %w", err)
	}

	return nil
}

// CreateBatch inserts picks in a single batch
func (r *PostgresPickRepository) CreateBatch(ctx context.Context, picks []*models.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO picks (id, fixture_id, fixture_provider_id, league, bet_type, selection,
		                   line, price_value, price_format, edge, win_prob, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, pick := range picks {
		priceValue, priceFormat := pickPriceColumns(pick)
		batch.Queue(query,
			pick.ID, pick.FixtureID, pick.FixtureProviderID, pick.League, pick.BetType,
			pick.Selection, pick.Line, priceValue, priceFormat, pick.Edge, pick.WinProb,
			pick.GeneratedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range picks {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert pick batch: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a pick by ID
func (r *PostgresPickRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pick, error) {
	query := fmt.Sprintf("SELECT %s FROM picks WHERE id = $1", pickColumns)

	pick, err := scanPick(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}

	return pick, nil
}

// GetByFixtureID retrieves all picks for a fixture
func (r *PostgresPickRepository) GetByFixtureID(ctx context.Context, fixtureID uuid.UUID) ([]*models.Pick, error) {
	query := fmt.Sprintf("SELECT %s FROM picks WHERE fixture_id = $1 ORDER BY generated_at ASC", pickColumns)

	rows, err := r.db.GetPool().Query(ctx, query, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks by fixture: %w", err)
	}

	return collectPicks(rows)
}

// GetByLeagueAndDate retrieves picks generated for a league within a window
func (r *PostgresPickRepository) GetByLeagueAndDate(ctx context.Context, league models.League, start, end time.Time) ([]*models.Pick, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM picks
		WHERE league = $1 AND generated_at >= $2 AND generated_at <= $3
		ORDER BY generated_at ASC
	`, pickColumns)

	rows, err := r.db.GetPool().Query(ctx, query, league, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks by league and date: %w", err)
	}

	return collectPicks(rows)
}

// Delete deletes a pick
func (r *PostgresPickRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM picks WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete pick: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
