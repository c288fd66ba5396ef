package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/edge-picks/internal/database"
	"github.com/yourusername/edge-picks/internal/models"
)

const (
	errScanBacktestResult = "failed to scan backtest result: %w"

	backtestResultColumns = `id, league, start_date, end_date, pick_count, settled_count,
	       win_count, total_return, sum_ev, metrics, created_at`
)

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

func scanBacktestResult(row pgx.Row) (*models.BacktestResult, error) {
	result := &models.BacktestResult{}
	err := row.Scan(
		&result.ID, &result.League, &result.StartDate, &result.EndDate,
		&result.PickCount, &result.SettledCount, &result.WinCount,
		&result.TotalReturn, &result.SumEV, &result.Metrics, &result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func collectBacktestResults(rows pgx.Rows) ([]*models.BacktestResult, error) {
	defer rows.Close()

	var results []*models.BacktestResult
	for rows.Next() {
		result, err := scanBacktestResult(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanBacktestResult, err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// SaveResult persists a backtest run summary
func (r *PostgresBacktestResultRepository) SaveResult(ctx context.Context, result *models.BacktestResult) error {
	query := `
		INSERT INTO backtest_results (id, league, start_date, end_date, pick_count,
		                              settled_count, win_count, total_return, sum_ev, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.League, result.StartDate, result.EndDate, result.PickCount,
		result.SettledCount, result.WinCount, result.TotalReturn, result.SumEV, result.Metrics,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest result: %w", err)
	}

	return nil
}

// GetByLeague retrieves backtest results for a league, newest first
func (r *PostgresBacktestResultRepository) GetByLeague(ctx context.Context, league models.League) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		WHERE league = $1
		ORDER BY created_at DESC
	`, backtestResultColumns)

	rows, err := r.db.GetPool().Query(ctx, query, league)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results by league: %w", err)
	}

	return collectBacktestResults(rows)
}

// GetLatest retrieves the most recent backtest results
func (r *PostgresBacktestResultRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		ORDER BY created_at DESC
		LIMIT $1
	`, backtestResultColumns)

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest results: %w", err)
	}

	return collectBacktestResults(rows)
}

// GetByDateRange retrieves backtest results created within a window
func (r *PostgresBacktestResultRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
	`, backtestResultColumns)

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results by date range: %w", err)
	}

	return collectBacktestResults(rows)
}
