package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BacktestResult represents a persisted backtest run summary.
type BacktestResult struct {
	ID           uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	League       League          `db:"league" json:"league" validate:"required"`
	StartDate    time.Time       `db:"start_date" json:"start_date" validate:"required"`
	EndDate      time.Time       `db:"end_date" json:"end_date" validate:"required"`
	PickCount    int             `db:"pick_count" json:"pick_count"`
	SettledCount int             `db:"settled_count" json:"settled_count"`
	WinCount     int             `db:"win_count" json:"win_count"`
	TotalReturn  float64         `db:"total_return" json:"total_return"`
	SumEV        float64         `db:"sum_ev" json:"sum_ev"`
	Metrics      json.RawMessage `db:"metrics" json:"metrics"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// GetMetric retrieves a metric value from the Metrics JSON.
func (r *BacktestResult) GetMetric(name string) (interface{}, error) {
	if r.Metrics == nil {
		return nil, nil
	}

	var metrics map[string]interface{}
	if err := json.Unmarshal(r.Metrics, &metrics); err != nil {
		return nil, err
	}

	return metrics[name], nil
}
