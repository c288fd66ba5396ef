package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/edge-picks/internal/models"
)

// WindowConfig configures windowed replay
type WindowConfig struct {
	WindowDays        int
	MinPicksPerWindow int
}

// Window is one replayed slice of the date range.
type Window struct {
	WindowID int       `json:"window_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Metrics  Metrics   `json:"metrics"`
}

// WindowResult summarizes replaying the range in fixed windows. A model
// that only profits in one hot stretch shows up here as low consistency.
type WindowResult struct {
	Windows           []Window `json:"windows"`
	AggregatedMetrics Metrics  `json:"aggregated_metrics"`
	ConsistencyScore  float64  `json:"consistency_score"`
}

// RunWindows replays one league over the configured range in fixed-size
// windows, each starting from a fresh bankroll.
func RunWindows(ctx context.Context, engine *Engine, league models.League, cfg WindowConfig) (WindowResult, error) {
	if engine == nil {
		return WindowResult{}, fmt.Errorf("engine is required")
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}

	start := engine.config.StartDate
	end := engine.config.EndDate
	windows := []Window{}
	windowID := 0

	for current := start; current.Before(end); current = current.AddDate(0, 0, cfg.WindowDays) {
		windowEnd := current.AddDate(0, 0, cfg.WindowDays-1)
		if windowEnd.After(end) {
			windowEnd = end
		}

		windowID++
		state, metrics, err := engine.Run(ctx, league, current, windowEnd)
		if err != nil {
			return WindowResult{}, err
		}
		if cfg.MinPicksPerWindow > 0 && state.SettledCount() < cfg.MinPicksPerWindow {
			continue
		}

		windows = append(windows, Window{
			WindowID: windowID,
			Start:    current,
			End:      windowEnd,
			Metrics:  metrics,
		})
	}

	return WindowResult{
		Windows:           windows,
		AggregatedMetrics: aggregateWindows(windows),
		ConsistencyScore:  CalculateConsistency(windows),
	}, nil
}

// CalculateConsistency calculates the share of profitable windows
func CalculateConsistency(windows []Window) float64 {
	if len(windows) == 0 {
		return 0
	}
	profitable := 0
	for _, w := range windows {
		if w.Metrics.TotalReturn > 0 {
			profitable++
		}
	}
	return float64(profitable) / float64(len(windows))
}

func aggregateWindows(windows []Window) Metrics {
	if len(windows) == 0 {
		return Metrics{}
	}
	metrics := Metrics{}
	for _, w := range windows {
		metrics.TotalReturn += w.Metrics.TotalReturn
		metrics.SharpeRatio += w.Metrics.SharpeRatio
		metrics.MaxDrawdown += w.Metrics.MaxDrawdown
		metrics.SumEV += w.Metrics.SumEV
		metrics.TotalPicks += w.Metrics.TotalPicks
		metrics.SettledPicks += w.Metrics.SettledPicks
		metrics.WinningPicks += w.Metrics.WinningPicks
		metrics.LosingPicks += w.Metrics.LosingPicks
	}
	metrics.TotalReturn /= float64(len(windows))
	metrics.SharpeRatio /= float64(len(windows))
	metrics.MaxDrawdown /= float64(len(windows))
	metrics.WinRate = calculateWinRate(metrics.WinningPicks, metrics.WinningPicks+metrics.LosingPicks)
	return metrics
}
