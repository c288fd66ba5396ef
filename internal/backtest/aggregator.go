package backtest

import (
	"math"

	"github.com/yourusername/edge-picks/internal/models"
)

// AggregatedResult represents combined backtest outcomes for one league
type AggregatedResult struct {
	League           models.League    `json:"league"`
	ReplayMetrics    Metrics          `json:"replay_metrics"`
	MonteCarloResult MonteCarloResult `json:"monte_carlo_result"`
	WindowResult     WindowResult     `json:"window_result"`
	CompositeScore   float64          `json:"composite_score"`
	Recommendation   string           `json:"recommendation"`
}

// AggregateResults combines the replay, resampling, and windowed views
// into one scored verdict on the league's model.
func AggregateResults(league models.League, replay Metrics, monteCarlo MonteCarloResult, windows WindowResult) AggregatedResult {
	composite := CalculateCompositeScore(replay)

	// A missing window analysis reads as neutral, not inconsistent.
	consistency := windows.ConsistencyScore
	if len(windows.Windows) == 0 {
		consistency = 0.5
	}
	recommendation := GenerateRecommendation(composite, consistency, replay.TotalReturn, monteCarlo.ProbabilityOfRuin)

	return AggregatedResult{
		League:           league,
		ReplayMetrics:    replay,
		MonteCarloResult: monteCarlo,
		WindowResult:     windows,
		CompositeScore:   composite,
		Recommendation:   recommendation,
	}
}

// CalculateCompositeScore calculates a weighted score from replay metrics
func CalculateCompositeScore(metrics Metrics) float64 {
	sharpeScore := normalize(metrics.SharpeRatio, -2, 3)
	roiScore := normalize(metrics.TotalReturn, -0.5, 1.0)
	profitFactorScore := normalize(metrics.ProfitFactor, 0, 3)
	drawdownPenalty := 1.0 - normalize(metrics.MaxDrawdown, 0, 0.5)
	winRateScore := normalize(metrics.WinRate, 0, 1)

	weighted := 0.0
	weighted += sharpeScore * 0.30
	weighted += roiScore * 0.20
	weighted += profitFactorScore * 0.20
	weighted += drawdownPenalty * 0.15
	weighted += winRateScore * 0.15

	return weighted
}

// GenerateRecommendation determines whether the league's model is
// acceptable for publishing picks
func GenerateRecommendation(score, consistency, totalReturn, ruinProb float64) string {
	if score > 0.7 && totalReturn > 0 && consistency > 0.6 && ruinProb < 0.05 {
		return "ACCEPT"
	}
	if score < 0.4 || totalReturn < 0 || consistency < 0.4 || ruinProb > 0.2 {
		return "REJECT"
	}
	return "NEEDS_REVIEW"
}

func normalize(value, min, max float64) float64 {
	if max-min == 0 {
		return 0
	}
	v := (value - min) / (max - min)
	return math.Max(0, math.Min(1, v))
}
