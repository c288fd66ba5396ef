package backtest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/edge-picks/internal/models"
)

// Metrics represents backtest performance metrics
type Metrics struct {
	TotalReturn  float64   `json:"total_return"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	SharpeRatio  float64   `json:"sharpe_ratio"`
	TotalPicks   int       `json:"total_picks"`
	SettledPicks int       `json:"settled_picks"`
	WinningPicks int       `json:"winning_picks"`
	LosingPicks  int       `json:"losing_picks"`
	Pushes       int       `json:"pushes"`
	WinRate      float64   `json:"win_rate"`
	ProfitFactor float64   `json:"profit_factor"`
	AverageWin   float64   `json:"average_win"`
	AverageLoss  float64   `json:"average_loss"`
	Expectancy   float64   `json:"expectancy"`
	LargestWin   float64   `json:"largest_win"`
	LargestLoss  float64   `json:"largest_loss"`
	SumEV        float64   `json:"sum_ev"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TradingDays  int       `json:"trading_days"`
}

// CalculateMetrics calculates metrics from backtest state
func CalculateMetrics(state *BacktestState, cfg BacktestConfig) Metrics {
	metrics := Metrics{
		StartDate:   cfg.StartDate,
		EndDate:     cfg.EndDate,
		TradingDays: int(cfg.EndDate.Sub(cfg.StartDate).Hours()/24) + 1,
	}

	if state == nil || len(state.EquityCurve) == 0 {
		return metrics
	}

	initial := state.EquityCurve[0].Value
	final := state.EquityCurve[len(state.EquityCurve)-1].Value
	if initial > 0 {
		metrics.TotalReturn = (final - initial) / initial
	}

	metrics.MaxDrawdown = calculateMaxDrawdown(state.EquityCurve)
	metrics.SharpeRatio = calculateSharpeRatio(state.EquityCurve.GetReturns(), cfg.RiskFreeRate)

	metrics.TotalPicks = len(state.Picks)
	metrics.SettledPicks = state.SettledCount()
	metrics.WinningPicks, metrics.LosingPicks, metrics.Pushes,
		metrics.AverageWin, metrics.AverageLoss,
		metrics.LargestWin, metrics.LargestLoss = calculatePickStats(state.Picks)
	metrics.WinRate = calculateWinRate(metrics.WinningPicks, metrics.WinningPicks+metrics.LosingPicks)
	metrics.ProfitFactor = calculateProfitFactor(state.Picks)
	metrics.Expectancy = calculateExpectancy(state.Picks)
	metrics.SumEV = calculateSumEV(state.Picks)

	return metrics
}

// ToJSON exports metrics to JSON
func (m Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// ToResult converts metrics to a persistable run summary.
func (m Metrics) ToResult(league models.League) *models.BacktestResult {
	return &models.BacktestResult{
		ID:           uuid.New(),
		League:       league,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		PickCount:    m.TotalPicks,
		SettledCount: m.SettledPicks,
		WinCount:     m.WinningPicks,
		TotalReturn:  m.TotalReturn,
		SumEV:        m.SumEV,
		Metrics:      json.RawMessage(m.ToJSON()),
		CreatedAt:    time.Now().UTC(),
	}
}

func calculateSharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := average(returns)
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	return (mean - riskFreeRate/252.0) / std * math.Sqrt(252)
}

func calculateMaxDrawdown(curve EquityCurve) float64 {
	maxDD := 0.0
	peak := 0.0
	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - p.Value) / peak
		if drawdown > maxDD {
			maxDD = drawdown
		}
	}
	return maxDD
}

func calculateProfitFactor(picks []*SettledPick) float64 {
	grossProfit := 0.0
	grossLoss := 0.0
	for _, sp := range picks {
		if sp.PnL > 0 {
			grossProfit += sp.PnL
		} else {
			grossLoss += math.Abs(sp.PnL)
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 999
		}
		return 0
	}
	return grossProfit / grossLoss
}

func calculateExpectancy(picks []*SettledPick) float64 {
	settled := 0
	net := 0.0
	for _, sp := range picks {
		if sp.Outcome == OutcomeSkipped {
			continue
		}
		settled++
		net += sp.PnL
	}
	if settled == 0 {
		return 0
	}
	return net / float64(settled)
}

func calculateSumEV(picks []*SettledPick) float64 {
	sum := 0.0
	for _, sp := range picks {
		sum += sp.EV
	}
	return sum
}

func calculatePickStats(picks []*SettledPick) (int, int, int, float64, float64, float64, float64) {
	wins := 0
	losses := 0
	pushes := 0
	winSum := 0.0
	lossSum := 0.0
	largestWin := 0.0
	largestLoss := 0.0
	for _, sp := range picks {
		switch sp.Outcome {
		case OutcomeWin:
			wins++
			winSum += sp.PnL
			if sp.PnL > largestWin {
				largestWin = sp.PnL
			}
		case OutcomeLoss:
			losses++
			lossSum += sp.PnL
			if sp.PnL < largestLoss {
				largestLoss = sp.PnL
			}
		case OutcomePush:
			pushes++
		}
	}

	avgWin := 0.0
	avgLoss := 0.0
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return wins, losses, pushes, avgWin, avgLoss, largestWin, largestLoss
}

func calculateWinRate(wins, graded int) float64 {
	if graded == 0 {
		return 0
	}
	return float64(wins) / float64(graded)
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func sortFloats(values []float64) {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if values[j] < values[i] {
				values[i], values[j] = values[j], values[i]
			}
		}
	}
}
