package backtest

import (
	"time"

	"github.com/yourusername/edge-picks/internal/models"
)

// Outcome is the graded result of a pick against the final score.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomePush    Outcome = "push"
	OutcomeSkipped Outcome = "skipped"
)

// SettledPick pairs a generated pick with its graded outcome and PnL.
type SettledPick struct {
	Pick      *models.Pick `json:"pick"`
	Outcome   Outcome      `json:"outcome"`
	Stake     float64      `json:"stake"`
	Price     float64      `json:"price"` // decimal odds the stake settled at
	PnL       float64      `json:"pnl"`
	EV        float64      `json:"ev"`
	SettledAt time.Time    `json:"settled_at"`
}

// BacktestState tracks current backtest state
type BacktestState struct {
	CurrentBankroll float64
	PeakBankroll    float64
	Picks           []*SettledPick
	EquityCurve     EquityCurve
	DailyPnL        map[time.Time]float64
}

// NewBacktestState initializes backtest state
func NewBacktestState(initialBankroll float64, start time.Time) *BacktestState {
	state := &BacktestState{
		CurrentBankroll: initialBankroll,
		PeakBankroll:    initialBankroll,
		Picks:           []*SettledPick{},
		EquityCurve:     EquityCurve{},
		DailyPnL:        make(map[time.Time]float64),
	}
	state.RecordEquityPoint(start, initialBankroll)
	return state
}

// UpdateState applies a settled pick to the bankroll and daily PnL.
func (s *BacktestState) UpdateState(sp *SettledPick) {
	s.CurrentBankroll += sp.PnL
	if s.CurrentBankroll > s.PeakBankroll {
		s.PeakBankroll = s.CurrentBankroll
	}
	s.Picks = append(s.Picks, sp)

	day := time.Date(sp.SettledAt.Year(), sp.SettledAt.Month(), sp.SettledAt.Day(), 0, 0, 0, 0, time.UTC)
	s.DailyPnL[day] += sp.PnL
}

// GetCurrentDrawdown calculates peak-to-trough drawdown
func (s *BacktestState) GetCurrentDrawdown() float64 {
	if s.PeakBankroll == 0 {
		return 0
	}
	drawdown := (s.PeakBankroll - s.CurrentBankroll) / s.PeakBankroll
	if drawdown < 0 {
		return 0
	}
	return drawdown
}

// RecordEquityPoint adds an equity point to the curve
func (s *BacktestState) RecordEquityPoint(t time.Time, value float64) {
	drawdown := 0.0
	if value < s.PeakBankroll && s.PeakBankroll > 0 {
		drawdown = (s.PeakBankroll - value) / s.PeakBankroll
	}

	s.EquityCurve = append(s.EquityCurve, EquityPoint{
		Time:     t,
		Value:    value,
		Drawdown: drawdown,
	})
}

// SettledCount returns the number of picks that actually graded.
func (s *BacktestState) SettledCount() int {
	count := 0
	for _, sp := range s.Picks {
		if sp.Outcome != OutcomeSkipped {
			count++
		}
	}
	return count
}
