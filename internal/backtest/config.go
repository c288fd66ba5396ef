package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/edge-picks/internal/config"
	"github.com/yourusername/edge-picks/internal/models"
)

// BacktestConfig extends core config with replay-specific settings
type BacktestConfig struct {
	StartDate       time.Time
	EndDate         time.Time
	Leagues         []models.League
	InitialBankroll float64
	FlatStake       float64
	OutputPath      string
	Season          string
	LeagueOverride  int
	RiskFreeRate    float64
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig, leagues []string) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}
	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
	}

	parsed := make([]models.League, 0, len(leagues))
	for _, raw := range leagues {
		league, err := models.ParseLeague(raw)
		if err != nil {
			return BacktestConfig{}, err
		}
		parsed = append(parsed, league)
	}

	bt := BacktestConfig{
		StartDate:       start,
		EndDate:         end,
		Leagues:         parsed,
		InitialBankroll: cfg.InitialBankroll,
		FlatStake:       cfg.FlatStake,
		OutputPath:      cfg.OutputPath,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.StartDate.After(b.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if len(b.Leagues) == 0 {
		return fmt.Errorf("at least one league is required")
	}
	if b.InitialBankroll <= 0 {
		return fmt.Errorf("initial bankroll must be positive")
	}
	if b.FlatStake <= 0 {
		return fmt.Errorf("flat stake must be positive")
	}
	if b.FlatStake > b.InitialBankroll {
		return fmt.Errorf("flat stake cannot exceed initial bankroll")
	}
	return nil
}
