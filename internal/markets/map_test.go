package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/edge-picks/internal/models"
)

func TestResolveBetIDFullGame(t *testing.T) {
	assert.Equal(t, 1, ResolveBetID(models.LeagueNFL, models.BetMoneyline, models.PeriodGame))
	assert.Equal(t, 2, ResolveBetID(models.LeagueNFL, models.BetSpread, models.PeriodGame))
	assert.Equal(t, 3, ResolveBetID(models.LeagueNFL, models.BetTotal, models.PeriodGame))
	assert.Equal(t, 1, ResolveBetID(models.LeagueSoccer, models.BetMoneyline, models.PeriodGame))
}

func TestResolveBetIDQuarterMarkets(t *testing.T) {
	assert.Equal(t, 47, ResolveBetID(models.LeagueNFL, models.BetSpread, models.Period1Q))
	assert.Equal(t, 64, ResolveBetID(models.LeagueNFL, models.BetTotal, models.Period4Q))
	assert.Equal(t, 63, ResolveBetID(models.LeagueNBA, models.BetTotal, models.Period3Q))
}

func TestResolveBetIDDefaultsToGame(t *testing.T) {
	assert.Equal(t, 1, ResolveBetID(models.LeagueNBA, models.BetMoneyline, ""))
}

func TestResolveBetIDAliasFallback(t *testing.T) {
	// NCAAB quotes no quarter markets; the alias-only fallback still
	// resolves the full-game id.
	assert.Equal(t, 2, ResolveBetID(models.LeagueNCAAB, models.BetSpread, models.Period1Q))
}

func TestResolveBetIDUnknown(t *testing.T) {
	assert.Equal(t, 0, ResolveBetID(models.League("cricket"), models.BetTotal, models.PeriodGame))
}

func TestInferAlias(t *testing.T) {
	tests := []struct {
		name     string
		expected models.BetType
	}{
		{"Match Winner", models.BetMoneyline},
		{"1X2", models.BetMoneyline},
		{"Asian Handicap", models.BetSpread},
		{"Point Spread", models.BetSpread},
		{"Goals Over/Under", models.BetTotal},
		{"Game Total", models.BetTotal},
	}

	for _, tt := range tests {
		alias, ok := InferAlias(tt.name)
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.expected, alias, tt.name)
	}

	_, ok := InferAlias("Correct Score")
	assert.False(t, ok)
}

func TestInferPeriod(t *testing.T) {
	assert.Equal(t, models.Period1Q, InferPeriod("1st Quarter Spread"))
	assert.Equal(t, models.Period2H, InferPeriod("Second Half Total"))
	assert.Equal(t, models.PeriodGame, InferPeriod("Full Time Result"))
	assert.Equal(t, models.PeriodGame, InferPeriod("Moneyline"))
}
