package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/models"
)

// Decimal odds outside this range are provider glitches, not prices.
var (
	minDecimalOdds = decimal.NewFromFloat(1.01)
	maxDecimalOdds = decimal.NewFromInt(1000)
)

// DataValidator validates fixtures and odds before persistence
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataValidator{logger: logger}
}

// ValidateFixture validates fixture data for required fields and constraints
func (v *DataValidator) ValidateFixture(fixture *models.Fixture) []string {
	var errors []string

	if fixture.ProviderID <= 0 {
		errors = append(errors, "provider_id is required")
	}

	if fixture.HomeTeam == "" {
		errors = append(errors, "home_team is required")
	}

	if fixture.AwayTeam == "" {
		errors = append(errors, "away_team is required")
	}

	if fixture.HomeTeam != "" && fixture.HomeTeam == fixture.AwayTeam {
		errors = append(errors, "home and away team must differ")
	}

	if fixture.StartTime.IsZero() {
		errors = append(errors, "start_time is required")
	}

	if _, err := models.ParseLeague(string(fixture.League)); err != nil {
		errors = append(errors, fmt.Sprintf("unsupported league %q", fixture.League))
	}

	switch fixture.Status {
	case models.FixtureScheduled, models.FixtureLive, models.FixtureFinished, models.FixtureCancelled:
	default:
		errors = append(errors, fmt.Sprintf("unknown status %q", fixture.Status))
	}

	// Finished fixtures must carry both scores.
	if fixture.Status == models.FixtureFinished {
		if fixture.HomeScore == nil || fixture.AwayScore == nil {
			errors = append(errors, "finished fixture missing final scores")
		} else if *fixture.HomeScore < 0 || *fixture.AwayScore < 0 {
			errors = append(errors, "scores cannot be negative")
		}
	}

	now := time.Now()
	if fixture.StartTime.After(now.Add(365 * 24 * time.Hour)) {
		errors = append(errors, "fixture scheduled more than 1 year in future")
	}

	return errors
}

// ValidatePrice validates that a quoted price is usable
func (v *DataValidator) ValidatePrice(price *models.Price) []string {
	var errors []string
	if price == nil {
		return []string{"price is required"}
	}

	dec := price.DecimalOdds()
	if dec.LessThan(minDecimalOdds) || dec.GreaterThan(maxDecimalOdds) {
		errors = append(errors, fmt.Sprintf("decimal odds out of range (1.01-1000), got %s", dec.String()))
	}

	return errors
}

// ValidateSnapshot validates an odds snapshot row before insertion
func (v *DataValidator) ValidateSnapshot(snapshot *models.OddsSnapshot) []string {
	var errors []string

	if snapshot.Bookmaker == "" {
		errors = append(errors, "bookmaker is required")
	}

	if snapshot.Side == "" {
		errors = append(errors, "side is required")
	}

	if snapshot.Time.IsZero() {
		errors = append(errors, "time is required")
	}

	dec := decimal.NewFromFloat(snapshot.Price)
	if dec.LessThan(minDecimalOdds) || dec.GreaterThan(maxDecimalOdds) {
		errors = append(errors, fmt.Sprintf("price out of range (1.01-1000), got %.3f", snapshot.Price))
	}

	return errors
}

// IsValidTeamName checks if a team name is in expected format
func (v *DataValidator) IsValidTeamName(team string) bool {
	return len(team) > 0 && len(team) < 100
}
