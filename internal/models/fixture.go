package models

import (
	"time"

	"github.com/google/uuid"
)

// FixtureStatus represents the lifecycle state of a fixture.
type FixtureStatus string

const (
	FixtureScheduled FixtureStatus = "scheduled"
	FixtureLive      FixtureStatus = "live"
	FixtureFinished  FixtureStatus = "finished"
	FixtureCancelled FixtureStatus = "cancelled"
)

// Fixture represents a single game as normalized from the provider.
type Fixture struct {
	ID         uuid.UUID     `db:"id" json:"id" validate:"required,uuid4"`
	ProviderID int64         `db:"provider_id" json:"provider_id" validate:"required,gt=0"`
	League     League        `db:"league" json:"league" validate:"required"`
	Season     int           `db:"season" json:"season"`
	StartTime  time.Time     `db:"start_time" json:"start_time" validate:"required"`
	HomeTeam   string        `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam   string        `db:"away_team" json:"away_team" validate:"required"`
	HomeScore  *int          `db:"home_score" json:"home_score"`
	AwayScore  *int          `db:"away_score" json:"away_score"`
	Status     FixtureStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// IsFinished reports whether both final scores are known.
func (f *Fixture) IsFinished() bool {
	return f.Status == FixtureFinished && f.HomeScore != nil && f.AwayScore != nil
}

// Margin returns home score minus away score for a finished fixture.
func (f *Fixture) Margin() int {
	if f.HomeScore == nil || f.AwayScore == nil {
		return 0
	}
	return *f.HomeScore - *f.AwayScore
}

// TotalPoints returns the combined final score for a finished fixture.
func (f *Fixture) TotalPoints() int {
	if f.HomeScore == nil || f.AwayScore == nil {
		return 0
	}
	return *f.HomeScore + *f.AwayScore
}
