package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents a predicted outcome for a single fixture market.
type Pick struct {
	ID                uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	FixtureID         uuid.UUID `db:"fixture_id" json:"-"`
	FixtureProviderID int64     `db:"fixture_provider_id" json:"fixture_id" validate:"required,gt=0"`
	League            League    `db:"league" json:"league" validate:"required"`
	BetType           BetType   `db:"bet_type" json:"bet_type" validate:"required"`
	Selection         string    `db:"selection" json:"selection" validate:"required"`
	Line              *float64  `db:"line" json:"line"`
	Price             *Price    `db:"price" json:"price"`
	Edge              float64   `db:"edge" json:"edge"`
	WinProb           float64   `db:"win_prob" json:"win_prob" validate:"gte=0,lte=1"`
	GeneratedAt       time.Time `db:"generated_at" json:"generated_at"`
}

// HasEdge reports whether the pick clears the given edge threshold.
func (p *Pick) HasEdge(threshold float64) bool {
	return p.Edge >= threshold
}

// TeamRating holds per-game offensive and defensive efficiency for a team.
type TeamRating struct {
	Team  string  `json:"team"`
	Games int     `json:"games"`
	Off   float64 `json:"off"`
	Def   float64 `json:"def"`
	Net   float64 `json:"net"`
}
