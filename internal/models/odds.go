package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceFormat distinguishes how a quoted price is expressed.
type PriceFormat string

const (
	PriceDecimal  PriceFormat = "decimal"
	PriceAmerican PriceFormat = "american"
)

// Price is a single quoted price from a bookmaker.
type Price struct {
	Value  decimal.Decimal `json:"value"`
	Format PriceFormat     `json:"format"`
}

// ImpliedProbability converts the price to its implied win probability,
// overround included. Returns 0 for unusable prices.
func (p Price) ImpliedProbability() float64 {
	v, _ := p.Value.Float64()
	switch p.Format {
	case PriceAmerican:
		if v >= 100 {
			return 100 / (v + 100)
		}
		if v <= -100 {
			return -v / (-v + 100)
		}
		return 0
	default:
		if v <= 1 {
			return 0
		}
		return 1 / v
	}
}

// DecimalOdds converts the price to decimal odds format.
func (p Price) DecimalOdds() decimal.Decimal {
	if p.Format == PriceDecimal {
		return p.Value
	}
	prob := p.ImpliedProbability()
	if prob <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(1 / prob).Round(3)
}

// MoneylineMarket holds straight-up winner prices. Draw is only offered
// for three-way (soccer) markets.
type MoneylineMarket struct {
	Home *Price `json:"home"`
	Away *Price `json:"away"`
	Draw *Price `json:"draw,omitempty"`
}

// SpreadMarket holds handicap prices around a single line (home-relative).
type SpreadMarket struct {
	Line float64 `json:"line"`
	Home *Price  `json:"home"`
	Away *Price  `json:"away"`
}

// TotalMarket holds over/under prices around a single points line.
type TotalMarket struct {
	Line  float64 `json:"line"`
	Over  *Price  `json:"over"`
	Under *Price  `json:"under"`
}

// OddsBook is the unified market view for one fixture at one bookmaker.
type OddsBook struct {
	FixtureProviderID int64            `json:"fixture_id"`
	League            League           `json:"league"`
	BookmakerID       int              `json:"bookmaker_id"`
	Bookmaker         string           `json:"bookmaker"`
	Moneyline         *MoneylineMarket `json:"moneyline"`
	Spread            *SpreadMarket    `json:"spread"`
	Total             *TotalMarket     `json:"total"`
	FetchedAt         time.Time        `json:"fetched_at"`
}

// HasMarkets reports whether any market was found in the payload.
func (b *OddsBook) HasMarkets() bool {
	return b != nil && (b.Moneyline != nil || b.Spread != nil || b.Total != nil)
}

// OddsSnapshot is a point-in-time persisted record of a single market side.
type OddsSnapshot struct {
	Time      time.Time `db:"time" json:"time" validate:"required"`
	FixtureID uuid.UUID `db:"fixture_id" json:"fixture_id" validate:"required,uuid4"`
	Bookmaker string    `db:"bookmaker" json:"bookmaker" validate:"required"`
	Market    BetType   `db:"market" json:"market" validate:"required"`
	Period    Period    `db:"period" json:"period"`
	Side      string    `db:"side" json:"side" validate:"required"`
	Line      *float64  `db:"line" json:"line"`
	Price     float64   `db:"price" json:"price" validate:"required,gt=1"`
}
