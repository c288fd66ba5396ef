// Package odds normalizes bookmaker payloads into unified markets and
// converts between price formats and probabilities.
package odds

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/edge-picks/internal/models"
)

// AmericanToProbability converts an American price to its implied probability.
func AmericanToProbability(price float64) (float64, error) {
	if price >= 100 {
		return 100 / (price + 100), nil
	}
	if price <= -100 {
		return -price / (-price + 100), nil
	}
	return 0, fmt.Errorf("american price must be <= -100 or >= 100, got %v", price)
}

// ProbabilityToAmerican converts a win probability to a fair American price.
// Probabilities at or outside (0, 1) return 0.
func ProbabilityToAmerican(p float64) int {
	if p <= 0 || p >= 1 {
		return 0
	}
	if p < 0.5 {
		return int(math.Round(100 * p / (1 - p)))
	}
	return int(math.Round(-100 * (1 - p) / p))
}

// DecimalToProbability converts decimal odds to implied probability.
func DecimalToProbability(price float64) (float64, error) {
	if price <= 1 {
		return 0, fmt.Errorf("decimal odds must be greater than 1, got %v", price)
	}
	return 1 / price, nil
}

// RemoveVigTwoWay strips the bookmaker overround from a two-way market,
// returning fair probabilities that sum to 1.
func RemoveVigTwoWay(a, b models.Price) (float64, float64) {
	rawA := a.ImpliedProbability()
	rawB := b.ImpliedProbability()
	total := rawA + rawB
	if total <= 0 {
		return 0, 0
	}
	return rawA / total, rawB / total
}

// RemoveVigThreeWay strips the overround from a three-way (1X2) market.
func RemoveVigThreeWay(a, b, c models.Price) (float64, float64, float64) {
	rawA := a.ImpliedProbability()
	rawB := b.ImpliedProbability()
	rawC := c.ImpliedProbability()
	total := rawA + rawB + rawC
	if total <= 0 {
		return 0, 0, 0
	}
	return rawA / total, rawB / total, rawC / total
}

// ParsePrice parses a quoted price string from the provider. Values with an
// explicit sign or magnitude >= 100 are treated as American, anything else
// as decimal odds. Returns nil for empty or unparseable input.
func ParsePrice(raw string) *models.Price {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	american := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")

	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	format := models.PriceDecimal
	if american || v.Abs().GreaterThanOrEqual(decimal.NewFromInt(100)) {
		format = models.PriceAmerican
	}

	return &models.Price{Value: v, Format: format}
}

// FairPrice builds a decimal-format price from a win probability.
func FairPrice(p float64) *models.Price {
	if p <= 0 || p >= 1 {
		return nil
	}
	return &models.Price{
		Value:  decimal.NewFromFloat(1 / p).Round(3),
		Format: models.PriceDecimal,
	}
}
