package odds

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-picks/internal/models"
)

func decimalPrice(v float64) models.Price {
	return models.Price{Value: decimal.NewFromFloat(v), Format: models.PriceDecimal}
}

func TestAmericanToProbability(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected float64
	}{
		{"Even favorite", -100, 0.5},
		{"Even dog", 100, 0.5},
		{"Standard juice", -110, 110.0 / 210.0},
		{"Long shot", 400, 0.2},
		{"Heavy favorite", -400, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := AmericanToProbability(tt.price)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, p, 1e-9)
		})
	}
}

func TestAmericanToProbabilityRejectsMidrange(t *testing.T) {
	_, err := AmericanToProbability(50)
	assert.Error(t, err)

	_, err = AmericanToProbability(-99)
	assert.Error(t, err)
}

func TestProbabilityToAmerican(t *testing.T) {
	assert.Equal(t, 0, ProbabilityToAmerican(0))
	assert.Equal(t, 0, ProbabilityToAmerican(1))
	assert.Equal(t, 400, ProbabilityToAmerican(0.2))
	assert.Equal(t, -400, ProbabilityToAmerican(0.8))
	assert.Equal(t, -100, ProbabilityToAmerican(0.5))
}

func TestRemoveVigTwoWay(t *testing.T) {
	// Both sides at 1.91 imply ~52.3% each; fair should be 50/50.
	a, b := RemoveVigTwoWay(decimalPrice(1.91), decimalPrice(1.91))
	assert.InDelta(t, 0.5, a, 1e-9)
	assert.InDelta(t, 0.5, b, 1e-9)
	assert.InDelta(t, 1.0, a+b, 1e-9)
}

func TestRemoveVigThreeWay(t *testing.T) {
	h, d, a := RemoveVigThreeWay(decimalPrice(1.90), decimalPrice(3.50), decimalPrice(4.20))
	assert.InDelta(t, 1.0, h+d+a, 1e-9)
	assert.Greater(t, h, d)
	assert.Greater(t, d, a)
}

func TestRemoveVigZeroPrices(t *testing.T) {
	a, b := RemoveVigTwoWay(models.Price{}, models.Price{})
	assert.Zero(t, a)
	assert.Zero(t, b)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format models.PriceFormat
		value  string
	}{
		{"Decimal odds", "1.90", models.PriceDecimal, "1.9"},
		{"American dog with plus", "+110", models.PriceAmerican, "110"},
		{"American favorite", "-115", models.PriceAmerican, "-115"},
		{"Bare american magnitude", "150", models.PriceAmerican, "150"},
		{"High decimal", "12.5", models.PriceDecimal, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePrice(tt.raw)
			require.NotNil(t, p)
			assert.Equal(t, tt.format, p.Format)
			assert.Equal(t, tt.value, p.Value.String())
		})
	}

	assert.Nil(t, ParsePrice(""))
	assert.Nil(t, ParsePrice("n/a"))
}

func TestPriceImpliedProbability(t *testing.T) {
	assert.InDelta(t, 0.5, decimalPrice(2.0).ImpliedProbability(), 1e-9)

	american := models.Price{Value: decimal.NewFromInt(-110), Format: models.PriceAmerican}
	assert.InDelta(t, 110.0/210.0, american.ImpliedProbability(), 1e-9)
}

func TestFairPrice(t *testing.T) {
	p := FairPrice(0.5)
	require.NotNil(t, p)
	assert.Equal(t, models.PriceDecimal, p.Format)
	assert.Equal(t, "2", p.Value.String())

	assert.Nil(t, FairPrice(0))
	assert.Nil(t, FairPrice(1))
}
