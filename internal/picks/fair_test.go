package picks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/edge-picks/internal/models"
)

func rating(off, def float64) models.TeamRating {
	return models.TeamRating{Games: 10, Off: off, Def: def, Net: off - def}
}

func TestRatingScalePerLeague(t *testing.T) {
	assert.Equal(t, 10.0, RatingScale(models.LeagueNBA))
	assert.Equal(t, 10.0, RatingScale(models.LeagueNCAAB))
	assert.Equal(t, 6.0, RatingScale(models.LeagueNFL))
	assert.Equal(t, 1.2, RatingScale(models.LeagueSoccer))
	// Unknown league falls back to the basketball scale.
	assert.Equal(t, 10.0, RatingScale(models.League("cricket")))
}

func TestFairMoneylineProbEvenMatchup(t *testing.T) {
	home := rating(110, 108)
	away := rating(110, 108)

	prob := FairMoneylineProb(home, away, RatingScale(models.LeagueNBA))
	assert.InDelta(t, 0.5, prob, 1e-9)
}

func TestFairMoneylineProbFavorsStrongerTeam(t *testing.T) {
	strong := rating(118, 105)
	weak := rating(104, 114)

	homeStrong := FairMoneylineProb(strong, weak, 10)
	assert.Greater(t, homeStrong, 0.5)

	homeWeak := FairMoneylineProb(weak, strong, 10)
	assert.Less(t, homeWeak, 0.5)

	// Symmetry: swapping sides mirrors the probability.
	assert.InDelta(t, 1-homeStrong, homeWeak, 1e-9)
}

func TestFairSpreadAndTotal(t *testing.T) {
	home := rating(115, 108)
	away := rating(109, 112)

	// (115-112) - (109-108) = 2
	assert.InDelta(t, 2.0, FairSpread(home, away), 1e-9)
	assert.InDelta(t, 224.0, FairTotal(home, away), 1e-9)
}

func TestCoverProbability(t *testing.T) {
	// Model margin +5 against a -5 line is a coin flip.
	assert.InDelta(t, 0.5, CoverProbability(5, -5, 9), 1e-9)

	// Model margin well above the line favors the cover.
	assert.Greater(t, CoverProbability(8, -3, 9), 0.5)

	// Model margin below the line disfavors it.
	assert.Less(t, CoverProbability(2, -6, 9), 0.5)
}

func TestOverProbability(t *testing.T) {
	assert.InDelta(t, 0.5, OverProbability(220, 220, 9), 1e-9)
	assert.Greater(t, OverProbability(229, 220, 9), 0.5)
	assert.Less(t, OverProbability(212, 220, 9), 0.5)
}

func TestRoundHalf(t *testing.T) {
	assert.Equal(t, 4.5, roundHalf(4.6))
	assert.Equal(t, -3.5, roundHalf(-3.4))
	assert.Equal(t, 221.0, roundHalf(220.9))
}
