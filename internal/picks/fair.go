// Package picks implements the probability-based picks engine: fair value
// modelling from team efficiency ratings, market edge computation, and
// slate building.
package picks

import (
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/ratings"
)

// Per-league logit scales: how many rating points move the win probability
// by one logit. Higher-scoring sports need larger scales so a routine
// efficiency gap does not saturate the model.
var defaultRatingScales = map[models.League]float64{
	models.LeagueNBA:    10.0,
	models.LeagueNCAAB:  10.0,
	models.LeagueNFL:    6.0,
	models.LeagueNCAAF:  7.0,
	models.LeagueSoccer: 1.2,
}

// Per-league scales for converting a points gap against a line into a
// cover/over probability.
var defaultLineScales = map[models.League]float64{
	models.LeagueNBA:    9.0,
	models.LeagueNCAAB:  9.0,
	models.LeagueNFL:    9.5,
	models.LeagueNCAAF:  11.0,
	models.LeagueSoccer: 1.5,
}

// RatingScale returns the moneyline logit scale for a league.
func RatingScale(league models.League) float64 {
	if s, ok := defaultRatingScales[league]; ok {
		return s
	}
	return 10.0
}

// LineScale returns the spread/total logit scale for a league.
func LineScale(league models.League) float64 {
	if s, ok := defaultLineScales[league]; ok {
		return s
	}
	return 9.0
}

// FairMoneylineProb returns the model's home win probability for a
// matchup. Each side's composite rating is its offense measured against
// the opponent's defense.
func FairMoneylineProb(home, away models.TeamRating, scale float64) float64 {
	homeRating := home.Off - away.Def
	awayRating := away.Off - home.Def
	return ratings.WinProbability(homeRating, awayRating, scale)
}

// FairSpread returns the model's expected home margin of victory.
func FairSpread(home, away models.TeamRating) float64 {
	return (home.Off - away.Def) - (away.Off - home.Def)
}

// FairTotal returns the model's expected combined score.
func FairTotal(home, away models.TeamRating) float64 {
	return home.Off + away.Off
}

// CoverProbability returns the probability that the home side covers a
// home-relative spread line given the model's fair margin. A -3.5 line
// means home must win by more than 3.5.
func CoverProbability(fairMargin, line, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return ratings.Logistic((fairMargin + line) / scale)
}

// OverProbability returns the probability that the combined score exceeds
// the total line given the model's fair total.
func OverProbability(fairTotal, line, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return ratings.Logistic((fairTotal - line) / scale)
}
