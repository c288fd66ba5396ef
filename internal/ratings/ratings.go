// Package ratings computes team efficiency ratings and win probabilities
// from recent game results.
package ratings

import (
	"math"

	"github.com/yourusername/edge-picks/internal/models"
)

// ComputeEfficiency derives per-game offensive and defensive efficiency for
// a team from the finished fixtures it appears in:
//
//	Off = mean(points for), Def = mean(points against), Net = Off - Def
//
// Fixtures the team does not appear in are ignored. A team with no usable
// fixtures rates zero across the board, which keeps downstream pricing
// defined when the provider has no history for a league yet.
func ComputeEfficiency(fixtures []*models.Fixture, team string) models.TeamRating {
	rating := models.TeamRating{Team: team}

	var pointsFor, pointsAgainst float64
	for _, f := range fixtures {
		if !f.IsFinished() {
			continue
		}
		switch team {
		case f.HomeTeam:
			pointsFor += float64(*f.HomeScore)
			pointsAgainst += float64(*f.AwayScore)
		case f.AwayTeam:
			pointsFor += float64(*f.AwayScore)
			pointsAgainst += float64(*f.HomeScore)
		default:
			continue
		}
		rating.Games++
	}

	if rating.Games == 0 {
		return rating
	}

	rating.Off = round2(pointsFor / float64(rating.Games))
	rating.Def = round2(pointsAgainst / float64(rating.Games))
	rating.Net = round2(rating.Off - rating.Def)
	return rating
}

// Logistic is the standard logistic function.
func Logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// WinProbability maps a home/away rating difference to a home win
// probability with a Bradley-Terry style transform. Scale controls how many
// rating points equal one logit; it must be positive.
func WinProbability(homeRating, awayRating, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return Logistic((homeRating - awayRating) / scale)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
