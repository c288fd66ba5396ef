package backtest

import (
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/odds"
)

// GradePick grades a pick against a finished fixture's final score.
// Fixtures with no final score, and spread or total picks with no line,
// grade as skipped.
func GradePick(pick *models.Pick, fixture *models.Fixture) Outcome {
	if pick == nil || fixture == nil || !fixture.IsFinished() {
		return OutcomeSkipped
	}

	switch pick.BetType {
	case models.BetMoneyline:
		return gradeMoneyline(pick, fixture)
	case models.BetSpread:
		return gradeSpread(pick, fixture)
	case models.BetTotal:
		return gradeTotal(pick, fixture)
	}
	return OutcomeSkipped
}

func gradeMoneyline(pick *models.Pick, fixture *models.Fixture) Outcome {
	margin := fixture.Margin()
	if margin == 0 {
		// Three-way markets settle a drawn match against either team.
		if fixture.League == models.LeagueSoccer {
			return OutcomeLoss
		}
		return OutcomePush
	}

	homeWon := margin > 0
	if pick.Selection == fixture.HomeTeam {
		if homeWon {
			return OutcomeWin
		}
		return OutcomeLoss
	}
	if homeWon {
		return OutcomeLoss
	}
	return OutcomeWin
}

// gradeSpread grades a handicap pick. The stored line is relative to the
// selected team, so the away side already carries the negated line.
func gradeSpread(pick *models.Pick, fixture *models.Fixture) Outcome {
	if pick.Line == nil {
		return OutcomeSkipped
	}

	teamMargin := float64(fixture.Margin())
	if pick.Selection != fixture.HomeTeam {
		teamMargin = -teamMargin
	}

	adjusted := teamMargin + *pick.Line
	switch {
	case adjusted > 0:
		return OutcomeWin
	case adjusted < 0:
		return OutcomeLoss
	}
	return OutcomePush
}

func gradeTotal(pick *models.Pick, fixture *models.Fixture) Outcome {
	if pick.Line == nil {
		return OutcomeSkipped
	}

	total := float64(fixture.TotalPoints())
	if total == *pick.Line {
		return OutcomePush
	}

	over := total > *pick.Line
	if pick.Selection == "over" {
		if over {
			return OutcomeWin
		}
		return OutcomeLoss
	}
	if over {
		return OutcomeLoss
	}
	return OutcomeWin
}

// PickDecimalOdds returns the decimal odds the pick settles at. Picks
// without a quoted price settle at the model's fair price.
func PickDecimalOdds(pick *models.Pick) float64 {
	if pick.Price != nil {
		if v, _ := pick.Price.DecimalOdds().Float64(); v > 1 {
			return v
		}
	}
	if fair := odds.FairPrice(pick.WinProb); fair != nil {
		if v, _ := fair.DecimalOdds().Float64(); v > 1 {
			return v
		}
	}
	return 0
}

// PickPnL returns the profit or loss for a graded pick at the given stake.
func PickPnL(pick *models.Pick, outcome Outcome, stake float64) float64 {
	switch outcome {
	case OutcomeWin:
		dec := PickDecimalOdds(pick)
		if dec <= 1 {
			return 0
		}
		return stake * (dec - 1)
	case OutcomeLoss:
		return -stake
	}
	return 0
}

// PickEV returns the model's expected value for the pick at the given
// stake: win probability against the settling price, losses at full stake.
func PickEV(pick *models.Pick, stake float64) float64 {
	dec := PickDecimalOdds(pick)
	if dec <= 1 {
		return 0
	}
	return stake * (pick.WinProb*(dec-1) - (1-pick.WinProb))
}
