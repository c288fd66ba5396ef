package backtest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yourusername/edge-picks/internal/models"
)

func finishedFixture(league models.League, home, away string, homeScore, awayScore int) *models.Fixture {
	return &models.Fixture{
		ProviderID: 1,
		League:     league,
		HomeTeam:   home,
		AwayTeam:   away,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     models.FixtureFinished,
	}
}

func decimalPrice(v float64) *models.Price {
	return &models.Price{Value: decimal.NewFromFloat(v), Format: models.PriceDecimal}
}

func TestGradeMoneyline(t *testing.T) {
	fixture := finishedFixture(models.LeagueNBA, "Boston Celtics", "Washington Wizards", 112, 104)

	winner := &models.Pick{BetType: models.BetMoneyline, Selection: "Boston Celtics"}
	if got := GradePick(winner, fixture); got != OutcomeWin {
		t.Errorf("expected win for home favorite, got %s", got)
	}

	loser := &models.Pick{BetType: models.BetMoneyline, Selection: "Washington Wizards"}
	if got := GradePick(loser, fixture); got != OutcomeLoss {
		t.Errorf("expected loss for beaten side, got %s", got)
	}
}

func TestGradeMoneylineSoccerDrawLoses(t *testing.T) {
	fixture := finishedFixture(models.LeagueSoccer, "Arsenal", "Chelsea", 1, 1)
	pick := &models.Pick{BetType: models.BetMoneyline, Selection: "Arsenal"}
	if got := GradePick(pick, fixture); got != OutcomeLoss {
		t.Errorf("expected drawn match to settle a team pick as a loss, got %s", got)
	}
}

func TestGradeMoneylineTiePushesOutsideSoccer(t *testing.T) {
	fixture := finishedFixture(models.LeagueNFL, "Lions", "Bears", 20, 20)
	pick := &models.Pick{BetType: models.BetMoneyline, Selection: "Lions"}
	if got := GradePick(pick, fixture); got != OutcomePush {
		t.Errorf("expected tie to push, got %s", got)
	}
}

func TestGradeSpread(t *testing.T) {
	fixture := finishedFixture(models.LeagueNBA, "Boston Celtics", "Washington Wizards", 112, 104)

	homeLine := -7.5
	homeCover := &models.Pick{BetType: models.BetSpread, Selection: "Boston Celtics", Line: &homeLine}
	if got := GradePick(homeCover, fixture); got != OutcomeWin {
		t.Errorf("home -7.5 with margin 8 should cover, got %s", got)
	}

	bigLine := -8.5
	homeMiss := &models.Pick{BetType: models.BetSpread, Selection: "Boston Celtics", Line: &bigLine}
	if got := GradePick(homeMiss, fixture); got != OutcomeLoss {
		t.Errorf("home -8.5 with margin 8 should miss, got %s", got)
	}

	// Away line is stored selection-relative, so +8.5 here.
	awayLine := 8.5
	awayCover := &models.Pick{BetType: models.BetSpread, Selection: "Washington Wizards", Line: &awayLine}
	if got := GradePick(awayCover, fixture); got != OutcomeWin {
		t.Errorf("away +8.5 losing by 8 should cover, got %s", got)
	}

	pushLine := -8.0
	push := &models.Pick{BetType: models.BetSpread, Selection: "Boston Celtics", Line: &pushLine}
	if got := GradePick(push, fixture); got != OutcomePush {
		t.Errorf("home -8 with margin 8 should push, got %s", got)
	}
}

func TestGradeTotal(t *testing.T) {
	fixture := finishedFixture(models.LeagueNBA, "Boston Celtics", "Washington Wizards", 112, 104)

	low := 215.5
	over := &models.Pick{BetType: models.BetTotal, Selection: "over", Line: &low}
	if got := GradePick(over, fixture); got != OutcomeWin {
		t.Errorf("over 215.5 with total 216 should win, got %s", got)
	}

	under := &models.Pick{BetType: models.BetTotal, Selection: "under", Line: &low}
	if got := GradePick(under, fixture); got != OutcomeLoss {
		t.Errorf("under 215.5 with total 216 should lose, got %s", got)
	}

	exact := 216.0
	push := &models.Pick{BetType: models.BetTotal, Selection: "over", Line: &exact}
	if got := GradePick(push, fixture); got != OutcomePush {
		t.Errorf("over 216 with total 216 should push, got %s", got)
	}
}

func TestGradeSkipsUnfinishedAndMissing(t *testing.T) {
	pick := &models.Pick{BetType: models.BetMoneyline, Selection: "Boston Celtics"}

	if got := GradePick(pick, nil); got != OutcomeSkipped {
		t.Errorf("missing fixture should skip, got %s", got)
	}

	scheduled := &models.Fixture{
		League:   models.LeagueNBA,
		HomeTeam: "Boston Celtics",
		AwayTeam: "Washington Wizards",
		Status:   models.FixtureScheduled,
	}
	if got := GradePick(pick, scheduled); got != OutcomeSkipped {
		t.Errorf("unfinished fixture should skip, got %s", got)
	}

	noLine := &models.Pick{BetType: models.BetSpread, Selection: "Boston Celtics"}
	finished := finishedFixture(models.LeagueNBA, "Boston Celtics", "Washington Wizards", 112, 104)
	if got := GradePick(noLine, finished); got != OutcomeSkipped {
		t.Errorf("spread pick with no line should skip, got %s", got)
	}
}

func TestPickPnL(t *testing.T) {
	pick := &models.Pick{Price: decimalPrice(2.5), WinProb: 0.5}

	if got := PickPnL(pick, OutcomeWin, 10); got != 15 {
		t.Errorf("win at 2.5 for 10 should pay 15, got %.2f", got)
	}
	if got := PickPnL(pick, OutcomeLoss, 10); got != -10 {
		t.Errorf("loss should cost the stake, got %.2f", got)
	}
	if got := PickPnL(pick, OutcomePush, 10); got != 0 {
		t.Errorf("push should return 0, got %.2f", got)
	}
}

func TestPickDecimalOddsFallsBackToFairPrice(t *testing.T) {
	pick := &models.Pick{WinProb: 0.5}
	got := PickDecimalOdds(pick)
	if got < 1.99 || got > 2.01 {
		t.Errorf("unpriced pick at 50%% should settle near evens, got %.3f", got)
	}
}

func TestPickEV(t *testing.T) {
	// 60% at even money: 0.6*10 - 0.4*10 = +2.
	pick := &models.Pick{Price: decimalPrice(2.0), WinProb: 0.6}
	got := PickEV(pick, 10)
	if got < 1.99 || got > 2.01 {
		t.Errorf("expected EV near +2, got %.3f", got)
	}
}
