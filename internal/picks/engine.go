package picks

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/apisports"
	applogger "github.com/yourusername/edge-picks/internal/logger"
	"github.com/yourusername/edge-picks/internal/metrics"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/odds"
	"github.com/yourusername/edge-picks/internal/ratings"
)

// Provider is the slice of the API-SPORTS client the engine depends on.
type Provider interface {
	FixturesByDate(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error)
	FixturesRange(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error)
	OddsForFixture(ctx context.Context, q apisports.OddsQuery) (json.RawMessage, error)
}

// Config holds picks engine tuning.
type Config struct {
	LookbackDays         int     // rating window, in days before the slate date
	MaxOddsLookups       int     // cap on per-slate odds requests
	PreferredBookmakerID int     // 0 means first bookmaker with bets
	MinEdgeThreshold     float64 // picks below this edge are dropped; 0 keeps all
}

// DefaultConfig returns engine defaults suitable for daily slates.
func DefaultConfig() Config {
	return Config{
		LookbackDays:   45,
		MaxOddsLookups: 200,
	}
}

// Engine builds probability-based picks for a slate of fixtures.
type Engine struct {
	provider Provider
	cfg      Config
	logger   *logrus.Logger
	pickLog  *applogger.PickLogger
}

// NewEngine creates a picks engine.
func NewEngine(provider Provider, cfg Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultConfig().LookbackDays
	}
	if cfg.MaxOddsLookups <= 0 {
		cfg.MaxOddsLookups = DefaultConfig().MaxOddsLookups
	}
	return &Engine{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		pickLog:  applogger.NewPickLogger(logger),
	}
}

// SlateRequest identifies the slate to price.
type SlateRequest struct {
	League         models.League
	Date           string // YYYY-MM-DD
	Season         string
	BetTypes       []models.BetType // empty means all
	LeagueOverride int              // soccer competition id
}

// BuildSlate fetches the day's fixtures, rates both teams of each matchup
// from recent results, prices the requested markets against bookmaker odds
// and returns one pick per fixture market.
//
// Fixtures with no quoted odds still produce model-priced picks; teams
// with no rating history degrade to zero ratings rather than failing the
// slate.
func (e *Engine) BuildSlate(ctx context.Context, req SlateRequest) ([]*models.Pick, error) {
	start := time.Now()

	slateDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid slate date %q: %w", req.Date, err)
	}

	fixtures, err := e.provider.FixturesByDate(ctx, apisports.FixturesQuery{
		League:         req.League,
		Date:           req.Date,
		Season:         req.Season,
		LeagueOverride: req.LeagueOverride,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slate fixtures: %w", err)
	}
	metrics.LastSlateSize.WithLabelValues(string(req.League)).Set(float64(len(fixtures)))
	if len(fixtures) == 0 {
		return nil, nil
	}

	history, err := e.provider.FixturesRange(ctx, apisports.FixturesQuery{
		League:         req.League,
		From:           slateDate.AddDate(0, 0, -e.cfg.LookbackDays).Format("2006-01-02"),
		To:             slateDate.AddDate(0, 0, -1).Format("2006-01-02"),
		Season:         req.Season,
		LeagueOverride: req.LeagueOverride,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rating history: %w", err)
	}

	ratingCache := map[string]models.TeamRating{}
	rate := func(team string) models.TeamRating {
		if r, ok := ratingCache[team]; ok {
			return r
		}
		r := ratings.ComputeEfficiency(history, team)
		ratingCache[team] = r
		return r
	}

	wanted := wantedBetTypes(req.BetTypes)
	var slate []*models.Pick
	oddsLookups := 0

	for _, fixture := range fixtures {
		if fixture.Status == models.FixtureCancelled {
			continue
		}

		var book *models.OddsBook
		if oddsLookups < e.cfg.MaxOddsLookups {
			raw, oddsErr := e.provider.OddsForFixture(ctx, apisports.OddsQuery{
				League:    req.League,
				FixtureID: fixture.ProviderID,
			})
			oddsLookups++
			if oddsErr != nil {
				e.logger.WithError(oddsErr).WithField("fixture_id", fixture.ProviderID).
					Debug("No market odds for fixture, pricing from model only")
			} else {
				book = odds.Normalize(raw, req.League, fixture.ProviderID, e.cfg.PreferredBookmakerID)
			}
		}

		fixturePicks := e.priceFixture(fixture, rate(fixture.HomeTeam), rate(fixture.AwayTeam), book, wanted)
		for _, p := range fixturePicks {
			if e.cfg.MinEdgeThreshold > 0 && p.Edge < e.cfg.MinEdgeThreshold {
				continue
			}
			metrics.PicksGeneratedTotal.WithLabelValues(string(p.League), string(p.BetType)).Inc()
			e.pickLog.LogPickGenerated(p)
			slate = append(slate, p)
		}
	}

	metrics.SlatesBuiltTotal.Inc()
	metrics.SlateBuildDuration.Observe(time.Since(start).Seconds())
	e.pickLog.LogSlateBuilt(req.League, req.Date, len(fixtures), len(slate), time.Since(start))

	return slate, nil
}

func wantedBetTypes(requested []models.BetType) map[models.BetType]bool {
	wanted := map[models.BetType]bool{}
	if len(requested) == 0 {
		for _, bt := range models.AllBetTypes {
			wanted[bt] = true
		}
		return wanted
	}
	for _, bt := range requested {
		wanted[bt] = true
	}
	return wanted
}

// priceFixture produces the requested picks for one fixture.
func (e *Engine) priceFixture(fixture *models.Fixture, home, away models.TeamRating, book *models.OddsBook, wanted map[models.BetType]bool) []*models.Pick {
	ratingScale := RatingScale(fixture.League)
	lineScale := LineScale(fixture.League)

	fairHomeProb := FairMoneylineProb(home, away, ratingScale)
	fairMargin := FairSpread(home, away)
	fairTotal := FairTotal(home, away)

	var out []*models.Pick
	if wanted[models.BetMoneyline] {
		out = append(out, e.moneylinePick(fixture, book, fairHomeProb))
	}
	if wanted[models.BetSpread] {
		out = append(out, e.spreadPick(fixture, book, fairMargin, lineScale))
	}
	if wanted[models.BetTotal] {
		out = append(out, e.totalPick(fixture, book, fairTotal, lineScale))
	}
	return out
}

func newPick(fixture *models.Fixture, betType models.BetType) *models.Pick {
	return &models.Pick{
		ID:                uuid.New(),
		FixtureID:         fixture.ID,
		FixtureProviderID: fixture.ProviderID,
		League:            fixture.League,
		BetType:           betType,
		GeneratedAt:       time.Now().UTC(),
	}
}

// moneylinePick selects the side with the bigger model edge against the
// vig-free market, falling back to the model favorite when no market is
// quoted.
func (e *Engine) moneylinePick(fixture *models.Fixture, book *models.OddsBook, fairHomeProb float64) *models.Pick {
	pick := newPick(fixture, models.BetMoneyline)
	fairAwayProb := 1 - fairHomeProb

	ml := marketMoneyline(book)
	if ml == nil || ml.Home == nil || ml.Away == nil {
		// Model-only pricing.
		if fairHomeProb >= fairAwayProb {
			pick.Selection = fixture.HomeTeam
			pick.WinProb = fairHomeProb
		} else {
			pick.Selection = fixture.AwayTeam
			pick.WinProb = fairAwayProb
		}
		pick.Price = odds.FairPrice(pick.WinProb)
		return pick
	}

	var marketHome, marketAway float64
	if ml.Draw != nil {
		marketHome, _, marketAway = odds.RemoveVigThreeWay(*ml.Home, *ml.Draw, *ml.Away)
	} else {
		marketHome, marketAway = odds.RemoveVigTwoWay(*ml.Home, *ml.Away)
	}

	edgeHome := fairHomeProb - marketHome
	edgeAway := fairAwayProb - marketAway
	if edgeHome >= edgeAway {
		pick.Selection = fixture.HomeTeam
		pick.WinProb = fairHomeProb
		pick.Edge = edgeHome
		pick.Price = ml.Home
	} else {
		pick.Selection = fixture.AwayTeam
		pick.WinProb = fairAwayProb
		pick.Edge = edgeAway
		pick.Price = ml.Away
	}
	return pick
}

// spreadPick prices the home-relative handicap market against the model's
// fair margin.
func (e *Engine) spreadPick(fixture *models.Fixture, book *models.OddsBook, fairMargin, lineScale float64) *models.Pick {
	pick := newPick(fixture, models.BetSpread)

	spread := marketSpread(book)
	if spread == nil {
		// No market: publish the model's fair line.
		line := roundHalf(fairMargin)
		pick.Selection = fixture.HomeTeam
		pick.Line = &line
		pick.WinProb = 0.5
		return pick
	}

	line := spread.Line
	homeCoverProb := CoverProbability(fairMargin, line, lineScale)
	awayCoverProb := 1 - homeCoverProb

	var marketHome, marketAway float64
	if spread.Home != nil && spread.Away != nil {
		marketHome, marketAway = odds.RemoveVigTwoWay(*spread.Home, *spread.Away)
	} else {
		marketHome, marketAway = 0.5, 0.5
	}

	if homeCoverProb-marketHome >= awayCoverProb-marketAway {
		pick.Selection = fixture.HomeTeam
		pick.WinProb = homeCoverProb
		pick.Edge = homeCoverProb - marketHome
		pick.Price = spread.Home
		pick.Line = &line
	} else {
		awayLine := -line
		pick.Selection = fixture.AwayTeam
		pick.WinProb = awayCoverProb
		pick.Edge = awayCoverProb - marketAway
		pick.Price = spread.Away
		pick.Line = &awayLine
	}
	return pick
}

// totalPick prices the over/under market against the model's fair total.
func (e *Engine) totalPick(fixture *models.Fixture, book *models.OddsBook, fairTotal, lineScale float64) *models.Pick {
	pick := newPick(fixture, models.BetTotal)

	total := marketTotal(book)
	if total == nil {
		line := roundHalf(fairTotal)
		pick.Selection = "over"
		pick.Line = &line
		pick.WinProb = 0.5
		return pick
	}

	line := total.Line
	overProb := OverProbability(fairTotal, line, lineScale)
	underProb := 1 - overProb

	var marketOver, marketUnder float64
	if total.Over != nil && total.Under != nil {
		marketOver, marketUnder = odds.RemoveVigTwoWay(*total.Over, *total.Under)
	} else {
		marketOver, marketUnder = 0.5, 0.5
	}

	pick.Line = &line
	if overProb-marketOver >= underProb-marketUnder {
		pick.Selection = "over"
		pick.WinProb = overProb
		pick.Edge = overProb - marketOver
		pick.Price = total.Over
	} else {
		pick.Selection = "under"
		pick.WinProb = underProb
		pick.Edge = underProb - marketUnder
		pick.Price = total.Under
	}
	return pick
}

func marketMoneyline(book *models.OddsBook) *models.MoneylineMarket {
	if book == nil {
		return nil
	}
	return book.Moneyline
}

func marketSpread(book *models.OddsBook) *models.SpreadMarket {
	if book == nil {
		return nil
	}
	return book.Spread
}

func marketTotal(book *models.OddsBook) *models.TotalMarket {
	if book == nil {
		return nil
	}
	return book.Total
}

// roundHalf rounds to the nearest half point, matching how books quote lines.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
