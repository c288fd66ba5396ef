// Package markets maps friendly market names to API-SPORTS bet ids and
// infers market aliases and periods from raw bookmaker market names.
package markets

import (
	"sort"
	"strings"

	"github.com/yourusername/edge-picks/internal/models"
)

type betMeta struct {
	alias   models.BetType
	periods []models.Period
}

// betIDs holds the provider bet-id catalogue per league. Ids are stable per
// API-SPORTS league family; NFL additionally quotes quarter and half
// spread/total markets under their own ids.
var betIDs = map[models.League]map[int]betMeta{
	models.LeagueNFL: {
		1:  {models.BetMoneyline, []models.Period{models.PeriodGame}},
		2:  {models.BetSpread, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		47: {models.BetSpread, []models.Period{models.Period1Q}},
		48: {models.BetSpread, []models.Period{models.Period2Q}},
		49: {models.BetSpread, []models.Period{models.Period3Q}},
		50: {models.BetSpread, []models.Period{models.Period4Q}},
		51: {models.BetSpread, []models.Period{models.Period1H}},
		52: {models.BetSpread, []models.Period{models.Period2H}},
		3:  {models.BetTotal, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		61: {models.BetTotal, []models.Period{models.Period1Q}},
		62: {models.BetTotal, []models.Period{models.Period2Q}},
		63: {models.BetTotal, []models.Period{models.Period3Q}},
		64: {models.BetTotal, []models.Period{models.Period4Q}},
		65: {models.BetTotal, []models.Period{models.Period1H}},
		66: {models.BetTotal, []models.Period{models.Period2H}},
	},
	models.LeagueNCAAF: {
		1:  {models.BetMoneyline, []models.Period{models.PeriodGame}},
		2:  {models.BetSpread, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		47: {models.BetSpread, []models.Period{models.Period1Q}},
		48: {models.BetSpread, []models.Period{models.Period2Q}},
		49: {models.BetSpread, []models.Period{models.Period3Q}},
		50: {models.BetSpread, []models.Period{models.Period4Q}},
		3:  {models.BetTotal, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		61: {models.BetTotal, []models.Period{models.Period1Q}},
		62: {models.BetTotal, []models.Period{models.Period2Q}},
		63: {models.BetTotal, []models.Period{models.Period3Q}},
		64: {models.BetTotal, []models.Period{models.Period4Q}},
	},
	models.LeagueNBA: {
		1:  {models.BetMoneyline, []models.Period{models.PeriodGame}},
		2:  {models.BetSpread, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		47: {models.BetSpread, []models.Period{models.Period1Q}},
		48: {models.BetSpread, []models.Period{models.Period2Q}},
		49: {models.BetSpread, []models.Period{models.Period3Q}},
		50: {models.BetSpread, []models.Period{models.Period4Q}},
		3:  {models.BetTotal, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		61: {models.BetTotal, []models.Period{models.Period1Q}},
		62: {models.BetTotal, []models.Period{models.Period2Q}},
		63: {models.BetTotal, []models.Period{models.Period3Q}},
		64: {models.BetTotal, []models.Period{models.Period4Q}},
	},
	models.LeagueNCAAB: {
		1: {models.BetMoneyline, []models.Period{models.PeriodGame}},
		2: {models.BetSpread, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
		3: {models.BetTotal, []models.Period{models.PeriodGame, models.Period1H, models.Period2H}},
	},
	models.LeagueSoccer: {
		1: {models.BetMoneyline, []models.Period{models.PeriodGame}}, // 1X2 FT
		2: {models.BetSpread, []models.Period{models.PeriodGame}},    // Asian Handicap
		3: {models.BetTotal, []models.Period{models.PeriodGame}},     // O/U goals
	},
}

// aliasFallbacks classifies a market by name when its id is unknown.
var aliasFallbacks = map[models.BetType][]string{
	models.BetMoneyline: {"moneyline", "ml", "1x2", "winner", "match odds", "match result"},
	models.BetSpread:    {"spread", "handicap", "asian handicap", "line handicap", "point spread", "run line", "goal line"},
	models.BetTotal:     {"total", "over/under", "o/u", "totals", "points total", "game total", "goals over/under"},
}

// periodHints infers the period a market covers from its name or group.
var periodHints = map[models.Period][]string{
	models.Period1Q:   {"1st quarter", "1q", "first quarter"},
	models.Period2Q:   {"2nd quarter", "2q", "second quarter"},
	models.Period3Q:   {"3rd quarter", "3q", "third quarter"},
	models.Period4Q:   {"4th quarter", "4q", "fourth quarter"},
	models.Period1H:   {"1st half", "1h", "first half"},
	models.Period2H:   {"2nd half", "2h", "second half"},
	models.PeriodGame: {"full game", "full time", "match", "regular time", "ft", "game", "all quarters", "90 minutes"},
}

// ResolveBetID maps (league, market, period) to a provider bet id. The
// exact period match wins; a market-only match is used as fallback. Lower
// ids take precedence so the headline full-game markets (1, 2, 3) always
// resolve ahead of the segment variants. Returns 0 when nothing matches.
func ResolveBetID(league models.League, market models.BetType, period models.Period) int {
	bets, ok := betIDs[league]
	if !ok {
		return 0
	}
	if period == "" {
		period = models.PeriodGame
	}

	ids := make([]int, 0, len(bets))
	for id := range bets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		meta := bets[id]
		if meta.alias != market {
			continue
		}
		for _, p := range meta.periods {
			if p == period {
				return id
			}
		}
	}

	for _, id := range ids {
		if bets[id].alias == market {
			return id
		}
	}
	return 0
}

// InferAlias classifies a raw market name into a bet type. Returns false
// when the name matches no known market family.
func InferAlias(marketName string) (models.BetType, bool) {
	name := strings.ToLower(strings.TrimSpace(marketName))
	for _, alias := range models.AllBetTypes {
		for _, needle := range aliasFallbacks[alias] {
			if strings.Contains(name, needle) {
				return alias, true
			}
		}
	}
	return "", false
}

// InferPeriod guesses the period a market name refers to, defaulting to the
// full game.
func InferPeriod(marketName string) models.Period {
	name := strings.ToLower(strings.TrimSpace(marketName))
	// Quarter and half hints are checked before the generic game hints so
	// that names like "1st half total" resolve to the segment.
	ordered := []models.Period{
		models.Period1Q, models.Period2Q, models.Period3Q, models.Period4Q,
		models.Period1H, models.Period2H,
	}
	for _, p := range ordered {
		for _, hint := range periodHints[p] {
			if strings.Contains(name, hint) {
				return p
			}
		}
	}
	return models.PeriodGame
}
