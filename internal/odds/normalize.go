package odds

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/edge-picks/internal/markets"
	"github.com/yourusername/edge-picks/internal/models"
)

// flexNumber tolerates providers that quote numeric fields as either JSON
// numbers or strings ("2.5" vs 2.5).
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil {
		return nil
	}
	*n = flexNumber(v)
	return nil
}

// RawBetValue is one selection inside a provider bet.
type RawBetValue struct {
	Value    string      `json:"value"`
	Odd      string      `json:"odd"`
	Handicap *flexNumber `json:"handicap"`
}

// RawBet is one market offered by a bookmaker.
type RawBet struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Values []RawBetValue `json:"values"`
}

// RawBookmaker is one bookmaker entry in an odds payload.
type RawBookmaker struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Bets []RawBet `json:"bets"`
}

// RawOddsEntry is the per-fixture node of an odds response.
type RawOddsEntry struct {
	Bookmakers []RawBookmaker `json:"bookmakers"`
}

var (
	soccerMoneylineNames = []string{"match winner", "1x2", "3way result", "full time result"}
	soccerTotalNames     = []string{"over/under", "goals over/under", "total"}
	soccerSpreadNames    = []string{"asian handicap", "handicap", "spread"}

	afMoneylineNames = []string{"moneyline", "ml"}
	afSpreadNames    = []string{"spread", "spreads", "handicap"}
	afTotalNames     = []string{"total", "totals", "over/under"}
)

// Normalize maps a raw provider odds payload into a unified OddsBook for a
// single fixture. preferredBookmakerID selects a bookmaker when present;
// otherwise the first bookmaker carrying bets is used. Returns an empty
// book (no markets) when the payload holds no odds.
func Normalize(payload json.RawMessage, league models.League, fixtureID int64, preferredBookmakerID int) *models.OddsBook {
	book := &models.OddsBook{
		FixtureProviderID: fixtureID,
		League:            league,
		FetchedAt:         time.Now().UTC(),
	}

	var entries []RawOddsEntry
	if err := json.Unmarshal(payload, &entries); err != nil || len(entries) == 0 {
		return book
	}

	bm := pickBookmaker(entries[0].Bookmakers, preferredBookmakerID)
	if bm == nil {
		return book
	}
	book.BookmakerID = bm.ID
	book.Bookmaker = bm.Name

	if isSoccerShape(bm.Bets) {
		mapSoccerMarkets(bm, book)
	} else {
		mapAmericanFootballMarkets(bm, book)
	}
	return book
}

func pickBookmaker(bookmakers []RawBookmaker, preferredID int) *RawBookmaker {
	if len(bookmakers) == 0 {
		return nil
	}
	if preferredID > 0 {
		for i := range bookmakers {
			if bookmakers[i].ID == preferredID {
				return &bookmakers[i]
			}
		}
	}
	for i := range bookmakers {
		if len(bookmakers[i].Bets) > 0 {
			return &bookmakers[i]
		}
	}
	return &bookmakers[0]
}

// isSoccerShape infers the payload family from market names. Soccer books
// quote 1X2 and Asian Handicap; american-football books quote Moneyline
// and Spreads.
func isSoccerShape(bets []RawBet) bool {
	for _, b := range bets {
		name := strings.ToLower(b.Name)
		if name == "match winner" || name == "1x2" || name == "asian handicap" {
			return true
		}
	}
	return false
}

// lineFromValue extracts a line quoted inside a selection label, e.g.
// "Over 45.5" or "Home -3.5". Used when the provider omits the handicap
// field.
func lineFromValue(label string) (float64, bool) {
	fields := strings.Fields(label)
	for i := len(fields) - 1; i >= 0; i-- {
		if v, err := strconv.ParseFloat(strings.TrimPrefix(fields[i], "+"), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// findBet prefers an exact match against the known provider names, then
// falls back to alias inference for bookmakers that label markets
// differently. Only full-game variants are accepted on the fallback path
// so quarter and half segments never shadow the headline market.
func findBet(bets []RawBet, names []string, alias models.BetType) *RawBet {
	for i := range bets {
		name := strings.ToLower(bets[i].Name)
		for _, want := range names {
			if name == want {
				return &bets[i]
			}
		}
	}
	for i := range bets {
		inferred, ok := markets.InferAlias(bets[i].Name)
		if ok && inferred == alias && markets.InferPeriod(bets[i].Name) == models.PeriodGame {
			return &bets[i]
		}
	}
	return nil
}

func mapSoccerMarkets(bm *RawBookmaker, book *models.OddsBook) {
	if bet := findBet(bm.Bets, soccerMoneylineNames, models.BetMoneyline); bet != nil {
		ml := &models.MoneylineMarket{}
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			switch {
			case strings.Contains(label, "home") || label == "1":
				ml.Home = price
			case strings.Contains(label, "away") || label == "2":
				ml.Away = price
			case strings.Contains(label, "draw") || label == "x":
				ml.Draw = price
			}
		}
		book.Moneyline = ml
	}

	if bet := findBet(bm.Bets, soccerTotalNames, models.BetTotal); bet != nil {
		total := &models.TotalMarket{}
		haveLine := false
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			if !haveLine {
				if v.Handicap != nil {
					total.Line = float64(*v.Handicap)
					haveLine = true
				} else if l, ok := lineFromValue(label); ok {
					total.Line = l
					haveLine = true
				}
			}
			switch {
			case strings.Contains(label, "over"):
				total.Over = price
			case strings.Contains(label, "under"):
				total.Under = price
			}
		}
		if haveLine {
			book.Total = total
		}
	}

	if bet := findBet(bm.Bets, soccerSpreadNames, models.BetSpread); bet != nil {
		spread := &models.SpreadMarket{}
		var homeLine, awayLine *float64
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			var line *float64
			if v.Handicap != nil {
				l := float64(*v.Handicap)
				line = &l
			}
			switch {
			case strings.HasPrefix(label, "home") || strings.Contains(label, "home") || strings.HasPrefix(label, "1"):
				spread.Home = price
				homeLine = line
			case strings.HasPrefix(label, "away") || strings.Contains(label, "away") || strings.HasPrefix(label, "2"):
				spread.Away = price
				awayLine = line
			}
		}
		// Prefer the home-relative line when both sides quote one.
		switch {
		case homeLine != nil:
			spread.Line = *homeLine
		case awayLine != nil:
			spread.Line = *awayLine
		}
		if spread.Home != nil || spread.Away != nil {
			book.Spread = spread
		}
	}
}

func mapAmericanFootballMarkets(bm *RawBookmaker, book *models.OddsBook) {
	if bet := findBet(bm.Bets, afMoneylineNames, models.BetMoneyline); bet != nil {
		ml := &models.MoneylineMarket{}
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			switch {
			case strings.Contains(label, "home"):
				ml.Home = price
			case strings.Contains(label, "away"):
				ml.Away = price
			}
		}
		book.Moneyline = ml
	}

	if bet := findBet(bm.Bets, afSpreadNames, models.BetSpread); bet != nil {
		spread := &models.SpreadMarket{}
		haveLine := false
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			switch {
			case strings.Contains(label, "home"):
				spread.Home = price
				if !haveLine {
					if v.Handicap != nil {
						spread.Line = float64(*v.Handicap)
						haveLine = true
					} else if l, ok := lineFromValue(label); ok {
						spread.Line = l
						haveLine = true
					}
				}
			case strings.Contains(label, "away"):
				spread.Away = price
			}
		}
		if haveLine {
			book.Spread = spread
		}
	}

	if bet := findBet(bm.Bets, afTotalNames, models.BetTotal); bet != nil {
		total := &models.TotalMarket{}
		haveLine := false
		for _, v := range bet.Values {
			label := strings.ToLower(v.Value)
			price := ParsePrice(v.Odd)
			if !haveLine {
				if v.Handicap != nil {
					total.Line = float64(*v.Handicap)
					haveLine = true
				} else if l, ok := lineFromValue(label); ok {
					total.Line = l
					haveLine = true
				}
			}
			switch {
			case strings.Contains(label, "over"):
				total.Over = price
			case strings.Contains(label, "under"):
				total.Under = price
			}
		}
		if haveLine {
			book.Total = total
		}
	}
}
