package models

import "fmt"

// League identifies a supported competition family.
type League string

const (
	LeagueNBA    League = "nba"
	LeagueNFL    League = "nfl"
	LeagueNCAAF  League = "ncaaf"
	LeagueNCAAB  League = "ncaab"
	LeagueSoccer League = "soccer"
)

// AcceptedLeagues lists every league the system supports end to end.
var AcceptedLeagues = []League{LeagueNBA, LeagueNFL, LeagueNCAAF, LeagueNCAAB, LeagueSoccer}

// ParseLeague validates a raw league string and returns the typed value.
func ParseLeague(s string) (League, error) {
	l := League(s)
	for _, accepted := range AcceptedLeagues {
		if l == accepted {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of nba, nfl, ncaaf, ncaab, soccer)", ErrInvalidLeague, s)
}

// IsBasketball reports whether the league uses the basketball provider family.
func (l League) IsBasketball() bool {
	return l == LeagueNBA || l == LeagueNCAAB
}

// IsAmericanFootball reports whether the league uses the american-football provider family.
func (l League) IsAmericanFootball() bool {
	return l == LeagueNFL || l == LeagueNCAAF
}

// BetType identifies a supported bet market.
type BetType string

const (
	BetMoneyline BetType = "moneyline"
	BetSpread    BetType = "spread"
	BetTotal     BetType = "total"
)

// AllBetTypes lists the bet types the picks engine produces.
var AllBetTypes = []BetType{BetMoneyline, BetSpread, BetTotal}

// Period identifies the game segment a market covers.
type Period string

const (
	PeriodGame Period = "game"
	Period1H   Period = "1h"
	Period2H   Period = "2h"
	Period1Q   Period = "1q"
	Period2Q   Period = "2q"
	Period3Q   Period = "3q"
	Period4Q   Period = "4q"
)
