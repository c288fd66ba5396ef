// Package resolve matches free-form team names against a day's fixtures.
// Provider team names rarely match user input exactly ("Celtics" vs
// "Boston Celtics"), so fixtures are scored by fuzzy name affinity and the
// best match above a confidence threshold wins.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/models"
)

// FixtureSource is the slice of the API-SPORTS client the resolver needs.
type FixtureSource interface {
	FixturesByDate(ctx context.Context, q apisports.FixturesQuery) ([]*models.Fixture, error)
}

// Scoring: an exact normalized match is worth 2 points per team, a
// substring match 1. A two-team query must reach 3 (one exact plus at
// least a partial on the other side); a single-team query needs any hit.
const (
	exactScore      = 2
	partialScore    = 1
	pairThreshold   = 3
	singleThreshold = 1
	maxCandidates   = 5
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Candidate is a scored fixture considered during resolution.
type Candidate struct {
	Fixture *models.Fixture
	Score   int
	Reason  string
}

// Result is a successful resolution with the runners-up that were
// considered.
type Result struct {
	Fixture    *models.Fixture
	Score      int
	Candidates []Candidate
}

// Resolver scores fixtures against free-form team names.
type Resolver struct {
	source FixtureSource
	logger *logrus.Logger
}

// NewResolver creates a fixture resolver.
func NewResolver(source FixtureSource, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{source: source, logger: logger}
}

// Query describes a fixture lookup.
type Query struct {
	League         models.League
	Date           string // YYYY-MM-DD
	HomeTeam       string // either team name; orientation is not assumed
	AwayTeam       string // optional second team
	Season         string
	LeagueOverride int
}

// Resolve finds the fixture on the given date best matching the query's
// team names. Returns models.ErrNotFound wrapped with the top candidates
// when nothing scores above the threshold.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Result, error) {
	if strings.TrimSpace(q.HomeTeam) == "" {
		return nil, fmt.Errorf("at least one team name is required")
	}

	fixtures, err := r.source.FixturesByDate(ctx, apisports.FixturesQuery{
		League:         q.League,
		Date:           q.Date,
		Season:         q.Season,
		LeagueOverride: q.LeagueOverride,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures for resolution: %w", err)
	}

	candidates := ScoreFixtures(fixtures, q.HomeTeam, q.AwayTeam)

	threshold := singleThreshold
	if strings.TrimSpace(q.AwayTeam) != "" {
		threshold = pairThreshold
	}

	if len(candidates) == 0 || candidates[0].Score < threshold {
		r.logger.WithFields(logrus.Fields{
			"league":     string(q.League),
			"date":       q.Date,
			"team":       q.HomeTeam,
			"other_team": q.AwayTeam,
			"candidates": len(candidates),
		}).Debug("No fixture resolved above threshold")
		return nil, fmt.Errorf("no fixture matching %q on %s: %w", q.HomeTeam, q.Date, models.ErrNotFound)
	}

	best := candidates[0]
	runnersUp := candidates
	if len(runnersUp) > maxCandidates {
		runnersUp = runnersUp[:maxCandidates]
	}
	return &Result{
		Fixture:    best.Fixture,
		Score:      best.Score,
		Candidates: runnersUp,
	}, nil
}

// ScoreFixtures scores every fixture against one or two team names and
// returns the non-zero candidates, best first. Ties break on earlier
// start time so doubleheaders resolve deterministically.
func ScoreFixtures(fixtures []*models.Fixture, teamA, teamB string) []Candidate {
	var out []Candidate
	for _, f := range fixtures {
		score, reason := scoreFixture(f, teamA, teamB)
		if score == 0 {
			continue
		}
		out = append(out, Candidate{Fixture: f, Score: score, Reason: reason})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Fixture.StartTime.Before(out[j].Fixture.StartTime)
	})
	return out
}

func scoreFixture(f *models.Fixture, teamA, teamB string) (int, string) {
	if strings.TrimSpace(teamB) == "" {
		home := scoreName(teamA, f.HomeTeam)
		away := scoreName(teamA, f.AwayTeam)
		if home >= away {
			return home, matchReason(teamA, f.HomeTeam, home)
		}
		return away, matchReason(teamA, f.AwayTeam, away)
	}

	// Try both orientations; callers do not know which side is home.
	straight := scoreName(teamA, f.HomeTeam) + scoreName(teamB, f.AwayTeam)
	flipped := scoreName(teamA, f.AwayTeam) + scoreName(teamB, f.HomeTeam)
	if straight >= flipped {
		return straight, fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
	}
	return flipped, fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
}

func scoreName(query, team string) int {
	nq := normalizeName(query)
	nt := normalizeName(team)
	if nq == "" || nt == "" {
		return 0
	}
	if nq == nt {
		return exactScore
	}
	if strings.Contains(nt, nq) || strings.Contains(nq, nt) {
		return partialScore
	}
	return 0
}

func matchReason(query, team string, score int) string {
	switch score {
	case exactScore:
		return fmt.Sprintf("exact match on %s", team)
	case partialScore:
		return fmt.Sprintf("partial match %q on %s", query, team)
	default:
		return ""
	}
}

// normalizeName lowercases and strips everything that is not a letter or
// digit, spaces included, so "Red Sox", "RedSox" and "red-sox" compare
// equal.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return nonAlnum.ReplaceAllString(s, "")
}
