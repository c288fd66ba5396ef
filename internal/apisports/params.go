package apisports

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/yourusername/edge-picks/internal/models"
)

// allowedParams lists, per (league, operation), the provider-facing query
// parameters that are allowed to pass through. Anything outside this set is
// rejected before a request is built, so typos never leak to the provider.
var allowedParams = map[models.League]map[string]map[string]bool{
	models.LeagueNFL: {
		"injuries": {"team": true, "player": true},
		"odds":     {"bookmaker": true, "bet": true},
	},
	models.LeagueNCAAF: {
		"injuries": {"team": true, "player": true},
		"odds":     {"bookmaker": true, "bet": true},
	},
	models.LeagueSoccer: {
		"injuries": {"league": true, "season": true, "team": true, "player": true},
		"odds":     {"bookmaker": true, "bet": true},
	},
	models.LeagueNBA: {
		"odds": {"bookmaker": true, "bet": true},
	},
	models.LeagueNCAAB: {
		"odds": {"bookmaker": true, "bet": true},
	},
}

// RejectUnknownParams returns an error when any key in params is not a
// known pass-through parameter for the (league, operation) pair.
func RejectUnknownParams(league models.League, operation string, params map[string]string) error {
	allowed := allowedParams[league][operation]

	var unknown []string
	for k := range params {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	names := make([]string, 0, len(allowed))
	for k := range allowed {
		names = append(names, k)
	}
	sort.Strings(names)

	return NewProviderError(operation, ErrCodeBadRequest,
		fmt.Sprintf("unknown parameter(s) %s for %s/%s (allowed: %s)",
			strings.Join(unknown, ", "), league, operation, strings.Join(names, ", ")), nil)
}

// EnsureRequiredParams returns an error listing any required key missing or
// empty in params.
func EnsureRequiredParams(operation string, required []string, params map[string]string) error {
	var missing []string
	for _, k := range required {
		if params[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return NewProviderError(operation, ErrCodeBadRequest,
		fmt.Sprintf("missing required parameter(s): %s", strings.Join(missing, ", ")), nil)
}

// applyParams guards narrow against the allow list for (league, operation)
// and merges the surviving non-empty values into params. Request builders
// route every pass-through parameter here so the allow list stays
// authoritative.
func applyParams(league models.League, operation string, params url.Values, narrow map[string]string) error {
	if err := RejectUnknownParams(league, operation, narrow); err != nil {
		return err
	}
	for k, v := range narrow {
		if v != "" {
			params.Set(k, v)
		}
	}
	return nil
}
