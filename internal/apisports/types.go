package apisports

import (
	"encoding/json"

	"github.com/yourusername/edge-picks/internal/models"
)

// Base URLs per provider family. Soccer rides the v3 football API; the US
// sports live on their v1 siblings.
var baseURLs = map[models.League]string{
	models.LeagueNBA:    "https://v1.basketball.api-sports.io",
	models.LeagueNCAAB:  "https://v1.basketball.api-sports.io",
	models.LeagueNFL:    "https://v1.american-football.api-sports.io",
	models.LeagueNCAAF:  "https://v1.american-football.api-sports.io",
	models.LeagueSoccer: "https://v3.football.api-sports.io",
}

// Provider league ids. Soccer defaults to the EPL (39) and accepts a
// per-call competition override (MLS=253, UCL=2, LaLiga=140, ...).
var leagueIDs = map[models.League]int{
	models.LeagueNBA:    12,
	models.LeagueNCAAB:  7,
	models.LeagueNFL:    1,
	models.LeagueNCAAF:  2,
	models.LeagueSoccer: 39,
}

// Envelope is the common response wrapper every API-SPORTS endpoint uses.
type Envelope struct {
	Get        string          `json:"get"`
	Results    int             `json:"results"`
	Paging     Paging          `json:"paging"`
	Errors     json.RawMessage `json:"errors"`
	Response   json.RawMessage `json:"response"`
}

// Paging describes the provider's page cursor.
type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// HasErrors reports whether the provider flagged the request. The errors
// field is an empty array on success and an object of messages on failure.
func (e *Envelope) HasErrors() bool {
	s := string(e.Errors)
	return s != "" && s != "[]" && s != "{}" && s != "null"
}

// rawTeamRef is a team node that is sometimes an object, sometimes a bare
// string, depending on the league family.
type rawTeamRef struct {
	Name string
	Code string
}

func (t *rawTeamRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	t.Name = obj.Name
	t.Code = obj.Code
	return nil
}

// rawScoreRef is a score node that is either a bare number or an object
// with a running total, depending on the league family.
type rawScoreRef struct {
	Total *int
}

func (s *rawScoreRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		s.Total = &n
		return nil
	}
	var obj struct {
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	s.Total = obj.Total
	return nil
}
