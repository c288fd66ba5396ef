// Package logger provides pick generation logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/models"
)

// PickLogger provides dedicated pick generation logging.
type PickLogger struct {
	*logrus.Entry
}

// NewPickLogger creates a new pick logger.
func NewPickLogger(baseLogger *logrus.Logger) *PickLogger {
	return &PickLogger{
		Entry: baseLogger.WithField("component", "picks"),
	}
}

// LogPickGenerated logs a generated pick.
func (pl *PickLogger) LogPickGenerated(pick *models.Pick) {
	fields := logrus.Fields{
		"pick_id":    pick.ID.String(),
		"fixture_id": pick.FixtureProviderID,
		"league":     string(pick.League),
		"bet_type":   string(pick.BetType),
		"selection":  pick.Selection,
		"win_prob":   pick.WinProb,
		"edge":       pick.Edge,
	}
	if pick.Line != nil {
		fields["line"] = *pick.Line
	}
	if pick.Price != nil {
		fields["price"] = pick.Price.Value.String()
	}
	pl.WithFields(fields).Info("Pick generated")
}

// LogSlateBuilt logs completion of a slate build.
func (pl *PickLogger) LogSlateBuilt(league models.League, date string, fixtures, picks int, elapsed time.Duration) {
	pl.WithFields(logrus.Fields{
		"league":      string(league),
		"date":        date,
		"fixtures":    fixtures,
		"picks":       picks,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("Slate built")
}

// LogMarketUnavailable logs a fixture priced without bookmaker odds.
func (pl *PickLogger) LogMarketUnavailable(league models.League, fixtureID int64, reason string) {
	pl.WithFields(logrus.Fields{
		"league":     string(league),
		"fixture_id": fixtureID,
		"reason":     reason,
	}).Debug("Market unavailable, pricing from model")
}
