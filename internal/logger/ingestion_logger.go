// Package logger provides data ingestion logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/models"
)

// IngestionLogger provides dedicated ingestion pipeline logging.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogSyncStarted logs the start of a league sync.
func (il *IngestionLogger) LogSyncStarted(league models.League, date string) {
	il.WithFields(logrus.Fields{
		"league": string(league),
		"date":   date,
	}).Info("League sync started")
}

// LogSyncCompleted logs a completed league sync.
func (il *IngestionLogger) LogSyncCompleted(league models.League, date string, fixtures, oddsSnapshots, rejected int, elapsed time.Duration) {
	il.WithFields(logrus.Fields{
		"league":         string(league),
		"date":           date,
		"fixtures":       fixtures,
		"odds_snapshots": oddsSnapshots,
		"rejected":       rejected,
		"duration_ms":    elapsed.Milliseconds(),
	}).Info("League sync completed")
}

// LogValidationFailure logs a record rejected by validation.
func (il *IngestionLogger) LogValidationFailure(league models.League, fixtureID int64, field, reason string) {
	il.WithFields(logrus.Fields{
		"league":     string(league),
		"fixture_id": fixtureID,
		"field":      field,
		"reason":     reason,
	}).Warn("Record rejected by validation")
}

// LogOddsUnavailable logs a fixture whose odds lookup returned nothing.
func (il *IngestionLogger) LogOddsUnavailable(league models.League, fixtureID int64, err error) {
	il.WithError(err).WithFields(logrus.Fields{
		"league":     string(league),
		"fixture_id": fixtureID,
	}).Debug("No odds available for fixture")
}

// LogSyncError logs a failed league sync.
func (il *IngestionLogger) LogSyncError(league models.League, date string, err error) {
	il.WithError(err).WithFields(logrus.Fields{
		"league": string(league),
		"date":   date,
	}).Error("League sync failed")
}
