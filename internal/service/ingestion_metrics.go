package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about a sync run
type IngestionMetrics struct {
	mu                 sync.RWMutex
	StartTime          time.Time
	Duration           time.Duration
	TotalFixtures      int
	SuccessfulFixtures int
	OddsSnapshots      int
	ScoresUpdated      int
	ValidationErrors   int
	Errors             int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalFixtures = 0
	m.SuccessfulFixtures = 0
	m.OddsSnapshots = 0
	m.ScoresUpdated = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordFixture increments successful fixture count
func (m *IngestionMetrics) RecordFixture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulFixtures++
}

// RecordSnapshots adds to the odds snapshot count
func (m *IngestionMetrics) RecordSnapshots(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OddsSnapshots += n
}

// RecordScoreUpdate increments the score update count
func (m *IngestionMetrics) RecordScoreUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresUpdated++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.TotalFixtures > 0 {
		successRate = float64(m.SuccessfulFixtures) / float64(m.TotalFixtures) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Total=%d, Successful=%d (%.1f%%), Snapshots=%d, ScoresUpdated=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalFixtures,
		m.SuccessfulFixtures,
		successRate,
		m.OddsSnapshots,
		m.ScoresUpdated,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
