package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/picks"
	"github.com/yourusername/edge-picks/internal/repository"
	"github.com/yourusername/edge-picks/internal/service"
)

// SlateBuilder produces a day's picks for a league. Satisfied by
// picks.Engine.
type SlateBuilder interface {
	BuildSlate(ctx context.Context, req picks.SlateRequest) ([]*models.Pick, error)
}

// Scheduler manages the recurring ingestion and slate-refresh jobs.
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	slates          SlateBuilder
	pickRepo        repository.PickRepository
	fixtureRepo     repository.FixtureRepository
	logger          *log.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. slates, pickRepo and fixtureRepo
// may be nil when only ingestion jobs are scheduled.
func NewScheduler(ingestionSvc *service.IngestionService, slates SlateBuilder, pickRepo repository.PickRepository, fixtureRepo repository.FixtureRepository, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		slates:          slates,
		pickRepo:        pickRepo,
		fixtureRepo:     fixtureRepo,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleDailySync schedules the daily fixture and odds sync for the
// given leagues. Each run ingests the current day's slate and sweeps
// results for the preceding resultLookbackDays days.
func (s *Scheduler) ScheduleDailySync(cronExpression string, leagues []models.League, resultLookbackDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if resultLookbackDays < 1 {
		resultLookbackDays = 3
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
		defer cancel()

		today := time.Now().UTC()
		day := today.Format("2006-01-02")
		resultsFrom := today.AddDate(0, 0, -resultLookbackDays).Format("2006-01-02")
		resultsTo := today.AddDate(0, 0, -1).Format("2006-01-02")

		for _, league := range leagues {
			metrics, err := s.ingestionSvc.SyncLeagueDay(ctx, league, day, "")
			if err != nil {
				s.logger.Printf("Error during scheduled sync for %s on %s: %v", league, day, err)
			} else {
				s.logger.Printf("Scheduled sync completed for %s: %s", league, metrics.String())
			}

			if _, err := s.ingestionSvc.SyncResults(ctx, league, resultsFrom, resultsTo, ""); err != nil {
				s.logger.Printf("Error during results sweep for %s (%s to %s): %v", league, resultsFrom, resultsTo, err)
			}
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled daily sync job with cron expression: %s", cronExpression)

	return nil
}

// ScheduleSlateRefresh schedules regeneration of the day's picks for the
// given leagues. Fresh picks are persisted alongside earlier snapshots so
// line movement stays visible.
func (s *Scheduler) ScheduleSlateRefresh(cronExpression string, leagues []models.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if s.slates == nil || s.pickRepo == nil || s.fixtureRepo == nil {
		return fmt.Errorf("slate refresh requires a slate builder and pick and fixture repositories")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		day := time.Now().UTC().Format("2006-01-02")

		for _, league := range leagues {
			slate, err := s.slates.BuildSlate(ctx, picks.SlateRequest{
				League: league,
				Date:   day,
			})
			if err != nil {
				s.logger.Printf("Error refreshing slate for %s on %s: %v", league, day, err)
				continue
			}
			if len(slate) == 0 {
				continue
			}
			kept := s.attachFixtureIDs(ctx, league, slate)
			if dropped := len(slate) - len(kept); dropped > 0 {
				s.logger.Printf("Skipped %d picks for %s on %s with no stored fixture", dropped, league, day)
			}
			if len(kept) == 0 {
				continue
			}
			if err := s.pickRepo.CreateBatch(ctx, kept); err != nil {
				s.logger.Printf("Error persisting slate for %s on %s: %v", league, day, err)
				continue
			}
			s.logger.Printf("Slate refresh completed for %s: %d picks", league, len(kept))
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled slate refresh job with cron expression: %s", cronExpression)

	return nil
}

// attachFixtureIDs re-points each pick at the persisted fixture row for
// its provider id. The slate builder works from provider payloads and
// mints throwaway fixture ids, while the fixture upsert keeps the stored
// row's original id, so picks must be remapped before insert or the
// fixture foreign key rejects them. Picks whose fixture the daily sync
// has not stored yet are dropped.
func (s *Scheduler) attachFixtureIDs(ctx context.Context, league models.League, slate []*models.Pick) []*models.Pick {
	resolved := make(map[int64]uuid.UUID, len(slate))
	kept := make([]*models.Pick, 0, len(slate))
	for _, p := range slate {
		id, seen := resolved[p.FixtureProviderID]
		if !seen {
			fixture, err := s.fixtureRepo.GetByProviderID(ctx, league, p.FixtureProviderID)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					s.logger.Printf("Error resolving fixture %d for %s: %v", p.FixtureProviderID, league, err)
				}
				resolved[p.FixtureProviderID] = uuid.Nil
				continue
			}
			id = fixture.ID
			resolved[p.FixtureProviderID] = id
		}
		if id == uuid.Nil {
			continue
		}
		p.FixtureID = id
		kept = append(kept, p)
	}
	return kept
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Printf("Scheduler stop timed out after %s", s.gracefulTimeout)
	}
	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(jobID cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}

	s.cron.Remove(jobID)
	s.logger.Printf("Removed job: %d", jobID)

	return nil
}
