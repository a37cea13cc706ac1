package verseofday

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nwestberg/lectio/internal/tasks"
)

// Scheduler refreshes the verse-of-the-day cache on a cron schedule and
// kicks off the daily verse text backfill sweep.
type Scheduler struct {
	service    *Service
	taskClient *tasks.Client
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewScheduler creates a scheduler. taskClient may be nil when the task
// queue is disabled; the daily refresh still runs.
func NewScheduler(service *Service, taskClient *tasks.Client, schedule string) *Scheduler {
	return &Scheduler{
		service:    service,
		taskClient: taskClient,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runDaily()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule verse of day refresh: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Verse of day scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	// Release the context watcher started in Start
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Verse of day scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next refresh will occur.
func (s *Scheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow triggers an immediate refresh.
func (s *Scheduler) RunNow() {
	go s.runDaily()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.service.Refresh(ctx, time.Now()); err != nil {
		log.Printf("Verse of day refresh failed: %v", err)
	} else {
		log.Printf("Verse of day refreshed")
	}

	if s.taskClient != nil {
		if _, err := s.taskClient.Add(tasks.BackfillSweepTask{}).Save(); err != nil {
			log.Printf("Failed to enqueue backfill sweep: %v", err)
		}
	}
}
