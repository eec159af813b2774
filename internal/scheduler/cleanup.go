package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/newsai/tabulae/internal/config"
	"github.com/newsai/tabulae/internal/tasks"
)

// TaskEnqueuer enqueues background tasks.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// CleanupScheduler enqueues maintenance tasks on a cron schedule: removing
// stale never-imported uploads, orphaned custom field values and old audit
// events.
type CleanupScheduler struct {
	enqueuer TaskEnqueuer
	config   config.Cleanup

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a new scheduler instance.
func NewCleanupScheduler(enqueuer TaskEnqueuer, cfg config.Cleanup) *CleanupScheduler {
	return &CleanupScheduler{
		enqueuer: enqueuer,
		config:   cfg,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.enqueueCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule '%s': %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

// RunNow enqueues the cleanup tasks immediately, outside the schedule.
func (s *CleanupScheduler) RunNow(ctx context.Context) {
	s.enqueueCleanup(ctx)
}

func (s *CleanupScheduler) enqueueCleanup(ctx context.Context) {
	op := s.enqueuer.Add(tasks.CleanupUploadsTask{
		RetentionDays: s.config.UploadRetentionDays,
	}).Ctx(ctx)
	if _, err := op.Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue upload cleanup: %v", err)
	}

	if _, err := s.enqueuer.Add(tasks.CleanupCustomFieldsTask{}).Ctx(ctx).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue custom field cleanup: %v", err)
	}

	if _, err := s.enqueuer.Add(tasks.CleanupAuditEventsTask{}).Ctx(ctx).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue audit cleanup: %v", err)
	}
}
