// Package scheduler manages periodic odds refresh and edge scan jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// EdgePublisher receives each batch of freshly ranked opportunities,
// typically the websocket hub.
type EdgePublisher interface {
	PublishEdges(reports []models.EdgeReport)
}

// Scheduler manages scheduled pipeline runs
type Scheduler struct {
	cron            *cron.Cron
	pipeline        *service.Pipeline
	publisher       EdgePublisher
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	lastScan        time.Time
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(pipeline *service.Pipeline, publisher EdgePublisher, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		pipeline:        pipeline,
		publisher:       publisher,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleEdgeScan schedules recurring full pipeline runs. Each run
// re-pulls the odds feed, re-ranks opportunities and publishes the
// batch.
func (s *Scheduler) ScheduleEdgeScan(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		s.logger.Info("Starting scheduled edge scan")

		reports, err := s.pipeline.ScanEdges(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled edge scan failed")
			return
		}

		s.mu.Lock()
		s.lastScan = time.Now()
		s.mu.Unlock()

		s.logger.WithField("edges", len(reports)).Info("Scheduled edge scan completed")

		if s.publisher != nil {
			s.publisher.PublishEdges(reports)
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled edge scan job")

	return nil
}

// ScheduleIntervalScan schedules edge scans on a fixed interval.
func (s *Scheduler) ScheduleIntervalScan(intervalSeconds int) error {
	if intervalSeconds < 60 {
		// Below the feed cache TTL a tighter interval only rereads the cache.
		intervalSeconds = 60
	}
	return s.ScheduleEdgeScan(fmt.Sprintf("@every %ds", intervalSeconds))
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
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler. The lock is released while
// waiting so an in-flight job can still record its completion.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	stopCtx := s.cron.Stop()
	s.isRunning = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-stopCtx.Done():
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastScan returns the completion time of the most recent scan, zero
// if none has completed yet.
func (s *Scheduler) LastScan() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScan
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
