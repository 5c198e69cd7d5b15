package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job. When MaxInterval exceeds Interval the delay
// doubles after each consecutive failure, capped at MaxInterval, and resets
// after the first success.
type Job struct {
	Name        string
	Interval    time.Duration
	MaxInterval time.Duration
	Fn          func(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler whose jobs stop when parent is cancelled or Stop is called.
func NewScheduler(parent context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a fixed-interval job to the scheduler
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.Add(Job{Name: name, Interval: interval, Fn: fn})
}

// Add registers a job. Jobs added after Start begin immediately.
func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	slog.Debug("Cron job registered", "name", job.Name, "interval", job.Interval, "max_interval", job.MaxInterval)

	if s.started {
		s.wg.Add(1)
		go s.runJob(job)
	}
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Debug("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for running executions to return
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Debug("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	// Run immediately on start
	failures := s.executeJob(job, 0)

	timer := time.NewTimer(NextDelay(job, failures))
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			slog.Debug("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			failures = s.executeJob(job, failures)
			timer.Reset(NextDelay(job, failures))
		}
	}
}

// executeJob executes a job, logs results and returns the updated failure streak
func (s *Scheduler) executeJob(job Job, failures int) int {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		if s.ctx.Err() != nil {
			return failures
		}
		failures++
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start), "consecutive_failures", failures)
		return failures
	}

	slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	return 0
}

// NextDelay returns how long to wait before the next run after the given
// number of consecutive failures.
func NextDelay(job Job, failures int) time.Duration {
	if failures <= 0 || job.MaxInterval <= job.Interval {
		return job.Interval
	}
	delay := job.Interval
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= job.MaxInterval {
			return job.MaxInterval
		}
	}
	return delay
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
