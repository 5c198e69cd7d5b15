// Package dashboard implements the console's dashboard shell: the overview
// aggregates, their background refresh and navigation.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/emsportal/ems/internal/console/session"
	"github.com/emsportal/ems/internal/domain/dashboard"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/pkg/cron"
	"golang.org/x/sync/singleflight"
)

const (
	MaxRefreshInterval = 5 * time.Minute
	RefreshTimeout     = 30 * time.Second
)

type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type Shell struct {
	api      EmployeeLister
	session  *session.Session
	interval time.Duration
	now      func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	summary   dashboard.Summary
	lastErr   error
	current   dashboard.Destination
	scheduler *cron.Scheduler
}

func NewShell(api EmployeeLister, sess *session.Session, interval time.Duration) *Shell {
	return &Shell{
		api:      api,
		session:  sess,
		interval: interval,
		now:      time.Now,
		current:  dashboard.DestinationOverview,
	}
}

// Refresh fetches the roster and recomputes the summary. A call made while
// another refresh is in flight waits for that one instead of fetching again.
// The shared fetch is detached from the caller's cancellation and bounded by
// RefreshTimeout, so one caller giving up does not fail the others.
// On failure the previous summary is kept.
func (s *Shell) Refresh(ctx context.Context) error {
	ch := s.group.DoChan("refresh", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RefreshTimeout)
		defer cancel()
		return nil, s.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (s *Shell) fetch(ctx context.Context) error {
	emps, err := s.api.ListEmployees(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.lastErr = err
		slog.Error("Error fetching dashboard data", "error", err)
		return err
	}
	s.summary = Summarize(emps, s.now())
	s.lastErr = nil
	return nil
}

// Start refreshes now and then on every interval until Stop or ctx is done.
// Consecutive failures back off up to MaxRefreshInterval.
func (s *Shell) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return
	}
	s.scheduler = cron.NewScheduler(ctx)
	s.scheduler.Add(cron.Job{
		Name:        "dashboard-refresh",
		Interval:    s.interval,
		MaxInterval: MaxRefreshInterval,
		Fn:          s.Refresh,
	})
	s.scheduler.Start()
}

func (s *Shell) Stop() {
	s.mu.Lock()
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}
}

func (s *Shell) Summary() dashboard.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// LastError is the error of the most recent refresh, nil after a success.
func (s *Shell) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Shell) Current() dashboard.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Shell) Navigate(dest dashboard.Destination) error {
	for _, d := range dashboard.Destinations() {
		if d == dest {
			s.mu.Lock()
			s.current = dest
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("unknown destination %q", dest)
}

// Logout stops refreshing and clears the session token.
func (s *Shell) Logout() error {
	s.Stop()
	return s.session.Logout()
}
