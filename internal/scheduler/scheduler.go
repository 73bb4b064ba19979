// Package scheduler drives periodic evaluation passes for the daemon.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/appdiet/appdiet/internal/config"
	"github.com/appdiet/appdiet/internal/engine"
	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/logging"
)

// Scheduler runs evaluation passes on a fixed cadence using cron.
type Scheduler struct {
	cron      *cron.Cron
	service   *engine.Service
	debug     bool
	lastCheck time.Time
	mu        sync.Mutex
}

// NewScheduler creates a scheduler around an evaluation service.
func NewScheduler(service *engine.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		service: service,
	}
}

// SetDebug enables debug output.
func (s *Scheduler) SetDebug(debug bool) {
	s.debug = debug
}

// Start registers the pass job and starts the cron loop. An immediate
// pass runs first so the daemon publishes a snapshot right away rather
// than waiting out the first interval.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	spec := cronSpec(config.Global.Scheduler.CheckInterval)
	_, err := s.cron.AddFunc(spec, func() {
		s.runPass()
	})
	if err != nil {
		return fmt.Errorf("failed to add evaluation job: %w", err)
	}

	s.cron.Start()

	if s.debug {
		fmt.Printf("[DEBUG] Scheduler started (interval: %v)\n", config.Global.Scheduler.CheckInterval)
	}

	go s.runPass()

	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.debug {
		fmt.Println("[DEBUG] Scheduler stopped")
	}
}

// runPass runs one evaluation pass, skipping the tick after a sleep gap
// so stale wall-clock intervals do not trigger a burst of alerts.
func (s *Scheduler) runPass() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	if elapsed > config.Global.Scheduler.SleepThreshold {
		if s.debug {
			fmt.Printf("[DEBUG] Skipping stale pass after %v sleep\n", elapsed.Round(time.Second))
		}
		return
	}

	events, err := s.service.RunPass(context.Background())
	if err != nil {
		if errors.Is(err, errors.ErrPassInProgress) {
			return
		}
		logging.Warn("evaluation pass failed", logging.KeyError, err)
		return
	}

	if s.debug && len(events) > 0 {
		fmt.Printf("[DEBUG] Pass fired %d alert(s)\n", len(events))
	}
}

// cronSpec builds a seconds-granularity cron spec for an interval of
// whole minutes, e.g. 15m becomes "0 */15 * * * *".
func cronSpec(interval time.Duration) string {
	minutes := int(interval.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if minutes >= 60 {
		return "0 0 * * * *"
	}
	return fmt.Sprintf("0 */%d * * * *", minutes)
}
