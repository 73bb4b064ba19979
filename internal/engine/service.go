// Package engine runs the evaluation pass: fetch usage samples, rebuild
// today's totals and streaks, persist the result, and fire any due
// threshold alerts.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/appdiet/appdiet/internal/alert"
	"github.com/appdiet/appdiet/internal/config"
	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/logging"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/notify"
	"github.com/appdiet/appdiet/internal/storage"
	"github.com/appdiet/appdiet/internal/usage"
)

// Service owns one evaluation pipeline over a database. Passes are
// serialized: a second RunPass while one is in flight returns
// ErrPassInProgress instead of queueing.
type Service struct {
	source     usage.SampleSource
	goals      *storage.GoalRepo
	configs    *storage.ConfigRepo
	settings   *storage.AlertSettingsRepo
	usageRepo  *storage.UsageRepo
	evaluator  *alert.Evaluator
	dispatcher *notify.Dispatcher

	mu  sync.Mutex
	now func() time.Time
}

// NewService wires an evaluation service over the given database. The
// dispatcher may be nil; fired events are then returned but not
// delivered anywhere.
func NewService(db *storage.DB, source usage.SampleSource, dispatcher *notify.Dispatcher) *Service {
	return &Service{
		source:     source,
		goals:      storage.NewGoalRepo(db),
		configs:    storage.NewConfigRepo(db),
		settings:   storage.NewAlertSettingsRepo(db),
		usageRepo:  storage.NewUsageRepo(db),
		evaluator:  alert.NewEvaluator(storage.NewAlertStateRepo(db)),
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SetNow overrides the clock. Used in tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// RunPass executes one evaluation pass and returns the alert events it
// fired. A failed sample fetch aborts the pass before any stored state
// is touched; the previous snapshot, history, and suppression records
// all survive intact.
func (s *Service) RunPass(ctx context.Context) ([]model.Event, error) {
	if s.source == nil {
		return nil, errors.ErrNoSampleSource
	}
	if !s.mu.TryLock() {
		return nil, errors.ErrPassInProgress
	}
	defer s.mu.Unlock()

	start := s.now()
	today := start.Format(model.DateLayout)

	selected, err := s.configs.SelectedApps()
	if err != nil {
		return nil, errors.WithContext(err, "load selected apps")
	}
	tracked := model.AppsByIDs(selected)

	goals, err := s.goals.Map(selected)
	if err != nil {
		return nil, errors.WithContext(err, "load goals")
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, errors.WithContext(err, "load alert settings")
	}

	windowStart := usage.HistoryWindow(start, config.Global.Engine.HistoryDays)

	fetchCtx, cancel := context.WithTimeout(ctx, config.Global.Engine.FetchTimeout)
	samples, err := s.source.Query(fetchCtx, windowStart, start)
	cancel()
	if err != nil {
		return nil, errors.WithContext(err, "fetch usage samples")
	}

	history := usage.BuildHistory(samples, tracked)
	todayMinutes := usage.TodayUsage(history, tracked, today)
	pastStreaks := usage.ComputeStreaks(history, goals, tracked, today)

	snapshots := make([]model.Snapshot, 0, len(tracked))
	for _, app := range tracked {
		goal := goals.For(app.ID)
		snapshots = append(snapshots, model.Snapshot{
			AppID:        app.ID,
			TodayMinutes: todayMinutes[app.ID],
			GoalMinutes:  goal,
			Streak:       usage.AdjustForToday(pastStreaks[app.ID], todayMinutes[app.ID], goal),
		})
	}
	list := model.NewSnapshotList(snapshots, start)

	if err := s.usageRepo.SaveHistory(history); err != nil {
		return nil, errors.WithContext(err, "save usage history")
	}
	if err := s.usageRepo.PruneBefore(windowStart.Format(model.DateLayout)); err != nil {
		return nil, errors.WithContext(err, "prune usage history")
	}
	if err := s.usageRepo.SaveSnapshot(list); err != nil {
		return nil, errors.WithContext(err, "save snapshot")
	}

	events := s.evaluator.Evaluate(start, snapshots, settings)

	if len(events) > 0 && s.dispatcher != nil {
		for _, result := range s.dispatcher.DispatchAll(ctx, events) {
			if result.Error != nil {
				logging.Warn("webhook delivery failed",
					logging.KeyWebhook, result.WebhookName, logging.KeyError, result.Error)
			}
		}
	}

	logging.DebugLog("evaluation pass complete",
		logging.KeyDate, today,
		logging.KeyCount, len(events),
		logging.KeyDuration, time.Since(start))

	return events, nil
}

// LatestSnapshot returns the snapshot list persisted by the most recent
// successful pass, or nil when no pass has run yet.
func (s *Service) LatestSnapshot() (*model.SnapshotList, error) {
	return s.usageRepo.Snapshot()
}
