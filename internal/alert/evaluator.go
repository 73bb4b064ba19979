// Package alert decides which goal-threshold notifications fire for an
// evaluation pass and enforces their suppression rules.
package alert

import (
	"time"

	"github.com/appdiet/appdiet/internal/logging"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/storage"
)

// Evaluator checks today's usage against goals and produces the threshold
// events that are due now. Suppression state lives in the alert state
// repo; an event is emitted only after its suppression record commits, so
// a failed write never counts as sent.
type Evaluator struct {
	states *storage.AlertStateRepo
}

// NewEvaluator creates an evaluator over the given suppression-state repo.
func NewEvaluator(states *storage.AlertStateRepo) *Evaluator {
	return &Evaluator{states: states}
}

// Evaluate runs one threshold pass. Individual scopes are evaluated per
// snapshot; the total scope aggregates every snapshot and has fully
// independent suppression keys. Scopes without a goal are skipped.
//
// Tiers are checked from 100% down and independently: at 120% usage the
// repeat tier and a not-yet-sent-today 70% and 50% may all fire in the
// same pass.
func (e *Evaluator) Evaluate(now time.Time, snapshots []model.Snapshot, settings *model.AlertSettings) []model.Event {
	var events []model.Event

	for _, snap := range snapshots {
		scope := model.IndividualScope(snap.AppID)
		events = append(events, e.evaluateScope(
			now, scope, snap.TodayMinutes, snap.GoalMinutes,
			settings.IndividualEnabled, settings.RepeatInterval(),
		)...)
	}

	totalUsage, totalGoal := 0, 0
	for _, snap := range snapshots {
		totalUsage += snap.TodayMinutes
		totalGoal += snap.GoalMinutes
	}
	events = append(events, e.evaluateScope(
		now, model.ScopeTotal, totalUsage, totalGoal,
		settings.TotalEnabled, settings.RepeatInterval(),
	)...)

	return events
}

// evaluateScope checks one scope against every tier. A disabled tier
// neither fires nor touches its suppression record.
func (e *Evaluator) evaluateScope(now time.Time, scope string, usage, goal int, enabled func(int) bool, interval time.Duration) []model.Event {
	if goal <= 0 {
		return nil
	}

	pct := float64(usage) / float64(goal) * 100
	today := now.Format(model.DateLayout)

	var events []model.Event
	for _, tier := range model.Tiers() {
		if !enabled(tier) || pct < float64(tier) {
			continue
		}

		var fired bool
		var err error
		if tier == model.Tier100 {
			fired, err = e.states.MarkRepeat(scope, tier, now, interval)
		} else {
			fired, err = e.states.MarkDaily(scope, tier, today)
		}
		if err != nil {
			// Not counted as sent; the next pass gets another chance.
			logging.Warn("alert state update failed",
				logging.KeyScope, scope, logging.KeyTier, tier, logging.KeyError, err)
			continue
		}
		if !fired {
			continue
		}

		events = append(events, NewEvent(scope, tier, usage, goal, now))
	}
	return events
}
