package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/storage"
)

func setupEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEvaluator(storage.NewAlertStateRepo(db))
}

func snap(appID string, today, goal int) model.Snapshot {
	return model.Snapshot{AppID: appID, TodayMinutes: today, GoalMinutes: goal}
}

func dedupeKeys(events []model.Event) []string {
	keys := make([]string, 0, len(events))
	for _, e := range events {
		keys = append(keys, e.DedupeKey)
	}
	return keys
}

func TestEvaluateTiers(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	settings := model.DefaultAlertSettings()

	t.Run("below_all_tiers_fires_nothing", func(t *testing.T) {
		e := setupEvaluator(t)
		events := e.Evaluate(now, []model.Snapshot{snap("youtube", 20, 60)}, settings)
		assert.Empty(t, events)
	})

	t.Run("tier_thresholds_are_inclusive", func(t *testing.T) {
		e := setupEvaluator(t)
		// 30 of 60 is exactly 50%
		events := e.Evaluate(now, []model.Snapshot{snap("youtube", 30, 60)}, settings)
		// youtube 50% plus the total scope at 50%
		assert.ElementsMatch(t, []string{"ind_50_youtube", "total_50"}, dedupeKeys(events))
	})

	t.Run("all_reached_tiers_fire_in_one_pass", func(t *testing.T) {
		e := setupEvaluator(t)
		events := e.Evaluate(now, []model.Snapshot{snap("youtube", 72, 60)}, settings)
		assert.ElementsMatch(t, []string{
			"ind_100_youtube", "ind_70_youtube", "ind_50_youtube",
			"total_100", "total_70", "total_50",
		}, dedupeKeys(events))
	})

	t.Run("no_goal_scope_is_skipped", func(t *testing.T) {
		e := setupEvaluator(t)
		events := e.Evaluate(now, []model.Snapshot{snap("youtube", 500, 0)}, settings)
		assert.Empty(t, events)
	})

	t.Run("total_goal_includes_goalless_app_usage", func(t *testing.T) {
		e := setupEvaluator(t)
		// instagram has no goal: its scope is skipped but its usage and
		// zero goal still flow into the total.
		events := e.Evaluate(now, []model.Snapshot{
			snap("youtube", 10, 180),
			snap("instagram", 175, 0),
		}, settings)
		assert.ElementsMatch(t, []string{"total_100", "total_70", "total_50"}, dedupeKeys(events))
	})
}

func TestEvaluateDailySuppression(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	settings := model.DefaultAlertSettings()
	e := setupEvaluator(t)
	snaps := []model.Snapshot{snap("youtube", 45, 60)} // 75%

	first := e.Evaluate(now, snaps, settings)
	assert.ElementsMatch(t, []string{
		"ind_70_youtube", "ind_50_youtube", "total_70", "total_50",
	}, dedupeKeys(first))

	// Same day: nothing fires again, however often we re-evaluate.
	again := e.Evaluate(now.Add(time.Hour), snaps, settings)
	assert.Empty(t, again)

	// Next day the daily tiers reset.
	nextDay := e.Evaluate(now.AddDate(0, 0, 1), snaps, settings)
	assert.Len(t, nextDay, 4)
}

func TestEvaluateRepeatSuppression(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	settings := model.DefaultAlertSettings() // 5 minute interval
	e := setupEvaluator(t)
	snaps := []model.Snapshot{snap("youtube", 80, 60)}

	first := e.Evaluate(now, snaps, settings)
	assert.Contains(t, dedupeKeys(first), "ind_100_youtube")

	// Immediate re-evaluation: suppressed.
	immediate := e.Evaluate(now, snaps, settings)
	assert.Empty(t, immediate)

	// Three minutes later: still inside the interval.
	after3 := e.Evaluate(now.Add(3*time.Minute), snaps, settings)
	assert.Empty(t, after3)

	// Six minutes later: past the interval, 100% fires again. The daily
	// tiers stay suppressed for the rest of the day.
	after6 := e.Evaluate(now.Add(6*time.Minute), snaps, settings)
	assert.ElementsMatch(t, []string{"ind_100_youtube", "total_100"}, dedupeKeys(after6))
}

func TestEvaluateDisabledTiers(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	e := setupEvaluator(t)
	snaps := []model.Snapshot{snap("youtube", 80, 60)}

	settings := model.DefaultAlertSettings()
	settings.Individual100 = false
	settings.Total50 = false
	settings.Total70 = false
	settings.Total100 = false

	events := e.Evaluate(now, snaps, settings)
	assert.ElementsMatch(t, []string{"ind_70_youtube", "ind_50_youtube"}, dedupeKeys(events))

	// A disabled tier must not have touched its suppression record:
	// re-enabling it fires immediately.
	settings.Individual100 = true
	reenabled := e.Evaluate(now, snaps, settings)
	assert.Equal(t, []string{"ind_100_youtube"}, dedupeKeys(reenabled))
}

func TestEventRendering(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	e := setupEvaluator(t)
	settings := model.DefaultAlertSettings()

	events := e.Evaluate(now, []model.Snapshot{snap("youtube", 80, 60)}, settings)
	require.NotEmpty(t, events)

	byKey := make(map[string]model.Event, len(events))
	for _, ev := range events {
		byKey[ev.DedupeKey] = ev
	}

	over := byKey["ind_100_youtube"]
	assert.Equal(t, "Put YouTube down!", over.Title)
	assert.Equal(t, "goal 1h 00m / used 1h 20m", over.Body)
	assert.Equal(t, now, over.FiredAt)

	warn := byKey["ind_70_youtube"]
	assert.Equal(t, "YouTube at 70%", warn.Title)

	total := byKey["total_100"]
	assert.Equal(t, "Total screen time is over your goal!", total.Title)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 00m", FormatMinutes(60))
	assert.Equal(t, "2h 05m", FormatMinutes(125))
}
