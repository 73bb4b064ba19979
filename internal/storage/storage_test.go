package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdiet/appdiet/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestCRUD(t *testing.T) {
	db := setupTestDB(t)

	t.Run("get_missing_key", func(t *testing.T) {
		goal := &model.Goal{}
		err := db.Get("goal:nope", goal)
		assert.True(t, IsErrKeyNotFound(err))
	})

	t.Run("set_get_roundtrip", func(t *testing.T) {
		in := model.NewGoal("youtube", 60)
		require.NoError(t, db.Set(in))

		out := &model.Goal{}
		require.NoError(t, db.Get(in.Key, out))
		assert.Equal(t, "youtube", out.AppID)
		assert.Equal(t, 60, out.Minutes)
		assert.Equal(t, in.Key, out.GetKey())
	})

	t.Run("exists", func(t *testing.T) {
		require.NoError(t, db.Set(model.NewGoal("instagram", 30)))

		exists, err := db.Exists(model.GenerateGoalKey("instagram"))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = db.Exists(model.GenerateGoalKey("missing"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, db.Set(model.NewGoal("tiktok", 15)))
		require.NoError(t, db.Delete(model.GenerateGoalKey("tiktok")))

		exists, err := db.Exists(model.GenerateGoalKey("tiktok"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list_by_prefix", func(t *testing.T) {
		keys, err := db.ListByPrefix(model.PrefixGoal + ":")
		require.NoError(t, err)
		assert.Contains(t, keys, model.GenerateGoalKey("youtube"))
		assert.Contains(t, keys, model.GenerateGoalKey("instagram"))
		assert.NotContains(t, keys, model.GenerateGoalKey("tiktok"))
	})
}

func TestGoalRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	t.Run("minutes_defaults_to_zero", func(t *testing.T) {
		minutes, err := repo.Minutes("youtube")
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("upsert_and_read", func(t *testing.T) {
		require.NoError(t, repo.Upsert(model.NewGoal("youtube", 60)))

		minutes, err := repo.Minutes("youtube")
		require.NoError(t, err)
		assert.Equal(t, 60, minutes)
	})

	t.Run("upsert_replaces", func(t *testing.T) {
		require.NoError(t, repo.Upsert(model.NewGoal("youtube", 45)))

		minutes, err := repo.Minutes("youtube")
		require.NoError(t, err)
		assert.Equal(t, 45, minutes)
	})

	t.Run("map_fills_missing_with_zero", func(t *testing.T) {
		goals, err := repo.Map([]string{"youtube", "instagram"})
		require.NoError(t, err)
		assert.Equal(t, model.GoalSet{"youtube": 45, "instagram": 0}, goals)
	})

	t.Run("delete_clears_goal", func(t *testing.T) {
		require.NoError(t, repo.Delete("youtube"))

		minutes, err := repo.Minutes("youtube")
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})
}

func TestConfigRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigRepo(db)

	t.Run("creates_default_on_first_get", func(t *testing.T) {
		config, err := repo.Get()
		require.NoError(t, err)
		assert.NotEmpty(t, config.InstallKey)
		assert.Equal(t, model.DefaultSelection(), config.SelectedApps)
	})

	t.Run("install_key_is_stable", func(t *testing.T) {
		first, err := repo.Get()
		require.NoError(t, err)
		second, err := repo.Get()
		require.NoError(t, err)
		assert.Equal(t, first.InstallKey, second.InstallKey)
	})

	t.Run("update_selection", func(t *testing.T) {
		config, err := repo.Get()
		require.NoError(t, err)

		config.SelectApps([]string{"tiktok", "reddit"})
		require.NoError(t, repo.Update(config))

		selected, err := repo.SelectedApps()
		require.NoError(t, err)
		assert.Equal(t, []string{"tiktok", "reddit"}, selected)
	})
}

func TestAlertSettingsRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertSettingsRepo(db)

	t.Run("defaults_when_absent", func(t *testing.T) {
		settings, err := repo.Get()
		require.NoError(t, err)
		assert.Equal(t, model.DefaultAlertSettings(), settings)

		// Defaults are not persisted by reading.
		exists, err := db.Exists(model.KeyAlertSettings)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("set_and_read_back", func(t *testing.T) {
		settings := model.DefaultAlertSettings()
		settings.Individual50 = false
		settings.RepeatIntervalMinutes = 10
		require.NoError(t, repo.Set(settings))

		got, err := repo.Get()
		require.NoError(t, err)
		assert.False(t, got.Individual50)
		assert.True(t, got.Individual70)
		assert.Equal(t, 10, got.RepeatIntervalMinutes)
	})

	t.Run("set_rejects_invalid_interval", func(t *testing.T) {
		settings := model.DefaultAlertSettings()
		settings.RepeatIntervalMinutes = 7
		err := repo.Set(settings)
		require.Error(t, err)

		// The stored settings are untouched.
		got, err := repo.Get()
		require.NoError(t, err)
		assert.Equal(t, 10, got.RepeatIntervalMinutes)
	})
}

func TestAlertStateRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertStateRepo(db)

	t.Run("get_defaults_to_never", func(t *testing.T) {
		state, err := repo.Get("total", model.Tier50)
		require.NoError(t, err)
		assert.Equal(t, model.AlertNever, state.Kind)
	})

	t.Run("mark_daily_once_per_date", func(t *testing.T) {
		fired, err := repo.MarkDaily("total", model.Tier50, "2026-08-30")
		require.NoError(t, err)
		assert.True(t, fired)

		fired, err = repo.MarkDaily("total", model.Tier50, "2026-08-30")
		require.NoError(t, err)
		assert.False(t, fired)
	})

	t.Run("mark_daily_resets_on_new_date", func(t *testing.T) {
		fired, err := repo.MarkDaily("total", model.Tier50, "2026-08-31")
		require.NoError(t, err)
		assert.True(t, fired)

		state, err := repo.Get("total", model.Tier50)
		require.NoError(t, err)
		assert.Equal(t, model.AlertSentOnDate, state.Kind)
		assert.Equal(t, "2026-08-31", state.Date)
	})

	t.Run("scopes_are_independent", func(t *testing.T) {
		fired, err := repo.MarkDaily("ind:youtube", model.Tier50, "2026-08-31")
		require.NoError(t, err)
		assert.True(t, fired)
	})

	t.Run("mark_repeat_within_interval", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		interval := 5 * time.Minute

		fired, err := repo.MarkRepeat("total", model.Tier100, now, interval)
		require.NoError(t, err)
		assert.True(t, fired)

		// At exactly the interval the alert is still suppressed.
		fired, err = repo.MarkRepeat("total", model.Tier100, now.Add(interval), interval)
		require.NoError(t, err)
		assert.False(t, fired)

		fired, err = repo.MarkRepeat("total", model.Tier100, now.Add(interval+time.Second), interval)
		require.NoError(t, err)
		assert.True(t, fired)
	})

	t.Run("clear_resets_to_never", func(t *testing.T) {
		require.NoError(t, repo.Clear("total", model.Tier50))

		state, err := repo.Get("total", model.Tier50)
		require.NoError(t, err)
		assert.Equal(t, model.AlertNever, state.Kind)

		fired, err := repo.MarkDaily("total", model.Tier50, "2026-08-31")
		require.NoError(t, err)
		assert.True(t, fired)
	})
}

func TestUsageRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUsageRepo(db)

	t.Run("snapshot_nil_when_absent", func(t *testing.T) {
		list, err := repo.Snapshot()
		require.NoError(t, err)
		assert.Nil(t, list)
	})

	t.Run("save_and_read_snapshot", func(t *testing.T) {
		takenAt := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
		list := model.NewSnapshotList([]model.Snapshot{
			{AppID: "youtube", TodayMinutes: 42, GoalMinutes: 60, Streak: 3},
			{AppID: "instagram", TodayMinutes: 10, GoalMinutes: 30, Streak: -1},
		}, takenAt)
		require.NoError(t, repo.SaveSnapshot(list))

		got, err := repo.Snapshot()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Len(t, got.Snapshots, 2)
		assert.Equal(t, 52, got.TotalMinutes)
		assert.Equal(t, 90, got.TotalGoal)
		assert.True(t, got.TakenAt.Equal(takenAt))

		snap, ok := got.Find("youtube")
		require.True(t, ok)
		assert.Equal(t, 3, snap.Streak)
	})

	t.Run("history_sorted_ascending", func(t *testing.T) {
		history := []*model.DailyUsage{
			model.NewDailyUsage("2026-08-29", map[string]int{"youtube": 70}),
			model.NewDailyUsage("2026-08-27", map[string]int{"youtube": 20}),
			model.NewDailyUsage("2026-08-28", map[string]int{"youtube": 55}),
		}
		require.NoError(t, repo.SaveHistory(history))

		got, err := repo.History()
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "2026-08-27", got[0].Date)
		assert.Equal(t, "2026-08-28", got[1].Date)
		assert.Equal(t, "2026-08-29", got[2].Date)
	})

	t.Run("day_lookup", func(t *testing.T) {
		day, err := repo.Day("2026-08-28")
		require.NoError(t, err)
		require.NotNil(t, day)
		assert.Equal(t, 55, day.MinutesFor("youtube"))

		day, err = repo.Day("2026-01-01")
		require.NoError(t, err)
		assert.Nil(t, day)
	})

	t.Run("prune_before", func(t *testing.T) {
		require.NoError(t, repo.PruneBefore("2026-08-28"))

		got, err := repo.History()
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2026-08-28", got[0].Date)
	})
}

func TestWebhookRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebhookRepo(db)

	t.Run("create_and_get", func(t *testing.T) {
		w := model.NewWebhook("phone", model.WebhookTypeDiscord, "https://discord.com/api/webhooks/123/abc")
		require.NoError(t, repo.Create(w))

		got, err := repo.Get("phone")
		require.NoError(t, err)
		assert.Equal(t, model.WebhookTypeDiscord, got.Type)
		assert.True(t, got.Enabled)
	})

	t.Run("list_enabled_skips_disabled", func(t *testing.T) {
		require.NoError(t, repo.Create(model.NewWebhook("desk", model.WebhookTypeSlack, "https://hooks.slack.com/services/T/B/x")))
		require.NoError(t, repo.SetEnabled("desk", false))

		enabled, err := repo.ListEnabled()
		require.NoError(t, err)
		require.Len(t, enabled, 1)
		assert.Equal(t, "phone", enabled[0].Name)

		all, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update_last_used_records_error", func(t *testing.T) {
		require.NoError(t, repo.UpdateLastUsed("phone", assert.AnError))

		got, err := repo.Get("phone")
		require.NoError(t, err)
		assert.False(t, got.LastUsed.IsZero())
		assert.NotEmpty(t, got.LastError)

		require.NoError(t, repo.UpdateLastUsed("phone", nil))
		got, err = repo.Get("phone")
		require.NoError(t, err)
		assert.Empty(t, got.LastError)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete("desk"))
		_, err := repo.Get("desk")
		assert.True(t, IsErrKeyNotFound(err))
	})
}

func TestFileLock(t *testing.T) {
	t.Run("acquire_and_release", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)
		require.NoError(t, lock.Acquire())
		require.NoError(t, lock.Release())
	})

	t.Run("second_acquire_fails", func(t *testing.T) {
		dir := t.TempDir()
		first := NewFileLock(dir)
		require.NoError(t, first.Acquire())
		defer first.Release()

		second := NewFileLock(dir)
		err := second.Acquire()
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)
	})

	t.Run("release_is_idempotent", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)
		require.NoError(t, lock.Acquire())
		require.NoError(t, lock.Release())
		require.NoError(t, lock.Release())
	})
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(Options{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, db.Path())

	// The lock is held while the database is open.
	other := NewFileLock(dir)
	assert.ErrorIs(t, other.Acquire(), ErrLockAlreadyHeld)

	require.NoError(t, db.Set(model.NewGoal("youtube", 60)))
	require.NoError(t, db.Close())

	// Reopen and verify the data and the released lock.
	db, err = Open(Options{Path: dir})
	require.NoError(t, err)
	defer db.Close()

	goal := &model.Goal{}
	require.NoError(t, db.Get(model.GenerateGoalKey("youtube"), goal))
	assert.Equal(t, 60, goal.Minutes)
}
