package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("lookup_by_id", func(t *testing.T) {
		app, ok := AppByID("youtube")
		require.True(t, ok)
		assert.Equal(t, "YouTube", app.DisplayName)

		_, ok = AppByID("nope")
		assert.False(t, ok)
	})

	t.Run("lookup_by_package", func(t *testing.T) {
		app, ok := AppByPackage("com.instagram.android")
		require.True(t, ok)
		assert.Equal(t, "instagram", app.ID)
	})

	t.Run("default_selection_is_valid", func(t *testing.T) {
		ids := DefaultSelection()
		require.LessOrEqual(t, len(ids), MaxSelectedApps)
		assert.Len(t, AppsByIDs(ids), len(ids))
	})

	t.Run("apps_by_ids_drops_unknown", func(t *testing.T) {
		apps := AppsByIDs([]string{"youtube", "nope", "x"})
		require.Len(t, apps, 2)
		assert.Equal(t, "youtube", apps[0].ID)
		assert.Equal(t, "x", apps[1].ID)
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "goal:youtube", GenerateGoalKey("youtube"))
	assert.Equal(t, "usage:day:2026-08-30", GenerateUsageDayKey("2026-08-30"))
	assert.Equal(t, "alert:total:50", GenerateAlertStateKey(ScopeTotal, Tier50))
	assert.Equal(t, "alert:ind:youtube:100", GenerateAlertStateKey(IndividualScope("youtube"), Tier100))
	assert.Equal(t, "webhook:phone", GenerateWebhookKey("phone"))
}

func TestScopes(t *testing.T) {
	scope := IndividualScope("youtube")
	assert.True(t, IsIndividualScope(scope))
	assert.Equal(t, "youtube", ScopeAppID(scope))

	assert.False(t, IsIndividualScope(ScopeTotal))
	assert.Equal(t, ScopeTotal, ScopeAppID(ScopeTotal))
}

func TestEventDedupeKey(t *testing.T) {
	assert.Equal(t, "ind_100_youtube", EventDedupeKey(IndividualScope("youtube"), Tier100))
	assert.Equal(t, "ind_50_x", EventDedupeKey(IndividualScope("x"), Tier50))
	assert.Equal(t, "total_70", EventDedupeKey(ScopeTotal, Tier70))
}

func TestSnapshot(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		assert.Equal(t, 50.0, Snapshot{TodayMinutes: 30, GoalMinutes: 60}.Percentage())
		assert.Equal(t, 150.0, Snapshot{TodayMinutes: 90, GoalMinutes: 60}.Percentage())
		assert.Equal(t, 0.0, Snapshot{TodayMinutes: 30}.Percentage())
	})

	t.Run("streak_text", func(t *testing.T) {
		assert.Equal(t, "3 day streak on target", Snapshot{Streak: 3}.StreakText())
		assert.Equal(t, "2 day streak over goal", Snapshot{Streak: -2}.StreakText())
		assert.Equal(t, "no streak yet", Snapshot{}.StreakText())
	})
}

func TestSnapshotList(t *testing.T) {
	takenAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	list := NewSnapshotList([]Snapshot{
		{AppID: "youtube", TodayMinutes: 40, GoalMinutes: 60},
		{AppID: "instagram", TodayMinutes: 25, GoalMinutes: 0},
	}, takenAt)

	// Goalless apps still count toward the totals.
	assert.Equal(t, 65, list.TotalMinutes)
	assert.Equal(t, 60, list.TotalGoal)

	snap, ok := list.Find("instagram")
	require.True(t, ok)
	assert.Equal(t, 25, snap.TodayMinutes)

	_, ok = list.Find("tiktok")
	assert.False(t, ok)
}

func TestDailyUsage(t *testing.T) {
	day := NewDailyUsage("2026-08-30", map[string]int{"youtube": 40, "instagram": 15})
	assert.Equal(t, 40, day.MinutesFor("youtube"))
	assert.Equal(t, 0, day.MinutesFor("tiktok"))
	assert.Equal(t, 55, day.Total())
}

func TestGoalSet(t *testing.T) {
	goals := GoalSet{"youtube": 60, "instagram": 30}
	assert.Equal(t, 60, goals.For("youtube"))
	assert.Equal(t, 0, goals.For("tiktok"))
	assert.Equal(t, 90, goals.Total([]string{"youtube", "instagram", "tiktok"}))
}

func TestAlertSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := DefaultAlertSettings()
		for _, tier := range Tiers() {
			assert.True(t, s.IndividualEnabled(tier))
			assert.True(t, s.TotalEnabled(tier))
		}
		assert.Equal(t, DefaultRepeatIntervalMinutes, s.RepeatIntervalMinutes)
		require.NoError(t, s.Validate())
	})

	t.Run("set_tier", func(t *testing.T) {
		s := DefaultAlertSettings()
		require.NoError(t, s.SetIndividual(Tier70, false))
		assert.False(t, s.IndividualEnabled(Tier70))
		assert.True(t, s.TotalEnabled(Tier70))

		require.NoError(t, s.SetTotal(Tier100, false))
		assert.False(t, s.TotalEnabled(Tier100))

		assert.Error(t, s.SetIndividual(42, true))
		assert.Error(t, s.SetTotal(42, true))
	})

	t.Run("validate_interval", func(t *testing.T) {
		s := DefaultAlertSettings()
		for _, v := range RepeatIntervalChoices {
			s.RepeatIntervalMinutes = v
			assert.NoError(t, s.Validate())
		}

		s.RepeatIntervalMinutes = 7
		assert.Error(t, s.Validate())
		s.RepeatIntervalMinutes = 0
		assert.Error(t, s.Validate())
	})

	t.Run("repeat_interval_duration", func(t *testing.T) {
		s := DefaultAlertSettings()
		s.RepeatIntervalMinutes = 10
		assert.Equal(t, 10*time.Minute, s.RepeatInterval())
	})
}

func TestAlertState(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("sent_today", func(t *testing.T) {
		state := &AlertState{Kind: AlertSentOnDate, Date: "2026-08-30"}
		assert.True(t, state.SentToday("2026-08-30"))
		assert.False(t, state.SentToday("2026-08-31"))

		never := &AlertState{Kind: AlertNever}
		assert.False(t, never.SentToday("2026-08-30"))
	})

	t.Run("sent_within", func(t *testing.T) {
		state := &AlertState{Kind: AlertSentAt, SentAtMillis: now.UnixMilli()}
		interval := 5 * time.Minute

		assert.True(t, state.SentWithin(now.Add(3*time.Minute), interval))
		assert.True(t, state.SentWithin(now.Add(interval), interval))
		assert.False(t, state.SentWithin(now.Add(interval+time.Millisecond), interval))

		never := &AlertState{Kind: AlertNever}
		assert.False(t, never.SentWithin(now, interval))
	})
}

func TestWebhook(t *testing.T) {
	t.Run("detect_type", func(t *testing.T) {
		assert.Equal(t, WebhookTypeDiscord, DetectWebhookType("https://discord.com/api/webhooks/123/abc"))
		assert.Equal(t, WebhookTypeSlack, DetectWebhookType("https://hooks.slack.com/services/T/B/x"))
		assert.Equal(t, WebhookTypeGeneric, DetectWebhookType("https://example.com/hook"))
	})

	t.Run("valid_name", func(t *testing.T) {
		assert.True(t, IsValidWebhookName("phone"))
		assert.True(t, IsValidWebhookName("my-hook_2"))
		assert.False(t, IsValidWebhookName(""))
		assert.False(t, IsValidWebhookName("-leading"))
		assert.False(t, IsValidWebhookName("has space"))
	})

	t.Run("masked_url", func(t *testing.T) {
		long := &Webhook{URL: "https://discord.com/api/webhooks/1234567890/secret-token-value"}
		masked := long.MaskedURL()
		assert.NotContains(t, masked, "secret-token-value")
		assert.Contains(t, masked, "***")

		short := &Webhook{URL: "https://example.com/h"}
		assert.Equal(t, short.URL, short.MaskedURL())
	})
}
