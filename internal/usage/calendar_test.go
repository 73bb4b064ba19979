package usage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdiet/appdiet/internal/model"
)

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		goal    int
		want    model.DayStatus
	}{
		{"well_under", 10, 60, model.DaySuccess},
		{"at_70_percent", 42, 60, model.DaySuccess},
		{"just_over_70_percent", 43, 60, model.DayWarning},
		{"at_goal", 60, 60, model.DayWarning},
		{"over_goal", 61, 60, model.DayFail},
		{"zero_usage", 0, 60, model.DaySuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDay(tt.minutes, tt.goal))
		})
	}
}

func TestDayStatuses(t *testing.T) {
	tracked := trackedApps(t, "youtube", "instagram")
	goals := model.GoalSet{"youtube": 60, "instagram": 30}
	history := []*model.DailyUsage{
		day("2026-08-27", map[string]int{"youtube": 40, "instagram": 10}),
		day("2026-08-28", map[string]int{"youtube": 70, "instagram": 10}),
		day("2026-08-29", map[string]int{"youtube": 10, "instagram": 35}),
	}

	t.Run("single_app", func(t *testing.T) {
		records := DayStatuses(history, goals, tracked, "youtube")
		require.Len(t, records, 3)
		assert.Equal(t, model.DaySuccess, records[0].Status)
		assert.Equal(t, model.DayFail, records[1].Status)
		assert.Equal(t, model.DaySuccess, records[2].Status)
	})

	t.Run("aggregate_sums_usage_and_goals", func(t *testing.T) {
		records := DayStatuses(history, goals, tracked, "")
		require.Len(t, records, 3)

		// 40+10=50 of 90
		assert.Equal(t, 50, records[0].Minutes)
		assert.Equal(t, 90, records[0].Goal)
		assert.Equal(t, model.DaySuccess, records[0].Status)
		// 70+10=80 of 90, above 70%
		assert.Equal(t, model.DayWarning, records[1].Status)
	})

	t.Run("skips_days_without_goal", func(t *testing.T) {
		records := DayStatuses(history, model.GoalSet{"instagram": 30}, tracked, "youtube")
		assert.Empty(t, records)
	})

	t.Run("skips_unparseable_dates", func(t *testing.T) {
		bad := append(history, day("not-a-date", map[string]int{"youtube": 10}))
		records := DayStatuses(bad, goals, tracked, "youtube")
		assert.Len(t, records, 3)
	})
}

func TestStatsForMonth(t *testing.T) {
	records := []DayRecord{
		{Date: "2026-07-31", Status: model.DayFail},
		{Date: "2026-08-01", Status: model.DaySuccess},
		{Date: "2026-08-02", Status: model.DayWarning},
		{Date: "2026-08-03", Status: model.DayFail},
	}

	stats := StatsForMonth(records, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-08", stats.Month)
	assert.Equal(t, 3, stats.Recorded)
	// Warnings count as kept; only going over breaks a day.
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 1, stats.Failed)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/samples.json"

	content := `[
		{"app_id":"youtube","first_seen":"2026-08-29T10:00:00Z","foreground_millis":600000},
		{"app_id":"youtube","first_seen":"2026-08-30T10:00:00Z","foreground_millis":300000},
		{"app_id":"instagram","first_seen":"2026-09-01T10:00:00Z","foreground_millis":60000}
	]`
	require.NoError(t, writeFile(path, content))

	src := NewFileSource(path)
	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	samples, err := src.Query(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "youtube", samples[0].AppID)

	t.Run("missing_file", func(t *testing.T) {
		_, err := NewFileSource(dir+"/nope.json").Query(context.Background(), start, end)
		assert.Error(t, err)
	})

	t.Run("malformed_file", func(t *testing.T) {
		bad := dir + "/bad.json"
		require.NoError(t, writeFile(bad, "{not json"))
		_, err := NewFileSource(bad).Query(context.Background(), start, end)
		assert.Error(t, err)
	})
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
