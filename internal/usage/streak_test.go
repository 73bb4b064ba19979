package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appdiet/appdiet/internal/model"
)

func day(date string, minutes map[string]int) *model.DailyUsage {
	return model.NewDailyUsage(date, minutes)
}

func TestComputeStreaks(t *testing.T) {
	tracked := trackedApps(t, "youtube")
	goals := model.GoalSet{"youtube": 60}
	const today = "2026-08-30"

	t.Run("success_run", func(t *testing.T) {
		history := []*model.DailyUsage{
			day("2026-08-27", map[string]int{"youtube": 40}),
			day("2026-08-28", map[string]int{"youtube": 55}),
			day("2026-08-29", map[string]int{"youtube": 60}), // boundary counts as success
		}

		streaks := ComputeStreaks(history, goals, tracked, today)
		assert.Equal(t, 3, streaks["youtube"])
	})

	t.Run("failure_run", func(t *testing.T) {
		history := []*model.DailyUsage{
			day("2026-08-27", map[string]int{"youtube": 40}),
			day("2026-08-28", map[string]int{"youtube": 70}),
			day("2026-08-29", map[string]int{"youtube": 90}),
		}

		streaks := ComputeStreaks(history, goals, tracked, today)
		assert.Equal(t, -2, streaks["youtube"])
	})

	t.Run("run_breaks_at_opposite_day", func(t *testing.T) {
		history := []*model.DailyUsage{
			day("2026-08-27", map[string]int{"youtube": 40}),
			day("2026-08-28", map[string]int{"youtube": 70}),
			day("2026-08-29", map[string]int{"youtube": 50}),
		}

		streaks := ComputeStreaks(history, goals, tracked, today)
		assert.Equal(t, 1, streaks["youtube"])
	})

	t.Run("excludes_today", func(t *testing.T) {
		history := []*model.DailyUsage{
			day("2026-08-29", map[string]int{"youtube": 50}),
			day(today, map[string]int{"youtube": 500}),
		}

		streaks := ComputeStreaks(history, goals, tracked, today)
		assert.Equal(t, 1, streaks["youtube"])
	})

	t.Run("missing_day_counts_as_success", func(t *testing.T) {
		// Recorded days only; a gap reads as zero usage and the run
		// continues through recorded entries.
		history := []*model.DailyUsage{
			day("2026-08-25", map[string]int{"youtube": 10}),
			day("2026-08-29", map[string]int{"youtube": 20}),
		}

		streaks := ComputeStreaks(history, goals, tracked, today)
		assert.Equal(t, 2, streaks["youtube"])
	})

	t.Run("no_goal_is_zero", func(t *testing.T) {
		history := []*model.DailyUsage{
			day("2026-08-29", map[string]int{"youtube": 50}),
		}

		streaks := ComputeStreaks(history, model.GoalSet{}, tracked, today)
		assert.Equal(t, 0, streaks["youtube"])
	})

	t.Run("no_history_is_zero", func(t *testing.T) {
		streaks := ComputeStreaks(nil, goals, tracked, today)
		assert.Equal(t, 0, streaks["youtube"])
	})
}

func TestAdjustForToday(t *testing.T) {
	tests := []struct {
		name         string
		pastStreak   int
		todayMinutes int
		goal         int
		want         int
	}{
		{"no_goal", 5, 100, 0, 0},
		{"under_goal_keeps_past_success", 3, 40, 60, 3},
		{"at_goal_keeps_past_success", 3, 60, 60, 3},
		{"under_goal_keeps_past_failure", -2, 10, 60, -2},
		{"over_goal_resets_success_run", 3, 65, 60, -1},
		{"over_goal_extends_failure_run", -2, 65, 60, -3},
		{"over_goal_with_no_history", 0, 65, 60, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustForToday(tt.pastStreak, tt.todayMinutes, tt.goal))
		})
	}
}
