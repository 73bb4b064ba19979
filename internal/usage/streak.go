package usage

import (
	"sort"

	"github.com/appdiet/appdiet/internal/model"
)

// ComputeStreaks derives the signed streak for every tracked app from
// completed days. The current day is excluded: its outcome is undetermined
// until the day elapses, and AdjustForToday applies the same-day failure
// projection afterward.
//
// The streak counts consecutive days, ending at the most recent completed
// day, on the same side of the goal: positive for a success run
// (usage <= goal), negative for a failure run. A day missing from history
// reads as zero minutes, which counts as success whenever a goal is set.
// Apps without a goal always get zero.
func ComputeStreaks(history []*model.DailyUsage, goals model.GoalSet, tracked []model.TrackedApp, today string) map[string]int {
	streaks := make(map[string]int, len(tracked))
	for _, app := range tracked {
		streaks[app.ID] = 0
	}

	past := make([]*model.DailyUsage, 0, len(history))
	for _, day := range history {
		if day.Date != today {
			past = append(past, day)
		}
	}
	if len(past) == 0 {
		return streaks
	}

	sort.Slice(past, func(i, j int) bool {
		return past[i].Date > past[j].Date
	})

	for _, app := range tracked {
		goal := goals.For(app.ID)
		if goal == 0 {
			continue
		}

		wasSuccess := past[0].MinutesFor(app.ID) <= goal
		count := 0
		for _, day := range past {
			if (day.MinutesFor(app.ID) <= goal) == wasSuccess {
				count++
			} else {
				break
			}
		}

		if wasSuccess {
			streaks[app.ID] = count
		} else {
			streaks[app.ID] = -count
		}
	}
	return streaks
}

// AdjustForToday projects the current day onto a history-based streak.
//
// A failure is irreversible the moment usage exceeds the goal, so it is
// reflected immediately: an existing failure run is extended by one, and
// any success run is reset to -1. A success cannot be confirmed before the
// day completes, so under-goal usage leaves the past streak unchanged.
func AdjustForToday(pastStreak, todayMinutes, goal int) int {
	if goal == 0 {
		return 0
	}
	if todayMinutes <= goal {
		return pastStreak
	}
	if pastStreak < 0 {
		return pastStreak - 1
	}
	return -1
}
