package usage

import (
	"sort"
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// millisPerMinute converts raw foreground milliseconds to whole minutes.
// Fractions of a minute are dropped per sample, matching how the platform
// reports daily stats.
const millisPerMinute = 60_000

// Aggregate sums raw samples into a per-app minutes map for a single
// window. Samples for apps outside the tracked set are discarded; multiple
// samples for the same app are summed. The result is deterministic for a
// given input.
func Aggregate(samples []Sample, tracked []model.TrackedApp) map[string]int {
	ids := trackedIDs(tracked)

	usage := make(map[string]int, len(tracked))
	for _, s := range samples {
		if !ids[s.AppID] {
			continue
		}
		if s.ForegroundMillis < 0 {
			continue
		}
		usage[s.AppID] += int(s.ForegroundMillis / millisPerMinute)
	}
	return usage
}

// BuildHistory buckets raw samples into one DailyUsage per calendar date,
// sorted ascending. Every tracked app gets an entry on every represented
// day, zero-filled when it has no samples. Fragmented samples for the same
// app and date are summed.
func BuildHistory(samples []Sample, tracked []model.TrackedApp) []*model.DailyUsage {
	ids := trackedIDs(tracked)

	byDate := make(map[string]map[string]int)
	for _, s := range samples {
		if !ids[s.AppID] {
			continue
		}
		if s.ForegroundMillis < 0 {
			continue
		}
		date := s.FirstSeen.Format(model.DateLayout)
		day := byDate[date]
		if day == nil {
			day = make(map[string]int, len(tracked))
			byDate[date] = day
		}
		day[s.AppID] += int(s.ForegroundMillis / millisPerMinute)
	}

	history := make([]*model.DailyUsage, 0, len(byDate))
	for date, minutes := range byDate {
		for _, app := range tracked {
			if _, ok := minutes[app.ID]; !ok {
				minutes[app.ID] = 0
			}
		}
		history = append(history, model.NewDailyUsage(date, minutes))
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
	return history
}

// TodayUsage extracts the per-app minutes for the given date from a built
// history, zero-filled for every tracked app.
func TodayUsage(history []*model.DailyUsage, tracked []model.TrackedApp, today string) map[string]int {
	usage := make(map[string]int, len(tracked))
	for _, app := range tracked {
		usage[app.ID] = 0
	}
	for _, day := range history {
		if day.Date != today {
			continue
		}
		for _, app := range tracked {
			usage[app.ID] = day.MinutesFor(app.ID)
		}
		break
	}
	return usage
}

// HistoryWindow returns the start of the trailing window of the given
// number of days, anchored at the midnight before now.
func HistoryWindow(now time.Time, days int) time.Time {
	return Midnight(now).AddDate(0, 0, -days)
}

func trackedIDs(tracked []model.TrackedApp) map[string]bool {
	ids := make(map[string]bool, len(tracked))
	for _, app := range tracked {
		ids[app.ID] = true
	}
	return ids
}
