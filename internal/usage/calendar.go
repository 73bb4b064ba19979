package usage

import (
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// DayRecord is one classified calendar day for UI consumers.
type DayRecord struct {
	Date    string          `json:"date"`
	Minutes int             `json:"minutes"`
	Goal    int             `json:"goal"`
	Status  model.DayStatus `json:"status"`
}

// ClassifyDay classifies one day's usage against a goal: over the goal is
// a failure, over 70% of it a warning, anything else a success.
func ClassifyDay(minutes, goal int) model.DayStatus {
	switch {
	case minutes > goal:
		return model.DayFail
	case float64(minutes) > float64(goal)*0.7:
		return model.DayWarning
	default:
		return model.DaySuccess
	}
}

// DayStatuses classifies every history day for a single app, or for the
// aggregate of all tracked apps when appID is empty. Days whose effective
// goal is zero are skipped. Records whose date fails to parse are skipped.
func DayStatuses(history []*model.DailyUsage, goals model.GoalSet, tracked []model.TrackedApp, appID string) []DayRecord {
	var records []DayRecord
	for _, day := range history {
		if _, err := time.Parse(model.DateLayout, day.Date); err != nil {
			continue
		}

		var minutes, goal int
		if appID == "" {
			for _, app := range tracked {
				minutes += day.MinutesFor(app.ID)
				goal += goals.For(app.ID)
			}
		} else {
			minutes = day.MinutesFor(appID)
			goal = goals.For(appID)
		}
		if goal == 0 {
			continue
		}

		records = append(records, DayRecord{
			Date:    day.Date,
			Minutes: minutes,
			Goal:    goal,
			Status:  ClassifyDay(minutes, goal),
		})
	}
	return records
}

// MonthStats counts goal days in the given month. Success and warning days
// both count as "kept": only going over the goal breaks a day.
type MonthStats struct {
	Month    string `json:"month"` // "2006-01"
	Kept     int    `json:"kept"`
	Failed   int    `json:"failed"`
	Recorded int    `json:"recorded"`
}

// StatsForMonth summarizes the classified days falling in the month
// containing ref.
func StatsForMonth(records []DayRecord, ref time.Time) MonthStats {
	month := ref.Format("2006-01")
	stats := MonthStats{Month: month}

	for _, rec := range records {
		if len(rec.Date) < 7 || rec.Date[:7] != month {
			continue
		}
		stats.Recorded++
		if rec.Status == model.DayFail {
			stats.Failed++
		} else {
			stats.Kept++
		}
	}
	return stats
}
