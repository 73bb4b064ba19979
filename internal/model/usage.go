package model

import (
	"fmt"
	"time"
)

// DailyUsage holds per-app foreground minutes for one calendar day.
// Minutes are never negative; a missing entry reads as zero. The record for
// a completed day is immutable; the current day's record is replaced
// wholesale as new samples arrive.
type DailyUsage struct {
	Key     string         `json:"key"`
	Date    string         `json:"date"`    // DateLayout
	Minutes map[string]int `json:"minutes"` // app ID -> minutes
}

// SetKey sets the database key for this record.
func (d *DailyUsage) SetKey(key string) {
	d.Key = key
}

// GetKey returns the database key for this record.
func (d *DailyUsage) GetKey() string {
	return d.Key
}

// GenerateUsageDayKey generates a database key for a daily usage record.
func GenerateUsageDayKey(date string) string {
	return fmt.Sprintf("%s:%s", PrefixUsageDay, date)
}

// NewDailyUsage creates a daily usage record for the given date.
func NewDailyUsage(date string, minutes map[string]int) *DailyUsage {
	return &DailyUsage{
		Key:     GenerateUsageDayKey(date),
		Date:    date,
		Minutes: minutes,
	}
}

// MinutesFor returns the minutes recorded for an app, zero when absent.
func (d *DailyUsage) MinutesFor(appID string) int {
	return d.Minutes[appID]
}

// Total returns the summed minutes across all recorded apps.
func (d *DailyUsage) Total() int {
	total := 0
	for _, m := range d.Minutes {
		total += m
	}
	return total
}

// Snapshot is the derived per-app view for the current day. It is rebuilt
// wholesale on every evaluation pass, never mutated in place.
type Snapshot struct {
	AppID        string `json:"app_id"`
	TodayMinutes int    `json:"today_minutes"`
	GoalMinutes  int    `json:"goal_minutes"`
	// Streak counts consecutive completed days on the same side of the
	// goal: positive for success runs, negative for failure runs, zero when
	// no goal is set or no history exists.
	Streak int `json:"streak"`
}

// Percentage returns today's usage as a percentage of the goal.
// Returns 0 when no goal is set.
func (s Snapshot) Percentage() float64 {
	if s.GoalMinutes <= 0 {
		return 0
	}
	return float64(s.TodayMinutes) / float64(s.GoalMinutes) * 100
}

// StreakText renders the streak for display, e.g. "3 days on target" or
// "2 days over".
func (s Snapshot) StreakText() string {
	switch {
	case s.Streak > 0:
		return fmt.Sprintf("%d day streak on target", s.Streak)
	case s.Streak < 0:
		return fmt.Sprintf("%d day streak over goal", -s.Streak)
	default:
		return "no streak yet"
	}
}

// SnapshotList is the published read-only view for UI consumers: the
// per-app snapshots plus aggregate totals, stamped with the pass time.
type SnapshotList struct {
	Key          string     `json:"key"`
	Snapshots    []Snapshot `json:"snapshots"`
	TotalMinutes int        `json:"total_minutes"`
	TotalGoal    int        `json:"total_goal"`
	TakenAt      time.Time  `json:"taken_at"`
}

// SetKey sets the database key for this record.
func (l *SnapshotList) SetKey(key string) {
	l.Key = key
}

// GetKey returns the database key for this record.
func (l *SnapshotList) GetKey() string {
	return l.Key
}

// NewSnapshotList builds the published list from per-app snapshots.
func NewSnapshotList(snaps []Snapshot, takenAt time.Time) *SnapshotList {
	list := &SnapshotList{
		Key:       KeySnapshot,
		Snapshots: snaps,
		TakenAt:   takenAt,
	}
	for _, s := range snaps {
		list.TotalMinutes += s.TodayMinutes
		list.TotalGoal += s.GoalMinutes
	}
	return list
}

// Find returns the snapshot for an app ID, if present.
func (l *SnapshotList) Find(appID string) (Snapshot, bool) {
	for _, s := range l.Snapshots {
		if s.AppID == appID {
			return s, true
		}
	}
	return Snapshot{}, false
}

// DayStatus classifies a completed day against its goal.
type DayStatus string

const (
	DaySuccess DayStatus = "success" // usage within goal
	DayWarning DayStatus = "warning" // usage above 70% of goal
	DayFail    DayStatus = "fail"    // usage above goal
)
