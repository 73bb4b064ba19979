package output

import (
	"time"

	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/usage"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// SnapshotOutput represents one app's snapshot in JSON output.
type SnapshotOutput struct {
	AppID        string  `json:"app_id"`
	DisplayName  string  `json:"display_name"`
	TodayMinutes int     `json:"today_minutes"`
	GoalMinutes  int     `json:"goal_minutes,omitempty"`
	Percentage   float64 `json:"percentage"`
	Streak       int     `json:"streak"`
}

// StatusResponse represents the status output in JSON.
type StatusResponse struct {
	Status       string           `json:"status"`
	Snapshots    []SnapshotOutput `json:"snapshots"`
	TotalMinutes int              `json:"total_minutes"`
	TotalGoal    int              `json:"total_goal,omitempty"`
	TakenAt      string           `json:"taken_at,omitempty"`
}

// NewStatusResponse creates a StatusResponse from a snapshot list.
func NewStatusResponse(list *model.SnapshotList) *StatusResponse {
	resp := &StatusResponse{Status: "ok"}
	if list == nil {
		resp.Status = "empty"
		resp.Snapshots = []SnapshotOutput{}
		return resp
	}

	for _, snap := range list.Snapshots {
		name := snap.AppID
		if app, ok := model.AppByID(snap.AppID); ok {
			name = app.DisplayName
		}
		resp.Snapshots = append(resp.Snapshots, SnapshotOutput{
			AppID:        snap.AppID,
			DisplayName:  name,
			TodayMinutes: snap.TodayMinutes,
			GoalMinutes:  snap.GoalMinutes,
			Percentage:   snap.Percentage(),
			Streak:       snap.Streak,
		})
	}
	resp.TotalMinutes = list.TotalMinutes
	resp.TotalGoal = list.TotalGoal
	resp.TakenAt = list.TakenAt.Format(time.RFC3339)
	return resp
}

// DayOutput represents one calendar day in JSON output.
type DayOutput struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
	Goal    int    `json:"goal"`
	Status  string `json:"status"`
}

// CalendarResponse represents the calendar output in JSON.
type CalendarResponse struct {
	Days     []DayOutput `json:"days"`
	Month    string      `json:"month"`
	Kept     int         `json:"kept"`
	Failed   int         `json:"failed"`
	Recorded int         `json:"recorded"`
}

// NewCalendarResponse creates a CalendarResponse from day records.
func NewCalendarResponse(records []usage.DayRecord, stats usage.MonthStats) *CalendarResponse {
	resp := &CalendarResponse{
		Days:     []DayOutput{},
		Month:    stats.Month,
		Kept:     stats.Kept,
		Failed:   stats.Failed,
		Recorded: stats.Recorded,
	}
	for _, rec := range records {
		resp.Days = append(resp.Days, DayOutput{
			Date:    rec.Date,
			Minutes: rec.Minutes,
			Goal:    rec.Goal,
			Status:  string(rec.Status),
		})
	}
	return resp
}

// EventOutput represents a fired alert in JSON output.
type EventOutput struct {
	Scope     string `json:"scope"`
	Tier      int    `json:"tier"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	DedupeKey string `json:"dedupe_key"`
	FiredAt   string `json:"fired_at"`
}

// CheckResponse represents the check command output in JSON.
type CheckResponse struct {
	Status string        `json:"status"`
	Fired  []EventOutput `json:"fired"`
}

// NewCheckResponse creates a CheckResponse from fired events.
func NewCheckResponse(events []model.Event) *CheckResponse {
	resp := &CheckResponse{Status: "ok", Fired: []EventOutput{}}
	for _, e := range events {
		resp.Fired = append(resp.Fired, EventOutput{
			Scope:     e.Scope,
			Tier:      e.Tier,
			Title:     e.Title,
			Body:      e.Body,
			DedupeKey: e.DedupeKey,
			FiredAt:   e.FiredAt.Format(time.RFC3339),
		})
	}
	return resp
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{Status: status, Error: errMsg, Message: message})
}
