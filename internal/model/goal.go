package model

import (
	"fmt"
)

// Goal is a daily usage ceiling, in minutes, for one tracked app.
// Zero minutes means "no goal": streak and alert evaluation are disabled
// for that app.
type Goal struct {
	Key     string `json:"key"`
	AppID   string `json:"app_id"`
	Minutes int    `json:"minutes"`
}

// SetKey sets the database key for this goal.
func (g *Goal) SetKey(key string) {
	g.Key = key
}

// GetKey returns the database key for this goal.
func (g *Goal) GetKey() string {
	return g.Key
}

// GenerateGoalKey generates a database key for a goal using the app ID.
func GenerateGoalKey(appID string) string {
	return fmt.Sprintf("%s:%s", PrefixGoal, appID)
}

// NewGoal creates a goal for the given app.
func NewGoal(appID string, minutes int) *Goal {
	return &Goal{
		Key:     GenerateGoalKey(appID),
		AppID:   appID,
		Minutes: minutes,
	}
}

// GoalSet maps app IDs to goal minutes. A missing entry reads as zero,
// meaning no goal.
type GoalSet map[string]int

// For returns the goal minutes for an app, zero when absent.
func (g GoalSet) For(appID string) int {
	return g[appID]
}

// Total returns the summed goal minutes across the given apps.
func (g GoalSet) Total(appIDs []string) int {
	total := 0
	for _, id := range appIDs {
		total += g[id]
	}
	return total
}
