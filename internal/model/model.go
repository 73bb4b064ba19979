// Package model defines the domain models for Appdiet.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// KeyPrefix constants for database key generation.
const (
	PrefixGoal       = "goal"
	PrefixUsageDay   = "usage:day"
	PrefixAlertState = "alert"
	PrefixWebhook    = "webhook"
	KeyConfig        = "config:app"
	KeyAlertSettings = "config:alerts"
	KeySnapshot      = "snapshot:latest"
)

// DateLayout is the calendar-day format used for usage history keys and
// alert suppression dates.
const DateLayout = "2006-01-02"
