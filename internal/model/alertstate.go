package model

import (
	"fmt"
	"time"
)

// AlertStateKind tags the suppression record variant for a (scope, tier)
// key. Daily tiers store the calendar date they last fired; the repeat
// tier stores a timestamp.
type AlertStateKind string

const (
	// AlertNever means the alert has not fired for this key.
	AlertNever AlertStateKind = "never"
	// AlertSentOnDate is used by the once-per-day tiers (50%, 70%). The
	// state conceptually resets when the date rolls over; this is realized
	// by comparing the stored date against the current date rather than by
	// an explicit reset.
	AlertSentOnDate AlertStateKind = "sent_on_date"
	// AlertSentAt is used by the interval-throttled 100% tier.
	AlertSentAt AlertStateKind = "sent_at"
)

// AlertState is the persisted suppression record for one (scope, tier)
// key. It is independent of snapshots and survives restarts.
type AlertState struct {
	Key          string         `json:"key"`
	Kind         AlertStateKind `json:"kind"`
	Date         string         `json:"date,omitempty"`           // DateLayout, for AlertSentOnDate
	SentAtMillis int64          `json:"sent_at_millis,omitempty"` // epoch millis, for AlertSentAt
}

// SetKey sets the database key for this record.
func (a *AlertState) SetKey(key string) {
	a.Key = key
}

// GetKey returns the database key for this record.
func (a *AlertState) GetKey() string {
	return a.Key
}

// GenerateAlertStateKey generates a database key for a suppression record.
func GenerateAlertStateKey(scope string, tier int) string {
	return fmt.Sprintf("%s:%s:%d", PrefixAlertState, scope, tier)
}

// SentToday reports whether the daily record fired on the given date.
func (a *AlertState) SentToday(date string) bool {
	return a.Kind == AlertSentOnDate && a.Date == date
}

// SentWithin reports whether the repeat record fired within the interval
// ending at now.
func (a *AlertState) SentWithin(now time.Time, interval time.Duration) bool {
	if a.Kind != AlertSentAt {
		return false
	}
	elapsed := now.UnixMilli() - a.SentAtMillis
	return elapsed <= interval.Milliseconds()
}
