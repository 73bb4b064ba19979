// Package usage turns raw per-app foreground-time samples into daily
// aggregates, signed goal streaks, and calendar day statuses.
package usage

import (
	"context"
	"time"
)

// Sample is one raw foreground-time record reported by the platform for a
// single app. The platform may fragment a day into several records per
// app; consumers must sum them, never overwrite.
type Sample struct {
	AppID            string    `json:"app_id"`
	FirstSeen        time.Time `json:"first_seen"`
	ForegroundMillis int64     `json:"foreground_millis"`
}

// SampleSource supplies raw samples for a time window. It is the only
// external data dependency of the evaluation pass; implementations are an
// opaque platform collector, a file export, or a test fake.
type SampleSource interface {
	Query(ctx context.Context, start, end time.Time) ([]Sample, error)
}

// SourceFunc adapts a function to the SampleSource interface.
type SourceFunc func(ctx context.Context, start, end time.Time) ([]Sample, error)

// Query calls f.
func (f SourceFunc) Query(ctx context.Context, start, end time.Time) ([]Sample, error) {
	return f(ctx, start, end)
}

// Midnight returns the start of the calendar day containing t.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
