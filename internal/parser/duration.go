// Package parser parses user-supplied durations and dates for the CLI.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/appdiet/appdiet/internal/errors"
)

// durationPattern matches duration expressions like "2h", "30m", "1h30m", "2.5h", etc.
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes))?$`)

// ParseGoalMinutes parses a human-readable duration string into whole
// minutes for a daily goal. Supports formats like:
//   - "2h" or "2 hours"
//   - "30m" or "30 minutes"
//   - "1h30m" or "1 hour 30 minutes"
//   - "2.5h" (2 hours 30 minutes)
//   - "90" (bare number, minutes)
func ParseGoalMinutes(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, errors.ErrInvalidDuration
	}

	// Bare numbers are minutes
	if n, err := strconv.Atoi(input); err == nil {
		if n < 0 {
			return 0, errors.ErrInvalidDuration
		}
		return n, nil
	}

	// Try standard Go duration format first (e.g., "2h30m")
	if d, err := time.ParseDuration(input); err == nil {
		return durationToMinutes(d)
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return 0, errors.ErrInvalidDuration
	}

	var total time.Duration

	if matches[1] != "" {
		value, _ := strconv.ParseFloat(matches[1], 64)
		unit := strings.ToLower(matches[2])
		if unit == "" {
			// Default to minutes if no unit
			unit = "m"
		}
		total += unitToDuration(value, unit)
	}

	if matches[3] != "" {
		value, _ := strconv.ParseFloat(matches[3], 64)
		unit := strings.ToLower(matches[4])
		total += unitToDuration(value, unit)
	}

	if total == 0 {
		return 0, errors.ErrInvalidDuration
	}

	return durationToMinutes(total)
}

// unitToDuration converts a value and unit to a duration.
func unitToDuration(value float64, unit string) time.Duration {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return time.Duration(value * float64(time.Hour))
	case "m", "min", "mins", "minute", "minutes":
		return time.Duration(value * float64(time.Minute))
	default:
		return time.Duration(value * float64(time.Minute))
	}
}

// durationToMinutes converts a duration to whole minutes, rejecting
// negatives and sub-minute values.
func durationToMinutes(d time.Duration) (int, error) {
	if d < 0 {
		return 0, errors.ErrInvalidDuration
	}
	minutes := int(d / time.Minute)
	if minutes == 0 {
		return 0, errors.ErrInvalidDuration
	}
	return minutes, nil
}
