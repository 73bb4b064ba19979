package model

import (
	"fmt"
	"time"
)

// Alert tiers, as percentages of the daily goal.
const (
	Tier50  = 50
	Tier70  = 70
	Tier100 = 100
)

// Tiers lists all alert tiers in evaluation order: the repeat tier first,
// then the reached tiers.
func Tiers() []int {
	return []int{Tier100, Tier70, Tier50}
}

// RepeatIntervalChoices are the allowed values for the 100%-exceeded
// repeat interval, in minutes.
var RepeatIntervalChoices = []int{3, 5, 10, 15, 30}

// DefaultRepeatIntervalMinutes is the default repeat interval for the
// 100%-exceeded alert.
const DefaultRepeatIntervalMinutes = 5

// AlertSettings holds the per-tier enable flags and the repeat interval
// for threshold notifications.
type AlertSettings struct {
	Individual50  bool `json:"individual_50"`
	Individual70  bool `json:"individual_70"`
	Individual100 bool `json:"individual_100"`
	Total50       bool `json:"total_50"`
	Total70       bool `json:"total_70"`
	Total100      bool `json:"total_100"`
	// RepeatIntervalMinutes throttles the 100%-exceeded alert.
	RepeatIntervalMinutes int `json:"repeat_interval_minutes"`
}

// DefaultAlertSettings returns the default settings: every tier enabled,
// five-minute repeat interval.
func DefaultAlertSettings() *AlertSettings {
	return &AlertSettings{
		Individual50:          true,
		Individual70:          true,
		Individual100:         true,
		Total50:               true,
		Total70:               true,
		Total100:              true,
		RepeatIntervalMinutes: DefaultRepeatIntervalMinutes,
	}
}

// IndividualEnabled reports whether the given tier is enabled for
// individual-app scopes.
func (s *AlertSettings) IndividualEnabled(tier int) bool {
	switch tier {
	case Tier50:
		return s.Individual50
	case Tier70:
		return s.Individual70
	case Tier100:
		return s.Individual100
	}
	return false
}

// TotalEnabled reports whether the given tier is enabled for the total
// scope.
func (s *AlertSettings) TotalEnabled(tier int) bool {
	switch tier {
	case Tier50:
		return s.Total50
	case Tier70:
		return s.Total70
	case Tier100:
		return s.Total100
	}
	return false
}

// SetIndividual sets the enable flag for an individual-app tier.
func (s *AlertSettings) SetIndividual(tier int, enabled bool) error {
	switch tier {
	case Tier50:
		s.Individual50 = enabled
	case Tier70:
		s.Individual70 = enabled
	case Tier100:
		s.Individual100 = enabled
	default:
		return &ValidationError{Field: "tier", Message: fmt.Sprintf("unknown tier %d", tier)}
	}
	return nil
}

// SetTotal sets the enable flag for a total-scope tier.
func (s *AlertSettings) SetTotal(tier int, enabled bool) error {
	switch tier {
	case Tier50:
		s.Total50 = enabled
	case Tier70:
		s.Total70 = enabled
	case Tier100:
		s.Total100 = enabled
	default:
		return &ValidationError{Field: "tier", Message: fmt.Sprintf("unknown tier %d", tier)}
	}
	return nil
}

// RepeatInterval returns the repeat interval as a duration.
func (s *AlertSettings) RepeatInterval() time.Duration {
	return time.Duration(s.RepeatIntervalMinutes) * time.Minute
}

// Validate checks the settings values.
func (s *AlertSettings) Validate() error {
	for _, v := range RepeatIntervalChoices {
		if s.RepeatIntervalMinutes == v {
			return nil
		}
	}
	return &ValidationError{
		Field:   "repeat_interval_minutes",
		Message: fmt.Sprintf("must be one of %v", RepeatIntervalChoices),
	}
}

// ValidationError represents a settings validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
