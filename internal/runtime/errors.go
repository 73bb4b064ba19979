package runtime

import (
	"strings"

	"github.com/appdiet/appdiet/internal/errors"
)

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errors.ErrUnknownApp:       "Use 'appdiet apps' to see the supported apps.",
	errors.ErrTooManyApps:      "You can track at most 3 apps. Deselect one first.",
	errors.ErrGoalNotFound:     "Use 'appdiet goal set <app> <duration>' to create a goal.",
	errors.ErrWebhookNotFound:  "Use 'appdiet webhook list' to see configured webhooks.",
	errors.ErrInvalidDuration:  "Try formats like '1h', '45m', '1h30m', or '90'.",
	errors.ErrInvalidInterval:  "Valid intervals are 3, 5, 10, 15, or 30 minutes.",
	errors.ErrNoSampleSource:   "Set APPDIET_SAMPLE_PATH to your usage export file.",
	errors.ErrDaemonNotRunning: "Use 'appdiet daemon start' to start it.",
	errors.ErrDaemonRunning:    "Use 'appdiet daemon stop' first, or 'appdiet daemon status'.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if s := errors.Suggestion(err); s != "" {
		return s
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" && !strings.Contains(msg, suggestion) {
		msg += "\n" + suggestion
	}
	return msg
}
