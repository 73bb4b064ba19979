package alert

import (
	"fmt"
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// NewEvent renders the user-facing title and body for a fired threshold
// and wraps them in an Event with the scope's dedupe key.
func NewEvent(scope string, tier, usage, goal int, firedAt time.Time) model.Event {
	return model.Event{
		Scope:     scope,
		Tier:      tier,
		Title:     eventTitle(scope, tier),
		Body:      eventBody(tier, usage, goal),
		DedupeKey: model.EventDedupeKey(scope, tier),
		FiredAt:   firedAt,
	}
}

func eventTitle(scope string, tier int) string {
	name := scopeName(scope)
	if tier == model.Tier100 {
		if scope == model.ScopeTotal {
			return "Total screen time is over your goal!"
		}
		return fmt.Sprintf("Put %s down!", name)
	}
	return fmt.Sprintf("%s at %d%%", name, tier)
}

func eventBody(tier, usage, goal int) string {
	if tier == model.Tier100 {
		return fmt.Sprintf("goal %s / used %s", FormatMinutes(goal), FormatMinutes(usage))
	}
	return fmt.Sprintf("You've used %d%% of your %s goal.", tier, FormatMinutes(goal))
}

func scopeName(scope string) string {
	if scope == model.ScopeTotal {
		return "Total screen time"
	}
	if app, ok := model.AppByID(model.ScopeAppID(scope)); ok {
		return app.DisplayName
	}
	return model.ScopeAppID(scope)
}

// FormatMinutes renders a minute count as "1h 05m", or "45m" under an
// hour.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
