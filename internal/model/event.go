package model

import (
	"fmt"
	"strings"
	"time"
)

// Alert scopes. Individual-app scopes are "ind:<appID>"; the total scope
// aggregates every tracked app.
const (
	ScopeTotal     = "total"
	scopeIndPrefix = "ind:"
)

// IndividualScope returns the scope string for an app.
func IndividualScope(appID string) string {
	return scopeIndPrefix + appID
}

// ScopeAppID extracts the app ID from an individual scope, or "" for the
// total scope.
func ScopeAppID(scope string) string {
	return strings.TrimPrefix(scope, scopeIndPrefix)
}

// IsIndividualScope reports whether the scope targets a single app.
func IsIndividualScope(scope string) bool {
	return strings.HasPrefix(scope, scopeIndPrefix)
}

// Event is one fired threshold notification: a scope, a tier, and the
// rendered message. The dedupe key is stable per scope+tier so a delivery
// layer can collapse rapid duplicates.
type Event struct {
	Scope     string    `json:"scope"`
	Tier      int       `json:"tier"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	DedupeKey string    `json:"dedupe_key"`
	FiredAt   time.Time `json:"fired_at"`
}

// EventDedupeKey builds the stable dedupe key for a scope and tier,
// e.g. "ind_100_youtube" or "total_50".
func EventDedupeKey(scope string, tier int) string {
	if IsIndividualScope(scope) {
		return fmt.Sprintf("ind_%d_%s", tier, ScopeAppID(scope))
	}
	return fmt.Sprintf("total_%d", tier)
}
