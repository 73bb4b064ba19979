package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// monthRegex matches relative month expressions like "this month".
var monthRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+month$`)

// ParseMonth parses a natural language month expression ("this month",
// "last month", "june", "2026-07") and returns a time inside that month.
func ParseMonth(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now, nil
	}

	if match := monthRegex.FindStringSubmatch(input); match != nil {
		t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		modifier := strings.ToLower(match[1])
		if modifier == "last" || modifier == "previous" {
			t = t.AddDate(0, -1, 0)
		}
		return t, nil
	}

	// Use go-dateparser for natural language parsing
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, err
	}

	return result.Time, nil
}

// ParseDate parses a natural language date expression ("yesterday",
// "aug 12") into a calendar date string.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return now, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, err
	}

	return result.Time, nil
}
