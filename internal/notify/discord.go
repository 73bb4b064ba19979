package notify

import (
	"encoding/json"
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// DiscordFormatter formats alert events for Discord webhooks.
type DiscordFormatter struct{}

// discordPayload represents a Discord webhook payload.
type discordPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

// discordEmbed represents a Discord embed.
type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// discordEmbedFooter represents a footer in a Discord embed.
type discordEmbedFooter struct {
	Text string `json:"text"`
}

// Format converts an alert event to Discord webhook format.
func (f *DiscordFormatter) Format(e *model.Event) ([]byte, error) {
	embed := discordEmbed{
		Title:       e.Title,
		Description: e.Body,
		Color:       eventColor(e),
		Timestamp:   e.FiredAt.UTC().Format(time.RFC3339),
		Footer: &discordEmbedFooter{
			Text: "Appdiet",
		},
	}

	payload := discordPayload{
		Embeds: []discordEmbed{embed},
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for Discord webhooks.
func (f *DiscordFormatter) ContentType() string {
	return "application/json"
}

// Tier fallback colors, used when the scope has no app color.
const (
	colorTier100 = 0xE74C3C
	colorTier70  = 0xE67E22
	colorTier50  = 0xF1C40F
)

// eventColor picks the embed color: the tracked app's brand color for an
// individual scope, a tier color otherwise.
func eventColor(e *model.Event) int {
	if model.IsIndividualScope(e.Scope) {
		if app, ok := model.AppByID(model.ScopeAppID(e.Scope)); ok {
			if c, ok := parseHexColor(app.Color); ok {
				return c
			}
		}
	}
	switch e.Tier {
	case model.Tier100:
		return colorTier100
	case model.Tier70:
		return colorTier70
	default:
		return colorTier50
	}
}

// parseHexColor converts "#RRGGBB" to an integer color.
func parseHexColor(s string) (int, bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, false
	}
	c := 0
	for _, r := range s[1:] {
		c <<= 4
		switch {
		case r >= '0' && r <= '9':
			c |= int(r - '0')
		case r >= 'a' && r <= 'f':
			c |= int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			c |= int(r-'A') + 10
		default:
			return 0, false
		}
	}
	return c, true
}
