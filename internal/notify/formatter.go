// Package notify delivers fired alert events to configured webhooks.
package notify

import (
	"github.com/appdiet/appdiet/internal/model"
)

// Formatter formats alert events for a specific webhook type.
type Formatter interface {
	// Format converts an event into the webhook-specific payload.
	Format(e *model.Event) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the payload.
	ContentType() string
}

// GetFormatter returns the appropriate formatter for a webhook type.
func GetFormatter(webhookType string) Formatter {
	switch webhookType {
	case model.WebhookTypeDiscord:
		return &DiscordFormatter{}
	case model.WebhookTypeSlack:
		return &SlackFormatter{}
	default:
		return &GenericFormatter{}
	}
}
