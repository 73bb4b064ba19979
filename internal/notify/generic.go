package notify

import (
	"encoding/json"
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// GenericFormatter formats alert events as plain JSON for generic
// webhook endpoints.
type GenericFormatter struct{}

// genericPayload is the payload for generic webhooks.
type genericPayload struct {
	Scope     string `json:"scope"`
	Tier      int    `json:"tier"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	DedupeKey string `json:"dedupe_key"`
	Timestamp string `json:"timestamp"`
}

// Format converts an alert event to the generic webhook format.
func (f *GenericFormatter) Format(e *model.Event) ([]byte, error) {
	payload := genericPayload{
		Scope:     e.Scope,
		Tier:      e.Tier,
		Title:     e.Title,
		Body:      e.Body,
		DedupeKey: e.DedupeKey,
		Timestamp: e.FiredAt.UTC().Format(time.RFC3339),
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}
