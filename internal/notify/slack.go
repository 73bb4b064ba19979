package notify

import (
	"encoding/json"
	"fmt"

	"github.com/appdiet/appdiet/internal/model"
)

// SlackFormatter formats alert events for Slack webhooks.
type SlackFormatter struct{}

// slackPayload represents a Slack webhook payload.
type slackPayload struct {
	Text        string        `json:"text,omitempty"`
	Blocks      []slackBlock  `json:"blocks,omitempty"`
	Attachments []slackAttach `json:"attachments,omitempty"`
}

// slackBlock represents a Slack block.
type slackBlock struct {
	Type string          `json:"type"`
	Text *slackBlockText `json:"text,omitempty"`
}

// slackBlockText represents text in a Slack block.
type slackBlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// slackAttach represents a Slack attachment (for color).
type slackAttach struct {
	Color    string `json:"color,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// Format converts an alert event to Slack webhook format.
func (f *SlackFormatter) Format(e *model.Event) ([]byte, error) {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackBlockText{
				Type: "plain_text",
				Text: e.Title,
			},
		},
		{
			Type: "section",
			Text: &slackBlockText{
				Type: "mrkdwn",
				Text: e.Body,
			},
		},
		{
			Type: "context",
			Text: &slackBlockText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("Appdiet | %s", e.FiredAt.Format("Jan 2, 3:04 PM")),
			},
		},
	}

	payload := slackPayload{
		Text:   fmt.Sprintf("*%s*", e.Title), // Fallback text
		Blocks: blocks,
		Attachments: []slackAttach{
			{
				Color:    colorToHex(eventColor(e)),
				Fallback: e.Title,
			},
		},
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}

// colorToHex converts an integer color to hex string.
func colorToHex(color int) string {
	return fmt.Sprintf("#%06X", color)
}
