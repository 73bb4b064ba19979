package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/storage"
)

// Dispatcher sends alert events to all enabled webhooks.
type Dispatcher struct {
	webhookRepo *storage.WebhookRepo
	httpClient  *HTTPClient
	debug       bool
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(webhookRepo *storage.WebhookRepo) *Dispatcher {
	return &Dispatcher{
		webhookRepo: webhookRepo,
		httpClient:  NewHTTPClient(),
	}
}

// SetDebug enables or disables debug output.
func (d *Dispatcher) SetDebug(debug bool) {
	d.debug = debug
}

// DispatchResult contains the result of dispatching to a single webhook.
type DispatchResult struct {
	WebhookName string
	Success     bool
	StatusCode  int
	Duration    time.Duration
	Error       error
}

// Dispatch sends an alert event to all enabled webhooks.
func (d *Dispatcher) Dispatch(ctx context.Context, e *model.Event) []DispatchResult {
	webhooks, err := d.webhookRepo.ListEnabled()
	if err != nil {
		return []DispatchResult{{
			WebhookName: "all",
			Success:     false,
			Error:       fmt.Errorf("failed to list webhooks: %w", err),
		}}
	}

	if len(webhooks) == 0 {
		return nil // No webhooks configured
	}

	// Send to all webhooks concurrently
	var wg sync.WaitGroup
	results := make([]DispatchResult, len(webhooks))

	for i, webhook := range webhooks {
		wg.Add(1)
		go func(idx int, wh *model.Webhook) {
			defer wg.Done()
			results[idx] = d.sendToWebhook(ctx, e, wh)
		}(i, webhook)
	}

	wg.Wait()
	return results
}

// DispatchAll sends a batch of events in order, collecting every result.
func (d *Dispatcher) DispatchAll(ctx context.Context, events []model.Event) []DispatchResult {
	var results []DispatchResult
	for i := range events {
		results = append(results, d.Dispatch(ctx, &events[i])...)
	}
	return results
}

// sendToWebhook sends an alert event to a single webhook.
func (d *Dispatcher) sendToWebhook(ctx context.Context, e *model.Event, webhook *model.Webhook) DispatchResult {
	result := DispatchResult{
		WebhookName: webhook.Name,
	}

	formatter := GetFormatter(webhook.Type)

	payload, err := formatter.Format(e)
	if err != nil {
		result.Error = fmt.Errorf("failed to format event: %w", err)
		d.updateWebhookStatus(webhook.Name, result.Error)
		return result
	}

	sendResult := d.httpClient.Send(ctx, webhook.URL, formatter.ContentType(), payload)

	result.StatusCode = sendResult.StatusCode
	result.Duration = sendResult.Duration
	result.Error = sendResult.Error
	result.Success = sendResult.Error == nil

	d.updateWebhookStatus(webhook.Name, sendResult.Error)

	return result
}

// updateWebhookStatus updates the last used timestamp and error for a webhook.
func (d *Dispatcher) updateWebhookStatus(name string, err error) {
	// Ignore errors from updating status - it's not critical
	_ = d.webhookRepo.UpdateLastUsed(name, err)
}

// SendToSingle sends an alert event to a single webhook by name.
func (d *Dispatcher) SendToSingle(ctx context.Context, e *model.Event, webhookName string) DispatchResult {
	webhook, err := d.webhookRepo.Get(webhookName)
	if err != nil {
		return DispatchResult{
			WebhookName: webhookName,
			Success:     false,
			Error:       fmt.Errorf("webhook not found: %w", err),
		}
	}

	return d.sendToWebhook(ctx, e, webhook)
}

// TestWebhook sends a test event to a specific webhook.
func (d *Dispatcher) TestWebhook(ctx context.Context, webhookName string) DispatchResult {
	testEvent := &model.Event{
		Scope:     model.ScopeTotal,
		Tier:      model.Tier50,
		Title:     "Appdiet Test",
		Body:      "This is a test notification from Appdiet. If you see this, your webhook is configured correctly!",
		DedupeKey: "test",
		FiredAt:   time.Now(),
	}

	return d.SendToSingle(ctx, testEvent, webhookName)
}

// HasEnabledWebhooks returns true if there are any enabled webhooks.
func (d *Dispatcher) HasEnabledWebhooks() bool {
	webhooks, err := d.webhookRepo.ListEnabled()
	if err != nil {
		return false
	}
	return len(webhooks) > 0
}
