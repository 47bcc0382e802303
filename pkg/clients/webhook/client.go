// Package webhook posts plain-text notifications to a configured webhook
// endpoint (Slack/Discord style incoming webhooks).
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/meadery/internal/config"
)

// Notifier exposes the notification operation used by the scheduler.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Client is a resty-backed implementation of Notifier.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.WebhookConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

type notifyPayload struct {
	Text string `json:"text"`
}

// Notify posts the text to the webhook endpoint.
func (c *Client) Notify(ctx context.Context, text string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(notifyPayload{Text: text}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("webhook responded with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
