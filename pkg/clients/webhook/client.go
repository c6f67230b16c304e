package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts plain-text notifications to a chat-style incoming webhook.
type Client interface {
	PostText(ctx context.Context, text string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting url.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient, url: url}
}

type textPayload struct {
	Text string `json:"text"`
}

// PostText delivers text as {"text": ...}.
func (c *APIClient) PostText(ctx context.Context, text string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(textPayload{Text: text}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
