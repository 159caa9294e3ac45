package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"letterbot/internal/common/logger"
)

// Client posts messages to the configured incoming webhook and to the
// per-interaction response URLs handed out by the platform.
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(webhookURL string, log logger.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// PostMessage sends a message to the incoming webhook.
func (c *Client) PostMessage(ctx context.Context, msg *Message) error {
	return c.post(ctx, c.webhookURL, msg)
}

// Respond sends a message to a response URL.
func (c *Client) Respond(ctx context.Context, responseURL string, msg *Message) error {
	return c.post(ctx, responseURL, msg)
}

// RespondError sends an ephemeral error message to a response URL without
// replacing the original message. Failures are logged and swallowed: there
// is nobody left to report them to.
func (c *Client) RespondError(ctx context.Context, responseURL, reason string) {
	msg := &Message{
		ResponseType:    ResponseTypeEphemeral,
		ReplaceOriginal: false,
		Text:            "Error: " + reason,
	}
	if err := c.post(ctx, responseURL, msg); err != nil {
		c.log.Error("failed to send error to Slack", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *Client) post(ctx context.Context, url string, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
