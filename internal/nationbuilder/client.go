// Package nationbuilder registers letter authors with the NationBuilder
// CRM. Registration is best-effort: the caller downgrades any error to a
// status annotation and carries on.
package nationbuilder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"letterbot/internal/common/logger"
)

type Client struct {
	token      string
	tags       []string
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

type person struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Tags      []string `json:"tags"`
}

func NewClient(slug, token, tags string, log logger.Logger) *Client {
	return newClientWithBaseURL(fmt.Sprintf("https://%s.nationbuilder.com", slug), token, tags, log)
}

func newClientWithBaseURL(baseURL, token, tags string, log logger.Logger) *Client {
	c := &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			c.tags = append(c.tags, t)
		}
	}
	return c
}

// RegisterPerson upserts a person through the people push endpoint.
func (c *Client) RegisterPerson(ctx context.Context, firstName, lastName, email string) error {
	c.log.Info("registering person with NationBuilder", map[string]interface{}{
		"email": email,
	})

	payload := map[string]interface{}{
		"person": person{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Tags:      c.tags,
		},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal person: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/people/push?access_token=%s", c.baseURL, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to register person (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
