// Package mailinglist syncs subscribers to the mailing-list provider's
// REST API.
package mailinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Member is one list subscriber.
type Member struct {
	Email  string `json:"email_address"`
	Status string `json:"status"` // "subscribed" or "unsubscribed"
	Name   string `json:"name,omitempty"`
}

// Client talks to the mailing-list provider.
type Client struct {
	baseURL    string
	apiKey     string
	listID     string
	httpClient *http.Client
}

// NewClient creates a new mailing-list client.
func NewClient(baseURL, apiKey, listID string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		listID:  listID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Subscribe upserts a single member. Used best-effort during sign-up.
func (c *Client) Subscribe(ctx context.Context, email, name string) error {
	return c.put(ctx, Member{Email: email, Status: "subscribed", Name: name})
}

// SyncMembers pushes a batch of members, stopping at the first failure.
func (c *Client) SyncMembers(ctx context.Context, members []Member) (int, error) {
	for i, m := range members {
		if err := c.put(ctx, m); err != nil {
			return i, fmt.Errorf("mailinglist: sync stopped at member %d: %w", i, err)
		}
	}
	return len(members), nil
}

func (c *Client) put(ctx context.Context, m Member) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/lists/%s/members/%s", c.baseURL, c.listID, m.Email)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth("anystring", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailinglist: unexpected status %d", resp.StatusCode)
	}
	return nil
}
