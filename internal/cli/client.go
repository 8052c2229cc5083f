package cli

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
)

// Client talks to a hosted pennant-api instance.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateSave(ctx context.Context, name, teamID, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/saves", map[string]any{
		"name":    name,
		"team_id": teamID,
	}, &out, idem)
	return out, err
}

func (c *Client) GetSave(ctx context.Context, saveID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves/"+url.PathEscape(saveID), nil, &out, "")
	return out, err
}

func (c *Client) DeleteSave(ctx context.Context, saveID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodDelete, "/v1/saves/"+url.PathEscape(saveID), nil, &out, "")
	return out, err
}

func (c *Client) Standings(ctx context.Context, saveID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves/"+url.PathEscape(saveID)+"/standings", nil, &out, "")
	return out, err
}

func (c *Client) StandingsHistory(ctx context.Context, saveID string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves/"+url.PathEscape(saveID)+"/standings/history", nil, &out, "")
	return out, err
}

func (c *Client) Seasons(ctx context.Context, saveID string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves/"+url.PathEscape(saveID)+"/seasons", nil, &out, "")
	return out, err
}

// Action posts one named transition with an optional payload.
func (c *Client) Action(ctx context.Context, saveID, action string, body map[string]any, idem string) (map[string]any, error) {
	var out map[string]any
	path := "/v1/saves/" + url.PathEscape(saveID) + "/actions/" + url.PathEscape(action)
	err := c.jsonRequest(ctx, http.MethodPost, path, body, &out, idem)
	return out, err
}

// Do issues an arbitrary request, used when replaying the offline queue.
func (c *Client) Do(ctx context.Context, method, path string, body map[string]any, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, method, path, body, &out, idem)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any, idem string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idem != "" {
		req.Header.Set("Idempotency-Key", idem)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
