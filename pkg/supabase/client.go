// Package supabase is a thin client for the Supabase PostgREST and auth
// endpoints. Filters use PostgREST operator syntax, e.g. "user_id" =>
// "eq.<uuid>" or "date" => "gte.2024-01-15".
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to one Supabase project with the service-role key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a client for the given project URL and service key.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Filters holds PostgREST query parameters: column filters plus reserved
// keys like "select", "order" and "limit".
type Filters map[string]string

func (c *Client) rest(ctx context.Context, method, table string, params Filters, payload any, prefer string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table), body)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read supabase response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase %s %s: status %d: %s", method, table, resp.StatusCode, respBody)
	}
	return respBody, nil
}

// Select queries rows from a table.
func (c *Client) Select(ctx context.Context, table string, params Filters) ([]byte, error) {
	return c.rest(ctx, http.MethodGet, table, params, nil, "")
}

// Insert appends rows and returns the created representation.
func (c *Client) Insert(ctx context.Context, table string, payload any) ([]byte, error) {
	return c.rest(ctx, http.MethodPost, table, nil, payload, "return=representation")
}

// Upsert inserts or replaces rows, detecting conflicts on the given
// comma-separated column list.
func (c *Client) Upsert(ctx context.Context, table string, payload any, onConflict string) ([]byte, error) {
	params := Filters{"on_conflict": onConflict}
	return c.rest(ctx, http.MethodPost, table, params, payload, "return=representation,resolution=merge-duplicates")
}

// UpdateWhere patches rows matching the filters.
func (c *Client) UpdateWhere(ctx context.Context, table string, params Filters, payload any) ([]byte, error) {
	return c.rest(ctx, http.MethodPatch, table, params, payload, "return=representation")
}

// DeleteWhere removes rows matching the filters.
func (c *Client) DeleteWhere(ctx context.Context, table string, params Filters) error {
	_, err := c.rest(ctx, http.MethodDelete, table, params, nil, "")
	return err
}

// User is the subset of the Supabase auth user the backend cares about.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken validates a user JWT against the Supabase auth endpoint and
// returns the user it belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read auth response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, body)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}
	return &user, nil
}
