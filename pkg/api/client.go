// Package api holds the wire types of the event service plus a small
// typed client for programmatic access and end to end testing.
package api

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

// Client is a typed HTTP client for the event service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token, when set, is sent as a bearer credential on every request.
	Token string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

// Register creates an account. On success the returned client copy is
// already authenticated as the new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &out)
	return out, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &out)
	return out, err
}

// Me returns the caller's own account.
func (c *Client) Me(ctx context.Context) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}

// ListUsers returns every registered account.
func (c *Client) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

// UpdateUser applies a partial profile update to the account with id.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &out)
	return out, err
}

// ListEvents returns events, optionally narrowed to a category.
func (c *Client) ListEvents(ctx context.Context, category string) ([]EventResponse, error) {
	path := "/events"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []EventResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ListPublicEvents returns events without authentication.
func (c *Client) ListPublicEvents(ctx context.Context, category string) ([]EventResponse, error) {
	path := "/public/events"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []EventResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (EventResponse, error) {
	var out EventResponse
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateEvent creates an event owned by the caller.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (EventResponse, error) {
	var out EventResponse
	err := c.do(ctx, http.MethodPost, "/events", req, &out)
	return out, err
}

// UpdateEvent replaces the mutable fields of an event.
func (c *Client) UpdateEvent(ctx context.Context, id string, req EventRequest) (EventResponse, error) {
	var out EventResponse
	err := c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), req, &out)
	return out, err
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

// ListCategories returns the category catalogue.
func (c *Client) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	var out []CategoryResponse
	err := c.do(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			envelope.Message = resp.Status
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Message,
			Errors:     envelope.Errors,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
