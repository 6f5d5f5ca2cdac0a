// Package client is a small Go client for the issue-tracker API. It keeps
// the session cookies in a jar and normalizes every failed response into an
// *APIError carrying the server's error message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Priority    *int      `json:"priority,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateIssueInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    *int   `json:"priority,omitempty"`
}

type UpdateIssueInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error) {
	var out struct {
		Issue Issue `json:"issue"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/issues", input, &out); err != nil {
		return nil, err
	}
	return &out.Issue, nil
}

// ListIssues returns the caller's issues, optionally filtered by type.
func (c *Client) ListIssues(ctx context.Context, issueType string) ([]Issue, error) {
	path := "/api/issues"
	if issueType != "" {
		path += "?type=" + url.QueryEscape(issueType)
	}

	var out struct {
		Issues []Issue `json:"issues"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Issues, nil
}

func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	var out struct {
		Issue Issue `json:"issue"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/issues/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Issue, nil
}

func (c *Client) UpdateIssue(ctx context.Context, id string, input UpdateIssueInput) error {
	return c.do(ctx, http.MethodPut, "/api/issues/"+url.PathEscape(id), input, nil)
}

func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/issues/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		message := "Something went wrong"
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			message = payload.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	// Tolerate empty or non-JSON success bodies.
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
