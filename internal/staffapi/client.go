// Package staffapi is the HTTP client for the backing staff service.
package staffapi

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

	"carehub/internal/onboarding/models"
	"carehub/pkg/requestcontext"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client calls the staff REST resource. Every method is a single request;
// retries are left to the caller.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New constructs a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse staff api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("staff api base url %q must be absolute", baseURL)
	}
	c := &Client{baseURL: u, http: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// GetStaff loads the canonical staff record.
func (c *Client) GetStaff(ctx context.Context, staffID string) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	if err := c.do(ctx, http.MethodGet, staffPath(staffID), nil, nil, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		profile.ID = staffID
	}
	return &profile, nil
}

// PatchStaff overwrites the profile's core sections.
func (c *Client) PatchStaff(ctx context.Context, staffID string, patch models.ProfilePatch) error {
	return c.do(ctx, http.MethodPatch, staffPath(staffID), nil, patch, nil)
}

// AddDocument registers one document pointer.
func (c *Client) AddDocument(ctx context.Context, staffID string, doc models.Document) (*models.Document, error) {
	var created models.Document
	if err := c.do(ctx, http.MethodPost, staffPath(staffID, "documents"), nil, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AddCredential creates one credential record.
func (c *Client) AddCredential(ctx context.Context, staffID string, cred models.Credential) (*models.Credential, error) {
	var created models.Credential
	if err := c.do(ctx, http.MethodPost, staffPath(staffID, "credentials"), nil, cred, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AddAssignment creates one assignment record.
func (c *Client) AddAssignment(ctx context.Context, staffID string, a models.Assignment) (*models.Assignment, error) {
	var created models.Assignment
	if err := c.do(ctx, http.MethodPost, staffPath(staffID, "assignments"), nil, a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ProvisionUser creates a new account and links it to the staff record.
func (c *Client) ProvisionUser(ctx context.Context, staffID string, req models.ProvisionUserRequest) (*models.LinkedUser, error) {
	var user models.LinkedUser
	if err := c.do(ctx, http.MethodPost, staffPath(staffID, "provision-user"), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkUser attaches the staff record to an existing account.
func (c *Client) LinkUser(ctx context.Context, staffID string, req models.LinkUserRequest) error {
	return c.do(ctx, http.MethodPost, staffPath(staffID, "link-user"), nil, req, nil)
}

// SearchUsers runs the account search. Results may be a bare array or an
// object holding the array under items/users/results.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.UserAccount, error) {
	var raw json.RawMessage
	q := url.Values{"q": []string{query}}
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &raw); err != nil {
		return nil, err
	}
	return decodeUserList(raw)
}

// Ping checks the staff service is reachable. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("staff api unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: extractMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapEnvelope(data), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func staffPath(staffID string, parts ...string) string {
	segs := append([]string{"staff", url.PathEscape(staffID)}, parts...)
	return "/" + strings.Join(segs, "/")
}

// unwrapEnvelope returns the value under "data" when the body is an object
// whose only meaningful member is data.
func unwrapEnvelope(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return data
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return data
	}
	inner, ok := env["data"]
	if !ok {
		return data
	}
	for k := range env {
		switch k {
		case "data", "meta", "message", "success", "status":
		default:
			return data
		}
	}
	return inner
}

func decodeUserList(raw json.RawMessage) ([]models.UserAccount, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var users []models.UserAccount
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("decode user search: %w", err)
		}
		return users, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode user search: %w", err)
	}
	for _, k := range []string{"items", "users", "results"} {
		if list, ok := wrapped[k]; ok {
			return decodeUserList(list)
		}
	}
	return nil, nil
}
