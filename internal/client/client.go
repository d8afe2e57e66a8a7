// Package client is a small API client for the auth endpoints. It keeps the
// current identity in memory as a convenience for front-end callers; the
// cache is not authoritative, the cookie-held token is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"ROBOTICS-BOOK_BACK-END/internal/dto"
)

// Client talks to the auth API and caches the signed-in user
type Client struct {
	baseURL string
	http    *http.Client

	mu   sync.Mutex
	user *dto.UserResponse
}

// New creates a Client for the given base URL. The underlying HTTP client
// carries a cookie jar so the auth cookie flows back on later calls.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

// Load refreshes the cached identity from GET /api/auth/me. Any failure,
// including transport errors, leaves the cache empty and the client is
// treated as signed out.
func (c *Client) Load(ctx context.Context) {
	var resp dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		c.setUser(nil)
		return
	}
	c.setUser(&resp.User)
}

// Signup creates an account and caches the returned identity
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	c.setUser(&resp.User)
	return &resp, nil
}

// Signin authenticates and caches the returned identity
func (c *Client) Signin(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.SigninRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	c.setUser(&resp.User)
	return &resp, nil
}

// Signout clears the cached identity unconditionally, whether or not the
// server call succeeds
func (c *Client) Signout(ctx context.Context) error {
	var resp dto.SignoutResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", struct{}{}, &resp)
	c.setUser(nil)
	return err
}

// UpdateProfile applies a partial profile update and caches the result
func (c *Client) UpdateProfile(ctx context.Context, req dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	var resp dto.MeResponse
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", req, &resp); err != nil {
		return nil, err
	}
	c.setUser(&resp.User)
	return &resp.User, nil
}

// CurrentUser returns the cached identity, if any
func (c *Client) CurrentUser() (*dto.UserResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, false
	}
	user := *c.user
	return &user, true
}

func (c *Client) setUser(user *dto.UserResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
