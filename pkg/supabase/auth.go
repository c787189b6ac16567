package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrInvalidCredentials is returned when the auth service rejects a
// password sign-in.
var ErrInvalidCredentials = errors.New("supabase: invalid credentials")

// ErrInvalidToken is returned when the auth service rejects an access token.
var ErrInvalidToken = errors.New("supabase: invalid or expired token")

// User is the principal the auth service resolves for a live token.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"user_metadata"`
}

// Session is an authenticated session returned by a password sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// SignInWithPassword exchanges email/password for a session with the auth
// service. A rejection of any kind maps to ErrInvalidCredentials.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	status, body, err := c.authDo(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, ErrInvalidCredentials
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("supabase: decode session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}
	return &session, nil
}

// SignUp registers a new admin account with the auth service. The provider
// may require email confirmation before the account becomes usable.
func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	status, body, err := c.authDo(ctx, http.MethodPost, "/auth/v1/signup", "", map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name, "role": "admin"},
	})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("supabase: signup rejected: %s", errorMessage(body))
	}
	return nil
}

// Recover asks the auth service to send a password-reset email.
func (c *Client) Recover(ctx context.Context, email string) error {
	status, body, err := c.authDo(ctx, http.MethodPost, "/auth/v1/recover", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("supabase: recover rejected: %s", errorMessage(body))
	}
	return nil
}

// GetUser resolves the principal for an access token. Any rejection maps to
// ErrInvalidToken; no further detail is surfaced.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	status, body, err := c.authDo(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if status < 200 || status >= 300 {
		return nil, ErrInvalidToken
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, ErrInvalidToken
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// authDo performs one call against the auth endpoints. bearer overrides the
// API key in the Authorization header when set (token verification).
func (c *Client) authDo(ctx context.Context, method, path, bearer string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("supabase: encode auth request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("supabase: build auth request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("supabase: auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("supabase: read auth response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// errorMessage extracts a human-readable message from an auth error body.
func errorMessage(body []byte) string {
	var parsed struct {
		Msg         string `json:"msg"`
		Message     string `json:"message"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, m := range []string{parsed.Msg, parsed.Message, parsed.Description} {
			if m != "" {
				return m
			}
		}
	}
	return "request rejected"
}
