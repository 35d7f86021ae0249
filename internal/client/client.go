// Package client talks to the edu2job server on behalf of a user and keeps
// their session the way the browser client does: the token is trusted until
// a guarded call comes back 401 or 403, at which point it is purged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/models"
)

var (
	// ErrNotLoggedIn is returned by guarded calls when no session is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrAlreadyLoggedIn is returned by login and register while a session exists.
	ErrAlreadyLoggedIn = errors.New("already logged in")

	// ErrSessionExpired is returned after the server rejected the stored token.
	// The session has been cleared by then.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is a non-2xx response that carries the server's message.
type APIError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	College  string `json:"college"`
	Gender   string `json:"gender"`
	Degree   string `json:"degree"`
}

// Client is an edu2job API client bound to a session store.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
}

// New creates a client. A nil httpClient gets a 35s timeout, a little over
// the server's own upstream timeout.
func New(baseURL string, store SessionStore, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 35 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
	}
}

// Session returns the stored session, if any.
func (c *Client) Session() (Session, bool, error) {
	return c.store.Load()
}

// Register creates an account and returns its id.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if err := c.requireLoggedOut(); err != nil {
		return "", err
	}

	var out struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	if err := c.requireLoggedOut(); err != nil {
		return Session{}, err
	}

	var out struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return Session{}, err
	}

	sess := Session{Token: out.Token, Name: out.Name}
	if err := c.store.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Logout discards the stored session. Tokens are stateless, so the server is
// not contacted.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Dashboard fetches the guarded dashboard.
func (c *Client) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var out models.Dashboard
	err := c.guarded(ctx, http.MethodGet, "/api/dashboard", nil, &out)
	return out, err
}

// Predict submits a profile to the career predictor.
func (c *Client) Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	var out models.PredictionResponse
	err := c.guarded(ctx, http.MethodPost, "/predict", req, &out)
	return out, err
}

func (c *Client) requireLoggedOut() error {
	_, ok, err := c.store.Load()
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyLoggedIn
	}
	return nil
}

func (c *Client) guarded(ctx context.Context, method, path string, in, out any) error {
	sess, ok, err := c.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotLoggedIn
	}

	err = c.do(ctx, method, path, sess.Token, in, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		log.Debug().Int("status", apiErr.StatusCode).Str("path", path).Msg("Server rejected session, clearing it")
		if clearErr := c.store.Clear(); clearErr != nil {
			return clearErr
		}
		return ErrSessionExpired
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		}
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
			apiErr.Details = msg.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
