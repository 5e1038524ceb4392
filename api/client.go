// Package api is the typed client for the camp REST API. The server is an
// external collaborator: only its request/response shapes matter here.
//
// Every outbound request attaches the bearer credential available at send
// time. Every response is checked for 401: outside the login endpoint that
// means session expiry — the bound credentials are invalidated and
// errs.ErrSessionExpired is returned for the routing layer to resolve as a
// redirect. A 401 from the login endpoint itself is a failed login attempt
// (errs.ErrInvalidCredentials) with no session side effects, which prevents
// a redirect loop. All other error statuses propagate unmodified as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	errs "github.com/medcamp/portal/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Credentials supplies the bearer token for outbound requests and absorbs
// server-reported session expiry. Implemented by session.Store.
type Credentials interface {
	Token() string
	Logout()
}

type ctxKey string

const ctxKeyCredentials ctxKey = "api_credentials"

// WithCredentials binds a request context to the client's session credentials
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, ctxKeyCredentials, creds)
}

func credentialsFromContext(ctx context.Context) Credentials {
	creds, _ := ctx.Value(ctxKeyCredentials).(Credentials)
	return creds
}

// Error is a non-401 API failure, propagated to the caller unmodified so
// each view can render its own message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to the camp REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[api do] failed to encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[api do] failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	creds := credentialsFromContext(ctx)
	if creds != nil {
		if token := creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[api do] %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if path == EndpointLogin {
			return errs.ErrInvalidCredentials
		}
		// Server-reported session expiry: clear the session; the routing
		// layer turns the sentinel into a redirect to the right login page.
		if creds != nil {
			creds.Logout()
		}
		log.Info().Str("path", path).Msg("API returned 401, session invalidated")
		return errs.ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "[api do] %s %s: failed to decode response", method, path)
		}
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
