package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production badge platform API root.
const DefaultBaseURL = "https://profile.deepcytes.io/api/"

// Config holds API client configuration loaded from the environment.
type Config struct {
	BaseURL string        `env:"BADGE_API_BASE_URL" envDefault:"https://profile.deepcytes.io/api/"`
	Timeout time.Duration `env:"BADGE_API_TIMEOUT" envDefault:"15s"`
}

// Client talks to the badge platform API. Zero value is not usable; use New.
type Client struct {
	baseURL string
	// httpClient is reused across requests for connection pooling
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithBaseURL overrides the API root. A trailing slash is added if missing
// so relative endpoint paths resolve under the root.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base == "" {
			return
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		c.baseURL = base
	}
}

// WithHTTPClient replaces the underlying HTTP client, allowing custom
// transports or testing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a structured logger; requests are logged at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the badge platform API.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client from environment configuration.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{WithBaseURL(cfg.BaseURL), WithTimeout(cfg.Timeout)}
	return New(append(base, opts...)...)
}

// basicResponse is the {"message": ...} envelope most write endpoints return.
type basicResponse struct {
	Message string `json:"message"`
}

// doJSON performs one request with an optional JSON body and decodes the
// response into out (when out is non-nil). token, when non-empty, is sent as
// a bearer credential. Exactly one attempt, no retries.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %w", ErrServerError, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrServerError, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, token, out)
}

// do executes a prepared request and maps the response onto the error
// taxonomy. Shared by JSON and multipart calls.
func (c *Client) do(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(req.Context(), "request failed",
			slog.String("request_id", requestID),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err),
		)
		return classifyTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.DebugContext(req.Context(), "request completed",
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if err := classifyStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrServerError, err)
	}
	return nil
}

// classifyTransportError maps transport-level failures onto
// ErrNetworkUnavailable. Timeouts, DNS failures and refused connections all
// land here; the screens render the same connectivity message for each, so
// no finer distinction is kept.
func classifyTransportError(err error) error {
	return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
}

// classifyStatus maps non-2xx statuses onto the error taxonomy. The response
// body of a 4xx is inspected for a {"message": ...} envelope.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var body basicResponse
		// Body decode failure falls through to a generic message.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
		if body.Message == "" {
			body.Message = fmt.Sprintf("request rejected (%d)", resp.StatusCode)
		}
		return NewValidationError(body.Message)
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrServerError, resp.StatusCode)
	}
}
