package amendo

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"amendo/internal/config"
	"amendo/internal/logging"
	"amendo/internal/services"
)

const (
	// HeaderAPIKey carries the optional API key.
	HeaderAPIKey = "X-API-KEY"

	defaultHTTPTimeout = 30 * time.Second
	maxErrorBodyBytes  = 4 << 10
	component          = "amendo"
)

// Config captures the runtime settings required to talk to the server.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
	VerifyTLS bool
}

// ConfigFrom extracts client settings from application config.
func ConfigFrom(cfg *config.Config) Config {
	if cfg == nil {
		return Config{VerifyTLS: true}
	}
	return Config{
		BaseURL:   cfg.Amendo.BaseURL,
		APIKey:    cfg.Amendo.APIKey,
		UserAgent: cfg.Amendo.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		VerifyTLS: cfg.Amendo.VerifyTLS,
	}
}

// HTTPDoer describes the HTTP client used by the Amendo client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the Amendo REST API.
type Client struct {
	cfg        Config
	httpClient HTTPDoer
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, component)
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	client := &Client{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = newHTTPClient(cfg)
	}
	return client
}

func newHTTPClient(cfg Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via amendo.verify_tls
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: transport}
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// Request issues an HTTP request with the standard headers. A non-2xx
// response is returned as *StatusError with the body already consumed. The
// caller owns the body of a successful response.
func (c *Client) Request(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error) {
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = services.WithRequestID(ctx, requestID)
	}
	logger := logging.WithContext(ctx, c.logger)

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	}

	logger.Debug("sending amendo request", logging.Args(
		logging.String("method", method),
		logging.String("url", url),
	)...)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("amendo response received", logging.Args(
		logging.String("method", method),
		logging.String("url", url),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
	)...)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return resp, nil
}

func (c *Client) endpoint(path string) string {
	return c.cfg.BaseURL + path
}
