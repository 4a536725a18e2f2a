// Package remote talks to the EvolveApp HTTP API that owns all business data.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"evolveapp-desktop/internal/appinfo"
	"evolveapp-desktop/internal/domain"
)

const (
	healthPath      = "/api/health"
	diagnosticsPath = "/api/v1/app-diagnostics"

	defaultTimeout = 10 * time.Second
)

// Client is a small HTTP client for the remote API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client for cfg.
func NewClient(cfg domain.APIConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth reports whether the API answers GET /api/health with 2xx.
// An unreachable or unhealthy API is reported as false with a nil error;
// only a malformed base URL is an error.
func (c *Client) CheckHealth(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return false, err
	}

	c.logger.Debug("checking API connection", "base_url", c.baseURL)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("API health check failed", "base_url", c.baseURL, "error", err)
		return false, nil
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("API health check returned non-success status", "status", resp.Status)
		return false, nil
	}
	return true, nil
}

// UploadDiagnostics posts report to the diagnostics endpoint.
func (c *Client) UploadDiagnostics(ctx context.Context, report domain.DiagnosticReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, diagnosticsPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("sending diagnostics", "endpoint", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send diagnostics: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send diagnostics: unexpected status %s", resp.Status)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API base URL %q: %w", c.baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse API base URL %q: missing scheme or host", c.baseURL)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", appinfo.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
