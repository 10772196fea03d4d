// Package bridge talks to the browser bridge over its HTTP surface.
// Every expected failure becomes data: ProbeHealth and Submit never
// return an error.
package bridge

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

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
)

const (
	// DefaultCommandTimeout bounds POST /execute when the caller passes none
	DefaultCommandTimeout = 30 * time.Second
	// DefaultHealthTimeout bounds GET /health
	DefaultHealthTimeout = 5 * time.Second

	healthPath  = "/health"
	executePath = "/execute"

	// maxBodySize caps how much of a bridge response is read
	maxBodySize = 10 * 1024 * 1024
)

// Doer is the part of *http.Client the transport needs
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuditFunc records one submitted command
type AuditFunc func(action, selector string, success bool, errMsg string)

// Client sends health probes and commands to one bridge instance.
// It is meant for a single sequential caller.
type Client struct {
	baseURL       string
	httpClient    Doer
	healthTimeout time.Duration
	auditLog      AuditFunc
	logger        *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient injects the session used for every request
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.httpClient = d
		}
	}
}

// WithHealthTimeout overrides DefaultHealthTimeout
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.healthTimeout = d
		}
	}
}

// WithAuditLog records every submitted command
func WithAuditLog(fn AuditFunc) Option {
	return func(c *Client) {
		c.auditLog = fn
	}
}

// WithLogger sets the structured logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a transport for the bridge at baseURL
// (e.g. http://localhost:6789).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{},
		healthTimeout: DefaultHealthTimeout,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the bridge endpoint this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProbeHealth issues GET /health. Transport failures, non-2xx statuses and
// malformed bodies all come back as an error HealthStatus.
func (c *Client) ProbeHealth(ctx context.Context) protocol.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return protocol.Unhealthy(fmt.Sprintf("build health request: %v", err))
	}

	body, err := c.do(req)
	if err != nil {
		c.logger.Debug("health probe failed", "url", c.baseURL, "error", err)
		return protocol.Unhealthy(describe(err))
	}

	var status protocol.HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return protocol.Unhealthy(fmt.Sprintf("malformed response body: %v", err))
	}

	c.logger.Debug("health probe", "status", status.Status(), "extension_connected", status.ExtensionConnected())
	return status
}

// Submit sends cmd to POST /execute and waits up to timeout (the 30s
// default when timeout <= 0). The bridge's response is returned as is;
// transport failures are synthesized into a failed Response.
func (c *Client) Submit(ctx context.Context, cmd protocol.Command, timeout time.Duration) protocol.Response {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	resp := c.submit(ctx, cmd, timeout)

	c.logger.Debug("command submitted",
		"action", cmd.Action(),
		"selector", cmd.Selector(),
		"success", resp.Success(),
		"error", resp.Err())
	if c.auditLog != nil {
		c.auditLog(string(cmd.Action()), cmd.Selector(), resp.Success(), resp.Err())
	}
	return resp
}

func (c *Client) submit(ctx context.Context, cmd protocol.Command, timeout time.Duration) protocol.Response {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return protocol.Failed(fmt.Sprintf("encode command: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+executePath, bytes.NewReader(payload))
	if err != nil {
		return protocol.Failed(fmt.Sprintf("build execute request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return protocol.Failed(describe(err))
	}

	var resp protocol.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return protocol.Failed(fmt.Sprintf("malformed response body: %v", err))
	}
	return resp
}

// do performs req and returns the body of a 2xx response
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
