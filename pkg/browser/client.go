package browser

import (
	"context"
	"time"

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
)

// Transport is the bridge surface the action client depends on.
// *bridge.Client satisfies it.
type Transport interface {
	ProbeHealth(ctx context.Context) protocol.HealthStatus
	Submit(ctx context.Context, cmd protocol.Command, timeout time.Duration) protocol.Response
}

// Client exposes read, write and click intents on top of the encoder and
// a Transport. Ordinary failures (bad selector, missing element, bridge
// offline) are reported through Response.Success, never as errors.
//
// Commands are not idempotent: a click may change the page, so callers
// must not assume a repeated call yields the same response.
type Client struct {
	transport   Transport
	timeout     time.Duration
	commandsRun int
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-command timeout passed to the transport
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates an action client over transport
func New(transport Transport, opts ...Option) *Client {
	c := &Client{transport: transport}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the text content of the element matched by selector.
// Data is only meaningful when the response succeeded.
func (c *Client) Read(ctx context.Context, selector, url string) protocol.Response {
	return c.mustDo(ctx, protocol.ActionRead, selector, "", url)
}

// Write types value into the element matched by selector
func (c *Client) Write(ctx context.Context, selector, value, url string) protocol.Response {
	return c.mustDo(ctx, protocol.ActionWrite, selector, value, url)
}

// Click clicks the element matched by selector
func (c *Client) Click(ctx context.Context, selector, url string) protocol.Response {
	return c.mustDo(ctx, protocol.ActionClick, selector, "", url)
}

// Do dispatches a command by action kind. The only error is the encoder's
// ValidationError for an unknown action.
func (c *Client) Do(ctx context.Context, action protocol.Action, selector, value, url string) (protocol.Response, error) {
	cmd, err := protocol.Encode(action, selector, value, url)
	if err != nil {
		return protocol.Response{}, err
	}

	resp := c.transport.Submit(ctx, cmd, c.timeout)
	if resp.Success() {
		c.commandsRun++
	}
	return resp, nil
}

// Health probes the bridge through the transport
func (c *Client) Health(ctx context.Context) protocol.HealthStatus {
	return c.transport.ProbeHealth(ctx)
}

// CommandsRun returns the number of commands the bridge satisfied
func (c *Client) CommandsRun() int {
	return c.commandsRun
}

// mustDo is used by the intent methods, whose action kinds are constants.
// An encoder error here is a programming error.
func (c *Client) mustDo(ctx context.Context, action protocol.Action, selector, value, url string) protocol.Response {
	resp, err := c.Do(ctx, action, selector, value, url)
	if err != nil {
		panic(err)
	}
	return resp
}
