package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/computerscienceiscool/llm-browser/pkg/bridge"
	"github.com/computerscienceiscool/llm-browser/pkg/browser"
	"github.com/computerscienceiscool/llm-browser/pkg/config"
	"github.com/computerscienceiscool/llm-browser/pkg/output"
	"github.com/computerscienceiscool/llm-browser/pkg/session"
)

// Option configures Bootstrap
type Option func(*App)

// WithLogger sets the diagnostic logger
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithIO replaces stdin, stdout and stderr
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.stdin = in
		a.stdout = out
		a.stderr = errOut
	}
}

// WithHTTPClient injects the HTTP session used to reach the bridge
func WithHTTPClient(d bridge.Doer) Option {
	return func(a *App) {
		a.httpClient = d
	}
}

// Bootstrap initializes and returns a configured App
func Bootstrap(cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	renderer, err := output.New(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   cfg,
		renderer: renderer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	sess, err := session.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot start session: %w", err)
	}
	a.session = sess
	a.logger = a.logger.With("session", sess.ID)

	bridgeOpts := []bridge.Option{
		bridge.WithHealthTimeout(cfg.HealthTimeout),
		bridge.WithLogger(a.logger),
	}
	if sess.Auditing() {
		bridgeOpts = append(bridgeOpts, bridge.WithAuditLog(sess.LogAudit))
	}
	if a.httpClient != nil {
		bridgeOpts = append(bridgeOpts, bridge.WithHTTPClient(a.httpClient))
	}

	a.bridge = bridge.NewClient(cfg.BridgeURL, bridgeOpts...)
	a.browser = browser.New(a.bridge, browser.WithTimeout(cfg.CommandTimeout))

	a.logger.Debug("bootstrapped",
		"bridge", a.bridge.BaseURL(),
		"command_timeout", cfg.CommandTimeout,
		"audit", sess.Auditing(),
	)
	return a, nil
}
