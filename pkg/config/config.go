package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete application configuration
type Config struct {
	BridgeURL      string
	CommandTimeout time.Duration
	HealthTimeout  time.Duration

	StepDelay    time.Duration
	ScenarioFile string
	Interactive  bool

	InputFile    string
	OutputFile   string
	OutputFormat string

	AuditLogPath     string
	LogAllOperations bool

	LogLevel  string
	LogFormat string
	Debug     bool
}

// Default returns a Config populated with the built-in defaults
func Default() *Config {
	return &Config{
		BridgeURL:        DefaultBridgeURL,
		CommandTimeout:   DefaultCommandTimeout,
		HealthTimeout:    DefaultHealthTimeout,
		StepDelay:        DefaultStepDelay,
		OutputFormat:     FormatHuman,
		AuditLogPath:     DefaultAuditLogPath,
		LogAllOperations: true,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// BridgeURLForPort builds the bridge base URL for a port on localhost
func BridgeURLForPort(port int) string {
	return fmt.Sprintf("http://%s:%d", DefaultBridgeHost, port)
}

// Validate checks values that cannot be expressed as defaults
func (c *Config) Validate() error {
	if c.BridgeURL == "" {
		return fmt.Errorf("%w: bridge url is empty", ErrInvalidConfig)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("%w: command timeout must be positive, got %s", ErrInvalidConfig, c.CommandTimeout)
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("%w: health timeout must be positive, got %s", ErrInvalidConfig, c.HealthTimeout)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("%w: step delay cannot be negative, got %s", ErrInvalidConfig, c.StepDelay)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("%w: output format %q (want one of %v)", ErrInvalidConfig, c.OutputFormat, OutputFormats)
	}
	return nil
}
