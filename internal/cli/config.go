package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/llm-browser/pkg/app"
	"github.com/computerscienceiscool/llm-browser/pkg/config"
)

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; using defaults and flags
	}
}

// buildConfig constructs a config.Config from Viper values
func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		BridgeURL:        strings.TrimSpace(viper.GetString("bridge.url")),
		ScenarioFile:     viper.GetString("scenario.file"),
		Interactive:      viper.GetBool("io.interactive"),
		InputFile:        viper.GetString("io.input"),
		OutputFile:       viper.GetString("io.output"),
		OutputFormat:     strings.ToLower(viper.GetString("output.format")),
		AuditLogPath:     viper.GetString("security.audit_log_path"),
		LogAllOperations: viper.GetBool("security.log_all_operations"),
		LogLevel:         viper.GetString("logging.level"),
		LogFormat:        viper.GetString("logging.format"),
		Debug:            viper.GetBool("debug"),
	}

	// An explicit URL wins; otherwise the port picks the local bridge
	if cfg.BridgeURL == "" || cfg.BridgeURL == config.DefaultBridgeURL {
		port := viper.GetInt("bridge.port")
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid bridge port: %q", viper.GetString("bridge.port"))
		}
		cfg.BridgeURL = config.BridgeURLForPort(port)
	}

	// Parse durations
	var err error
	if cfg.CommandTimeout, err = parseDuration("bridge.command_timeout"); err != nil {
		return nil, err
	}
	if cfg.HealthTimeout, err = parseDuration("bridge.health_timeout"); err != nil {
		return nil, err
	}
	if cfg.StepDelay, err = parseDuration("scenario.step_delay"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// newLogger builds the diagnostic logger from the logging settings
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid logging.level: %w", err)
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid logging.format %q (want text or json)", cfg.LogFormat)
}

// bootstrapApp wires the app to the command's streams and a logger
func bootstrapApp(cfg *config.Config, cmd *cobra.Command) (*app.App, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, err
	}
	return app.Bootstrap(cfg,
		app.WithLogger(logger),
		app.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)
}
