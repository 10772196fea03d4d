package config

import (
	"github.com/spf13/viper"
)

// SetViperDefaults sets all default configuration values in Viper
func SetViperDefaults() {
	// Bridge defaults
	viper.SetDefault("bridge.url", DefaultBridgeURL)
	viper.SetDefault("bridge.port", DefaultBridgePort)
	viper.SetDefault("bridge.command_timeout", DefaultCommandTimeout.String())
	viper.SetDefault("bridge.health_timeout", DefaultHealthTimeout.String())

	// Scenario defaults
	viper.SetDefault("scenario.step_delay", DefaultStepDelay.String())
	viper.SetDefault("scenario.file", "")

	// Security defaults
	viper.SetDefault("security.log_all_operations", true)
	viper.SetDefault("security.audit_log_path", DefaultAuditLogPath)

	// I/O defaults; kept apart from output.* so the --output file flag
	// cannot shadow output.format
	viper.SetDefault("io.input", "")
	viper.SetDefault("io.output", "")
	viper.SetDefault("io.interactive", false)

	// Output defaults
	viper.SetDefault("output.format", FormatHuman)

	// Logging defaults
	viper.SetDefault("logging.level", DefaultLogLevel)
	viper.SetDefault("logging.format", DefaultLogFormat)

	viper.SetDefault("debug", false)
}
