package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/llm-browser/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "llm-browser",
	Short: "Drive DOM actions in a browser through the extension bridge",
	Long: `llm-browser lets a program or an LLM read, write and click page elements
in a user's browser. Commands go to a local bridge server which relays them to
the browser extension.

With no subcommand it runs in pipe mode: command tags such as <read SELECTOR>,
<click SELECTOR> and <write SELECTOR>value</write> are read from stdin and
each result is written to stdout.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// flagKeys maps persistent flags to their configuration keys
var flagKeys = map[string]string{
	"bridge-url":     "bridge.url",
	"port":           "bridge.port",
	"timeout":        "bridge.command_timeout",
	"health-timeout": "bridge.health_timeout",
	"step-delay":     "scenario.step_delay",
	"audit-log":      "security.audit_log_path",
	"audit":          "security.log_all_operations",
	"format":         "output.format",
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"debug":          "debug",
	"input":          "io.input",
	"output":         "io.output",
	"interactive":    "io.interactive",
}

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./llm-browser.config.yaml or $HOME/llm-browser.config.yaml)")

	// Bridge flags
	rootCmd.PersistentFlags().String("bridge-url", config.DefaultBridgeURL, "Bridge server base URL")
	rootCmd.PersistentFlags().Int("port", config.DefaultBridgePort, "Bridge server port on localhost (used when --bridge-url is not set)")
	rootCmd.PersistentFlags().String("timeout", config.DefaultCommandTimeout.String(), "Timeout for one browser command")
	rootCmd.PersistentFlags().String("health-timeout", config.DefaultHealthTimeout.String(), "Timeout for a bridge health probe")

	// I/O flags
	rootCmd.PersistentFlags().String("input", "", "Input file (default: stdin)")
	rootCmd.PersistentFlags().String("output", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().Bool("interactive", false, "Run in interactive mode")
	rootCmd.PersistentFlags().String("format", config.FormatHuman, "Output format: human, json or yaml")

	// Scenario flags
	rootCmd.PersistentFlags().String("step-delay", config.DefaultStepDelay.String(), "Minimum delay between steps of a sequence")

	// Audit and logging flags
	rootCmd.PersistentFlags().String("audit-log", config.DefaultAuditLogPath, "Audit log path")
	rootCmd.PersistentFlags().Bool("audit", true, "Write every submitted command to the audit log")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output (forces debug log level)")

	addCommands()
	configureViper()
}

// configureViper sets defaults, config file lookup, environment binding and
// flag binding on the global viper instance
func configureViper() {
	// Set all default values in Viper
	config.SetViperDefaults()

	// Set default config file name
	viper.SetConfigName("llm-browser.config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Enable environment variables with LLM_BROWSER prefix
	viper.SetEnvPrefix("LLM_BROWSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Unprefixed names used by the bridge and extension tooling
	viper.BindEnv("bridge.port", "LLM_BROWSER_BRIDGE_PORT", "BRIDGE_PORT")
	viper.BindEnv("logging.level", "LLM_BROWSER_LOGGING_LEVEL", "LOG_LEVEL")
	viper.BindEnv("debug", "LLM_BROWSER_DEBUG", "DEBUG")

	// Bind flags to viper
	for name, key := range flagKeys {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
	viper.BindPFlag("scenario.file", testCmd.Flags().Lookup("scenario-file"))
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Build config from viper
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	// Bootstrap and run application
	app, err := bootstrapApp(cfg, cmd)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer app.Close()

	return app.Run(cmd.Context())
}

// Execute runs the root command. Cancelling ctx stops pipe mode between
// commands and marks unfinished test checks as errors.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
