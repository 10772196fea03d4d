package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
	"github.com/computerscienceiscool/llm-browser/pkg/scenario"
)

// Errors that make the process exit non-zero after output was written
var (
	ErrBridgeUnhealthy = errors.New("bridge is not healthy")
	ErrCommandFailed   = errors.New("command failed")
	ErrSuiteUnhealthy  = errors.New("test suite verdict is not healthy")
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the bridge server and extension connection",
	Long:  "Probes the bridge health endpoint and reports whether the browser extension is connected.",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var readCmd = &cobra.Command{
	Use:   "read SELECTOR",
	Short: "Read the text or value of an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runAction(protocol.ActionRead),
}

var writeCmd = &cobra.Command{
	Use:   "write SELECTOR VALUE",
	Short: "Type a value into an element",
	Args:  cobra.ExactArgs(2),
	RunE:  runAction(protocol.ActionWrite),
}

var clickCmd = &cobra.Command{
	Use:   "click SELECTOR",
	Short: "Click an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runAction(protocol.ActionClick),
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the end-to-end test suite against the bridge",
	Long: `Runs the built-in checks (health, extension connection, error handling,
form interaction, round trip, multi-step sequence) followed by any scenarios
from --scenario-file. Exits non-zero unless the verdict is healthy.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func addCommands() {
	for _, c := range []*cobra.Command{readCmd, writeCmd, clickCmd} {
		c.Flags().String("url", "", "Page URL the command is scoped to")
		rootCmd.AddCommand(c)
	}
	testCmd.Flags().String("scenario-file", "", "YAML file with additional scenarios")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(testCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	app, err := bootstrapApp(cfg, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	h, err := app.CheckHealth(cmd.Context())
	if err != nil {
		return err
	}

	if !h.OK() {
		printBridgeHints(cmd.ErrOrStderr(), cfg.BridgeURL)
		return fmt.Errorf("%w: %s", ErrBridgeUnhealthy, h.Detail())
	}
	if !h.ExtensionConnected() {
		printExtensionHints(cmd.ErrOrStderr())
	}
	return nil
}

// runAction returns the RunE for a single read, write or click
func runAction(action protocol.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		url, err := cmd.Flags().GetString("url")
		if err != nil {
			return err
		}
		value := ""
		if action == protocol.ActionWrite {
			value = args[1]
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		app, err := bootstrapApp(cfg, cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		resp, err := app.Execute(cmd.Context(), action, args[0], value, url)
		if err != nil {
			return err
		}
		if !resp.Success() {
			return fmt.Errorf("%w: %s", ErrCommandFailed, resp.Err())
		}
		return nil
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	app, err := bootstrapApp(cfg, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.RunTests(cmd.Context())
	if err != nil {
		return err
	}
	if v := report.Verdict(); v != scenario.VerdictHealthy {
		return fmt.Errorf("%w: %s (%.1f%% passed)", ErrSuiteUnhealthy, v, report.SuccessRate())
	}
	return nil
}

// printBridgeHints tells the operator how to get the bridge running
func printBridgeHints(w io.Writer, bridgeURL string) {
	fmt.Fprintf(w, "\nBridge server is not reachable at %s\n", bridgeURL)
	fmt.Fprintf(w, "Please start it first, then check:\n")
	fmt.Fprintf(w, "  - the bridge listens on the configured port (BRIDGE_PORT or --port)\n")
	fmt.Fprintf(w, "  - --bridge-url points at it when it runs elsewhere\n")
	fmt.Fprintf(w, "  - nothing else is bound to that port\n")
}

// printExtensionHints explains a healthy bridge without a browser attached
func printExtensionHints(w io.Writer) {
	fmt.Fprintf(w, "\nExtension is not connected.\n")
	fmt.Fprintf(w, "Please install and enable the browser extension, then reload a page.\n")
}
