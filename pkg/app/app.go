package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/computerscienceiscool/llm-browser/pkg/bridge"
	"github.com/computerscienceiscool/llm-browser/pkg/browser"
	"github.com/computerscienceiscool/llm-browser/pkg/config"
	"github.com/computerscienceiscool/llm-browser/pkg/output"
	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
	"github.com/computerscienceiscool/llm-browser/pkg/scanner"
	"github.com/computerscienceiscool/llm-browser/pkg/scenario"
	"github.com/computerscienceiscool/llm-browser/pkg/session"
)

// App represents the main application
type App struct {
	config     *config.Config
	session    *session.Session
	bridge     *bridge.Client
	browser    *browser.Client
	renderer   output.Renderer
	logger     *slog.Logger
	httpClient bridge.Doer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Run is pipe mode: it scans the input for command tags, sends each one to
// the bridge and writes the framed result.
func (a *App) Run(ctx context.Context) error {
	if a.config.Debug {
		a.printVerboseInfo()
	}

	// Set up input source
	input := a.stdin
	if a.config.InputFile != "" {
		file, err := os.Open(a.config.InputFile)
		if err != nil {
			return fmt.Errorf("cannot read input file: %w", err)
		}
		defer file.Close()
		input = file
	}

	// Set up output destination
	out := a.stdout
	if a.config.OutputFile != "" {
		file, err := os.Create(a.config.OutputFile)
		if err != nil {
			return fmt.Errorf("cannot write output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	return a.scanInput(ctx, input, out)
}

// scanInput handles continuous input/output using the state machine scanner
func (a *App) scanInput(ctx context.Context, input io.Reader, out io.Writer) error {
	sc := scanner.NewScanner(bufio.NewReader(input), scanner.WithMaxValueSize(config.DefaultScanBufferSize))
	framed := a.config.OutputFormat == config.FormatHuman

	if a.config.Interactive {
		fmt.Fprintln(a.stderr, "LLM Browser - Interactive Mode")
		fmt.Fprintln(a.stderr, "Waiting for input (send EOF with Ctrl+D to finish)...")
		fmt.Fprintln(a.stderr, `Supports commands: <read SELECTOR>, <click SELECTOR>, <write SELECTOR>value</write>, optional "URL" after a quoted selector`)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag := sc.Scan()
		if tag == nil {
			return nil
		}

		cmd, resp, err := a.dispatch(ctx, tag)
		if err != nil {
			return err
		}

		if framed {
			fmt.Fprint(out, "=== LLM BROWSER START ===\n")
		}
		if err := a.renderer.Response(out, cmd, resp); err != nil {
			return fmt.Errorf("cannot write result: %w", err)
		}
		if framed {
			fmt.Fprint(out, "=== LLM BROWSER COMPLETE ===\n")
			fmt.Fprintf(out, "Commands executed: %d\n", a.browser.CommandsRun())
			fmt.Fprintf(out, "Time elapsed: %.2fs\n", a.session.Elapsed().Seconds())
			fmt.Fprint(out, "=== END ===\n")
		}

		if a.config.Interactive {
			fmt.Fprintln(a.stderr, "\nWaiting for more input...")
		}
	}
}

// dispatch turns a scanned tag into a command and its response. A tag with
// a syntax error is answered locally without reaching the bridge.
func (a *App) dispatch(ctx context.Context, tag *scanner.Command) (protocol.Command, protocol.Response, error) {
	action, err := protocol.ParseAction(tag.Action)
	if err != nil {
		return protocol.Command{}, protocol.Response{}, fmt.Errorf("scanner returned %q: %w", tag.Action, err)
	}

	cmd, err := protocol.Encode(action, tag.Selector, tag.Value, tag.URL)
	if err != nil {
		return protocol.Command{}, protocol.Response{}, err
	}

	if tag.Err != nil {
		a.logger.Warn("invalid command tag", "tag", tag.Original, "error", tag.Err)
		return cmd, protocol.Failed("invalid command: " + tag.Err.Error()), nil
	}

	resp, err := a.browser.Do(ctx, action, tag.Selector, tag.Value, tag.URL)
	return cmd, resp, err
}

// Execute sends one command and renders the result
func (a *App) Execute(ctx context.Context, action protocol.Action, selector, value, url string) (protocol.Response, error) {
	cmd, err := protocol.Encode(action, selector, value, url)
	if err != nil {
		return protocol.Response{}, err
	}
	resp, err := a.browser.Do(ctx, action, selector, value, url)
	if err != nil {
		return protocol.Response{}, err
	}
	return resp, a.renderer.Response(a.stdout, cmd, resp)
}

// CheckHealth probes the bridge and renders the outcome
func (a *App) CheckHealth(ctx context.Context) (protocol.HealthStatus, error) {
	h := a.browser.Health(ctx)
	return h, a.renderer.Health(a.stdout, a.bridge.BaseURL(), h)
}

// RunTests runs the built-in suite followed by any configured scenario file
// and renders the report. Progress and check details go to stderr.
func (a *App) RunTests(ctx context.Context) (*scenario.Report, error) {
	var scenarios []scenario.Scenario
	if a.config.ScenarioFile != "" {
		var err error
		scenarios, err = scenario.LoadFile(a.config.ScenarioFile)
		if err != nil {
			return nil, err
		}
	}

	var prompter scenario.Prompter = scenario.NewNoticePrompter(a.stderr)
	if a.config.Interactive {
		prompter = scenario.NewConsolePrompter(a.stdin, a.stderr)
	}

	suite := scenario.NewSuite(a.browser,
		scenario.WithPrompter(prompter),
		scenario.WithOutput(a.stderr),
		scenario.WithStepInterval(a.config.StepDelay),
	)
	runner := scenario.NewRunner(scenario.WithObserver(a.progress))
	suite.Register(runner)
	suite.RegisterScenarios(runner, scenarios)

	fmt.Fprintln(a.stderr, "Starting Browser Tool Test Suite")
	report := runner.Run(ctx)

	a.logger.Info("test run finished",
		"total", report.Total(),
		"passed", report.Passed(),
		"success_rate", report.SuccessRate(),
		"verdict", report.Verdict(),
		"duration", report.Duration,
	)
	return report, a.renderer.Report(a.stdout, report)
}

// progress reports check transitions on stderr
func (a *App) progress(name string, status scenario.Status, result *scenario.TestResult) {
	switch status {
	case scenario.StatusRunning:
		fmt.Fprintf(a.stderr, "\nRunning test: %s\n", name)
	case scenario.StatusPass, scenario.StatusFail:
		fmt.Fprintf(a.stderr, "%s: %s (%s)\n", status, name, result.Duration.Round(time.Millisecond))
	case scenario.StatusError:
		fmt.Fprintf(a.stderr, "%s: %s - %s\n", status, name, result.ErrorDetail)
	}
}

// printVerboseInfo prints configuration details to stderr
func (a *App) printVerboseInfo() {
	fmt.Fprintf(a.stderr, "Session: %s\n", a.session.ID)
	fmt.Fprintf(a.stderr, "Bridge URL: %s\n", a.bridge.BaseURL())
	fmt.Fprintf(a.stderr, "Command timeout: %v\n", a.config.CommandTimeout)
	fmt.Fprintf(a.stderr, "Health timeout: %v\n", a.config.HealthTimeout)
	fmt.Fprintf(a.stderr, "Output format: %s\n", a.config.OutputFormat)
	if a.session.Auditing() {
		fmt.Fprintf(a.stderr, "Audit log: %s\n", a.config.AuditLogPath)
	}
}

// Close releases the session's audit log
func (a *App) Close() error {
	return a.session.Close()
}

// GetSession returns the app's session
func (a *App) GetSession() *session.Session {
	return a.session
}

// GetBrowser returns the app's browser action client
func (a *App) GetBrowser() *browser.Client {
	return a.browser
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}
