package scenario

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Selectors used by the built-in checks
const (
	InvalidSelector     = "invalid>>selector"
	MissingSelector     = "#this-element-does-not-exist-12345"
	TestInputSelector   = "#test-input"
	TestButtonSelector  = "#test-button"
	TestOutputSelector  = "#test-output"
	RoundTripValue      = "Hello World"
	DefaultStepInterval = 500 * time.Millisecond
)

// commonFormSelectors are probed by the form interaction check
var commonFormSelectors = []string{
	"input[type='text']",
	"input[type='email']",
	"textarea",
	"select",
	"button[type='submit']",
}

// Suite holds the built-in checks that exercise a bridge end to end
type Suite struct {
	browser    Browser
	prompter   Prompter
	out        io.Writer
	steps      *sequence
	pageLoaded bool
}

// SuiteOption configures a Suite
type SuiteOption func(*suiteConfig)

type suiteConfig struct {
	prompter     Prompter
	out          io.Writer
	stepInterval time.Duration
}

// WithPrompter sets how operator instructions are delivered
func WithPrompter(p Prompter) SuiteOption {
	return func(c *suiteConfig) {
		c.prompter = p
	}
}

// WithOutput sets where per-step details are written
func WithOutput(w io.Writer) SuiteOption {
	return func(c *suiteConfig) {
		c.out = w
	}
}

// WithStepInterval sets the minimum spacing between sequence steps
func WithStepInterval(d time.Duration) SuiteOption {
	return func(c *suiteConfig) {
		c.stepInterval = d
	}
}

// NewSuite creates the built-in suite over b
func NewSuite(b Browser, opts ...SuiteOption) *Suite {
	cfg := suiteConfig{
		out:          io.Discard,
		stepInterval: DefaultStepInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prompter == nil {
		cfg.prompter = NewNoticePrompter(cfg.out)
	}

	return &Suite{
		browser:  b,
		prompter: cfg.prompter,
		out:      cfg.out,
		steps: &sequence{
			browser: b,
			pacer:   newPacer(cfg.stepInterval),
			out:     cfg.out,
		},
	}
}

// Register adds the built-in checks to r: connectivity first, then error
// handling, then the checks that need a page with the test form.
func (s *Suite) Register(r *Runner) {
	r.Register("Bridge Server Health Check", s.HealthCheck)
	r.Register("Extension Connection", s.ExtensionConnection)

	r.Register("Invalid Selector Handling", s.InvalidSelector)
	r.Register("Non-existent Element Handling", s.NonexistentElement)
	r.Register("Error Handling", s.ErrorHandling)

	r.Register("Form Interaction", s.FormInteraction)
	r.Register("Write/Read Round Trip", s.RoundTrip)
	r.Register("Multiple Actions Sequence", s.MultipleActionsSequence)
}

// RegisterScenarios adds one check per file scenario, after the built-ins
func (s *Suite) RegisterScenarios(r *Runner, scenarios []Scenario) {
	for _, sc := range scenarios {
		sc := sc
		r.Register(sc.Name, func(ctx context.Context) (bool, error) {
			return s.steps.run(ctx, sc.URL, sc.Steps)
		})
	}
}

// HealthCheck passes when the bridge reports status ok
func (s *Suite) HealthCheck(ctx context.Context) (bool, error) {
	return s.browser.Health(ctx).OK(), nil
}

// ExtensionConnection passes when the bridge has a live extension channel
func (s *Suite) ExtensionConnection(ctx context.Context) (bool, error) {
	return s.browser.Health(ctx).ExtensionConnected(), nil
}

// InvalidSelector passes when a malformed selector is rejected
func (s *Suite) InvalidSelector(ctx context.Context) (bool, error) {
	return !s.browser.Read(ctx, InvalidSelector, "").Success(), nil
}

// NonexistentElement passes when reading a missing element fails
func (s *Suite) NonexistentElement(ctx context.Context) (bool, error) {
	return !s.browser.Read(ctx, MissingSelector, "").Success(), nil
}

// ErrorHandling passes when every malformed or unsatisfiable command is
// reported as a failure.
func (s *Suite) ErrorHandling(ctx context.Context) (bool, error) {
	cases := []Step{
		{Action: "read", Selector: ""},
		{Action: "read", Selector: "#nonexistent"},
		{Action: "write", Selector: "#nonexistent", Value: "test"},
		{Action: "click", Selector: "#nonexistent"},
	}

	allHandled := true
	for _, c := range cases {
		var succeeded bool
		switch c.Action {
		case "read":
			succeeded = s.browser.Read(ctx, c.Selector, "").Success()
		case "write":
			succeeded = s.browser.Write(ctx, c.Selector, c.Value, "").Success()
		case "click":
			succeeded = s.browser.Click(ctx, c.Selector, "").Success()
		}

		if succeeded {
			fmt.Fprintf(s.out, "  Expected failure but got success for: %s %q\n", c.Action, c.Selector)
			allHandled = false
		} else {
			fmt.Fprintf(s.out, "  Correctly handled error: %s %q\n", c.Action, c.Selector)
		}
	}
	return allHandled, nil
}

// FormInteraction passes when at least one common form control is readable
func (s *Suite) FormInteraction(ctx context.Context) (bool, error) {
	fmt.Fprintln(s.out, "  Navigate to a page with a form for this test, or use the test page")

	found := 0
	for _, sel := range commonFormSelectors {
		if s.browser.Read(ctx, sel, "").Success() {
			found++
			fmt.Fprintf(s.out, "  Found element: %s\n", sel)
		}
	}
	return found > 0, nil
}

// loadTestPage asks the operator to open the test page. It prompts once per
// suite; later page checks reuse the loaded page.
func (s *Suite) loadTestPage(ctx context.Context) error {
	if s.pageLoaded {
		return nil
	}
	fmt.Fprintf(s.out, "  Open this page in your browser: %s\n", TestPageURL())
	if err := s.prompter.Prompt(ctx, "Press Enter when the test page is loaded..."); err != nil {
		return fmt.Errorf("waiting for test page: %w", err)
	}
	s.pageLoaded = true
	return nil
}

// RoundTrip writes a value into the test input and reads it back
func (s *Suite) RoundTrip(ctx context.Context) (bool, error) {
	if err := s.loadTestPage(ctx); err != nil {
		return false, err
	}

	want := RoundTripValue
	return s.steps.run(ctx, "", []Step{
		{Action: "write", Selector: TestInputSelector, Value: RoundTripValue},
		{Action: "read", Selector: TestInputSelector, Equals: &want},
	})
}

// MultipleActionsSequence drives the test page: type, read back, press the
// button and read the output area.
func (s *Suite) MultipleActionsSequence(ctx context.Context) (bool, error) {
	if err := s.loadTestPage(ctx); err != nil {
		return false, err
	}

	return s.steps.run(ctx, "", []Step{
		{Action: "write", Selector: TestInputSelector, Value: RoundTripValue},
		{Action: "read", Selector: TestInputSelector},
		{Action: "click", Selector: TestButtonSelector},
		{Action: "read", Selector: TestOutputSelector},
	})
}
