package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
)

// Browser is the action surface checks drive. *browser.Client satisfies it.
type Browser interface {
	Read(ctx context.Context, selector, url string) protocol.Response
	Write(ctx context.Context, selector, value, url string) protocol.Response
	Click(ctx context.Context, selector, url string) protocol.Response
	Do(ctx context.Context, action protocol.Action, selector, value, url string) (protocol.Response, error)
	Health(ctx context.Context) protocol.HealthStatus
}

// Expectation values for Step.Expect
const (
	ExpectSuccess = "success"
	ExpectFailure = "failure"
)

// Step is one action within a sequence
type Step struct {
	Action   string  `yaml:"action"`
	Selector string  `yaml:"selector"`
	Value    string  `yaml:"value,omitempty"`
	URL      string  `yaml:"url,omitempty"`
	Expect   string  `yaml:"expect,omitempty"`
	Equals   *string `yaml:"equals,omitempty"`
	Contains string  `yaml:"contains,omitempty"`
	Delay    string  `yaml:"delay,omitempty"`
}

func (s Step) expectsFailure() bool {
	return strings.EqualFold(s.Expect, ExpectFailure)
}

// newPacer returns a limiter that spaces consecutive steps by interval.
// A non-positive interval disables pacing.
func newPacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// sequence runs steps in order against a browser
type sequence struct {
	browser Browser
	pacer   *rate.Limiter
	out     io.Writer
}

// run executes steps and stops at the first unmet expectation. An unknown
// action or a cancelled context is returned as an error.
func (s *sequence) run(ctx context.Context, defaultURL string, steps []Step) (bool, error) {
	for i, step := range steps {
		if err := s.pacer.Wait(ctx); err != nil {
			return false, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Delay != "" {
			d, err := time.ParseDuration(step.Delay)
			if err != nil {
				return false, fmt.Errorf("step %d: invalid delay %q: %w", i+1, step.Delay, err)
			}
			if err := sleep(ctx, d); err != nil {
				return false, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		action, err := protocol.ParseAction(step.Action)
		if err != nil {
			return false, fmt.Errorf("step %d: %w", i+1, err)
		}

		url := step.URL
		if url == "" {
			url = defaultURL
		}

		resp, err := s.browser.Do(ctx, action, step.Selector, step.Value, url)
		if err != nil {
			return false, fmt.Errorf("step %d: %w", i+1, err)
		}

		if msg := unmet(step, resp); msg != "" {
			fmt.Fprintf(s.out, "  Failed at step: %s %s (%s)\n", action, step.Selector, msg)
			return false, nil
		}
	}
	return true, nil
}

// unmet describes why resp does not satisfy step, or returns ""
func unmet(step Step, resp protocol.Response) string {
	if step.expectsFailure() {
		if resp.Success() {
			return "expected failure but got success"
		}
		return ""
	}

	if !resp.Success() {
		return resp.Err()
	}

	if step.Equals == nil && step.Contains == "" {
		return ""
	}
	data, ok := resp.Data()
	if !ok {
		return "no data returned"
	}
	if step.Equals != nil && data != *step.Equals {
		return fmt.Sprintf("got %q, want %q", data, *step.Equals)
	}
	if step.Contains != "" && !strings.Contains(data, step.Contains) {
		return fmt.Sprintf("got %q, want it to contain %q", data, step.Contains)
	}
	return ""
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
