package scenario

import (
	"context"
	"fmt"
	"time"
)

// CheckFunc is one named assertion. Returning true passes the check and
// false fails it; a returned error or a panic records an ERROR.
type CheckFunc func(ctx context.Context) (bool, error)

// Check is a registered, named CheckFunc
type Check struct {
	Name string
	Fn   CheckFunc
}

// Observer is told about every state transition of every check. result is
// nil until the check reaches a terminal status.
type Observer func(name string, status Status, result *TestResult)

// Runner executes checks strictly in registration order. It never
// reorders, retries or parallelizes, and a failing check does not stop
// the ones after it. Browser page state is shared between checks, so a
// later check may rely on what an earlier one typed or clicked.
type Runner struct {
	checks   []Check
	observer Observer
	now      func() time.Time
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithObserver reports state transitions to fn
func WithObserver(fn Observer) RunnerOption {
	return func(r *Runner) {
		r.observer = fn
	}
}

// NewRunner creates an empty runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a check to the run order
func (r *Runner) Register(name string, fn CheckFunc) {
	r.checks = append(r.checks, Check{Name: name, Fn: fn})
}

// Checks returns the registered check names in run order
func (r *Runner) Checks() []string {
	names := make([]string, len(r.checks))
	for i, c := range r.checks {
		names[i] = c.Name
	}
	return names
}

// Run executes every registered check and aggregates the outcomes. Once
// ctx is done, checks that have not started are recorded as ERROR.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{StartedAt: r.now()}

	for _, c := range r.checks {
		r.notify(c.Name, StatusPending, nil)

		var result TestResult
		if err := ctx.Err(); err != nil {
			result = errored(c.Name, fmt.Sprintf("run cancelled: %v", err), 0)
		} else {
			r.notify(c.Name, StatusRunning, nil)
			result = r.runCheck(ctx, c)
		}

		report.Results = append(report.Results, result)
		r.notify(c.Name, result.Status, &result)
	}

	report.Duration = r.now().Sub(report.StartedAt)
	return report
}

// runCheck classifies one check, converting panics into ERROR
func (r *Runner) runCheck(ctx context.Context, c Check) (result TestResult) {
	start := r.now()

	defer func() {
		if p := recover(); p != nil {
			result = errored(c.Name, fmt.Sprintf("panic: %v", p), r.now().Sub(start))
		}
	}()

	if c.Fn == nil {
		return errored(c.Name, "check has no function", 0)
	}

	ok, err := c.Fn(ctx)
	elapsed := r.now().Sub(start)

	switch {
	case err != nil:
		return errored(c.Name, err.Error(), elapsed)
	case ok:
		return passed(c.Name, elapsed)
	default:
		return failed(c.Name, elapsed)
	}
}

func (r *Runner) notify(name string, status Status, result *TestResult) {
	if r.observer != nil {
		r.observer(name, status, result)
	}
}
