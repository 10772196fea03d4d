package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
	"github.com/computerscienceiscool/llm-browser/pkg/scenario"
)

// Human renders framed plain text
type Human struct{}

// Response writes the frame for one command result
func (Human) Response(w io.Writer, cmd protocol.Command, resp protocol.Response) error {
	ew := &errWriter{w: w}
	tag := commandTag(cmd)

	ew.printf("=== COMMAND: %s ===\n", tag)
	if !resp.Success() {
		ew.printf("=== ERROR: %s ===\n", ErrorKind(resp.Err()))
		ew.printf("Message: %s\n", resp.Err())
		ew.printf("Command: %s\n", tag)
		ew.print("=== END ERROR ===\n")
		ew.print("=== END COMMAND ===\n")
		return ew.err
	}

	action := strings.ToUpper(string(cmd.Action()))
	if data, ok := resp.Data(); ok {
		ew.printf("=== DATA: %s ===\n", cmd.Selector())
		ew.print(data)
		if !strings.HasSuffix(data, "\n") {
			ew.print("\n")
		}
		ew.print("=== END DATA ===\n")
	} else {
		ew.printf("=== %s SUCCESSFUL: %s ===\n", action, cmd.Selector())
		if value, ok := cmd.Value(); ok {
			ew.printf("Characters written: %d\n", len([]rune(value)))
		}
		ew.printf("=== END %s ===\n", action)
	}
	ew.print("=== END COMMAND ===\n")
	return ew.err
}

// Health writes the probe outcome
func (Human) Health(w io.Writer, bridgeURL string, h protocol.HealthStatus) error {
	v := viewHealth(bridgeURL, h)
	ew := &errWriter{w: w}

	ew.printf("Bridge: %s\n", v.Bridge)
	ew.printf("Status: %s\n", v.Status)
	ew.printf("Extension connected: %s\n", yesNo(v.ExtensionConnected))
	if v.Error != "" {
		ew.printf("Error: %s\n", v.Error)
	}
	return ew.err
}

// Report writes the results table, failure details and verdict
func (Human) Report(w io.Writer, r *scenario.Report) error {
	ew := &errWriter{w: w}

	ew.print("=== TEST RESULTS ===\n")
	for _, res := range r.Results {
		ew.printf("%-5s %s (%s)\n", res.Status, res.Name, res.Duration.Round(time.Millisecond))
	}
	ew.print("=== SUMMARY ===\n")
	ew.printf("Total Tests: %d\n", r.Total())
	ew.printf("Passed: %d\n", r.Passed())
	ew.printf("Failed: %d\n", r.Failed())
	ew.printf("Errors: %d\n", r.Errored())

	if failures := r.Failures(); len(failures) > 0 {
		ew.print("Failed/Error Details:\n")
		for _, res := range failures {
			ew.printf("  - %s: %s\n", res.Name, res.Status)
			if res.ErrorDetail != "" {
				ew.printf("    Error: %s\n", res.ErrorDetail)
			}
		}
	}

	ew.printf("Success Rate: %.1f%%\n", r.SuccessRate())
	ew.printf("Verdict: %s\n", r.Verdict())
	ew.printf("%s\n", VerdictMessage(r.Verdict()))
	ew.print("=== END TEST RESULTS ===\n")
	return ew.err
}

// commandTag echoes a command in the pipe-mode tag syntax
func commandTag(cmd protocol.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s %q", cmd.Action(), cmd.Selector())
	if cmd.URL() != "" {
		fmt.Fprintf(&b, " %q", cmd.URL())
	}
	b.WriteString(">")
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// errWriter keeps the first write error so frames can be written without
// checking every line
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) print(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
