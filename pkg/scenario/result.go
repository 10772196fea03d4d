package scenario

import "time"

// Status is the lifecycle state of one check:
// PENDING -> RUNNING -> PASS | FAIL | ERROR.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusError   Status = "ERROR"
)

// Terminal reports whether s is a final outcome
func (s Status) Terminal() bool {
	switch s {
	case StatusPass, StatusFail, StatusError:
		return true
	}
	return false
}

// TestResult is the outcome of one executed check. It is created once and
// never modified afterwards.
type TestResult struct {
	Name        string        `json:"name" yaml:"name"`
	Status      Status        `json:"status" yaml:"status"`
	ErrorDetail string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

func passed(name string, d time.Duration) TestResult {
	return TestResult{Name: name, Status: StatusPass, Duration: d}
}

func failed(name string, d time.Duration) TestResult {
	return TestResult{Name: name, Status: StatusFail, Duration: d}
}

func errored(name, detail string, d time.Duration) TestResult {
	if detail == "" {
		detail = "check aborted without detail"
	}
	return TestResult{Name: name, Status: StatusError, ErrorDetail: detail, Duration: d}
}
