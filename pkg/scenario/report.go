package scenario

import "time"

// Verdict is the qualitative banner chosen from the success rate
type Verdict string

const (
	VerdictHealthy  Verdict = "healthy"
	VerdictDegraded Verdict = "degraded"
	VerdictBroken   Verdict = "broken"
)

// Success-rate thresholds, in percent
const (
	HealthyThreshold  = 80.0
	DegradedThreshold = 60.0
)

// Report aggregates the results of one run, in execution order
type Report struct {
	Results   []TestResult  `json:"results" yaml:"results"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Total returns the number of executed checks
func (r *Report) Total() int {
	return len(r.Results)
}

// Passed returns the number of PASS results
func (r *Report) Passed() int { return r.count(StatusPass) }

// Failed returns the number of FAIL results
func (r *Report) Failed() int { return r.count(StatusFail) }

// Errored returns the number of ERROR results
func (r *Report) Errored() int { return r.count(StatusError) }

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// SuccessRate returns PASS / total as a percentage, or 0 for an empty run
func (r *Report) SuccessRate() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) * 100 / float64(total)
}

// Verdict classifies the run: >= 80% healthy, >= 60% degraded, else broken
func (r *Report) Verdict() Verdict {
	return VerdictFor(r.SuccessRate())
}

// VerdictFor maps a success rate in percent to a Verdict
func VerdictFor(rate float64) Verdict {
	switch {
	case rate >= HealthyThreshold:
		return VerdictHealthy
	case rate >= DegradedThreshold:
		return VerdictDegraded
	default:
		return VerdictBroken
	}
}

// Failures returns every FAIL and ERROR result in execution order
func (r *Report) Failures() []TestResult {
	var out []TestResult
	for _, res := range r.Results {
		if res.Status == StatusFail || res.Status == StatusError {
			out = append(out, res)
		}
	}
	return out
}
