// Package output renders command results, health probes and test reports
// for people (framed text) or for tools (JSON and YAML).
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/computerscienceiscool/llm-browser/pkg/config"
	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
	"github.com/computerscienceiscool/llm-browser/pkg/scenario"
)

// Renderer writes one result to w
type Renderer interface {
	Response(w io.Writer, cmd protocol.Command, resp protocol.Response) error
	Health(w io.Writer, bridgeURL string, h protocol.HealthStatus) error
	Report(w io.Writer, r *scenario.Report) error
}

// New returns the renderer for an output.format value
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", config.FormatHuman:
		return Human{}, nil
	case config.FormatJSON:
		return JSON{}, nil
	case config.FormatYAML:
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Kinds of failure shown in error frames
const (
	KindTimeout           = "TIMEOUT"
	KindBridgeUnreachable = "BRIDGE_UNREACHABLE"
	KindBridgeHTTP        = "BRIDGE_HTTP_ERROR"
	KindMalformedResponse = "MALFORMED_RESPONSE"
	KindCancelled         = "CANCELLED"
	KindInvalidCommand    = "INVALID_COMMAND"
	KindCommandFailed     = "COMMAND_FAILED"
)

// ErrorKind classifies a failure message from the bridge client
func ErrorKind(msg string) string {
	switch {
	case msg == "timeout":
		return KindTimeout
	case msg == "connection refused":
		return KindBridgeUnreachable
	case msg == "request cancelled":
		return KindCancelled
	case strings.HasPrefix(msg, "bridge returned HTTP"):
		return KindBridgeHTTP
	case strings.HasPrefix(msg, "malformed response body"):
		return KindMalformedResponse
	case strings.HasPrefix(msg, "invalid command"):
		return KindInvalidCommand
	}
	return KindCommandFailed
}

// VerdictMessage is the banner printed under a report
func VerdictMessage(v scenario.Verdict) string {
	switch v {
	case scenario.VerdictHealthy:
		return "Great! The browser tool is working well."
	case scenario.VerdictDegraded:
		return "Some issues detected. Check the failed tests."
	}
	return "Multiple issues detected. Please review the setup."
}

type responseView struct {
	Action   string  `json:"action" yaml:"action"`
	Selector string  `json:"selector" yaml:"selector"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Success  bool    `json:"success" yaml:"success"`
	Data     *string `json:"data,omitempty" yaml:"data,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func viewResponse(cmd protocol.Command, resp protocol.Response) responseView {
	v := responseView{
		Action:   string(cmd.Action()),
		Selector: cmd.Selector(),
		URL:      cmd.URL(),
		Success:  resp.Success(),
		Error:    resp.Err(),
	}
	if data, ok := resp.Data(); ok {
		v.Data = &data
	}
	return v
}

type healthView struct {
	Bridge             string `json:"bridge" yaml:"bridge"`
	Status             string `json:"status" yaml:"status"`
	ExtensionConnected bool   `json:"extensionConnected" yaml:"extension_connected"`
	Error              string `json:"error,omitempty" yaml:"error,omitempty"`
}

func viewHealth(bridgeURL string, h protocol.HealthStatus) healthView {
	v := healthView{
		Bridge:             bridgeURL,
		Status:             string(h.Status()),
		ExtensionConnected: h.ExtensionConnected(),
	}
	if v.Status == "" {
		v.Status = string(protocol.HealthError)
	}
	if !h.OK() {
		v.Error = h.Detail()
	}
	return v
}

type summaryView struct {
	Total       int              `json:"total" yaml:"total"`
	Passed      int              `json:"passed" yaml:"passed"`
	Failed      int              `json:"failed" yaml:"failed"`
	Errors      int              `json:"errors" yaml:"errors"`
	SuccessRate float64          `json:"success_rate" yaml:"success_rate"`
	Verdict     scenario.Verdict `json:"verdict" yaml:"verdict"`
}

type reportView struct {
	Summary summaryView           `json:"summary" yaml:"summary"`
	Results []scenario.TestResult `json:"results" yaml:"results"`
}

func viewReport(r *scenario.Report) reportView {
	results := r.Results
	if results == nil {
		results = []scenario.TestResult{}
	}
	return reportView{
		Summary: summaryView{
			Total:       r.Total(),
			Passed:      r.Passed(),
			Failed:      r.Failed(),
			Errors:      r.Errored(),
			SuccessRate: r.SuccessRate(),
			Verdict:     r.Verdict(),
		},
		Results: results,
	}
}
