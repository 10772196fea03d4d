package scenario

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/computerscienceiscool/llm-browser/pkg/bridge"
	"github.com/computerscienceiscool/llm-browser/pkg/browser"
)

// fakePage is an in-memory stand-in for the bridge plus extension: it
// serves /health and /execute against a tiny element table that mimics
// the test page.
type fakePage struct {
	mu                 sync.Mutex
	elements           map[string]string
	extensionConnected bool
	commands           []map[string]string
}

func newFakePage() *fakePage {
	return &fakePage{
		extensionConnected: true,
		elements: map[string]string{
			"#test-input":        "",
			"#test-textarea":     "",
			"#test-button":       "Test Button",
			"#test-output":       "Click the button to see output",
			"input[type='text']": "",
			"textarea":           "",
		},
	}
}

func (p *fakePage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/health":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":             "ok",
			"extensionConnected": p.extensionConnected,
		})
	case "/execute":
		var cmd map[string]string
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		p.commands = append(p.commands, cmd)
		json.NewEncoder(w).Encode(p.execute(cmd))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakePage) execute(cmd map[string]string) map[string]interface{} {
	sel := cmd["selector"]
	if sel == "" || strings.Contains(sel, ">>") {
		return map[string]interface{}{"success": false, "error": fmt.Sprintf("Invalid selector: %q", sel)}
	}
	current, ok := p.elements[sel]
	if !ok {
		return map[string]interface{}{"success": false, "error": "Element not found: " + sel}
	}

	switch cmd["action"] {
	case "read":
		return map[string]interface{}{"success": true, "data": current}
	case "write":
		p.elements[sel] = cmd["value"]
		return map[string]interface{}{"success": true}
	case "click":
		if sel == "#test-button" {
			input := p.elements["#test-input"]
			if input == "" {
				input = "empty"
			}
			p.elements["#test-output"] = "Input: " + input + ", Textarea: empty"
		}
		return map[string]interface{}{"success": true}
	}
	return map[string]interface{}{"success": false, "error": "Unknown action"}
}

func (p *fakePage) commandCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.commands)
}

// startFakeBridge wires the real transport and action clients to page
func startFakeBridge(t *testing.T, page http.Handler) *browser.Client {
	t.Helper()
	server := httptest.NewServer(page)
	t.Cleanup(server.Close)
	return browser.New(bridge.NewClient(server.URL), browser.WithTimeout(2*time.Second))
}
