package app

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/computerscienceiscool/llm-browser/pkg/config"
)

// memoryBridge answers /health and /execute from a selector->value map
type memoryBridge struct {
	mu       sync.Mutex
	values   map[string]string
	executed int
}

func newMemoryBridge(t *testing.T) (*memoryBridge, *httptest.Server) {
	t.Helper()
	b := &memoryBridge{values: map[string]string{
		"#q":           "",
		"#test-input":  "",
		"#test-button": "Test Button",
		"#test-output": "",
		"textarea":     "",
	}}
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)
	return b, server
}

func (b *memoryBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.URL.Path {
	case "/health":
		w.Write([]byte(`{"status":"ok","extensionConnected":true}`))
	case "/execute":
		b.executed++
		var cmd struct {
			Action   string `json:"action"`
			Selector string `json:"selector"`
			Value    string `json:"value"`
		}
		json.NewDecoder(r.Body).Decode(&cmd)

		current, ok := b.values[cmd.Selector]
		if !ok || strings.Contains(cmd.Selector, ">>") {
			w.Write([]byte(`{"success":false,"error":"Element not found"}`))
			return
		}
		switch cmd.Action {
		case "read":
			out, _ := json.Marshal(map[string]interface{}{"success": true, "data": current})
			w.Write(out)
		case "write":
			b.values[cmd.Selector] = cmd.Value
			w.Write([]byte(`{"success":true}`))
		default:
			w.Write([]byte(`{"success":true}`))
		}
	default:
		http.NotFound(w, r)
	}
}

func testConfig(t *testing.T, bridgeURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.BridgeURL = bridgeURL
	cfg.CommandTimeout = 2 * time.Second
	cfg.HealthTimeout = time.Second
	cfg.StepDelay = 0
	cfg.AuditLogPath = filepath.Join(t.TempDir(), "audit.log")
	return cfg
}

func refusedURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return "http://" + addr
}

func TestBootstrap_Success(t *testing.T) {
	_, server := newMemoryBridge(t)
	cfg := testConfig(t, server.URL)

	app, err := Bootstrap(cfg)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	defer app.Close()

	if app.GetConfig() != cfg {
		t.Error("App config should be the provided config")
	}
	if app.GetSession() == nil {
		t.Fatal("App session is nil")
	}
	if !app.GetSession().Auditing() {
		t.Error("Session should audit when log_all_operations is set")
	}
	if app.GetBrowser() == nil {
		t.Error("App browser client is nil")
	}
}

func TestBootstrap_AuditDisabled(t *testing.T) {
	cfg := testConfig(t, "http://localhost:6789")
	cfg.LogAllOperations = false

	app, err := Bootstrap(cfg)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	defer app.Close()

	if app.GetSession().Auditing() {
		t.Error("Session should not audit when log_all_operations is off")
	}
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown output format", func(c *config.Config) { c.OutputFormat = "xml" }, "output format"},
		{"zero timeout", func(c *config.Config) { c.CommandTimeout = 0 }, "command timeout"},
		{"unwritable audit log", func(c *config.Config) {
			c.AuditLogPath = filepath.Join(t.TempDir(), "missing", "audit.log")
		}, "cannot start session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, "http://localhost:6789")
			tt.mutate(cfg)

			_, err := Bootstrap(cfg)
			if err == nil {
				t.Fatal("Bootstrap() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestBootstrap_WithIO(t *testing.T) {
	var out, errOut bytes.Buffer
	app, err := Bootstrap(testConfig(t, "http://localhost:6789"), WithIO(strings.NewReader(""), &out, &errOut))
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	defer app.Close()

	if app.stdout != &out || app.stderr != &errOut {
		t.Error("WithIO should replace stdout and stderr")
	}
}
