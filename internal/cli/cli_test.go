package cli

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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetState restores flags and the global viper instance before and
// after a test
func resetState(t *testing.T) {
	t.Helper()
	reset := func() {
		viper.Reset()
		cfgFile = ""
		for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
			resetFlagSet(c.PersistentFlags())
			resetFlagSet(c.Flags())
		}
		configureViper()
	}
	reset()
	t.Cleanup(reset)
}

func resetFlagSet(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// execute runs the CLI with args and returns what it wrote
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append(args, "--audit-log", filepath.Join(t.TempDir(), "audit.log")))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// fakeBridge is a minimal bridge with a page of known elements
type fakeBridge struct {
	mu        sync.Mutex
	connected bool
	elements  map[string]string
	lastURL   string
}

func newFakeBridge(t *testing.T) (*fakeBridge, string) {
	t.Helper()
	b := &fakeBridge{
		connected: true,
		elements: map[string]string{
			"#test-input":  "",
			"#test-button": "Test Button",
			"#test-output": "",
			"textarea":     "",
			"h1":           "Example Domain",
		},
	}
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)
	return b, server.URL
}

func (b *fakeBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Path == "/health" {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "extensionConnected": b.connected})
		return
	}

	var cmd map[string]string
	json.NewDecoder(r.Body).Decode(&cmd)
	b.lastURL = cmd["url"]

	current, ok := b.elements[cmd["selector"]]
	if !ok {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "Element not found"})
		return
	}
	switch cmd["action"] {
	case "read":
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": current})
	case "write":
		b.elements[cmd["selector"]] = cmd["value"]
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	default:
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}
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
