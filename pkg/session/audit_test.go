package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewAuditLogger(t *testing.T) {
	t.Run("creates log file if not exists", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "new_audit.log")

		logger, err := NewAuditLogger(logPath)
		if err != nil {
			t.Fatalf("NewAuditLogger() error = %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Error("Log file was not created")
		}
	})

	t.Run("appends to existing log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "existing_audit.log")

		existingContent := "previous log entry\n"
		if err := os.WriteFile(logPath, []byte(existingContent), 0644); err != nil {
			t.Fatalf("Failed to create existing log: %v", err)
		}

		logger, err := NewAuditLogger(logPath)
		if err != nil {
			t.Fatalf("NewAuditLogger() error = %v", err)
		}
		logger.Log("session1", "read", "#title", true, "")
		logger.Close()

		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		if !strings.HasPrefix(string(data), existingContent) {
			t.Error("Existing content should be preserved")
		}
		if !strings.Contains(string(data), "session:session1") {
			t.Error("New log entry should be appended")
		}
	})

	t.Run("fails for unwritable path", func(t *testing.T) {
		_, err := NewAuditLogger(filepath.Join(t.TempDir(), "missing", "dir", "audit.log"))
		if err == nil {
			t.Fatal("expected error for missing parent directory")
		}
		if !strings.Contains(err.Error(), "could not open audit log") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestAuditLogger_Log(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		action   string
		selector string
		success  bool
		errMsg   string
		want     string
	}{
		{
			name:     "success",
			action:   "read",
			selector: "#title",
			success:  true,
			want:     "2025-01-02T03:04:05Z|session:abc|read|#title|success|\n",
		},
		{
			name:     "failure",
			action:   "click",
			selector: "#missing",
			errMsg:   "Element not found",
			want:     "2025-01-02T03:04:05Z|session:abc|click|#missing|failed|Element not found\n",
		},
		{
			name:     "multi-line error stays on one line",
			action:   "write",
			selector: "textarea",
			errMsg:   "bridge returned HTTP 500: line one\nline two",
			want:     "2025-01-02T03:04:05Z|session:abc|write|textarea|failed|bridge returned HTTP 500: line one\\nline two\n",
		},
		{
			name:     "pipe in selector stays in its column",
			action:   "read",
			selector: `a[lang|="en"]`,
			errMsg:   `Invalid selector: a[lang|="en"]`,
			want:     `2025-01-02T03:04:05Z|session:abc|read|a[lang\|="en"]|failed|Invalid selector: a[lang\|="en"]` + "\n",
		},
		{
			name:     "backslash is escaped",
			action:   "read",
			selector: `#a\:b`,
			success:  true,
			want:     `2025-01-02T03:04:05Z|session:abc|read|#a\\:b|success|` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newAuditLogger(&buf, nil)
			logger.now = func() time.Time { return fixed }

			logger.Log("abc", tt.action, tt.selector, tt.success, tt.errMsg)

			if got := buf.String(); got != tt.want {
				t.Errorf("Log() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuditLogger_NilIsNoop(t *testing.T) {
	var logger *AuditLogger

	logger.Log("abc", "read", "#x", true, "")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nil logger = %v", err)
	}
}
