package session

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// AuditLogger appends one pipe-delimited line per submitted command:
//
//	timestamp|session:<id>|action|selector|status|error
type AuditLogger struct {
	mu     sync.Mutex
	logger *log.Logger
	closer io.Closer
	now    func() time.Time
}

// NewAuditLogger opens (or creates) the audit log at logPath for appending
func NewAuditLogger(logPath string) (*AuditLogger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open audit log: %w", err)
	}
	return newAuditLogger(file, file), nil
}

func newAuditLogger(w io.Writer, c io.Closer) *AuditLogger {
	return &AuditLogger{
		logger: log.New(w, "", 0),
		closer: c,
		now:    time.Now,
	}
}

// Log writes an audit log entry
func (a *AuditLogger) Log(sessionID, action, selector string, success bool, errorMsg string) {
	if a == nil || a.logger == nil {
		return
	}

	status := "success"
	if !success {
		status = "failed"
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Printf("%s|session:%s|%s|%s|%s|%s",
		a.now().Format(time.RFC3339),
		sessionID,
		field(action),
		field(selector),
		status,
		field(errorMsg),
	)
}

// Close closes the audit log file
func (a *AuditLogger) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// fieldEscaper keeps a value on one line and inside its own column
var fieldEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "\r", `\r`, "\n", `\n`)

// field escapes a value so each entry stays a single six-column record
func field(s string) string {
	return fieldEscaper.Replace(s)
}
