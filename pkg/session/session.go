package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/computerscienceiscool/llm-browser/pkg/config"
)

// Session identifies one invocation of the tool and owns its audit trail
type Session struct {
	ID        string
	StartTime time.Time
	audit     *AuditLogger
}

// New starts a session. The audit log is opened only when cfg asks for it.
func New(cfg *config.Config) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
	}

	if cfg != nil && cfg.LogAllOperations && cfg.AuditLogPath != "" {
		audit, err := NewAuditLogger(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		s.audit = audit
	}
	return s, nil
}

// LogAudit records one submitted command. Its signature matches
// bridge.AuditFunc so it can be passed to bridge.WithAuditLog directly.
func (s *Session) LogAudit(action, selector string, success bool, errorMsg string) {
	s.audit.Log(s.ID, action, selector, success, errorMsg)
}

// Auditing reports whether commands are being written to an audit log
func (s *Session) Auditing() bool {
	return s.audit != nil
}

// Elapsed is the time since the session started
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

// Close releases the audit log
func (s *Session) Close() error {
	return s.audit.Close()
}
