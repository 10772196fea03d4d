package config

import "time"

// Default values and limits for the browser client
const (
	// Bridge connection
	DefaultBridgeHost = "localhost"
	DefaultBridgePort = 6789
	DefaultBridgeURL  = "http://localhost:6789"

	// Timeout values
	DefaultCommandTimeout = 30 * time.Second // Upper bound for one /execute round trip
	DefaultHealthTimeout  = 5 * time.Second  // Upper bound for one /health probe

	// Scenario pacing
	DefaultStepDelay = 500 * time.Millisecond

	// Scanner buffer for pipe mode input
	DefaultScanBufferSize = 10 * 1024 * 1024 // 10MB

	// Audit log configuration
	DefaultAuditLogPath = "audit.log"

	// Output formats
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// OutputFormats lists every accepted output.format value
var OutputFormats = []string{FormatHuman, FormatJSON, FormatYAML}
