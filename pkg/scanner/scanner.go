package scanner

import (
	"bufio"
	"fmt"
	"strings"
)

// ScannerState represents the current parsing state
type ScannerState int

const (
	StateScanning      ScannerState = iota // Default: scanning for commands or plain text
	StateTagOpen                           // Saw '<', determining tag type
	StateArgs                              // Collecting tag arguments until '>'
	StateQuoted                            // Inside a double-quoted argument
	StateQuotedEscape                      // After a backslash inside quotes
	StateWriteBody                         // Accumulating write value until </write>
)

// String returns the name of the state (for debugging)
func (s ScannerState) String() string {
	switch s {
	case StateScanning:
		return "StateScanning"
	case StateTagOpen:
		return "StateTagOpen"
	case StateArgs:
		return "StateArgs"
	case StateQuoted:
		return "StateQuoted"
	case StateQuotedEscape:
		return "StateQuotedEscape"
	case StateWriteBody:
		return "StateWriteBody"
	default:
		return "StateUnknown"
	}
}

const closeWrite = "</write>"

// Scanner is a state machine that pulls command tags out of a stream:
//
//	<read SELECTOR>              <read "SELECTOR" "URL">
//	<click SELECTOR>             <click "SELECTOR" "URL">
//	<write SELECTOR>VALUE</write>
//
// A bare selector runs to the closing '>', so selectors that contain '>'
// must be quoted. Quoted arguments use Go string syntax.
type Scanner struct {
	state        ScannerState
	buffer       strings.Builder
	original     strings.Builder
	currentCmd   *Command
	reader       *bufio.Reader
	pending      string
	maxValueSize int
}

// Option configures a Scanner
type Option func(*Scanner)

// WithMaxValueSize caps the size of a write value; larger values are
// reported as ErrValueTooLarge. Zero means no limit.
func WithMaxValueSize(n int) Option {
	return func(s *Scanner) {
		s.maxValueSize = n
	}
}

// NewScanner creates a new state-machine scanner
func NewScanner(reader *bufio.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		state:  StateScanning,
		reader: reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// transitionTo changes state
func (s *Scanner) transitionTo(newState ScannerState) {
	s.state = newState
}

// resetCommand clears the current command and buffers
func (s *Scanner) resetCommand() {
	s.currentCmd = nil
	s.buffer.Reset()
	s.original.Reset()
}

// startCommand initializes a new command
func (s *Scanner) startCommand(action string) {
	s.currentCmd = &Command{Action: action}
	s.buffer.Reset()
}

// emit hands back the finished command and returns to scanning
func (s *Scanner) emit() *Command {
	cmd := s.currentCmd
	cmd.Original = s.original.String()
	s.transitionTo(StateScanning)
	s.resetCommand()
	return cmd
}

// closeTag parses the collected arguments. It returns true when the
// command is complete; a write continues into its body.
func (s *Scanner) closeTag() bool {
	sel, url, err := parseArgs(s.buffer.String())
	s.currentCmd.Selector = sel
	s.currentCmd.URL = url
	s.currentCmd.Err = err
	s.buffer.Reset()

	if s.currentCmd.Action == "write" {
		s.transitionTo(StateWriteBody)
		return false
	}
	return true
}

// Scan reads input and returns the next complete command.
// Returns nil at EOF; an unfinished tag at EOF is discarded.
func (s *Scanner) Scan() *Command {
	for {
		line, err := s.nextLine()
		if err != nil && line == "" {
			return nil
		}

		for i := 0; i < len(line); i++ {
			ch := line[i]
			if s.state != StateScanning {
				s.original.WriteByte(ch)
			}

			switch s.state {
			case StateScanning:
				if ch == '<' {
					s.transitionTo(StateTagOpen)
					s.resetCommand()
					s.buffer.WriteByte(ch)
					s.original.WriteByte(ch)
				}

			case StateTagOpen:
				if ch == ' ' || ch == '\t' || ch == '\n' || ch == '>' {
					name := strings.TrimPrefix(s.buffer.String(), "<")
					if !tagNames[name] {
						s.transitionTo(StateScanning)
						s.resetCommand()
						continue
					}
					s.startCommand(name)
					s.transitionTo(StateArgs)
					if ch == '>' && s.closeTag() {
						cmd := s.emit()
						s.unread(line[i+1:])
						return cmd
					}
					continue
				}
				if ch == '<' {
					s.resetCommand()
					s.original.WriteByte(ch)
				}
				s.buffer.WriteByte(ch)
				if s.buffer.Len() > maxTagNameLen+1 {
					s.transitionTo(StateScanning)
					s.resetCommand()
				}

			case StateArgs:
				switch ch {
				case '>':
					if s.closeTag() {
						cmd := s.emit()
						s.unread(line[i+1:])
						return cmd
					}
				case '"':
					s.buffer.WriteByte(ch)
					s.transitionTo(StateQuoted)
				default:
					s.buffer.WriteByte(ch)
				}

			case StateQuoted:
				s.buffer.WriteByte(ch)
				switch ch {
				case '\\':
					s.transitionTo(StateQuotedEscape)
				case '"':
					s.transitionTo(StateArgs)
				}

			case StateQuotedEscape:
				s.buffer.WriteByte(ch)
				s.transitionTo(StateQuoted)

			case StateWriteBody:
				s.buffer.WriteByte(ch)
				if s.maxValueSize > 0 && s.buffer.Len() > s.maxValueSize+len(closeWrite) {
					s.currentCmd.Err = fmt.Errorf("%w: more than %d bytes", ErrValueTooLarge, s.maxValueSize)
					body := s.buffer.String()
					s.skipToCloseWrite(body[len(body)-len(closeWrite)+1:] + line[i+1:])
					return s.emit()
				}
				if body := s.buffer.String(); strings.HasSuffix(body, closeWrite) {
					s.currentCmd.Value = trimBody(strings.TrimSuffix(body, closeWrite))
					cmd := s.emit()
					s.unread(line[i+1:])
					return cmd
				}
			}
		}

		if err != nil {
			return nil
		}
	}
}

// unread keeps the rest of the current line for the next Scan
func (s *Scanner) unread(rest string) {
	s.pending = rest
}

// nextLine returns pushed-back input first, then reads from the stream
func (s *Scanner) nextLine() (string, error) {
	if s.pending != "" {
		line := s.pending
		s.pending = ""
		return line, nil
	}
	return s.reader.ReadString('\n')
}

// skipToCloseWrite discards input up to and including the next </write>
func (s *Scanner) skipToCloseWrite(rest string) {
	window := rest
	for {
		if idx := strings.Index(window, closeWrite); idx >= 0 {
			s.unread(window[idx+len(closeWrite):])
			return
		}
		if len(window) >= len(closeWrite) {
			window = window[len(window)-len(closeWrite)+1:]
		}
		line, err := s.nextLine()
		if err != nil && line == "" {
			return
		}
		window += line
	}
}

// trimBody drops the single newline that usually follows <write ...> and
// precedes </write>; everything else is kept verbatim
func trimBody(body string) string {
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	if strings.HasSuffix(body, "\r\n") {
		return strings.TrimSuffix(body, "\r\n")
	}
	return strings.TrimSuffix(body, "\n")
}
