package scanner

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseCommands extracts every command tag from a complete text
func ParseCommands(text string) []Command {
	var commands []Command
	sc := NewScanner(bufio.NewReader(strings.NewReader(text)))
	for cmd := sc.Scan(); cmd != nil; cmd = sc.Scan() {
		commands = append(commands, *cmd)
	}
	return commands
}

// parseArgs splits tag arguments into a selector and an optional url.
// Unquoted, the whole argument text is the selector. Quoted, up to two Go
// string literals are accepted: the selector and the url.
func parseArgs(args string) (selector, url string, err error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", "", ErrMissingSelector
	}
	if args[0] != '"' {
		return args, "", nil
	}

	tokens, err := splitQuoted(args)
	if err != nil {
		return "", "", err
	}
	switch len(tokens) {
	case 1:
		return tokens[0], "", nil
	case 2:
		return tokens[0], tokens[1], nil
	}
	return "", "", fmt.Errorf("%w: got %d, want selector and optional url", ErrTooManyArguments, len(tokens))
}

// splitQuoted reads whitespace-separated Go string literals
func splitQuoted(s string) ([]string, error) {
	var tokens []string
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" {
			return tokens, nil
		}
		if s[0] != '"' {
			return nil, fmt.Errorf("%w: %q is not quoted", ErrInvalidQuoting, s)
		}

		end := closingQuote(s)
		if end < 0 {
			return nil, ErrUnterminatedQuote
		}
		tok, err := strconv.Unquote(s[:end+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuoting, s[:end+1], err)
		}
		tokens = append(tokens, tok)
		s = s[end+1:]
	}
}

// closingQuote returns the index of the quote that ends the literal
// starting at s[0], or -1
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
