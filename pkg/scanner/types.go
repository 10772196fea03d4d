package scanner

import "errors"

// Command is a browser command tag found in agent output. Action is the raw
// tag name; mapping it to a protocol action is left to the caller.
type Command struct {
	Action   string
	Selector string
	URL      string
	Value    string
	Original string
	Err      error
}

// Tag syntax errors reported on Command.Err
var (
	ErrMissingSelector   = errors.New("missing selector")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrInvalidQuoting    = errors.New("invalid quoted argument")
	ErrValueTooLarge     = errors.New("write value too large")
)

// tagNames are the tags the scanner recognizes
var tagNames = map[string]bool{
	"read":  true,
	"write": true,
	"click": true,
}

const maxTagNameLen = 5
