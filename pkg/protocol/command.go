package protocol

import (
	"encoding/json"
	"strings"
)

// Action is the kind of DOM operation a command performs
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	ActionClick Action = "click"
)

// Actions lists every action kind the bridge understands
var Actions = []Action{ActionRead, ActionWrite, ActionClick}

// Valid reports whether a is one of the recognized action kinds
func (a Action) Valid() bool {
	switch a {
	case ActionRead, ActionWrite, ActionClick:
		return true
	}
	return false
}

// ParseAction normalizes user input (case, surrounding space) into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", &ValidationError{Field: "action", Value: s, Err: ErrInvalidAction}
	}
	return a, nil
}

// Command is a single unit of work sent to the bridge. Fields are
// unexported so a Command cannot change after Encode returns it.
type Command struct {
	action   Action
	selector string
	value    string
	url      string
}

// Encode builds the canonical command for an action. value is kept
// verbatim for write and dropped for read and click; an empty url means
// the focused page.
func Encode(action Action, selector, value, url string) (Command, error) {
	if !action.Valid() {
		return Command{}, &ValidationError{Field: "action", Value: string(action), Err: ErrInvalidAction}
	}

	cmd := Command{
		action:   action,
		selector: selector,
		url:      url,
	}
	if action == ActionWrite {
		cmd.value = value
	}
	return cmd, nil
}

// Action returns the command's action kind
func (c Command) Action() Action { return c.action }

// Selector returns the CSS selector the command targets
func (c Command) Selector() string { return c.selector }

// Value returns the text to write and whether the command carries one
func (c Command) Value() (string, bool) {
	return c.value, c.action == ActionWrite
}

// URL returns the page scope, or "" for the focused page
func (c Command) URL() string { return c.url }

// wireCommand is the JSON body accepted by POST /execute
type wireCommand struct {
	Action   Action  `json:"action"`
	Selector string  `json:"selector"`
	Value    *string `json:"value,omitempty"`
	URL      string  `json:"url,omitempty"`
}

// MarshalJSON encodes the command in the bridge wire format.
func (c Command) MarshalJSON() ([]byte, error) {
	w := wireCommand{
		Action:   c.action,
		Selector: c.selector,
		URL:      c.url,
	}
	if v, ok := c.Value(); ok {
		w.Value = &v
	}
	return json.Marshal(w)
}

// String renders the command for logs and audit entries
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(string(c.action))
	b.WriteString(" ")
	b.WriteString(c.selector)
	if c.url != "" {
		b.WriteString(" @ ")
		b.WriteString(c.url)
	}
	return b.String()
}
