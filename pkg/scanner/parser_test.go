package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Command
	}{
		{
			name:     "bare read",
			input:    "<read #title>",
			expected: []Command{{Action: "read", Selector: "#title", Original: "<read #title>"}},
		},
		{
			name:     "read with surrounding text",
			input:    "Let me check the heading\n<read h1>\nfor you",
			expected: []Command{{Action: "read", Selector: "h1", Original: "<read h1>"}},
		},
		{
			name:  "quoted selector with combinator and url",
			input: `<read "div > p" "https://example.com">`,
			expected: []Command{{
				Action: "read", Selector: "div > p", URL: "https://example.com",
				Original: `<read "div > p" "https://example.com">`,
			}},
		},
		{
			name:  "bare selector with quoted attribute",
			input: `<click button[type="submit"]>`,
			expected: []Command{{
				Action: "click", Selector: `button[type="submit"]`,
				Original: `<click button[type="submit"]>`,
			}},
		},
		{
			name:  "attribute value containing >",
			input: `<click a[title="x > y"]>`,
			expected: []Command{{
				Action: "click", Selector: `a[title="x > y"]`,
				Original: `<click a[title="x > y"]>`,
			}},
		},
		{
			name:  "bare selector with spaces",
			input: "<read  form .field input  >",
			expected: []Command{{
				Action: "read", Selector: "form .field input",
				Original: "<read  form .field input  >",
			}},
		},
		{
			name:  "multi-line write",
			input: "<write #bio>\nline one\nline two\n</write>",
			expected: []Command{{
				Action: "write", Selector: "#bio", Value: "line one\nline two",
				Original: "<write #bio>\nline one\nline two\n</write>",
			}},
		},
		{
			name:  "write keeps inner whitespace",
			input: `<write "#q" "https://example.com">  padded  </write>`,
			expected: []Command{{
				Action: "write", Selector: "#q", URL: "https://example.com", Value: "  padded  ",
				Original: `<write "#q" "https://example.com">  padded  </write>`,
			}},
		},
		{
			name:  "empty write",
			input: "<write #q></write>",
			expected: []Command{{
				Action: "write", Selector: "#q", Value: "",
				Original: "<write #q></write>",
			}},
		},
		{
			name:  "write value containing tags",
			input: "<write textarea><read #x> is literal</write>",
			expected: []Command{{
				Action: "write", Selector: "textarea", Value: "<read #x> is literal",
				Original: "<write textarea><read #x> is literal</write>",
			}},
		},
		{
			name:  "several on one line",
			input: "<click #a><click #b> then <read #c>",
			expected: []Command{
				{Action: "click", Selector: "#a", Original: "<click #a>"},
				{Action: "click", Selector: "#b", Original: "<click #b>"},
				{Action: "read", Selector: "#c", Original: "<read #c>"},
			},
		},
		{
			name:     "unknown tags ignored",
			input:    "<div>hello</div> <open main.go> <readonly> a < b </write>",
			expected: nil,
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommands(tt.input))
		})
	}
}

func TestParseCommands_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing selector", "<read>", ErrMissingSelector},
		{"blank selector", "<click   >", ErrMissingSelector},
		{"too many arguments", `<read "a" "b" "c">`, ErrTooManyArguments},
		{"bad escape", `<read "a\q">`, ErrInvalidQuoting},
		{"unquoted url after quoted selector", `<read "a" https://x>`, ErrInvalidQuoting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := ParseCommands(tt.input)
			require.Len(t, cmds, 1)
			assert.True(t, errors.Is(cmds[0].Err, tt.wantErr), "got %v", cmds[0].Err)
		})
	}
}

func TestParseCommands_WriteWithBadArgsConsumesBody(t *testing.T) {
	cmds := ParseCommands("<write>orphan value</write><click #next>")

	require.Len(t, cmds, 2)
	assert.ErrorIs(t, cmds[0].Err, ErrMissingSelector)
	assert.Equal(t, "orphan value", cmds[0].Value)
	assert.Equal(t, "click", cmds[1].Action)
}

func TestScan_MaxValueSize(t *testing.T) {
	cmds := parseWith("<write #a>this value is too long</write><click #b>", WithMaxValueSize(4))

	require.Len(t, cmds, 2)
	assert.ErrorIs(t, cmds[0].Err, ErrValueTooLarge)
	assert.Equal(t, "click", cmds[1].Action)
	assert.Equal(t, "#b", cmds[1].Selector)
}

func TestScan_MaxValueSizeAllowsExactFit(t *testing.T) {
	cmds := parseWith("<write #a>1234</write>", WithMaxValueSize(4))

	require.Len(t, cmds, 1)
	assert.NoError(t, cmds[0].Err)
	assert.Equal(t, "1234", cmds[0].Value)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args    string
		wantSel string
		wantURL string
	}{
		{"#a", "#a", ""},
		{"  #a  ", "#a", ""},
		{`"#a"`, "#a", ""},
		{`"" "https://x"`, "", "https://x"},
		{`"say \"hi\""`, `say "hi"`, ""},
		{"\"a\"\n\t\"b\"", "a", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			sel, url, err := parseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSel, sel)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}
