package scenario

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Prompter delivers an instruction to the operator and waits until they
// are ready.
type Prompter interface {
	Prompt(ctx context.Context, message string) error
}

// ConsolePrompter waits for a line on its reader. A single goroutine owned
// by the prompter reads lines, so a line typed after a cancelled prompt
// acknowledges the next prompt instead of being lost. That goroutine stays
// blocked on the reader until input arrives or the reader reaches EOF.
type ConsolePrompter struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan error
}

// NewConsolePrompter reads acknowledgements from in and writes prompts to out
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan error),
	}
}

// readLines delivers one value per input line; the channel closes at EOF
func (p *ConsolePrompter) readLines() {
	defer close(p.lines)
	for {
		_, err := p.in.ReadString('\n')
		if err == io.EOF {
			return
		}
		p.lines <- err
		if err != nil {
			return
		}
	}
}

// Prompt writes message and blocks until a newline, EOF or ctx is done
func (p *ConsolePrompter) Prompt(ctx context.Context, message string) error {
	fmt.Fprintf(p.out, "  %s ", message)
	p.once.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-p.lines:
		return err
	}
}

// NoticePrompter prints the instruction and continues without waiting.
// It is used when the run is not interactive.
type NoticePrompter struct {
	out io.Writer
}

// NewNoticePrompter writes notices to out
func NewNoticePrompter(out io.Writer) *NoticePrompter {
	return &NoticePrompter{out: out}
}

// Prompt writes message and returns immediately
func (p *NoticePrompter) Prompt(ctx context.Context, message string) error {
	fmt.Fprintf(p.out, "  %s (skipped, non-interactive)\n", message)
	return ctx.Err()
}
