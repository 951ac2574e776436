// Package prompt handles synchronous yes/no confirmation prompts.
//
// The answer is always read from stdin unless auto-confirm is enabled, so a
// piped "n" declines in scripts exactly as it would on a terminal. The
// question text itself is only echoed on an interactive terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks the user yes/no questions.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	autoConfirm bool
	interactive bool
}

// New creates a Prompter bound to stdin/stdout. When autoConfirm is set every
// Confirm call returns true without asking.
func New(autoConfirm bool) *Prompter {
	return &Prompter{
		in:          os.Stdin,
		out:         os.Stdout,
		autoConfirm: autoConfirm,
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// NewWithStreams creates a Prompter with explicit streams for testing.
func NewWithStreams(in io.Reader, out io.Writer, autoConfirm, interactive bool) *Prompter {
	return &Prompter{in: in, out: out, autoConfirm: autoConfirm, interactive: interactive}
}

// Confirm asks a yes/no question and returns the user's answer. The question
// is auto-accepted only when auto-confirm is enabled; otherwise the answer
// is read from the input stream, terminal or not. An empty answer (or
// immediate EOF, e.g. stdin from /dev/null) defaults to yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	if p.autoConfirm {
		return true, nil
	}

	if p.interactive {
		fmt.Fprintf(p.out, "%s [Y/n]: ", question)
	}

	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
