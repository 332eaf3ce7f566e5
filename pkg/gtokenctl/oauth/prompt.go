package oauth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads one trimmed line of user input per call.
type Prompter interface {
	Prompt(label string) (string, error)
	// PromptSecret is like Prompt but avoids echoing when reading from a terminal.
	PromptSecret(label string) (string, error)
}

// ConsolePrompter prompts on out and reads from in.
type ConsolePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	hasTTY bool
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	p := &ConsolePrompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.hasTTY = true
	}
	return p
}

func (p *ConsolePrompter) Prompt(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case !errors.Is(err, io.EOF):
		return "", fmt.Errorf("failed to read %q: %w", strings.TrimSpace(label), err)
	case line == "":
		return "", fmt.Errorf("no input for %q: %w", strings.TrimSpace(label), io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(line), nil
}

func (p *ConsolePrompter) PromptSecret(label string) (string, error) {
	if !p.hasTTY {
		return p.Prompt(label)
	}
	_, _ = fmt.Fprint(p.out, label)
	secret, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", strings.TrimSpace(label), err)
	}
	return strings.TrimSpace(string(secret)), nil
}
