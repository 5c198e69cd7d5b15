package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
	raw io.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, raw: in}
}

func (p *prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm implements console.Confirmer.
func (p *prompter) Confirm(prompt string) bool {
	answer, err := p.Line(prompt + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Secret reads a password. Input is masked on a terminal unless show is set.
func (p *prompter) Secret(label string, show bool) (string, error) {
	f, ok := p.raw.(*os.File)
	if show || !ok || !term.IsTerminal(int(f.Fd())) {
		return p.Line(label)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
