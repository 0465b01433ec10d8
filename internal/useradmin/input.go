package useradmin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads a line from the terminal without echo. Replaced in tests.
var readPassword = term.ReadPassword

// prompter asks questions on out and reads answers from in.
// Secrets are read from the terminal attached to stdin.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line prints question and returns the trimmed answer. A final line without
// a newline is accepted; an empty stream is io.EOF.
func (p *prompter) line(question string) (string, error) {
	fmt.Fprintf(p.out, "%s\n> ", question)

	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret prints question and reads an unechoed answer.
// The caller owns the returned slice and should wipe it.
func (p *prompter) secret(question string) ([]byte, error) {
	fmt.Fprint(p.out, question)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return b, nil
}
