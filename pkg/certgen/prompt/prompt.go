// Package prompt asks the operator for confirmation before a run.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoAnswer indicates the operator gave no usable answer.
var ErrNoAnswer = errors.New("no answer")

// maxAttempts bounds how often an unrecognised answer is asked again.
const maxAttempts = 3

// Confirmer asks yes/no questions.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// LineConfirmer reads answers line by line from a reader.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Confirmer reading from in and writing questions to out.
func New(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and waits for y/yes or n/no. An empty answer means no.
func (c *LineConfirmer) Confirm(question string) (bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(c.out, "%s [y/N]: ", question)

		line, err := c.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please answer yes or no.")
	}
	return false, ErrNoAnswer
}

// Always is a Confirmer that answers every question with yes.
type Always struct{}

// Confirm returns true.
func (Always) Confirm(string) (bool, error) { return true, nil }

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
