// Package prompt reads integers from an interactive console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before a value is read.
var ErrNoInput = errors.New("no input")

// Reader writes prompt labels and parses one integer per line.
type Reader struct {
	in   *bufio.Reader
	out  io.Writer
	show bool
}

// New returns a Reader over in. Labels are written to out only when show is set.
func New(in io.Reader, out io.Writer, show bool) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out, show: show}
}

// Stdin returns a Reader over os.Stdin that prompts only when stdin is a terminal,
// so piped input yields nothing but the result.
func Stdin() *Reader {
	return New(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

// Int prints label and parses the next line as a base-10 int64.
func (r *Reader) Int(label string) (int64, error) {
	if r.show {
		fmt.Fprint(r.out, label)
	}

	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("reading %q: %w", strings.TrimSpace(label), ErrNoInput)
		}
		return 0, fmt.Errorf("reading %q: %w", strings.TrimSpace(label), err)
	}

	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", strings.TrimSpace(line), err)
	}
	return v, nil
}

// Ints returns args parsed as integers when exactly len(labels) are given,
// and otherwise prompts for each label in turn.
func (r *Reader) Ints(args []string, labels ...string) ([]int64, error) {
	out := make([]int64, 0, len(labels))
	if len(args) == len(labels) {
		for _, a := range args {
			v, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", a, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
	if len(args) != 0 {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(labels), len(args))
	}

	for _, l := range labels {
		v, err := r.Int(l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
