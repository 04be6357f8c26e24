// Package prompt provides the terminal calibration prompt.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/philipparndt/goruler/internal/measurement"
)

type line struct {
	text string
	err  error
}

// Terminal asks questions on out and reads answers line by line from in.
// Reading happens on a background goroutine so that Ask can honour context
// cancellation.
type Terminal struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line
}

var _ measurement.Prompt = (*Terminal)(nil)

// NewTerminal creates a prompt reading from in and writing to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    in,
		out:   out,
		lines: make(chan line),
	}
}

func (t *Terminal) start() {
	go func() {
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			t.lines <- line{text: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		for {
			t.lines <- line{err: err}
		}
	}()
}

// Ask prints question and waits for one line of input. End of input aborts.
func (t *Terminal) Ask(ctx context.Context, question string) (string, error) {
	t.once.Do(t.start)

	if _, err := fmt.Fprint(t.out, "\n"+question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", measurement.ErrAborted, ctx.Err())
	case l := <-t.lines:
		if l.err != nil {
			if errors.Is(l.err, io.EOF) {
				return "", fmt.Errorf("%w: end of input", measurement.ErrAborted)
			}
			return "", fmt.Errorf("%w: failed to read answer: %w", measurement.ErrAborted, l.err)
		}
		return strings.TrimRight(l.text, "\r"), nil
	}
}
