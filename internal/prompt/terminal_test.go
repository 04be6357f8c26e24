package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/philipparndt/goruler/internal/measurement"
)

func TestTerminalAsk(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewTerminal(strings.NewReader("50 mm\r\nabc\n"), out)

	answer, err := p.Ask(context.Background(), "size?> ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "50 mm" {
		t.Errorf("expected %q, got %q", "50 mm", answer)
	}
	if !strings.Contains(out.String(), "size?> ") {
		t.Errorf("question not written, got %q", out.String())
	}

	answer, err = p.Ask(context.Background(), "again> ")
	if err != nil || answer != "abc" {
		t.Errorf("second Ask = %q, %v", answer, err)
	}
}

func TestTerminalAskEOFAborts(t *testing.T) {
	p := NewTerminal(strings.NewReader(""), io.Discard)

	for i := 0; i < 2; i++ {
		_, err := p.Ask(context.Background(), "> ")
		if !errors.Is(err, measurement.ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
	}
}

func TestTerminalAskCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewTerminal(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "> ")
	if !errors.Is(err, measurement.ErrAborted) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected aborted and canceled, got %v", err)
	}
}

func TestTerminalWithSession(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewTerminal(strings.NewReader("0\nfoo\n4 in\n"), out)
	s := measurement.NewSession(nil, p, measurement.Options{Out: out})

	result := s.Calibrate(context.Background(), 8)
	if result.Outcome != measurement.CalibrationSet {
		t.Fatalf("expected calibration to succeed, got %v (%v)", result.Outcome, result.Err)
	}
	if len(result.Rejected) != 2 {
		t.Errorf("expected 2 rejected answers, got %d", len(result.Rejected))
	}
	if s.Convert(8) != 4 {
		t.Errorf("expected 8px to convert to 4, got %v", s.Convert(8))
	}
}
