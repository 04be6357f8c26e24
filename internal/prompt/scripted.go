package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/philipparndt/goruler/internal/measurement"
)

// Scripted answers questions from a fixed list, for non-interactive runs.
// It aborts once the answers are used up.
type Scripted struct {
	answers []string
	echo    io.Writer
}

var _ measurement.Prompt = (*Scripted)(nil)

// NewScripted returns a prompt giving answers in order. Questions and
// answers are echoed to echo when it is not nil.
func NewScripted(echo io.Writer, answers ...string) *Scripted {
	return &Scripted{answers: answers, echo: echo}
}

// Ask returns the next answer, or ErrAborted when none is left or ctx is done
func (s *Scripted) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", measurement.ErrAborted, err)
	}
	if len(s.answers) == 0 {
		return "", measurement.ErrAborted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if s.echo != nil {
		fmt.Fprintf(s.echo, "%s %s\n", question, answer)
	}
	return answer, nil
}
