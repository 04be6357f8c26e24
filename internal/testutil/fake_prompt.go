package testutil

import (
	"context"

	"github.com/philipparndt/goruler/internal/measurement"
)

// FakePrompt answers calibration questions from a script. Once the script is
// exhausted it aborts.
type FakePrompt struct {
	Answers   []string
	Questions []string
}

// Ensure FakePrompt implements the interface.
var _ measurement.Prompt = (*FakePrompt)(nil)

// Ask returns the next scripted answer.
func (f *FakePrompt) Ask(ctx context.Context, question string) (string, error) {
	f.Questions = append(f.Questions, question)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.Answers) == 0 {
		return "", measurement.ErrAborted
	}
	answer := f.Answers[0]
	f.Answers = f.Answers[1:]
	return answer, nil
}
