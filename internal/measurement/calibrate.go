package measurement

import (
	"context"
	"errors"
	"fmt"
)

// CalibrationOutcome tells how a calibration attempt ended
type CalibrationOutcome int

const (
	CalibrationSet CalibrationOutcome = iota
	CalibrationCleared
	CalibrationAborted
)

func (o CalibrationOutcome) String() string {
	switch o {
	case CalibrationSet:
		return "set"
	case CalibrationCleared:
		return "cleared"
	case CalibrationAborted:
		return "aborted"
	default:
		return fmt.Sprintf("CalibrationOutcome(%d)", int(o))
	}
}

// CalibrationResult is the result of Session.Calibrate
type CalibrationResult struct {
	Outcome  CalibrationOutcome
	Scale    Scale   // valid when Outcome is CalibrationSet
	Rejected []error // invalid answers given before the outcome
	Err      error   // prompt error when aborted
}

const calibrationQuestion = "Give the meaning (size > 0) of the last measured line, " +
	"optionally followed by a unit after a single whitespace:\n> "

// Calibrate derives a new scale from a reference line of px pixels. A zero
// length reference removes the scale without asking. Otherwise the prompt is
// asked until it yields a valid value or aborts; the scale only changes on
// success.
func (s *Session) Calibrate(ctx context.Context, px float64) CalibrationResult {
	if px == 0 {
		s.scale = nil
		fmt.Fprintln(s.out, "Scale has been reset and removed.")
		return CalibrationResult{Outcome: CalibrationCleared}
	}

	var result CalibrationResult
	if s.prompt == nil {
		result.Outcome = CalibrationAborted
		result.Err = fmt.Errorf("no calibration prompt available: %w", ErrAborted)
		s.log.Warn("calibration skipped", "error", result.Err)
		return result
	}

	for {
		answer, err := s.prompt.Ask(ctx, calibrationQuestion)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil {
			if !errors.Is(err, ErrAborted) {
				err = fmt.Errorf("%w: %w", ErrAborted, err)
			}
			result.Outcome = CalibrationAborted
			result.Err = err
			s.log.Info("calibration aborted, keeping previous scale", "error", err)
			return result
		}

		value, err := ParseCalibrationValue(answer, s.defaultUnit)
		if err != nil {
			result.Rejected = append(result.Rejected, err)
			fmt.Fprintf(s.out, "ERROR! The input '%s' is not valid!\n", answer)
			s.log.Debug("calibration input rejected", "input", answer, "error", err)
			continue
		}

		scale, err := NewScale(value, px)
		if err != nil {
			result.Rejected = append(result.Rejected, err)
			continue
		}

		s.scale = &scale
		result.Outcome = CalibrationSet
		result.Scale = scale
		fmt.Fprintf(s.out, "A new scale has been set: %g pixel complies to %g %s (scale_factor = %g %s/pixel)\n",
			px, value.Magnitude, scale.Unit, scale.Factor, scale.Unit)
		return result
	}
}
