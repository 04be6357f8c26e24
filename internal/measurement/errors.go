package measurement

import "errors"

var (
	// ErrPrecondition is returned when a drag or release arrives without a
	// preceding press. It means the input layer delivered a malformed gesture.
	ErrPrecondition = errors.New("gesture has no start point")

	// ErrInvalidCalibrationInput is returned for calibration input that is not
	// a non-zero number optionally followed by a unit.
	ErrInvalidCalibrationInput = errors.New("invalid calibration input")

	// ErrAborted is returned by a Prompt when the user gave up answering.
	ErrAborted = errors.New("prompt aborted")
)
