package measurement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultUnit labels a scale whose calibration input carried no unit
const DefaultUnit = "user_defined_unit"

// Scale maps pixel distances to a user-defined unit
type Scale struct {
	Factor       float64 // user units per pixel, never zero
	Unit         string
	UnitSupplied bool // false when Unit is the default label
}

// Apply converts a pixel distance into the scale's unit
func (s Scale) Apply(px float64) float64 {
	return px * s.Factor
}

// CalibrationValue is a parsed answer to the calibration prompt
type CalibrationValue struct {
	Magnitude    float64
	Unit         string
	UnitSupplied bool
}

// ParseCalibrationValue parses "<magnitude>[ <unit>]". Everything after the
// first run of whitespace is the unit. Zero, NaN and infinite magnitudes are
// rejected with ErrInvalidCalibrationInput.
func ParseCalibrationValue(input, defaultUnit string) (CalibrationValue, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return CalibrationValue{}, fmt.Errorf("%w: empty input", ErrInvalidCalibrationInput)
	}

	raw, unit := input, ""
	if i := strings.IndexFunc(input, unicode.IsSpace); i >= 0 {
		raw, unit = input[:i], strings.TrimSpace(input[i:])
	}
	supplied := unit != ""
	if !supplied {
		unit = defaultUnit
	}
	if unit == "" {
		unit = DefaultUnit
	}

	magnitude, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return CalibrationValue{}, fmt.Errorf("%w: %q is not a number", ErrInvalidCalibrationInput, raw)
	}
	if magnitude == 0 {
		return CalibrationValue{}, fmt.Errorf("%w: value must not be 0", ErrInvalidCalibrationInput)
	}
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return CalibrationValue{}, fmt.Errorf("%w: value must be finite", ErrInvalidCalibrationInput)
	}

	return CalibrationValue{Magnitude: magnitude, Unit: unit, UnitSupplied: supplied}, nil
}

// NewScale builds the scale for a calibration value measured over px pixels
func NewScale(v CalibrationValue, px float64) (Scale, error) {
	if px == 0 {
		return Scale{}, fmt.Errorf("%w: reference distance is 0 pixels", ErrInvalidCalibrationInput)
	}
	return Scale{
		Factor:       v.Magnitude / px,
		Unit:         v.Unit,
		UnitSupplied: v.UnitSupplied,
	}, nil
}
