package measurement

import (
	"fmt"
	"math"
	"strconv"

	"github.com/philipparndt/goruler/pkg/geometry"
)

// labelDigits is the number of fractional digits shown on canvas labels
const labelDigits = 1

// Report describes one finished measurement
type Report struct {
	Start    geometry.Point
	End      geometry.Point
	Distance float64
	DX       int
	DY       int

	Scaled   bool
	Value    float64 // Distance converted with the active scale
	Unit     string
	Label    string // text drawn on the surface, empty when labels are off

	Calibration *CalibrationResult // set when this gesture calibrated the scale
}

// String formats the report the way it is printed to the terminal
func (r Report) String() string {
	text := fmt.Sprintf("Distance: % 7.3f, delta X: % 4d, delta Y: % 4d", r.Distance, r.DX, r.DY)
	if r.Scaled {
		text += fmt.Sprintf(", distance corresponds to %.3f %s", r.Value, r.Unit)
	}
	return text
}

// FormatLabel returns the on-canvas text for a pixel distance. The value is
// scaled when a scale is given; the unit is appended only when the user
// supplied one.
func FormatLabel(px float64, scale *Scale) string {
	value := px
	unit := ""
	if scale != nil {
		value = scale.Apply(px)
		if scale.UnitSupplied {
			unit = " " + scale.Unit
		}
	}

	pow := math.Pow(10, labelDigits)
	rounded := math.Round(value*pow) / pow
	return strconv.FormatFloat(rounded, 'f', labelDigits, 64) + unit
}

func newReport(start, end geometry.Point, scale *Scale) Report {
	dist, dx, dy := geometry.Distance(start, end)
	r := Report{
		Start:    start,
		End:      end,
		Distance: dist,
		DX:       int(math.Round(dx)),
		DY:       int(math.Round(dy)),
		Value:    dist,
	}
	if scale != nil {
		r.Scaled = true
		r.Value = scale.Apply(dist)
		r.Unit = scale.Unit
	}
	return r
}
