package activation

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Point is one row of an activation table.
type Point struct {
	Input      float64
	Value      float64
	Derivative float64
}

// Evaluate computes value and derivative of a at every input.
func Evaluate(a Activation, inputs []float64) []Point {
	points := make([]Point, len(inputs))
	for i, x := range inputs {
		points[i] = Point{
			Input:      x,
			Value:      a.Compute(x),
			Derivative: a.Derivative(x),
		}
	}
	return points
}

// WritePoints writes one "value ||| derivative" line per point, rounded to
// digits decimal places, followed by a blank line.
func WritePoints(w io.Writer, points []Point, digits int) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%s ||| %s\n", formatRounded(p.Value, digits), formatRounded(p.Derivative, digits)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatRounded(v float64, digits int) string {
	scale := math.Pow(10, float64(digits))
	r := math.Round(v*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		r = v
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if r == math.Trunc(r) && !math.IsInf(r, 0) {
		s = strconv.FormatFloat(r, 'f', 1, 64)
	}
	return s
}
