package greedy

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tuneinsight/romspline/spline"
)

// ErrorVector stores the pointwise absolute errors of an interpolant over a set of samples.
type ErrorVector struct {
	Abs    []float64
	Max    float64
	ArgMax int
}

// EvaluateErrors returns the pointwise errors |s(x[i]) - y[i]|.
// ArgMax is the first index of largest error, or -1 if x is empty.
func EvaluateErrors(s spline.Interpolant, x, y []float64) (ev ErrorVector) {

	ev.Abs = make([]float64, len(x))
	for i := range x {
		ev.Abs[i] = math.Abs(s.Evaluate(x[i], 0) - y[i])
	}

	if len(ev.Abs) == 0 {
		ev.ArgMax = -1
		return
	}

	ev.ArgMax = floats.MaxIdx(ev.Abs)
	ev.Max = ev.Abs[ev.ArgMax]

	return
}

// ArgMaxExcluding returns the first index of largest error among the indices
// for which skip returns false, or -1 if every index is skipped.
func (ev ErrorVector) ArgMaxExcluding(skip func(i int) bool) (idx int) {
	idx = -1
	for i, e := range ev.Abs {
		if skip(i) {
			continue
		}
		if idx == -1 || e > ev.Abs[idx] {
			idx = i
		}
	}
	return
}
