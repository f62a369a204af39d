// Package spline implements exact interpolating polynomial splines of one variable.
//
// The package exposes a [Fitter] capability, consumed by the greedy reduction, and a
// B-spline implementation of it ([BSplineFitter]) that places its knots the way
// FITPACK does for a zero smoothing factor: the resulting spline passes through
// every supplied point.
package spline

import (
	"errors"
)

const (
	// MinDegree is the smallest supported polynomial degree.
	MinDegree = 1
	// MaxDegree is the largest supported polynomial degree.
	MaxDegree = 5
)

var (
	ErrLengthMismatch        = errors.New("x and y have different lengths")
	ErrInvalidDegree         = errors.New("degree out of range")
	ErrTooFewPoints          = errors.New("too few points for the requested degree")
	ErrNotStrictlyIncreasing = errors.New("abscissas are not strictly increasing")
	ErrNonFinite             = errors.New("non-finite value")
	ErrSingular              = errors.New("singular collocation matrix")
)

// Interpolant is a fitted function of one variable.
type Interpolant interface {
	// Evaluate returns the order-th derivative of the interpolant at x.
	// Order 0 evaluates the interpolant itself, orders above the degree
	// evaluate to zero.
	Evaluate(x float64, order int) float64

	// Degree returns the polynomial degree of the interpolant.
	Degree() int
}

// Fitter builds an [Interpolant] of the given degree passing through every point (x[i], y[i]).
// Implementations require len(x) >= degree+1 and strictly increasing x.
type Fitter interface {
	Fit(x, y []float64, degree int) (Interpolant, error)
}

// EvaluateSlice evaluates the order-th derivative of s at each value of x.
func EvaluateSlice(s Interpolant, x []float64, order int) (y []float64) {
	y = make([]float64, len(x))
	for i := range x {
		y[i] = s.Evaluate(x[i], order)
	}
	return
}
