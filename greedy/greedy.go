// Package greedy implements the greedy construction of reduced-order splines.
//
// Given a dense sample (x, y) of a function of one variable, a [Reducer] selects a
// small subset of the samples, the knots, such that the interpolating spline through
// the knots reproduces every sample within a maximum pointwise error. Knots are added
// one at a time, always at the sample of largest error of the current spline.
//
// The result of a reduction is a [Model], which evaluates the spline and its
// derivatives, verifies it against data and reports its compression ratio.
package greedy

import (
	"errors"
)

var (
	ErrLengthMismatch   = errors.New("x and y have different lengths")
	ErrEmptyDomain      = errors.New("empty domain")
	ErrNonFinite        = errors.New("non-finite sample")
	ErrDegenerateData   = errors.New("all data samples are zero")
	ErrInvalidDegree    = errors.New("invalid degree")
	ErrInvalidTolerance = errors.New("invalid tolerance")
	ErrInvalidOrder     = errors.New("invalid derivative order")
	ErrTooFewSamples    = errors.New("too few samples for the requested degree")
	ErrSeedOutOfRange   = errors.New("seed index out of range")
	ErrNotReady         = errors.New("no spline interpolant: run a reduction or load a model first")
)
