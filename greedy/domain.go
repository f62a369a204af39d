package greedy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tuneinsight/romspline/utils"
)

// Domain is an immutable sample of a function of one variable.
// The abscissas are expected, but not required, to be sorted: the knots
// selected by a reduction must have strictly increasing abscissas.
type Domain struct {
	x, y []float64
}

// NewDomain returns a [Domain] holding copies of x and y.
func NewDomain(x, y []float64) (d Domain, err error) {

	if len(x) != len(y) {
		return d, fmt.Errorf("cannot NewDomain: %w: len(x)=%d != len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) == 0 {
		return d, fmt.Errorf("cannot NewDomain: %w", ErrEmptyDomain)
	}

	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return d, fmt.Errorf("cannot NewDomain: %w at index %d", ErrNonFinite, i)
		}
	}

	d.x = append([]float64(nil), x...)
	d.y = append([]float64(nil), y...)

	return d, nil
}

// NewDomainFromOrdinates returns a [Domain] whose abscissas are the indices 0, 1, ..., len(y)-1.
func NewDomainFromOrdinates(y []float64) (d Domain, err error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return NewDomain(x, y)
}

// Len returns the number of samples.
func (d Domain) Len() int {
	return len(d.x)
}

// X returns a copy of the abscissas.
func (d Domain) X() []float64 {
	return append([]float64(nil), d.x...)
}

// Y returns a copy of the ordinates.
func (d Domain) Y() []float64 {
	return append([]float64(nil), d.y...)
}

// At returns the i-th sample.
func (d Domain) At(i int) (x, y float64) {
	return d.x[i], d.y[i]
}

// MaxAbs returns max |y|.
func (d Domain) MaxAbs() float64 {
	if len(d.y) == 0 {
		return 0
	}
	return floats.Norm(d.y, math.Inf(1))
}

// Subset returns the samples at the given indices, in the order of indices.
func (d Domain) Subset(indices []int) (x, y []float64) {
	return utils.Gather(d.x, indices), utils.Gather(d.y, indices)
}
