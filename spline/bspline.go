package spline

import (
	"fmt"
	"math"

	"github.com/tuneinsight/romspline/utils"
)

// BSplineFitter is a [Fitter] producing interpolating [BSpline].
type BSplineFitter struct{}

// Fit returns the interpolating [BSpline] of the given degree through (x, y).
func (BSplineFitter) Fit(x, y []float64, degree int) (Interpolant, error) {
	s, err := NewBSpline(x, y, degree)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// BSpline is a polynomial spline in B-spline form.
//
// Level d of knots and coeffs describes the d-th derivative of the spline,
// a spline of degree-d, so that derivatives evaluate with the same de Boor
// recursion as the spline itself.
type BSpline struct {
	degree int
	knots  [][]float64
	coeffs [][]float64
}

// NewBSpline computes the spline of the given degree interpolating (x, y).
// Interior knots are placed at the data points for odd degrees and at
// the midpoints between data points for even degrees, with degree+1
// coincident knots at each end.
func NewBSpline(x, y []float64, degree int) (s *BSpline, err error) {

	if len(x) != len(y) {
		return nil, fmt.Errorf("cannot NewBSpline: %w: len(x)=%d != len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	if degree < MinDegree || degree > MaxDegree {
		return nil, fmt.Errorf("cannot NewBSpline: %w: degree=%d not in [%d, %d]", ErrInvalidDegree, degree, MinDegree, MaxDegree)
	}

	if len(x) < degree+1 {
		return nil, fmt.Errorf("cannot NewBSpline: %w: %d points for degree %d", ErrTooFewPoints, len(x), degree)
	}

	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("cannot NewBSpline: %w at index %d", ErrNonFinite, i)
		}
	}

	if !utils.IsStrictlyIncreasing(x) {
		return nil, fmt.Errorf("cannot NewBSpline: %w", ErrNotStrictlyIncreasing)
	}

	t := interpolationKnots(x, degree)

	var c []float64
	if c, err = solveCollocation(x, y, t, degree); err != nil {
		return nil, fmt.Errorf("cannot NewBSpline: %w", err)
	}

	s = &BSpline{
		degree: degree,
		knots:  [][]float64{t},
		coeffs: [][]float64{c},
	}

	s.differentiate()

	return s, nil
}

// differentiate populates the derivative levels of the receiver.
func (s *BSpline) differentiate() {
	for d := 1; d <= s.degree; d++ {

		t := s.knots[d-1]
		c := s.coeffs[d-1]
		p := s.degree - d + 1

		dc := make([]float64, len(c)-1)
		for i := range dc {
			if den := t[i+p+1] - t[i+1]; den != 0 {
				dc[i] = float64(p) * (c[i+1] - c[i]) / den
			}
		}

		s.knots = append(s.knots, t[1:len(t)-1])
		s.coeffs = append(s.coeffs, dc)
	}
}

// Degree returns the polynomial degree of the spline.
func (s *BSpline) Degree() int {
	return s.degree
}

// Knots returns a copy of the knot vector of the spline.
func (s *BSpline) Knots() []float64 {
	return append([]float64(nil), s.knots[0]...)
}

// Coefficients returns a copy of the B-spline coefficients of the spline.
func (s *BSpline) Coefficients() []float64 {
	return append([]float64(nil), s.coeffs[0]...)
}

// Evaluate returns the order-th derivative of the spline at x.
// Outside of the interpolation interval the end polynomial pieces are extended.
// It panics if order is negative.
func (s *BSpline) Evaluate(x float64, order int) float64 {

	if order < 0 {
		panic(fmt.Errorf("invalid derivative order: %d", order))
	}

	if order > s.degree {
		return 0
	}

	p := s.degree - order
	t := s.knots[order]
	c := s.coeffs[order]

	return deBoor(t, c, p, findSpan(t, p, len(c), x), x)
}

// deBoor evaluates the spline of degree p with knots t and coefficients c
// at x, where x belongs to the knot span s.
func deBoor(t, c []float64, p, s int, x float64) float64 {

	var d [MaxDegree + 1]float64

	for j := 0; j <= p; j++ {
		d[j] = c[j+s-p]
	}

	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			var alpha float64
			if den := t[j+1+s-r] - t[j+s-p]; den != 0 {
				alpha = (x - t[j+s-p]) / den
			}
			d[j] = (1-alpha)*d[j-1] + alpha*d[j]
		}
	}

	return d[p]
}
