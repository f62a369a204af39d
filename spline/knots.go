package spline

import (
	"sort"
)

// interpolationKnots returns the len(x)+degree+1 knots of the interpolating spline.
func interpolationKnots(x []float64, degree int) (t []float64) {

	n := len(x)

	t = make([]float64, n+degree+1)

	for i := 0; i <= degree; i++ {
		t[i] = x[0]
		t[n+i] = x[n-1]
	}

	half := (degree + 1) >> 1

	for j := 0; j < n-degree-1; j++ {
		if degree&1 == 1 {
			t[degree+1+j] = x[j+half]
		} else {
			t[degree+1+j] = 0.5 * (x[j+half] + x[j+half+1])
		}
	}

	return
}

// findSpan returns the index s in [p, m-1] of the knot span [t[s], t[s+1])
// containing x, for a spline of degree p with m coefficients.
// Abscissas outside of [t[p], t[m]] are mapped to the first or last span.
func findSpan(t []float64, p, m int, x float64) (s int) {

	s = sort.Search(len(t), func(i int) bool { return t[i] > x }) - 1

	if s < p {
		return p
	}

	if s > m-1 {
		return m - 1
	}

	return
}

// basisFuns writes in N the p+1 non-zero B-splines of degree p on the
// span s at x, N[r] being the value of the (s-p+r)-th B-spline.
func basisFuns(t []float64, p, s int, x float64, N []float64) {

	var left, right [MaxDegree + 1]float64

	N[0] = 1

	for j := 1; j <= p; j++ {

		left[j] = x - t[s+1-j]
		right[j] = t[s+j] - x

		var saved float64

		for r := 0; r < j; r++ {
			var temp float64
			if den := right[r+1] + left[j-r]; den != 0 {
				temp = N[r] / den
			}
			N[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}

		N[j] = saved
	}
}
