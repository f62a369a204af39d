package spline

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testString(opname string, degree, n int) string {
	return fmt.Sprintf("%s/degree=%d/n=%d", opname, degree, n)
}

func linspace(a, b float64, n int) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return
}

func TestBSpline(t *testing.T) {

	for _, degree := range []int{1, 2, 3, 4, 5} {
		for _, n := range []int{degree + 1, degree + 2, 17, 64} {
			testInterpolation(degree, n, t)
			testPolynomialReproduction(degree, n, t)
		}
	}

	testDerivatives(t)
	testLinear(t)
	testConvergence(t)
	testInvalidInputs(t)
}

func testInterpolation(degree, n int, t *testing.T) {
	t.Run(testString("Interpolation", degree, n), func(t *testing.T) {

		x := linspace(0, 2*math.Pi, n)
		y := make([]float64, n)
		for i := range x {
			y[i] = math.Sin(x[i]) + 0.25*math.Cos(3*x[i])
		}

		s, err := NewBSpline(x, y, degree)
		require.NoError(t, err)
		require.Equal(t, degree, s.Degree())
		require.Len(t, s.Knots(), n+degree+1)
		require.Len(t, s.Coefficients(), n)

		for i := range x {
			require.InDelta(t, y[i], s.Evaluate(x[i], 0), 1e-10)
		}
	})
}

func testPolynomialReproduction(degree, n int, t *testing.T) {
	t.Run(testString("PolynomialReproduction", degree, n), func(t *testing.T) {

		// Irregular abscissas.
		x := make([]float64, n)
		for i := range x {
			u := float64(i) / float64(n-1)
			x[i] = -1 + 2*u*u*(3-2*u)
		}

		p := func(x float64) (y float64) {
			for i := degree; i >= 0; i-- {
				y = y*x + float64(i+1)
			}
			return
		}

		y := make([]float64, n)
		for i := range x {
			y[i] = p(x[i])
		}

		s, err := BSplineFitter{}.Fit(x, y, degree)
		require.NoError(t, err)

		for _, v := range []float64{-1, -0.77, -0.1, 0, 0.33, 0.999, 1} {
			require.InDelta(t, p(v), s.Evaluate(v, 0), 1e-8, "x=%f", v)
		}

		// Outside [x0, xn] the end spans amplify the round-off of the coefficients.
		for _, v := range []float64{1.2, -1.1} {
			require.InEpsilon(t, p(v), s.Evaluate(v, 0), 1e-7, "x=%f", v)
		}
	})
}

func testDerivatives(t *testing.T) {
	t.Run("Derivatives", func(t *testing.T) {

		x := linspace(0, 2, 21)
		y := make([]float64, len(x))
		for i := range x {
			y[i] = x[i] * x[i] * x[i]
		}

		s, err := NewBSpline(x, y, 5)
		require.NoError(t, err)

		for _, v := range []float64{0, 0.37, 1, 1.55, 2} {
			require.InDelta(t, v*v*v, s.Evaluate(v, 0), 1e-9)
			require.InDelta(t, 3*v*v, s.Evaluate(v, 1), 1e-7)
			require.InDelta(t, 6*v, s.Evaluate(v, 2), 1e-5)
			require.InDelta(t, 6, s.Evaluate(v, 3), 1e-3)
		}

		require.Equal(t, 0.0, s.Evaluate(1, 6))
		require.Panics(t, func() { s.Evaluate(1, -1) })

		dy := EvaluateSlice(s, []float64{0.5, 1.5}, 1)
		require.InDelta(t, 0.75, dy[0], 1e-7)
		require.InDelta(t, 6.75, dy[1], 1e-7)
	})
}

func testLinear(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		x := []float64{0, 1, 3, 4}
		y := []float64{0, 2, 0, 1}

		s, err := NewBSpline(x, y, 1)
		require.NoError(t, err)

		require.InDelta(t, 1.0, s.Evaluate(0.5, 0), 1e-14)
		require.InDelta(t, 1.0, s.Evaluate(2, 0), 1e-14)
		require.InDelta(t, 0.5, s.Evaluate(3.5, 0), 1e-14)
		require.InDelta(t, -1.0, s.Evaluate(2, 1), 1e-14)
		require.InDelta(t, 0.0, s.Evaluate(2, 2), 1e-14)
	})
}

func testConvergence(t *testing.T) {
	t.Run("Convergence", func(t *testing.T) {

		xFine := linspace(0, 2*math.Pi, 1000)

		maxErr := func(n int) (m float64) {
			x := linspace(0, 2*math.Pi, n)
			y := make([]float64, n)
			for i := range x {
				y[i] = math.Sin(x[i])
			}
			s, err := NewBSpline(x, y, 5)
			require.NoError(t, err)
			for _, v := range xFine {
				m = math.Max(m, math.Abs(s.Evaluate(v, 0)-math.Sin(v)))
			}
			return
		}

		coarse := maxErr(10)
		fine := maxErr(40)
		require.Less(t, fine, coarse)
		require.Less(t, fine, 1e-5)
	})
}

func testInvalidInputs(t *testing.T) {
	t.Run("InvalidInputs", func(t *testing.T) {

		x := []float64{0, 1, 2, 3, 4, 5}
		y := []float64{0, 1, 4, 9, 16, 25}

		_, err := NewBSpline(x, y[:5], 3)
		require.ErrorIs(t, err, ErrLengthMismatch)

		_, err = NewBSpline(x, y, 0)
		require.ErrorIs(t, err, ErrInvalidDegree)

		_, err = NewBSpline(x, y, 6)
		require.ErrorIs(t, err, ErrInvalidDegree)

		_, err = NewBSpline(x[:3], y[:3], 3)
		require.ErrorIs(t, err, ErrTooFewPoints)

		_, err = NewBSpline([]float64{0, 1, 1, 3, 4, 5}, y, 3)
		require.ErrorIs(t, err, ErrNotStrictlyIncreasing)

		_, err = NewBSpline([]float64{0, 1, 2, 3, 4, math.NaN()}, y, 3)
		require.ErrorIs(t, err, ErrNonFinite)

		_, err = BSplineFitter{}.Fit(x, []float64{0, 1, 4, math.Inf(1), 16, 25}, 3)
		require.ErrorIs(t, err, ErrNonFinite)
	})
}

func ExampleBSplineFitter() {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 8, 27}

	s, err := BSplineFitter{}.Fit(x, y, 3)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.4f %.4f\n", s.Evaluate(1.5, 0), s.Evaluate(1.5, 1))

	// Output:
	// 3.3750 6.7500
}
