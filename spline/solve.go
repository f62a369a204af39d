package spline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// solveCollocation returns the coefficients c of the spline of degree p with
// knots t such that sum_j c[j] B_j(x[i]) = y[i] for every i.
//
// The collocation matrix is banded; it is stored in a mat.BandDense whose upper
// bandwidth leaves room for the fill-in of the partial pivoting.
func solveCollocation(x, y, t []float64, p int) (c []float64, err error) {

	n := len(x)

	spans := make([]int, n)

	var kl, ku int
	for i := range x {
		s := findSpan(t, p, n, x[i])
		spans[i] = s
		kl = max(kl, i-(s-p))
		ku = max(ku, s-i)
	}

	kl = min(kl, n-1)
	kuf := min(kl+ku, n-1)

	a := mat.NewBandDense(n, n, kl, kuf, nil)

	N := make([]float64, p+1)
	for i := range x {
		s := spans[i]
		basisFuns(t, p, s, x[i], N)
		for r := 0; r <= p; r++ {
			a.SetBand(i, s-p+r, N[r])
		}
	}

	c = make([]float64, n)
	copy(c, y)

	if err = solveBandInPlace(a, kl, kuf, c); err != nil {
		return nil, err
	}

	return c, nil
}

// solveBandInPlace solves a * z = b by Gaussian elimination with partial pivoting,
// writing z in b. The matrix a has lower bandwidth kl and must provide an upper
// bandwidth of at least kuf = kl + ku; it is overwritten.
func solveBandInPlace(a *mat.BandDense, kl, kuf int, b []float64) (err error) {

	n := len(b)

	for c := 0; c < n; c++ {

		last := min(n-1, c+kl)
		right := min(n-1, c+kuf)

		p, pv := c, math.Abs(a.At(c, c))
		for r := c + 1; r <= last; r++ {
			if v := math.Abs(a.At(r, c)); v > pv {
				p, pv = r, v
			}
		}

		if pv == 0 {
			return fmt.Errorf("%w: zero pivot at column %d", ErrSingular, c)
		}

		if p != c {
			for j := c; j <= right; j++ {
				vc, vp := a.At(c, j), a.At(p, j)
				a.SetBand(c, j, vp)
				a.SetBand(p, j, vc)
			}
			b[c], b[p] = b[p], b[c]
		}

		pivot := a.At(c, c)

		for r := c + 1; r <= last; r++ {

			f := a.At(r, c) / pivot

			if f == 0 {
				continue
			}

			a.SetBand(r, c, 0)

			for j := c + 1; j <= right; j++ {
				a.SetBand(r, j, a.At(r, j)-f*a.At(c, j))
			}

			b[r] -= f * b[c]
		}
	}

	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for j := r + 1; j <= min(n-1, r+kuf); j++ {
			sum -= a.At(r, j) * b[j]
		}
		b[r] = sum / a.At(r, r)
	}

	return
}
