// Package samples generates sampling grids and reference tables of common functions.
//
// Tables are computed with arbitrary precision arithmetic and rounded to float64,
// so that their values are correctly rounded for the default precision.
package samples

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tuneinsight/romspline/utils/bignum"
)

// DefaultPrecision is the default precision, in bits, of the tables.
const DefaultPrecision = uint(128)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrDomain          = errors.New("argument outside of the domain of the function")
)

// Linspace returns n evenly spaced values over [a, b], endpoints included.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	default:
		return floats.Span(make([]float64, n), a, b)
	}
}

// Arange returns the values start, start+step, ... strictly before stop.
func Arange(start, stop, step float64) []float64 {

	if step == 0 || math.IsNaN(step) || (stop-start)/step <= 0 {
		return nil
	}

	n := int(math.Ceil((stop - start) / step))
	v := make([]float64, n)
	for i := range v {
		v[i] = start + float64(i)*step
	}

	return v
}

// Function is a real function evaluated with the precision of its argument.
type Function func(x *big.Float) (*big.Float, error)

var functions = map[string]Function{
	"sin": func(x *big.Float) (*big.Float, error) {
		return bignum.Sin(bignum.ReduceAngle(x)), nil
	},
	"cos": func(x *big.Float) (*big.Float, error) {
		return bignum.Cos(bignum.ReduceAngle(x)), nil
	},
	"exp": func(x *big.Float) (*big.Float, error) {
		return bignum.Exp(x), nil
	},
	"log": func(x *big.Float) (*big.Float, error) {
		if x.Sign() <= 0 {
			return nil, ErrDomain
		}
		return bignum.Log(x), nil
	},
	"tanh": func(x *big.Float) (*big.Float, error) {
		return bignum.TanH(x), nil
	},
	// exp(-x^2/2)
	"gaussian": func(x *big.Float) (*big.Float, error) {
		y := new(big.Float).SetPrec(x.Prec()).Mul(x, x)
		y.Quo(y, bignum.NewFloat(-2, x.Prec()))
		return bignum.Exp(y), nil
	},
	// sin(x^2)
	"chirp": func(x *big.Float) (*big.Float, error) {
		y := new(big.Float).SetPrec(x.Prec()).Mul(x, x)
		return bignum.Sin(bignum.ReduceAngle(y)), nil
	},
}

// Names returns the sorted names of the functions known to [Tabulate].
func Names() (names []string) {
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Lookup returns the function with the given name.
func Lookup(name string) (Function, error) {
	f, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, must be one of %v", ErrUnknownFunction, name, Names())
	}
	return f, nil
}

// Tabulate returns the values of the function name at x, computed with prec bits of precision.
func Tabulate(name string, x []float64, prec uint) (y []float64, err error) {

	f, err := Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("cannot Tabulate: %w", err)
	}

	y = make([]float64, len(x))

	for i := range x {

		var v *big.Float
		if v, err = f(bignum.NewFloat(x[i], prec)); err != nil {
			return nil, fmt.Errorf("cannot Tabulate: %s(%v): %w", name, x[i], err)
		}

		y[i], _ = v.Float64()
	}

	return
}

// Table returns n evenly spaced samples of the function name over [a, b].
func Table(name string, a, b float64, n int, prec uint) (x, y []float64, err error) {
	x = Linspace(a, b, n)
	if y, err = Tabulate(name, x, prec); err != nil {
		return nil, nil, err
	}
	return
}
