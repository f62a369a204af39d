package samples

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	require.Equal(t, []float64{3}, Linspace(3, 4, 1))
	require.Nil(t, Linspace(0, 1, 0))

	x := Linspace(0, 2*math.Pi, 1000)
	require.Len(t, x, 1000)
	require.Equal(t, 0.0, x[0])
	require.InDelta(t, 2*math.Pi, x[999], 1e-14)
}

func TestArange(t *testing.T) {
	require.Equal(t, []float64{0, 1, 2}, Arange(0, 3, 1))
	require.Equal(t, []float64{1, 0.5}, Arange(1, 0.25, -0.5))
	require.Nil(t, Arange(0, 1, 0))
	require.Nil(t, Arange(1, 0, 1))
}

func TestTabulate(t *testing.T) {

	x := []float64{-7.5, -1, -0.1, 0.3, 1.4142135623730951, 2.5, 10}

	reference := map[string]func(float64) float64{
		"sin":      math.Sin,
		"cos":      math.Cos,
		"exp":      math.Exp,
		"tanh":     math.Tanh,
		"gaussian": func(x float64) float64 { return math.Exp(-x * x / 2) },
		"chirp":    func(x float64) float64 { return math.Sin(x * x) },
	}

	for name, f := range reference {
		t.Run(name, func(t *testing.T) {
			y, err := Tabulate(name, x, DefaultPrecision)
			require.NoError(t, err)
			for i := range x {
				require.InDelta(t, f(x[i]), y[i], 1e-13*math.Max(1, math.Abs(f(x[i]))), "x=%v", x[i])
			}
		})
	}

	t.Run("log", func(t *testing.T) {
		y, err := Tabulate("log", []float64{0.5, 1, 2, 100}, DefaultPrecision)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{math.Log(0.5), 0, math.Log(2), math.Log(100)}, y, 1e-14)

		_, err = Tabulate("log", []float64{1, 0}, DefaultPrecision)
		require.ErrorIs(t, err, ErrDomain)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Tabulate("sinc", x, DefaultPrecision)
		require.ErrorIs(t, err, ErrUnknownFunction)
	})

	t.Run("Table", func(t *testing.T) {
		x, y, err := Table("sin", 0, 2*math.Pi, 101, DefaultPrecision)
		require.NoError(t, err)
		require.Len(t, x, 101)
		require.InDelta(t, 1, y[25], 1e-15)
	})

	require.Equal(t, []string{"chirp", "cos", "exp", "gaussian", "log", "sin", "tanh"}, Names())
}
