package greedy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestModel(t *testing.T) {

	t.Run("NotReady", func(t *testing.T) {

		var m Model

		_, err := m.Evaluate(0, 0)
		require.ErrorIs(t, err, ErrNotReady)

		_, err = m.EvaluateSlice([]float64{0}, 0)
		require.ErrorIs(t, err, ErrNotReady)

		_, err = m.Verify([]float64{0}, []float64{0})
		require.ErrorIs(t, err, ErrNotReady)

		var nilModel *Model
		_, err = nilModel.Evaluate(0, 0)
		require.ErrorIs(t, err, ErrNotReady)

		require.False(t, m.Converged())
		require.Equal(t, 0.0, m.Compression())
	})

	d := sinDomain(t, 500)

	pl := DefaultParametersLiteral()
	pl.Tolerance = 1e-5
	m, err := newTestReducer(t, pl, nil).Reduce(d)
	require.NoError(t, err)

	t.Run("Evaluate", func(t *testing.T) {

		for _, x := range []float64{0.1, 1, 2.5, 4, 6.2} {
			v, err := m.Evaluate(x, 0)
			require.NoError(t, err)
			require.InDelta(t, math.Sin(x), v, 1e-5)

			dv, err := m.Evaluate(x, 1)
			require.NoError(t, err)
			require.InDelta(t, math.Cos(x), dv, 1e-3)
		}

		_, err := m.Evaluate(1, -1)
		require.ErrorIs(t, err, ErrInvalidOrder)

		vs, err := m.EvaluateSlice([]float64{0, math.Pi / 2}, 0)
		require.NoError(t, err)
		require.InDelta(t, 0, vs[0], 1e-5)
		require.InDelta(t, 1, vs[1], 1e-5)
	})

	t.Run("Verify", func(t *testing.T) {

		// Validation set between the training samples.
		x := make([]float64, 777)
		floats.Span(x, 0.001, 2*math.Pi-0.001)
		y := make([]float64, len(x))
		for i := range x {
			y[i] = math.Sin(x[i])
		}

		v, err := m.Verify(x, y)
		require.NoError(t, err)
		require.Len(t, v.Errors, len(x))
		require.Less(t, v.MaxAbs, 1e-4)
		require.Equal(t, math.Abs(v.Errors[v.ArgMax]), v.MaxAbs)
		require.LessOrEqual(t, v.StandardDeviation, v.MaxAbs)

		var sum float64
		for _, e := range v.Errors {
			sum += math.Abs(e)
		}
		require.InDelta(t, sum/float64(len(x)), v.Mean, 1e-15)
		require.GreaterOrEqual(t, v.Median, 0.0)
		require.LessOrEqual(t, v.Median, v.MaxAbs)

		y[10] += 1
		v, err = m.Verify(x, y)
		require.NoError(t, err)
		require.False(t, v.Within)
		require.Equal(t, 10, v.ArgMax)
		require.Greater(t, v.Errors[10], 0.0)

		_, err = m.Verify(x, y[:3])
		require.ErrorIs(t, err, ErrLengthMismatch)

		_, err = m.Verify(nil, nil)
		require.ErrorIs(t, err, ErrEmptyDomain)
	})

	t.Run("NewModel", func(t *testing.T) {

		loaded, err := NewModel(nil, m.Degree(), m.Tolerance(), m.X(), m.Y(), m.Errors())
		require.NoError(t, err)

		require.True(t, m.Equal(loaded))
		require.Nil(t, loaded.Indices())
		require.Nil(t, loaded.Args())
		require.Equal(t, 0.0, loaded.Compression())
		require.True(t, math.IsNaN(loaded.TrainingError()))
		require.False(t, loaded.Converged())

		for _, x := range []float64{0.3, 3.3} {
			a, err := m.Evaluate(x, 0)
			require.NoError(t, err)
			b, err := loaded.Evaluate(x, 0)
			require.NoError(t, err)
			require.Equal(t, a, b)
		}

		other, err := NewModel(nil, m.Degree(), m.Tolerance()*2, m.X(), m.Y(), m.Errors())
		require.NoError(t, err)
		require.False(t, m.Equal(other))

		_, err = NewModel(nil, 5, 1, []float64{0, 1}, []float64{0, 1}, nil)
		require.Error(t, err)
	})
}
