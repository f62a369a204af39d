package greedy

import (
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/tuneinsight/romspline/spline"
)

// Model is a reduced-order spline: the knots selected by a reduction, the spline
// interpolating them and the history of the reduction.
//
// Models are produced by [Reducer.ReduceContext] or rebuilt from stored knots by [NewModel].
// The zero value is not ready for use: its methods return [ErrNotReady].
type Model struct {
	degree    int
	tolerance float64

	x, y []float64

	indices, args []int
	errors        []float64

	length        int
	trainingError float64

	interpolant spline.Interpolant
}

// NewModel rebuilds a [Model] from its knots (x, y), typically loaded from storage,
// by fitting a spline of the given degree. errors is the error trace of the reduction
// that selected the knots and can be nil.
//
// The selection indices, the original data length and the training error of a rebuilt
// model are unknown: [Model.Indices] and [Model.Args] return nil, [Model.Compression]
// returns 0 and [Model.TrainingError] returns NaN.
func NewModel(fitter spline.Fitter, degree int, tolerance float64, x, y, errors []float64) (*Model, error) {

	if fitter == nil {
		fitter = spline.BSplineFitter{}
	}

	s, err := fitter.Fit(x, y, degree)
	if err != nil {
		return nil, fmt.Errorf("cannot NewModel: %w", err)
	}

	var trace []float64
	if errors != nil {
		trace = append([]float64{}, errors...)
	}

	return &Model{
		degree:        degree,
		tolerance:     tolerance,
		x:             append([]float64{}, x...),
		y:             append([]float64{}, y...),
		errors:        trace,
		trainingError: math.NaN(),
		interpolant:   s,
	}, nil
}

func (m *Model) ready() error {
	if m == nil || m.interpolant == nil {
		return ErrNotReady
	}
	return nil
}

// Degree returns the degree of the spline.
func (m *Model) Degree() int {
	return m.degree
}

// Tolerance returns the effective (absolute) tolerance of the reduction.
func (m *Model) Tolerance() float64 {
	return m.tolerance
}

// Size returns the number of knots.
func (m *Model) Size() int {
	return len(m.x)
}

// X returns a copy of the abscissas of the knots.
func (m *Model) X() []float64 {
	return append([]float64{}, m.x...)
}

// Y returns a copy of the ordinates of the knots.
func (m *Model) Y() []float64 {
	return append([]float64{}, m.y...)
}

// Errors returns a copy of the error trace: the largest pointwise error recorded at each
// iteration, excluding the iteration that met the tolerance.
func (m *Model) Errors() []float64 {
	if m.errors == nil {
		return nil
	}
	return append([]float64{}, m.errors...)
}

// Indices returns a copy of the sorted indices of the knots in the reduced data.
func (m *Model) Indices() []int {
	if m.indices == nil {
		return nil
	}
	return append([]int{}, m.indices...)
}

// Args returns a copy of the indices of the knots in selection order.
func (m *Model) Args() []int {
	if m.args == nil {
		return nil
	}
	return append([]int{}, m.args...)
}

// Length returns the number of samples of the reduced data, or 0 if unknown.
func (m *Model) Length() int {
	return m.length
}

// Compression returns the ratio between the number of samples of the reduced data
// and the number of knots, or 0 if the former is unknown.
func (m *Model) Compression() float64 {
	if m.length == 0 || len(m.x) == 0 {
		return 0
	}
	return float64(m.length) / float64(len(m.x))
}

// TrainingError returns the largest pointwise error of the model over the reduced data,
// or NaN if unknown.
func (m *Model) TrainingError() float64 {
	return m.trainingError
}

// Converged returns true if the model meets its tolerance over the reduced data.
// Rebuilt models always return false.
func (m *Model) Converged() bool {
	return m.trainingError < m.tolerance
}

// Interpolant returns the spline of the model, or nil if the model is not ready.
func (m *Model) Interpolant() spline.Interpolant {
	return m.interpolant
}

// Evaluate returns the derivative of the given order of the spline at x.
// Order 0 is the spline itself.
func (m *Model) Evaluate(x float64, order int) (float64, error) {

	if err := m.ready(); err != nil {
		return 0, fmt.Errorf("cannot Evaluate: %w", err)
	}

	if order < 0 {
		return 0, fmt.Errorf("cannot Evaluate: %w: %d", ErrInvalidOrder, order)
	}

	return m.interpolant.Evaluate(x, order), nil
}

// EvaluateSlice is [Model.Evaluate] for each element of x.
func (m *Model) EvaluateSlice(x []float64, order int) ([]float64, error) {

	if err := m.ready(); err != nil {
		return nil, fmt.Errorf("cannot EvaluateSlice: %w", err)
	}

	if order < 0 {
		return nil, fmt.Errorf("cannot EvaluateSlice: %w: %d", ErrInvalidOrder, order)
	}

	return spline.EvaluateSlice(m.interpolant, x, order), nil
}

// Verification is the result of [Model.Verify].
type Verification struct {
	// Errors are the signed errors y[i] - s(x[i]).
	Errors []float64
	// Within is true if every |Errors[i]| <= tolerance.
	Within bool

	MaxAbs float64
	ArgMax int

	// Mean, Median and StandardDeviation describe the absolute errors.
	Mean              float64
	Median            float64
	StandardDeviation float64
}

// Verify evaluates the model on the samples (x, y), for example a validation set
// distinct from the reduced data, and checks them against the tolerance of the model.
func (m *Model) Verify(x, y []float64) (v *Verification, err error) {

	if err = m.ready(); err != nil {
		return nil, fmt.Errorf("cannot Verify: %w", err)
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("cannot Verify: %w: len(x)=%d != len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("cannot Verify: %w", ErrEmptyDomain)
	}

	v = &Verification{Errors: make([]float64, len(x))}

	abs := make([]float64, len(x))
	for i := range x {
		v.Errors[i] = y[i] - m.interpolant.Evaluate(x[i], 0)
		abs[i] = math.Abs(v.Errors[i])
	}

	v.ArgMax = floats.MaxIdx(abs)
	v.MaxAbs = abs[v.ArgMax]
	v.Within = v.MaxAbs <= m.tolerance

	data := stats.Float64Data(abs)

	if v.Mean, err = stats.Mean(data); err != nil {
		return nil, fmt.Errorf("cannot Verify: mean: %w", err)
	}

	if v.Median, err = stats.Median(data); err != nil {
		return nil, fmt.Errorf("cannot Verify: median: %w", err)
	}

	if v.StandardDeviation, err = stats.StandardDeviation(data); err != nil {
		return nil, fmt.Errorf("cannot Verify: standard deviation: %w", err)
	}

	return v, nil
}

// Equal returns true if the two models have the same degree, tolerance, knots and error trace.
// Selection indices and reduction statistics are not compared, so that a model and its stored
// copy are equal.
func (m *Model) Equal(other *Model) bool {
	return m.degree == other.degree &&
		m.tolerance == other.tolerance &&
		cmp.Equal(m.x, other.x, cmpopts.EquateEmpty()) &&
		cmp.Equal(m.y, other.y, cmpopts.EquateEmpty()) &&
		cmp.Equal(m.errors, other.errors, cmpopts.EquateEmpty())
}
