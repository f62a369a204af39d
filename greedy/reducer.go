package greedy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sgostarter/i/l"

	"github.com/tuneinsight/romspline/spline"
)

// Reducer builds reduced-order spline models with a fixed set of [Parameters].
// A Reducer holds no state across reductions and can be used concurrently.
type Reducer struct {
	params Parameters
	fitter spline.Fitter
	logger l.Wrapper
}

// NewReducer instantiates a new [Reducer].
// A nil fitter defaults to [spline.BSplineFitter] and a nil logger discards every message.
func NewReducer(params Parameters, fitter spline.Fitter, logger l.Wrapper) *Reducer {

	if fitter == nil {
		fitter = spline.BSplineFitter{}
	}

	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &Reducer{
		params: params,
		fitter: fitter,
		logger: logger.WithFields(l.StringField(l.ClsKey, "greedyReducer")),
	}
}

// Parameters returns the parameters of the receiver.
func (r *Reducer) Parameters() Parameters {
	return r.params
}

// Reduce is [Reducer.ReduceContext] with a background context.
func (r *Reducer) Reduce(d Domain) (*Model, error) {
	return r.ReduceContext(context.Background(), d)
}

// ReduceXY builds the [Domain] of x and y and reduces it.
// Mismatched or invalid samples are reported before any fit.
func (r *Reducer) ReduceXY(x, y []float64) (*Model, error) {
	d, err := NewDomain(x, y)
	if err != nil {
		return nil, fmt.Errorf("cannot ReduceXY: %w", err)
	}
	return r.Reduce(d)
}

// ReduceContext selects the knots of d greedily and returns the resulting [Model].
//
// Starting from the seed knots, each iteration fits a spline on the current knots, evaluates its
// pointwise error over the whole domain, records the largest error in the error trace and selects
// the sample where it is reached. When the recorded error is below the effective tolerance, the
// sample just selected is discarded along with its trace entry and the loop stops. Otherwise the
// loop runs until n-1 samples are selected, in which case the model is returned unconverged.
//
// The context is checked between iterations.
func (r *Reducer) ReduceContext(ctx context.Context, d Domain) (m *Model, err error) {

	n := d.Len()
	if n == 0 {
		return nil, fmt.Errorf("cannot Reduce: %w", ErrEmptyDomain)
	}

	tol, err := r.params.EffectiveTolerance(d)
	if err != nil {
		return nil, fmt.Errorf("cannot Reduce: %w", err)
	}

	knots, err := Seed(n, r.params.Degree(), r.params.Seeds())
	if err != nil {
		return nil, fmt.Errorf("cannot Reduce: %w", err)
	}

	for _, i := range knots.args {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("cannot Reduce: %w: index %d not in [0, %d)", ErrSeedOutOfRange, i, n)
		}
	}

	logger := r.logger.WithFields(l.IntField("samples", n), l.IntField("degree", r.params.Degree()))
	logger.Debug("enter")
	defer logger.Debug("leave")

	var trace []float64

	for knots.Size()+1 < n {

		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("cannot Reduce: %w", err)
		}

		var s spline.Interpolant
		if s, err = r.fit(d, knots); err != nil {
			return nil, fmt.Errorf("cannot Reduce: %w", err)
		}

		ev := EvaluateErrors(s, d.x, d.y)

		// Round-off can put the largest error on a knot.
		worst := ev.ArgMax
		if knots.Contains(worst) {
			worst = ev.ArgMaxExcluding(knots.Contains)
		}

		// The trace records the largest error, even when worst was moved off a knot.
		trace = append(trace, ev.Max)
		knots.Add(worst)

		if r.params.Verbose() {
			logger.WithFields(l.IntField("size", knots.Size()), l.StringField("error", formatFloat(ev.Max))).Info("iteration")
		}

		if ev.Max < tol {
			knots.Pop()
			trace = trace[:len(trace)-1]
			break
		}
	}

	s, err := r.fit(d, knots)
	if err != nil {
		return nil, fmt.Errorf("cannot Reduce: %w", err)
	}

	final := EvaluateErrors(s, d.x, d.y)

	x, y := d.Subset(knots.indices)

	m = &Model{
		degree:        r.params.Degree(),
		tolerance:     tol,
		x:             x,
		y:             y,
		indices:       knots.Indices(),
		args:          knots.Args(),
		errors:        trace,
		length:        n,
		trainingError: final.Max,
		interpolant:   s,
	}

	if !m.Converged() {
		logger.WithFields(l.IntField("size", knots.Size()), l.StringField("error", formatFloat(final.Max))).Info("tolerance not reached")
	}

	return m, nil
}

func (r *Reducer) fit(d Domain, knots *KnotSet) (s spline.Interpolant, err error) {
	x, y := d.Subset(knots.indices)
	if s, err = r.fitter.Fit(x, y, r.params.Degree()); err != nil {
		return nil, fmt.Errorf("fit on %d knots: %w", len(x), err)
	}
	return
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'e', 6, 64)
}
