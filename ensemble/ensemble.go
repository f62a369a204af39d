// Package ensemble reduces collections of independent data sets concurrently
// and summarizes the resulting models.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/montanaflynn/stats"
	"github.com/sgostarter/i/l"

	"github.com/tuneinsight/romspline/greedy"
	"github.com/tuneinsight/romspline/utils/concurrency"
	"github.com/tuneinsight/romspline/utils/sampling"
)

var (
	ErrEmptyEnsemble = errors.New("empty ensemble")
)

// Run reduces every domain with the given parameters using up to workers concurrent reducers,
// and returns the models in the order of the domains. If workers is not positive, it defaults
// to runtime.NumCPU(). The first error aborts the remaining reductions.
func Run(ctx context.Context, domains []greedy.Domain, params greedy.Parameters, workers int, logger l.Wrapper) (models []*greedy.Model, err error) {

	if len(domains) == 0 {
		return nil, fmt.Errorf("cannot Run: %w", ErrEmptyEnsemble)
	}

	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "ensemble"))

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	workers = min(workers, len(domains))

	reducers := make([]*greedy.Reducer, workers)
	for i := range reducers {
		reducers[i] = greedy.NewReducer(params, nil, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := concurrency.NewResourceManager(reducers)

	models = make([]*greedy.Model, len(domains))

	for i := range domains {
		i := i
		m.Run(func(r *greedy.Reducer) (err error) {

			if models[i], err = r.ReduceContext(ctx, domains[i]); err != nil {
				cancel()
				logger.WithFields(l.ErrorField(err), l.IntField("member", i)).Error("reduction failed")
				return fmt.Errorf("member %d: %w", i, err)
			}

			logger.WithFields(l.IntField("member", i), l.IntField("size", models[i].Size())).Debug("reduced")

			return
		})
	}

	if err = m.Wait(); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}

	return
}

// Perturb returns members copies of d whose ordinates are perturbed by an additive noise
// uniformly distributed in [-amplitude, amplitude). The noise is generated from key, so that
// the same key always yields the same ensemble. A nil key draws the noise from crypto/rand.
func Perturb(d greedy.Domain, members int, amplitude float64, key []byte) (domains []greedy.Domain, err error) {

	if members <= 0 {
		return nil, fmt.Errorf("cannot Perturb: %w", ErrEmptyEnsemble)
	}

	var prng sampling.PRNG
	if key == nil {
		prng, err = sampling.NewPRNG()
	} else {
		prng, err = sampling.NewKeyedPRNG(key)
	}

	if err != nil {
		return nil, fmt.Errorf("cannot Perturb: %w", err)
	}

	x := d.X()
	noise := make([]float64, d.Len())

	domains = make([]greedy.Domain, members)

	for i := range domains {

		if err = sampling.Uniform(prng, -amplitude, amplitude, noise); err != nil {
			return nil, fmt.Errorf("cannot Perturb: %w", err)
		}

		y := d.Y()
		for j := range y {
			y[j] += noise[j]
		}

		if domains[i], err = greedy.NewDomain(x, y); err != nil {
			return nil, fmt.Errorf("cannot Perturb: member %d: %w", i, err)
		}
	}

	return
}

// Statistics are descriptive statistics of a sample.
type Statistics struct {
	Min               float64
	Max               float64
	Mean              float64
	Median            float64
	StandardDeviation float64
}

func describe(data stats.Float64Data) (s Statistics, err error) {

	if s.Min, err = data.Min(); err != nil {
		return
	}

	if s.Max, err = data.Max(); err != nil {
		return
	}

	if s.Mean, err = data.Mean(); err != nil {
		return
	}

	if s.Median, err = data.Median(); err != nil {
		return
	}

	s.StandardDeviation, err = data.StandardDeviation()

	return
}

// Summary describes the models of an ensemble.
type Summary struct {
	Members     int
	Converged   int
	Size        Statistics
	Compression Statistics
}

// Summarize returns the [Summary] of models.
func Summarize(models []*greedy.Model) (s Summary, err error) {

	if len(models) == 0 {
		return s, fmt.Errorf("cannot Summarize: %w", ErrEmptyEnsemble)
	}

	sizes := make(stats.Float64Data, len(models))
	compressions := make(stats.Float64Data, len(models))

	for i, m := range models {
		if m == nil {
			return s, fmt.Errorf("cannot Summarize: member %d: %w", i, greedy.ErrNotReady)
		}
		sizes[i] = float64(m.Size())
		compressions[i] = m.Compression()
		if m.Converged() {
			s.Converged++
		}
	}

	s.Members = len(models)

	if s.Size, err = describe(sizes); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	if s.Compression, err = describe(compressions); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	return
}
