package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/sgostarter/i/l"

	"github.com/tuneinsight/romspline/greedy"
	"github.com/tuneinsight/romspline/samples"
	"github.com/tuneinsight/romspline/storage"
)

func reduce(args []string, stdout io.Writer, logger l.Wrapper) (err error) {

	fs := flag.NewFlagSet("reduce", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var seeds intList

	configPath := fs.String("config", "", "YAML configuration file")
	params := fs.String("params", "", "reduction parameters as a JSON string, overrides -config")
	in := fs.String("in", "", "text file of one (y) or two (x, y) columns")
	function := fs.String("func", "sin", fmt.Sprintf("function to tabulate, one of %v", samples.Names()))
	n := fs.Int("n", 1000, "number of samples of the tabulated function")
	a := fs.Float64("a", 0, "lower bound of the tabulated interval")
	b := fs.Float64("b", 2*math.Pi, "upper bound of the tabulated interval")
	deg := fs.Int("deg", greedy.DefaultDegree, "spline degree")
	tol := fs.Float64("tol", greedy.DefaultTolerance, "maximum pointwise error")
	rel := fs.Bool("rel", false, "tolerance relative to max|y|")
	verbose := fs.Bool("v", false, "log every iteration")
	fs.Var(&seeds, "seeds", "comma-separated seed indices")
	out := fs.String("out", "", "output path (.txt, .rom or .bin)")
	slim := fs.Bool("slim", false, "do not store the error trace")
	group := fs.String("group", storage.DefaultGroup, "container group")

	if err = fs.Parse(args); err != nil {
		return
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		if cfg, err = LoadConfig(*configPath); err != nil {
			return
		}
	}

	if *params != "" {
		if err = json.Unmarshal([]byte(*params), &cfg.Parameters); err != nil {
			return fmt.Errorf("-params: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input.File = *in
		case "func":
			cfg.Input.File = ""
			cfg.Input.Function = *function
		case "n":
			cfg.Input.N = *n
		case "a":
			cfg.Input.A = *a
		case "b":
			cfg.Input.B = *b
		case "deg":
			cfg.Parameters.Degree = *deg
		case "tol":
			cfg.Parameters.Tolerance = *tol
		case "rel":
			cfg.Parameters.Relative = *rel
		case "v":
			cfg.Parameters.Verbose = *verbose
		case "seeds":
			cfg.Parameters.Seeds = append([]int{}, seeds...)
		case "out":
			cfg.Output.Path = *out
		case "slim":
			cfg.Output.Slim = *slim
		case "group":
			cfg.Output.Group = *group
		}
	})

	p, err := greedy.NewParametersFromLiteral(cfg.Parameters)
	if err != nil {
		return
	}

	d, err := cfg.Input.Domain()
	if err != nil {
		return
	}

	m, err := greedy.NewReducer(p, nil, logger).Reduce(d)
	if err != nil {
		return
	}

	fmt.Fprintf(stdout, "samples:     %d\n", d.Len())
	fmt.Fprintf(stdout, "knots:       %d\n", m.Size())
	fmt.Fprintf(stdout, "compression: %.4f\n", m.Compression())
	fmt.Fprintf(stdout, "tolerance:   %g\n", m.Tolerance())
	fmt.Fprintf(stdout, "max error:   %g\n", m.TrainingError())
	fmt.Fprintf(stdout, "converged:   %t\n", m.Converged())

	if cfg.Output.Path == "" {
		return
	}

	opts := []storage.Option{storage.WithGroup(cfg.Output.Group)}
	if cfg.Output.Slim {
		opts = append(opts, storage.WithSlim())
	}

	if err = storage.Write(cfg.Output.Path, m, opts...); err != nil {
		return
	}

	fmt.Fprintf(stdout, "written:     %s\n", cfg.Output.Path)

	return
}

func verify(args []string, stdout io.Writer) (err error) {

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stdout)

	cfg := DefaultConfig().Input

	model := fs.String("model", "", "model path")
	group := fs.String("group", storage.DefaultGroup, "container group")
	fs.StringVar(&cfg.File, "in", "", "text file of one (y) or two (x, y) columns")
	fs.StringVar(&cfg.Function, "func", cfg.Function, "function to tabulate")
	fs.IntVar(&cfg.N, "n", cfg.N, "number of samples of the tabulated function")
	fs.Float64Var(&cfg.A, "a", cfg.A, "lower bound of the tabulated interval")
	fs.Float64Var(&cfg.B, "b", cfg.B, "upper bound of the tabulated interval")

	if err = fs.Parse(args); err != nil {
		return
	}

	m, err := readModel(*model, *group)
	if err != nil {
		return
	}

	d, err := cfg.Domain()
	if err != nil {
		return
	}

	v, err := m.Verify(d.X(), d.Y())
	if err != nil {
		return
	}

	x, _ := d.At(v.ArgMax)

	fmt.Fprintf(stdout, "within:    %t\n", v.Within)
	fmt.Fprintf(stdout, "tolerance: %g\n", m.Tolerance())
	fmt.Fprintf(stdout, "max error: %g (x=%g)\n", v.MaxAbs, x)
	fmt.Fprintf(stdout, "mean:      %g\n", v.Mean)
	fmt.Fprintf(stdout, "median:    %g\n", v.Median)
	fmt.Fprintf(stdout, "std dev:   %g\n", v.StandardDeviation)

	if !v.Within {
		return errNotWithin
	}

	return
}

func eval(args []string, stdout io.Writer) (err error) {

	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var x floatList

	model := fs.String("model", "", "model path")
	group := fs.String("group", storage.DefaultGroup, "container group")
	fs.Var(&x, "x", "comma-separated abscissas")
	dx := fs.Int("dx", 0, "derivative order")

	if err = fs.Parse(args); err != nil {
		return
	}

	if len(x) == 0 {
		return errors.New("eval: -x is required")
	}

	m, err := readModel(*model, *group)
	if err != nil {
		return
	}

	y, err := m.EvaluateSlice(x, *dx)
	if err != nil {
		return
	}

	for i := range x {
		fmt.Fprintf(stdout, "%.17g %.17g\n", x[i], y[i])
	}

	return
}

func info(args []string, stdout io.Writer) (err error) {

	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(stdout)

	model := fs.String("model", "", "model path")
	group := fs.String("group", storage.DefaultGroup, "container group")

	if err = fs.Parse(args); err != nil {
		return
	}

	m, err := readModel(*model, *group)
	if err != nil {
		return
	}

	x := m.X()

	fmt.Fprintf(stdout, "degree:    %d\n", m.Degree())
	fmt.Fprintf(stdout, "tolerance: %g\n", m.Tolerance())
	fmt.Fprintf(stdout, "knots:     %d\n", m.Size())
	fmt.Fprintf(stdout, "interval:  [%g, %g]\n", x[0], x[len(x)-1])
	fmt.Fprintf(stdout, "trace:     %d\n", len(m.Errors()))

	return
}

func readModel(path, group string) (*greedy.Model, error) {
	if path == "" {
		return nil, errors.New("-model is required")
	}
	return storage.Read(path, storage.WithGroup(group))
}
