package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/romspline/greedy"
	"github.com/tuneinsight/romspline/samples"
	"github.com/tuneinsight/romspline/storage"
)

// Config is the YAML configuration of the reduce command. Command line flags
// override the values of the configuration file.
//
//	parameters:
//	  degree: 5
//	  tolerance: 1.0e-6
//	  relative: false
//	input:
//	  function: sin
//	  n: 1000
//	  a: 0
//	  b: 6.283185307179586
//	output:
//	  path: sin.rom
//	  slim: false
type Config struct {
	Parameters greedy.ParametersLiteral `yaml:"parameters"`
	Input      InputConfig              `yaml:"input"`
	Output     OutputConfig             `yaml:"output"`
}

// InputConfig selects the data to reduce: a text file of one or two columns,
// or a function tabulated on a regular grid.
type InputConfig struct {
	File      string  `yaml:"file"`
	Function  string  `yaml:"function"`
	N         int     `yaml:"n"`
	A         float64 `yaml:"a"`
	B         float64 `yaml:"b"`
	Precision uint    `yaml:"precision"`
}

// OutputConfig is where and how the model is written.
type OutputConfig struct {
	Path  string `yaml:"path"`
	Slim  bool   `yaml:"slim"`
	Group string `yaml:"group"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Parameters: greedy.DefaultParametersLiteral(),
		Input: InputConfig{
			Function:  "sin",
			N:         1000,
			A:         0,
			B:         2 * math.Pi,
			Precision: samples.DefaultPrecision,
		},
		Output: OutputConfig{
			Group: storage.DefaultGroup,
		},
	}
}

// LoadConfig reads the YAML file at path on top of [DefaultConfig].
func LoadConfig(path string) (cfg Config, err error) {

	cfg = DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the user
	if err != nil {
		return cfg, fmt.Errorf("cannot LoadConfig: %w", err)
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot LoadConfig: %w", err)
	}

	return
}

// Domain returns the data selected by the input configuration.
func (c InputConfig) Domain() (d greedy.Domain, err error) {

	if c.File != "" {
		return readDomain(c.File)
	}

	x, y, err := samples.Table(c.Function, c.A, c.B, c.N, c.Precision)
	if err != nil {
		return
	}

	return greedy.NewDomain(x, y)
}

// readDomain reads a text file of one column (y) or two columns (x, y).
func readDomain(path string) (d greedy.Domain, err error) {

	columns, err := storage.ReadColumns(path)
	if err != nil {
		return
	}

	switch len(columns) {
	case 1:
		return greedy.NewDomainFromOrdinates(columns[0])
	case 2:
		return greedy.NewDomain(columns[0], columns[1])
	default:
		return d, fmt.Errorf("%s: expected one or two columns, got %d", path, len(columns))
	}
}

// intList parses a comma-separated list of integers.
type intList []int

func (v *intList) String() string {
	return fmt.Sprint([]int(*v))
}

func (v *intList) Set(s string) (err error) {
	*v = (*v)[:0]
	for _, field := range strings.Split(s, ",") {
		var i int
		if i, err = cast.ToIntE(strings.TrimSpace(field)); err != nil {
			return
		}
		*v = append(*v, i)
	}
	return
}

// floatList parses a comma-separated list of floats.
type floatList []float64

func (v *floatList) String() string {
	return fmt.Sprint([]float64(*v))
}

func (v *floatList) Set(s string) (err error) {
	*v = (*v)[:0]
	for _, field := range strings.Split(s, ",") {
		var f float64
		if f, err = cast.ToFloat64E(strings.TrimSpace(field)); err != nil {
			return
		}
		*v = append(*v, f)
	}
	return
}

var (
	_ flag.Value = (*intList)(nil)
	_ flag.Value = (*floatList)(nil)
)
