// Package storage persists reduced-order spline models.
//
// Two formats are supported, selected by the extension of the path:
//
//   - ".txt": a directory holding one text file per field, deg.txt, tol.txt,
//     X.txt, Y.txt and errors.txt, with one value per line.
//   - ".rom" or ".bin": a binary container (see package container), in which
//     the model is a group of datasets deg, tol, X, Y and errors.
//
// Loading a model fits its spline again from the stored knots.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tuneinsight/romspline/greedy"
	"github.com/tuneinsight/romspline/spline"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file extension: must be .txt, .rom or .bin")
)

// DefaultGroup is the container group of a model when none is given.
const DefaultGroup = "model"

// Format is a storage format.
type Format int

const (
	FormatText = Format(iota + 1)
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the storage format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatText, nil
	case ".rom", ".bin":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

type options struct {
	slim   bool
	group  string
	fitter spline.Fitter
}

// Option configures [Write] and [Read].
type Option func(o *options)

// WithSlim omits the error trace when writing.
func WithSlim() Option {
	return func(o *options) {
		o.slim = true
	}
}

// WithGroup sets the container group of the model. It is ignored by the text format.
func WithGroup(name string) Option {
	return func(o *options) {
		o.group = name
	}
}

// WithFitter sets the fitter used to rebuild the spline when reading.
func WithFitter(f spline.Fitter) Option {
	return func(o *options) {
		o.fitter = f
	}
}

func newOptions(opts []Option) (o options) {
	o.group = DefaultGroup
	o.fitter = spline.BSplineFitter{}
	for _, opt := range opts {
		opt(&o)
	}
	return
}

// record is the stored form of a model.
type record struct {
	degree    int
	tolerance float64
	x, y      []float64
	errors    []float64
}

func newRecord(m *greedy.Model, slim bool) (r record) {
	r = record{
		degree:    m.Degree(),
		tolerance: m.Tolerance(),
		x:         m.X(),
		y:         m.Y(),
	}
	if !slim {
		r.errors = m.Errors()
	}
	return
}

func (r record) model(fitter spline.Fitter) (*greedy.Model, error) {
	return greedy.NewModel(fitter, r.degree, r.tolerance, r.x, r.y, r.errors)
}

// Write stores m at path.
func Write(path string, m *greedy.Model, opts ...Option) (err error) {

	if m == nil || m.Interpolant() == nil {
		return fmt.Errorf("cannot Write: %w", greedy.ErrNotReady)
	}

	format, err := FormatOf(path)
	if err != nil {
		return fmt.Errorf("cannot Write: %w", err)
	}

	o := newOptions(opts)
	r := newRecord(m, o.slim)

	switch format {
	case FormatText:
		err = writeText(path, r)
	default:
		err = writeBinary(path, map[string]record{o.group: r})
	}

	if err != nil {
		return fmt.Errorf("cannot Write: %w", err)
	}

	return
}

// Read loads the model stored at path.
func Read(path string, opts ...Option) (m *greedy.Model, err error) {

	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("cannot Read: %w", err)
	}

	o := newOptions(opts)

	var r record
	switch format {
	case FormatText:
		r, err = readText(path)
	default:
		r, err = readBinary(path, o.group)
	}

	if err != nil {
		return nil, fmt.Errorf("cannot Read: %w", err)
	}

	if m, err = r.model(o.fitter); err != nil {
		return nil, fmt.Errorf("cannot Read: %w", err)
	}

	return
}
