package storage

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/romspline/container"
	"github.com/tuneinsight/romspline/greedy"
)

const (
	degKey    = "deg"
	tolKey    = "tol"
	xKey      = "X"
	yKey      = "Y"
	errorsKey = "errors"
)

// writeBinary stores the records in the container at path, one group per record.
// Other groups of an existing container are kept. An existing file that is not a
// container is overwritten.
func writeBinary(path string, records map[string]record) (err error) {

	c, err := container.OpenOrNew(path)
	switch {
	case errors.Is(err, container.ErrFormat), errors.Is(err, container.ErrChecksum):
		c = container.New()
	case err != nil:
		return
	}

	for name, r := range records {
		g := c.CreateGroup(name)
		g.SetInt(degKey, int64(r.degree))
		g.SetFloat(tolKey, r.tolerance)
		g.SetFloats(xKey, r.x)
		g.SetFloats(yKey, r.y)
		if r.errors != nil {
			g.SetFloats(errorsKey, r.errors)
		}
	}

	return c.WriteFile(path)
}

func readBinary(path, group string) (r record, err error) {

	c, err := container.ReadFile(path)
	if err != nil {
		return
	}

	return readGroup(c, group)
}

func readGroup(c *container.Container, group string) (r record, err error) {

	g, err := c.Group(group)
	if err != nil {
		return
	}

	deg, err := g.Int(degKey)
	if err != nil {
		return
	}

	r.degree = int(deg)

	if r.tolerance, err = g.Float(tolKey); err != nil {
		return
	}

	if r.x, err = g.Floats(xKey); err != nil {
		return
	}

	if r.y, err = g.Floats(yKey); err != nil {
		return
	}

	if g.Has(errorsKey) {
		if r.errors, err = g.Floats(errorsKey); err != nil {
			return
		}
	}

	return
}

// WriteEnsemble stores every model of the ensemble in the binary container at path,
// each model in the group of its name. Other groups of an existing container are kept.
func WriteEnsemble(path string, models map[string]*greedy.Model, opts ...Option) (err error) {

	format, err := FormatOf(path)
	if err != nil {
		return fmt.Errorf("cannot WriteEnsemble: %w", err)
	}

	if format != FormatBinary {
		return fmt.Errorf("cannot WriteEnsemble: %w: ensembles require a binary container", ErrUnsupportedFormat)
	}

	o := newOptions(opts)

	records := make(map[string]record, len(models))
	for name, m := range models {
		if m == nil || m.Interpolant() == nil {
			return fmt.Errorf("cannot WriteEnsemble: model %q: %w", name, greedy.ErrNotReady)
		}
		records[name] = newRecord(m, o.slim)
	}

	if err = writeBinary(path, records); err != nil {
		return fmt.Errorf("cannot WriteEnsemble: %w", err)
	}

	return
}

// ReadEnsemble loads every group of the binary container at path as a model.
func ReadEnsemble(path string, opts ...Option) (models map[string]*greedy.Model, err error) {

	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("cannot ReadEnsemble: %w", err)
	}

	if format != FormatBinary {
		return nil, fmt.Errorf("cannot ReadEnsemble: %w: ensembles require a binary container", ErrUnsupportedFormat)
	}

	o := newOptions(opts)

	c, err := container.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot ReadEnsemble: %w", err)
	}

	models = map[string]*greedy.Model{}

	for _, name := range c.Groups() {

		var r record
		if r, err = readGroup(c, name); err != nil {
			return nil, fmt.Errorf("cannot ReadEnsemble: group %q: %w", name, err)
		}

		if models[name], err = r.model(o.fitter); err != nil {
			return nil, fmt.Errorf("cannot ReadEnsemble: group %q: %w", name, err)
		}
	}

	return
}
