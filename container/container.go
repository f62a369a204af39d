// Package container implements a small self-describing binary file format for
// numerical data: a container holds named groups, each group holding named
// datasets that are either integer scalars, float scalars or float arrays.
//
// Float arrays are byte-shuffled and gzip-compressed. The serialized container
// ends with a BLAKE3 checksum of its content, which is verified on read.
package container

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotFound = errors.New("not found")
	ErrFormat   = errors.New("malformed container")
	ErrChecksum = errors.New("checksum mismatch")
)

// Kind is the type of a dataset.
type Kind uint8

const (
	KindInt    = Kind(1)
	KindFloat  = Kind(2)
	KindFloats = Kind(3)
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindFloats:
		return "floats"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type dataset struct {
	kind   Kind
	int    int64
	float  float64
	floats []float64
}

// Group is a named collection of datasets.
type Group struct {
	datasets map[string]*dataset
}

// Container is a collection of named groups.
type Container struct {
	groups map[string]*Group
}

// New returns an empty [Container].
func New() *Container {
	return &Container{groups: map[string]*Group{}}
}

// CreateGroup creates an empty group, replacing any existing group with the same name.
func (c *Container) CreateGroup(name string) *Group {
	g := &Group{datasets: map[string]*dataset{}}
	c.groups[name] = g
	return g
}

// Group returns the group with the given name.
func (c *Container) Group(name string) (*Group, error) {
	g, ok := c.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	return g, nil
}

// HasGroup returns true if the container holds a group with the given name.
func (c *Container) HasGroup(name string) bool {
	_, ok := c.groups[name]
	return ok
}

// RemoveGroup removes the group with the given name, if any.
func (c *Container) RemoveGroup(name string) {
	delete(c.groups, name)
}

// Groups returns the sorted names of the groups.
func (c *Container) Groups() []string {
	return sortedKeys(c.groups)
}

// SetInt sets the integer scalar name.
func (g *Group) SetInt(name string, v int64) {
	g.datasets[name] = &dataset{kind: KindInt, int: v}
}

// SetFloat sets the float scalar name.
func (g *Group) SetFloat(name string, v float64) {
	g.datasets[name] = &dataset{kind: KindFloat, float: v}
}

// SetFloats sets the float array name to a copy of v.
func (g *Group) SetFloats(name string, v []float64) {
	g.datasets[name] = &dataset{kind: KindFloats, floats: append([]float64{}, v...)}
}

// Has returns true if the group holds a dataset with the given name.
func (g *Group) Has(name string) bool {
	_, ok := g.datasets[name]
	return ok
}

// Kind returns the kind of the dataset name.
func (g *Group) Kind(name string) (Kind, error) {
	d, ok := g.datasets[name]
	if !ok {
		return 0, fmt.Errorf("dataset %q: %w", name, ErrNotFound)
	}
	return d.kind, nil
}

// Delete removes the dataset name, if any.
func (g *Group) Delete(name string) {
	delete(g.datasets, name)
}

// Names returns the sorted names of the datasets.
func (g *Group) Names() []string {
	return sortedKeys(g.datasets)
}

func (g *Group) get(name string, kind Kind) (*dataset, error) {
	d, ok := g.datasets[name]
	if !ok {
		return nil, fmt.Errorf("dataset %q: %w", name, ErrNotFound)
	}
	if d.kind != kind {
		return nil, fmt.Errorf("dataset %q: %w: kind is %s, not %s", name, ErrFormat, d.kind, kind)
	}
	return d, nil
}

// Int returns the integer scalar name.
func (g *Group) Int(name string) (int64, error) {
	d, err := g.get(name, KindInt)
	if err != nil {
		return 0, err
	}
	return d.int, nil
}

// Float returns the float scalar name.
func (g *Group) Float(name string) (float64, error) {
	d, err := g.get(name, KindFloat)
	if err != nil {
		return 0, err
	}
	return d.float, nil
}

// Floats returns a copy of the float array name.
func (g *Group) Floats(name string) ([]float64, error) {
	d, err := g.get(name, KindFloats)
	if err != nil {
		return nil, err
	}
	return append([]float64{}, d.floats...), nil
}

func sortedKeys[V any](m map[string]V) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
