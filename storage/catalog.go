package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/pathutils"

	"github.com/tuneinsight/romspline/greedy"
	"github.com/tuneinsight/romspline/spline"
)

const catalogExt = ".rom"

var (
	ErrInvalidName = errors.New("invalid model name")
)

// Catalog is a directory of named models, one binary container per model.
// Loaded and saved models are kept in memory for the cache duration.
type Catalog struct {
	root   string
	fitter spline.Fitter
	cache  *cache.Cache
	logger l.Wrapper
}

// NewCatalog returns a [Catalog] rooted at root, creating the directory if needed.
// A nil fitter defaults to [spline.BSplineFitter] and a nil logger discards every message.
func NewCatalog(root string, cacheDuration time.Duration, fitter spline.Fitter, logger l.Wrapper) (*Catalog, error) {

	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if fitter == nil {
		fitter = spline.BSplineFitter{}
	}

	if err := pathutils.MustDirExists(root); err != nil {
		return nil, fmt.Errorf("cannot NewCatalog: %w", err)
	}

	return &Catalog{
		root:   root,
		fitter: fitter,
		cache:  cache.New(cacheDuration, cacheDuration),
		logger: logger.WithFields(l.StringField(l.ClsKey, "catalog")),
	}, nil
}

func (c *Catalog) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(c.root, name+catalogExt), nil
}

// Save stores m under name, replacing any model with the same name.
func (c *Catalog) Save(name string, m *greedy.Model, opts ...Option) (err error) {

	path, err := c.path(name)
	if err != nil {
		return fmt.Errorf("cannot Save: %w", err)
	}

	// Each model has its own container.
	_ = os.Remove(path)

	if err = Write(path, m, append(opts, WithGroup(DefaultGroup))...); err != nil {
		c.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("save failed")
		return fmt.Errorf("cannot Save: %w", err)
	}

	// The cache holds what Load would read back from disk.
	stored, err := newRecord(m, newOptions(opts).slim).model(c.fitter)
	if err != nil {
		return fmt.Errorf("cannot Save: %w", err)
	}

	c.cache.Set(name, stored, cache.DefaultExpiration)

	c.logger.WithFields(l.StringField("name", name), l.IntField("size", m.Size())).Debug("saved")

	return
}

// Load returns the model stored under name.
func (c *Catalog) Load(name string) (m *greedy.Model, err error) {

	if v, ok := c.cache.Get(name); ok {
		return v.(*greedy.Model), nil
	}

	path, err := c.path(name)
	if err != nil {
		return nil, fmt.Errorf("cannot Load: %w", err)
	}

	if m, err = Read(path, WithFitter(c.fitter)); err != nil {
		return nil, fmt.Errorf("cannot Load: %w", err)
	}

	c.cache.Set(name, m, cache.DefaultExpiration)

	c.logger.WithFields(l.StringField("name", name)).Debug("loaded")

	return
}

// Delete removes the model stored under name.
func (c *Catalog) Delete(name string) (err error) {

	path, err := c.path(name)
	if err != nil {
		return fmt.Errorf("cannot Delete: %w", err)
	}

	c.cache.Delete(name)

	if err = os.Remove(path); err != nil {
		return fmt.Errorf("cannot Delete: %w", err)
	}

	return
}

// Names returns the sorted names of the stored models.
func (c *Catalog) Names() (names []string, err error) {

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("cannot Names: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == catalogExt {
			names = append(names, strings.TrimSuffix(e.Name(), catalogExt))
		}
	}

	sort.Strings(names)

	return
}
