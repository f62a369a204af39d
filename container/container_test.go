package container

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testContainer() *Container {
	c := New()

	g := c.CreateGroup("model")
	g.SetInt("deg", 5)
	g.SetFloat("tol", 1e-6)
	g.SetFloats("X", []float64{0, 0.5, 1, 1.5, 2, math.Pi})
	g.SetFloats("empty", nil)

	h := c.CreateGroup("other")
	h.SetInt("negative", -42)
	h.SetFloats("Y", []float64{-1, math.SmallestNonzeroFloat64, math.MaxFloat64})

	return c
}

func TestShuffle(t *testing.T) {
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	s := shuffle(p, 8)
	require.Equal(t, []byte{1, 9, 2, 10, 3, 11, 4, 12, 5, 13, 6, 14, 7, 15, 8, 16}, s)
	require.Equal(t, p, unshuffle(s, 8))
}

func TestContainer(t *testing.T) {

	t.Run("Accessors", func(t *testing.T) {

		c := testContainer()
		require.Equal(t, []string{"model", "other"}, c.Groups())

		g, err := c.Group("model")
		require.NoError(t, err)
		require.Equal(t, []string{"X", "deg", "empty", "tol"}, g.Names())

		deg, err := g.Int("deg")
		require.NoError(t, err)
		require.Equal(t, int64(5), deg)

		_, err = g.Float("deg")
		require.ErrorIs(t, err, ErrFormat)

		_, err = g.Floats("missing")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = c.Group("missing")
		require.ErrorIs(t, err, ErrNotFound)

		kind, err := g.Kind("X")
		require.NoError(t, err)
		require.Equal(t, KindFloats, kind)

		g.Delete("X")
		require.False(t, g.Has("X"))

		c.RemoveGroup("other")
		require.False(t, c.HasGroup("other"))
	})

	t.Run("MarshalBinary", func(t *testing.T) {

		c := testContainer()

		p, err := c.MarshalBinary()
		require.NoError(t, err)

		other := New()
		require.NoError(t, other.UnmarshalBinary(p))
		require.Equal(t, c.Groups(), other.Groups())

		for _, name := range c.Groups() {
			g, err := c.Group(name)
			require.NoError(t, err)
			h, err := other.Group(name)
			require.NoError(t, err)
			require.True(t, cmp.Equal(g.datasets, h.datasets, cmp.AllowUnexported(dataset{}), cmp.Comparer(equalFloats)))
		}

		q, err := other.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, p, q)
	})

	t.Run("WriteToReadFrom", func(t *testing.T) {

		c := testContainer()

		var buf bytes.Buffer
		n, err := c.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), n)

		other := New()
		m, err := other.ReadFrom(&buf)
		require.NoError(t, err)
		require.Equal(t, n, m)

		g, err := other.Group("other")
		require.NoError(t, err)
		v, err := g.Int("negative")
		require.NoError(t, err)
		require.Equal(t, int64(-42), v)
	})

	t.Run("Corrupted", func(t *testing.T) {

		p, err := testContainer().MarshalBinary()
		require.NoError(t, err)

		q := append([]byte{}, p...)
		q[len(magic)+3] ^= 1
		require.ErrorIs(t, New().UnmarshalBinary(q), ErrChecksum)

		require.ErrorIs(t, New().UnmarshalBinary(p[:10]), ErrFormat)

		require.ErrorIs(t, New().UnmarshalBinary(nil), ErrFormat)
	})

	t.Run("Files", func(t *testing.T) {

		path := filepath.Join(t.TempDir(), "data.rom")

		c, err := OpenOrNew(path)
		require.NoError(t, err)
		require.Empty(t, c.Groups())

		require.NoError(t, testContainer().WriteFile(path))

		c, err = OpenOrNew(path)
		require.NoError(t, err)
		require.Equal(t, []string{"model", "other"}, c.Groups())

		// Replacing a group keeps the others.
		c.CreateGroup("model").SetInt("deg", 3)
		require.NoError(t, c.WriteFile(path))

		c, err = ReadFile(path)
		require.NoError(t, err)
		g, err := c.Group("model")
		require.NoError(t, err)
		require.Equal(t, []string{"deg"}, g.Names())
		require.True(t, c.HasGroup("other"))

		_, err = ReadFile(filepath.Join(t.TempDir(), "missing.rom"))
		require.Error(t, err)
	})
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}
