package buffer

import (
	"bufio"
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAndReadUint64Slice(t *testing.T) {

	values := make([]uint64, 37)
	for i := range values {
		values[i] = uint64(i) * 0x0101010101010101
	}

	t.Run("Buffer", func(t *testing.T) {
		buf := NewBufferSize(8 + len(values)<<3)

		_, err := WriteUint64(buf, uint64(len(values)))
		require.NoError(t, err)
		n, err := WriteUint64Slice(buf, values)
		require.NoError(t, err)
		require.Equal(t, int64(len(values)<<3), n)

		r := NewBuffer(buf.Bytes())

		var size uint64
		_, err = ReadUint64(r, &size)
		require.NoError(t, err)
		require.Equal(t, uint64(len(values)), size)

		have := make([]uint64, size)
		_, err = ReadUint64Slice(r, have)
		require.NoError(t, err)
		require.Equal(t, values, have)
	})

	t.Run("Bufio/SmallBuffers", func(t *testing.T) {
		b := new(bytes.Buffer)
		w := bufio.NewWriterSize(b, 16)

		n, err := WriteUint64Slice(w, values)
		require.NoError(t, err)
		require.Equal(t, int64(len(values)<<3), n)
		require.NoError(t, w.Flush())

		r := bufio.NewReaderSize(bytes.NewReader(b.Bytes()), 16)
		have := make([]uint64, len(values))
		_, err = ReadUint64Slice(r, have)
		require.NoError(t, err)
		require.Equal(t, values, have)
	})

	t.Run("ShortRead", func(t *testing.T) {
		buf := NewBufferSize(16)
		_, err := WriteUint64Slice(buf, values[:2])
		require.NoError(t, err)

		have := make([]uint64, 3)
		_, err = ReadUint64Slice(NewBuffer(buf.Bytes()), have)
		require.Error(t, err)
	})
}

func TestWriteAsUint64Float(t *testing.T) {
	values := []float64{0, -1.5, math.Pi, math.Inf(1), 1e-300}

	buf := NewBufferSize(8 * (len(values) + 1))
	_, err := WriteAsUint64[float64](buf, 2.5)
	require.NoError(t, err)
	_, err = WriteAsUint64Slice[float64](buf, values)
	require.NoError(t, err)

	r := NewBuffer(buf.Bytes())

	var f float64
	_, err = ReadAsUint64[float64](r, &f)
	require.NoError(t, err)
	require.Equal(t, 2.5, f)

	have := make([]float64, len(values))
	_, err = ReadAsUint64Slice[float64](r, have)
	require.NoError(t, err)
	require.True(t, EqualAsUint64Slice(values, have))
}

func TestBufferTooSmall(t *testing.T) {
	buf := NewBufferSize(4)
	_, err := WriteUint64(buf, 1)
	require.Error(t, err)
}
