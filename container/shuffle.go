package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/tuneinsight/romspline/utils/structs"
)

var gzipWriters = structs.NewSyncPool(func() *gzip.Writer {
	// BestCompression is a valid level.
	zw, _ := gzip.NewWriterLevel(nil, gzip.BestCompression)
	return zw
})

// shuffle transposes p, seen as a matrix of len(p)/size rows of size bytes,
// so that the i-th bytes of every element are contiguous.
func shuffle(p []byte, size int) (s []byte) {
	n := len(p) / size
	s = make([]byte, len(p))
	for i := 0; i < n; i++ {
		for b := 0; b < size; b++ {
			s[b*n+i] = p[i*size+b]
		}
	}
	return
}

// unshuffle is the inverse of shuffle.
func unshuffle(s []byte, size int) (p []byte) {
	n := len(s) / size
	p = make([]byte, len(s))
	for i := 0; i < n; i++ {
		for b := 0; b < size; b++ {
			p[i*size+b] = s[b*n+i]
		}
	}
	return
}

// compressFloats returns the gzip-compressed byte shuffle of the binary encoding of v.
func compressFloats(v []float64) ([]byte, error) {

	raw, err := structs.Vector[float64](v).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("vector.MarshalBinary: %w", err)
	}

	var buf bytes.Buffer

	zw := gzipWriters.Get()
	defer gzipWriters.Put(zw)
	zw.Reset(&buf)

	if _, err = zw.Write(shuffle(raw, 8)); err != nil {
		return nil, fmt.Errorf("gzip.Write: %w", err)
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip.Close: %w", err)
	}

	return buf.Bytes(), nil
}

// decompressFloats is the inverse of compressFloats.
func decompressFloats(p []byte) ([]float64, error) {

	zr, err := gzip.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip.NewReader: %w", ErrFormat, err)
	}
	defer zr.Close()

	shuffled, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip.Read: %w", ErrFormat, err)
	}

	if len(shuffled) < 8 || len(shuffled)%8 != 0 {
		return nil, fmt.Errorf("%w: float array of %d bytes", ErrFormat, len(shuffled))
	}

	raw := unshuffle(shuffled, 8)

	if size := binary.LittleEndian.Uint64(raw[:8]); size != uint64(len(raw)/8-1) {
		return nil, fmt.Errorf("%w: float array of %d bytes cannot hold %d values", ErrFormat, len(raw), size)
	}

	var v structs.Vector[float64]
	if err = v.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return v, nil
}
