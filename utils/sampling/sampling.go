// Package sampling implements deterministic and secure sampling of bytes and floats.
package sampling

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Float64 reads 8 bytes from r and returns a float uniformly distributed in [0, 1)
// built from the 53 most significant bits.
func Float64(r io.Reader) (f float64, err error) {
	var b [8]byte
	if _, err = io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("cannot Float64: %w", err)
	}
	return float64(binary.LittleEndian.Uint64(b[:])>>11) / (1 << 53), nil
}

// Uniform fills out with floats uniformly distributed in [min, max) read from r.
func Uniform(r io.Reader, min, max float64, out []float64) (err error) {
	var f float64
	for i := range out {
		if f, err = Float64(r); err != nil {
			return
		}
		out[i] = min + f*(max-min)
	}
	return
}
