// Package structs implements generic containers with binary codecs.
package structs

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/romspline/utils/buffer"
)

// Vector is a struct wrapping a slice of components of type T.
// T can be uint, uint64, int, int64 or float64.
type Vector[T any] []T

// Size returns the size of the receiver.
func (v Vector[T]) Size() int {
	return len(v)
}

// Clone returns a deep copy of the object.
func (v Vector[T]) Clone() (vcpy Vector[T]) {
	mustBe64Bits[T]()
	vcpy = Vector[T](make([]T, len(v)))
	copy(vcpy, v)
	return
}

// BinarySize returns the serialized size of the object in bytes.
func (v Vector[T]) BinarySize() (size int) {
	mustBe64Bits[T]()
	return 8 + len(v)*8
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see romspline/utils/buffer/writer.go),
// it will be wrapped into a bufio.Writer. Since this requires allocations, it
// is preferable to pass a buffer.Writer directly:
//
//   - When writing multiple times to a io.Writer, it is preferable to first wrap the
//     io.Writer in a pre-allocated bufio.Writer.
//   - When writing to a pre-allocated var b []byte, it is preferable to pass
//     buffer.NewBuffer(b) as w (see romspline/utils/buffer/buffer.go).
func (v Vector[T]) WriteTo(w io.Writer) (n int64, err error) {

	mustBe64Bits[T]()

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, len(v)); err != nil {
			return inc, fmt.Errorf("buffer.WriteAsUint64[int]: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteAsUint64Slice[T](w, v); err != nil {
			var t T
			return n + inc, fmt.Errorf("buffer.WriteAsUint64Slice[%T]: %w", t, err)
		}

		return n + inc, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see romspline/utils/buffer/reader.go),
// it will be wrapped into a bufio.Reader.
func (v *Vector[T]) ReadFrom(r io.Reader) (n int64, err error) {

	mustBe64Bits[T]()

	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		var size int

		if inc, err = buffer.ReadAsUint64[int](r, &size); err != nil {
			return inc, fmt.Errorf("buffer.ReadAsUint64[int]: %w", err)
		}

		n += inc

		if size < 0 {
			return n, fmt.Errorf("cannot ReadFrom: invalid vector size %d", size)
		}

		if cap(*v) < size {
			*v = make([]T, size)
		}

		*v = (*v)[:size]

		if inc, err = buffer.ReadAsUint64Slice[T](r, *v); err != nil {
			var t T
			return n + inc, fmt.Errorf("buffer.ReadAsUint64Slice[%T]: %w", t, err)
		}

		return n + inc, nil

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (v Vector[T]) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (v *Vector[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = v.ReadFrom(buffer.NewBuffer(p))
	return
}

// Equal performs a bitwise deep equal.
func (v Vector[T]) Equal(other Vector[T]) (isEqual bool) {
	mustBe64Bits[T]()
	return buffer.EqualAsUint64Slice([]T(v), []T(other))
}

func mustBe64Bits[T any]() {
	var t T
	switch any(t).(type) {
	case uint, uint64, int, int64, float64:
	default:
		panic(fmt.Errorf("vector component of type %T is not a 64-bit numeric type", t))
	}
}
