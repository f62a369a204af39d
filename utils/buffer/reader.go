package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// ReadAsUint64 reads an uint64 from r and stores the result into c
// by casting &c to an *uint64.
// User must ensure that T can be stored in an uint64.
func ReadAsUint64[T any](r Reader, c *T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return ReadUint64(r, (*uint64)(unsafe.Pointer(c)))
}

// ReadAsUint64Slice reads a slice of uint64 from r and stores the result into c
// by casting &c to an *[]uint64.
// User must ensure that T can be stored in an uint64.
func ReadAsUint64Slice[T any](r Reader, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return ReadUint64Slice(r, *(*[]uint64)(unsafe.Pointer(&c)))
}

// Read reads exactly len(c) bytes from r into c.
func Read(r Reader, c []byte) (n int64, err error) {
	nint, err := io.ReadFull(r, c)
	return int64(nint), err
}

// ReadUint8 reads a byte from r and stores it into c.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}

	var bb = [1]byte{}

	if n, err = Read(r, bb[:]); err != nil {
		return
	}

	*c = bb[0]

	return n, nil
}

// ReadUint64 reads an uint64 from r and stores it into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb = [8]byte{}

	if n, err = Read(r, bb[:]); err != nil {
		return
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return n, nil
}

// ReadUint64Slice reads len(c) uint64 from r and stores them into c.
func ReadUint64Slice(r Reader, c []uint64) (n int64, err error) {

	// c is empty, return
	if len(c) == 0 {
		return
	}

	var slice []byte

	// Avoid EOF
	size := r.Size()
	if len(c)<<3 < size {
		size = len(c) << 3
	}

	if slice, err = r.Peek(size); err != nil && err != io.EOF {
		return
	}

	buffered := len(slice) >> 3

	if buffered == 0 {
		return 0, fmt.Errorf("cannot ReadUint64Slice: %w", io.ErrUnexpectedEOF)
	}

	N := len(c)
	if buffered < N {
		N = buffered
	}

	for i, j := 0, 0; i < N; i, j = i+1, j+8 {
		c[i] = binary.LittleEndian.Uint64(slice[j:])
	}

	var inc int
	if inc, err = r.Discard(N << 3); err != nil {
		return n + int64(inc), err
	}

	n += int64(inc)

	// Then recurses on itself with the remaining slice
	if N < len(c) {
		var inc64 int64
		inc64, err = ReadUint64Slice(r, c[N:])
		return n + inc64, err
	}

	return n, nil
}

// EqualAsUint64Slice casts &[]T into *[]uint64 and performs a comparison.
// User must ensure that T can be stored in an uint64.
func EqualAsUint64Slice[T any](a, b []T) bool {

	if len(a) != len(b) {
		return false
	}

	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	aU64 := *(*[]uint64)(unsafe.Pointer(&a))
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	bU64 := *(*[]uint64)(unsafe.Pointer(&b))

	for i := range aU64 {
		if aU64[i] != bU64[i] {
			return false
		}
	}

	return true
}
