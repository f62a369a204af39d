package container

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/zeebo/blake3"

	"github.com/tuneinsight/romspline/utils/buffer"
)

const (
	magic   = "ROMC"
	version = uint8(1)

	checksumSize = 32
)

// MarshalBinary encodes the container into a binary form on a newly allocated slice of bytes.
// Groups and datasets are written in lexicographic order, so that equal containers have equal encodings.
func (c *Container) MarshalBinary() (p []byte, err error) {

	var body bytes.Buffer
	w := bufio.NewWriter(&body)

	if err = c.writeBody(w); err != nil {
		return nil, fmt.Errorf("cannot MarshalBinary: %w", err)
	}

	if err = w.Flush(); err != nil {
		return nil, fmt.Errorf("cannot MarshalBinary: %w", err)
	}

	sum := blake3.Sum256(body.Bytes())

	return append(body.Bytes(), sum[:]...), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary or WriteTo,
// replacing the content of the receiver. It returns [ErrChecksum] if the content
// does not match its checksum.
func (c *Container) UnmarshalBinary(p []byte) (err error) {

	if len(p) < len(magic)+1+checksumSize {
		return fmt.Errorf("cannot UnmarshalBinary: %w: %d bytes", ErrFormat, len(p))
	}

	body, trailer := p[:len(p)-checksumSize], p[len(p)-checksumSize:]

	if sum := blake3.Sum256(body); !bytes.Equal(sum[:], trailer) {
		return fmt.Errorf("cannot UnmarshalBinary: %w", ErrChecksum)
	}

	other := New()
	if err = other.readBody(buffer.NewBuffer(body)); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}

	*c = *other

	return nil
}

// WriteTo writes the serialized container on w. It implements the io.WriterTo interface.
func (c *Container) WriteTo(w io.Writer) (n int64, err error) {
	p, err := c.MarshalBinary()
	if err != nil {
		return 0, err
	}
	inc, err := w.Write(p)
	return int64(inc), err
}

// ReadFrom reads a serialized container from r until EOF. It implements the io.ReaderFrom interface.
func (c *Container) ReadFrom(r io.Reader) (n int64, err error) {
	p, err := io.ReadAll(r)
	if err != nil {
		return int64(len(p)), fmt.Errorf("cannot ReadFrom: %w", err)
	}
	return int64(len(p)), c.UnmarshalBinary(p)
}

// ReadFile reads the container stored at path.
func ReadFile(path string) (c *Container, err error) {

	p, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot ReadFile: %w", err)
	}

	c = New()
	if err = c.UnmarshalBinary(p); err != nil {
		return nil, fmt.Errorf("cannot ReadFile %s: %w", path, err)
	}

	return
}

// OpenOrNew reads the container stored at path, or returns an empty container if path does not exist.
func OpenOrNew(path string) (*Container, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return ReadFile(path)
}

// WriteFile stores the container at path, truncating any existing file.
func (c *Container) WriteFile(path string) (err error) {

	p, err := c.MarshalBinary()
	if err != nil {
		return fmt.Errorf("cannot WriteFile: %w", err)
	}

	/* #nosec G306 -- containers hold public numerical data */
	if err = os.WriteFile(path, p, 0644); err != nil {
		return fmt.Errorf("cannot WriteFile: %w", err)
	}

	return
}

func (c *Container) writeBody(w buffer.Writer) (err error) {

	if _, err = buffer.Write(w, []byte(magic)); err != nil {
		return
	}

	if _, err = buffer.WriteUint8(w, version); err != nil {
		return
	}

	names := c.Groups()

	if _, err = buffer.WriteAsUint64(w, len(names)); err != nil {
		return
	}

	for _, name := range names {

		if err = writeString(w, name); err != nil {
			return
		}

		if err = c.groups[name].writeTo(w); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
	}

	return
}

func (g *Group) writeTo(w buffer.Writer) (err error) {

	names := g.Names()

	if _, err = buffer.WriteAsUint64(w, len(names)); err != nil {
		return
	}

	for _, name := range names {

		d := g.datasets[name]

		if err = writeString(w, name); err != nil {
			return
		}

		if _, err = buffer.WriteUint8(w, uint8(d.kind)); err != nil {
			return
		}

		switch d.kind {
		case KindInt:
			_, err = buffer.WriteUint64(w, uint64(d.int))
		case KindFloat:
			_, err = buffer.WriteUint64(w, math.Float64bits(d.float))
		case KindFloats:
			var p []byte
			if p, err = compressFloats(d.floats); err != nil {
				return fmt.Errorf("dataset %q: %w", name, err)
			}
			err = writeBytes(w, p)
		default:
			err = fmt.Errorf("dataset %q: invalid kind %s", name, d.kind)
		}

		if err != nil {
			return
		}
	}

	return
}

func (c *Container) readBody(r buffer.Reader) (err error) {

	header := make([]byte, len(magic))
	if _, err = buffer.Read(r, header); err != nil || string(header) != magic {
		return fmt.Errorf("%w: invalid magic", ErrFormat)
	}

	var v uint8
	if _, err = buffer.ReadUint8(r, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if v != version {
		return fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}

	var count uint64
	if _, err = buffer.ReadUint64(r, &count); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	for i := uint64(0); i < count; i++ {

		var name string
		if name, err = readString(r); err != nil {
			return
		}

		if err = c.CreateGroup(name).readFrom(r); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
	}

	if r.Size() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrFormat, r.Size())
	}

	return
}

func (g *Group) readFrom(r buffer.Reader) (err error) {

	var count uint64
	if _, err = buffer.ReadUint64(r, &count); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	for i := uint64(0); i < count; i++ {

		var name string
		if name, err = readString(r); err != nil {
			return
		}

		var kind uint8
		if _, err = buffer.ReadUint8(r, &kind); err != nil {
			return fmt.Errorf("%w: %w", ErrFormat, err)
		}

		var u uint64

		switch Kind(kind) {
		case KindInt:
			if _, err = buffer.ReadUint64(r, &u); err != nil {
				return fmt.Errorf("%w: %w", ErrFormat, err)
			}
			g.SetInt(name, int64(u))
		case KindFloat:
			if _, err = buffer.ReadUint64(r, &u); err != nil {
				return fmt.Errorf("%w: %w", ErrFormat, err)
			}
			g.SetFloat(name, math.Float64frombits(u))
		case KindFloats:
			var p []byte
			if p, err = readBytes(r); err != nil {
				return
			}
			var v []float64
			if v, err = decompressFloats(p); err != nil {
				return fmt.Errorf("dataset %q: %w", name, err)
			}
			g.datasets[name] = &dataset{kind: KindFloats, floats: v}
		default:
			return fmt.Errorf("dataset %q: %w: invalid kind %d", name, ErrFormat, kind)
		}
	}

	return
}

func writeBytes(w buffer.Writer, p []byte) (err error) {
	if _, err = buffer.WriteAsUint64(w, len(p)); err != nil {
		return
	}
	_, err = buffer.Write(w, p)
	return
}

func writeString(w buffer.Writer, s string) error {
	return writeBytes(w, []byte(s))
}

func readBytes(r buffer.Reader) (p []byte, err error) {

	var size uint64
	if _, err = buffer.ReadUint64(r, &size); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if size > uint64(r.Size()) {
		return nil, fmt.Errorf("%w: %d bytes announced, %d available", ErrFormat, size, r.Size())
	}

	p = make([]byte, size)
	if _, err = buffer.Read(r, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return
}

func readString(r buffer.Reader) (string, error) {
	p, err := readBytes(r)
	return string(p), err
}
