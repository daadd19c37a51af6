// Package bytewire implements the compact binary format adapter: big-endian
// fixed-width primitives and length-prefixed strings/arrays, with no field
// names on the wire. The layout is hand-rolled the same way the retrieved
// mini-rpc codec framed its messages, generalized from one fixed struct to
// arbitrary schema-driven values.
package bytewire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/typeforge/codec/wire"
)

// Writer encodes values onto the compact binary wire form.
type Writer struct {
	w   *bufio.Writer
	buf [8]byte
}

// NewWriter returns a wire.Writer that frames every value in big-endian,
// length-prefixed binary.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

var _ wire.Writer = (*Writer)(nil)

func (w *Writer) Named() bool { return false }

func (w *Writer) Close() error { return w.w.Flush() }

func (w *Writer) WriteNull() error {
	return w.w.WriteByte(0)
}

func (w *Writer) WriteNotNull() error {
	return w.w.WriteByte(1)
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.w.WriteByte(1)
	}
	return w.w.WriteByte(0)
}

func (w *Writer) WriteInt(v int64, bits int) error {
	return w.WriteUint(uint64(v), bits)
}

func (w *Writer) WriteUint(v uint64, bits int) error {
	switch bits {
	case 8:
		return w.w.WriteByte(byte(v))
	case 16:
		binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
		_, err := w.w.Write(w.buf[:2])
		return err
	case 32:
		binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
		_, err := w.w.Write(w.buf[:4])
		return err
	case 64:
		binary.BigEndian.PutUint64(w.buf[:8], v)
		_, err := w.w.Write(w.buf[:8])
		return err
	default:
		return fmt.Errorf("bytewire: unsupported integer width %d", bits)
	}
}

func (w *Writer) WriteFloat(v float64, bits int) error {
	switch bits {
	case 32:
		return w.WriteUint(uint64(math.Float32bits(float32(v))), 32)
	case 64:
		return w.WriteUint(math.Float64bits(v), 64)
	default:
		return fmt.Errorf("bytewire: unsupported float width %d", bits)
	}
}

func (w *Writer) WriteString(v string) error {
	if err := w.WriteUint(uint64(len(v)), 16); err != nil {
		return err
	}
	_, err := w.w.WriteString(v)
	return err
}

func (w *Writer) WriteTypeTag(id string) error {
	return w.WriteString(id)
}

func (w *Writer) StartObject() error           { return nil }
func (w *Writer) BeginField(name string) error { return nil }
func (w *Writer) EndField() error              { return nil }
func (w *Writer) EndObject() error             { return nil }
func (w *Writer) StartArray(n int) error       { return w.WriteUint(uint64(n), 32) }
func (w *Writer) BeginElem() error             { return nil }
func (w *Writer) EndElem() error               { return nil }
func (w *Writer) EndArray() error              { return nil }

// Reader decodes values from the compact binary wire form.
type Reader struct {
	r   *bufio.Reader
	buf [8]byte
}

// NewReader returns a wire.Reader over the compact binary wire form.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

var _ wire.Reader = (*Reader)(nil)

func (r *Reader) Named() bool { return false }

func (r *Reader) Close() error { return nil }

func (r *Reader) IsNull() (bool, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == 0, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (r *Reader) ReadInt(bits int) (int64, error) {
	v, err := r.ReadUint(bits)
	if err != nil {
		return 0, err
	}
	switch bits {
	case 8:
		return int64(int8(v)), nil
	case 16:
		return int64(int16(v)), nil
	case 32:
		return int64(int32(v)), nil
	default:
		return int64(v), nil
	}
}

func (r *Reader) ReadUint(bits int) (uint64, error) {
	switch bits {
	case 8:
		b, err := r.r.ReadByte()
		return uint64(b), err
	case 16:
		if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint16(r.buf[:2])), nil
	case 32:
		if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint32(r.buf[:4])), nil
	case 64:
		if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint64(r.buf[:8]), nil
	default:
		return 0, fmt.Errorf("bytewire: unsupported integer width %d", bits)
	}
}

func (r *Reader) ReadFloat(bits int) (float64, error) {
	switch bits {
	case 32:
		v, err := r.ReadUint(32)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(uint32(v))), nil
	case 64:
		v, err := r.ReadUint(64)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(v), nil
	default:
		return 0, fmt.Errorf("bytewire: unsupported float width %d", bits)
	}
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint(16)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (r *Reader) ReadTypeTag() (string, bool, error) {
	id, err := r.ReadString()
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r *Reader) StartObject() error               { return nil }
func (r *Reader) BeginField() (string, bool, error) { return "", true, nil }
func (r *Reader) EndField() error                   { return nil }
func (r *Reader) EndObject() error                  { return nil }

func (r *Reader) StartArray() (int, error) {
	n, err := r.ReadUint(32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
func (r *Reader) BeginElem() (bool, error) { return true, nil }
func (r *Reader) EndElem() error           { return nil }
func (r *Reader) EndArray() error          { return nil }
