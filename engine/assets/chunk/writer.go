package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes chunks into a byte stream.
type Writer struct {
	w io.Writer
	n int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) WriteChunk(tag Tag, payload []byte) error {
	if int64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("chunk %q: payload of %d bytes does not fit the header", tag, len(payload))
	}
	var header [HeaderSize]byte
	copy(header[:4], tag[:])
	binary.LittleEndian.PutUint32(header[4:], uint32(len(payload)))

	n, err := w.w.Write(header[:])
	w.n += int64(n)
	if err != nil {
		return fmt.Errorf("chunk %q: failed to write header: %w", tag, err)
	}
	n, err = w.w.Write(payload)
	w.n += int64(n)
	if err != nil {
		return fmt.Errorf("chunk %q: failed to write payload: %w", tag, err)
	}
	return nil
}

// Builder assembles a chunk payload with the layout Cursor reads.
type Builder struct {
	buf bytes.Buffer
	err error
}

func (b *Builder) PutUint8(v uint8) {
	b.buf.WriteByte(v)
}

func (b *Builder) PutBool(v bool) {
	if v {
		b.PutUint8(1)
		return
	}
	b.PutUint8(0)
}

func (b *Builder) PutUint16(v uint16) {
	b.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func (b *Builder) PutUint32(v uint32) {
	b.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (b *Builder) PutFloat32(v float32) {
	b.PutUint32(math.Float32bits(v))
}

// PutString writes s prefixed by its uint8 length.
func (b *Builder) PutString(s string) {
	if len(s) > math.MaxUint8 {
		if b.err == nil {
			b.err = fmt.Errorf("string %q longer than %d bytes", s[:16]+"...", math.MaxUint8)
		}
		return
	}
	b.PutUint8(uint8(len(s)))
	b.buf.WriteString(s)
}

func (b *Builder) PutBytes(p []byte) {
	b.buf.Write(p)
}

func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns the payload, or the first encoding error.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}
