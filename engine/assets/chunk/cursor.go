package chunk

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// Cursor reads little-endian primitives from a chunk payload. The first
// underflow is sticky: every later read returns a zero value and Err reports
// the failure.
type Cursor struct {
	chunk *Chunk
	off   int
	err   error
}

func (c *Chunk) Cursor() *Cursor {
	return &Cursor{chunk: c}
}

func (cur *Cursor) take(n int, what string) []byte {
	if cur.err != nil {
		return nil
	}
	if n < 0 || n > len(cur.chunk.Payload)-cur.off {
		cur.err = resources.NewError(resources.KindFormat, resources.ResourceTypeMeshCollection, cur.chunk.Source, "",
			fmt.Errorf("chunk %q at offset %d: %s needs %d bytes at payload offset %d, %d left",
				cur.chunk.Tag, cur.chunk.Offset, what, n, cur.off, cur.Remaining()))
		return nil
	}
	b := cur.chunk.Payload[cur.off : cur.off+n]
	cur.off += n
	return b
}

func (cur *Cursor) ReadUint8() uint8 {
	b := cur.take(1, "uint8")
	if b == nil {
		return 0
	}
	return b[0]
}

func (cur *Cursor) ReadBool() bool {
	return cur.ReadUint8() != 0
}

func (cur *Cursor) ReadUint16() uint16 {
	b := cur.take(2, "uint16")
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (cur *Cursor) ReadUint32() uint32 {
	b := cur.take(4, "uint32")
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (cur *Cursor) ReadFloat32() float32 {
	return math.Float32frombits(cur.ReadUint32())
}

// ReadString reads a string prefixed by its uint8 length.
func (cur *Cursor) ReadString() string {
	n := int(cur.ReadUint8())
	b := cur.take(n, "string")
	if b == nil {
		return ""
	}
	return string(b)
}

// ReadBytes returns the next n bytes. The slice aliases the payload.
func (cur *Cursor) ReadBytes(n int) []byte {
	return cur.take(n, "byte block")
}

// Rest returns all unread bytes.
func (cur *Cursor) Rest() []byte {
	if cur.err != nil {
		return nil
	}
	b := cur.chunk.Payload[cur.off:]
	cur.off = len(cur.chunk.Payload)
	return b
}

func (cur *Cursor) Remaining() int {
	return len(cur.chunk.Payload) - cur.off
}

func (cur *Cursor) Err() error {
	return cur.err
}
