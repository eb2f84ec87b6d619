// Package chunk reads and writes sequences of self-describing binary chunks.
//
// Every chunk starts with an 8 byte header: a 4 byte ASCII tag followed by
// the payload length as a little-endian uint32. Chunks are stored back to
// back with no index, so a stream is consumed strictly front to back and is
// exhausted once Position reaches the stream size.
package chunk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spaghettifunk/anima-assets/engine/resources"
)

const (
	// HeaderSize is the size in bytes of a chunk header.
	HeaderSize = 8
	// MaxPayloadSize bounds allocations when the stream size is unknown.
	MaxPayloadSize = 1 << 28
)

// Tag identifies the content of a chunk.
type Tag [4]byte

// MakeTag builds a tag from a 4 character string.
func MakeTag(s string) Tag {
	if len(s) != 4 {
		panic(fmt.Sprintf("chunk: tag %q must be 4 bytes long", s))
	}
	var t Tag
	copy(t[:], s)
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

type Chunk struct {
	Tag     Tag
	Payload []byte
	// Offset of the chunk header in the stream.
	Offset int64
	// Source is the label of the stream the chunk was read from.
	Source string
}

// Size is the number of stream bytes the chunk occupies, header included.
func (c *Chunk) Size() int64 {
	return HeaderSize + int64(len(c.Payload))
}

// Reader decodes chunks from a byte stream and keeps track of how many bytes
// were consumed.
type Reader struct {
	name string
	r    io.Reader
	pos  int64
	size int64
}

// NewReader wraps r. name labels the stream in errors; size is the total
// number of bytes in the stream, or a negative value if unknown.
func NewReader(name string, r io.Reader, size int64) *Reader {
	return &Reader{
		name: name,
		r:    r,
		size: size,
	}
}

func (r *Reader) Name() string {
	return r.name
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int64 {
	return r.pos
}

func (r *Reader) Size() int64 {
	return r.size
}

// More reports whether unread bytes remain. It is always true for a stream
// of unknown size.
func (r *Reader) More() bool {
	return r.size < 0 || r.pos < r.size
}

// ReadChunk reads the next chunk header and its full payload.
func (r *Reader) ReadChunk() (*Chunk, error) {
	offset := r.pos

	var header [HeaderSize]byte
	n, err := io.ReadFull(r.r, header[:])
	r.pos += int64(n)
	if err != nil {
		return nil, r.readError(fmt.Errorf("chunk header at offset %d: %w", offset, err))
	}

	var tag Tag
	copy(tag[:], header[:4])
	length := int64(binary.LittleEndian.Uint32(header[4:]))

	if r.size >= 0 && length > r.size-r.pos {
		return nil, r.formatError(fmt.Errorf("chunk %q at offset %d declares %d bytes, only %d left", tag, offset, length, r.size-r.pos))
	}
	if length > MaxPayloadSize {
		return nil, r.formatError(fmt.Errorf("chunk %q at offset %d declares %d bytes, limit is %d", tag, offset, length, MaxPayloadSize))
	}

	payload := make([]byte, length)
	n, err = io.ReadFull(r.r, payload)
	r.pos += int64(n)
	if err != nil {
		return nil, r.readError(fmt.Errorf("chunk %q payload at offset %d: %w", tag, offset+HeaderSize, err))
	}

	return &Chunk{
		Tag:     tag,
		Payload: payload,
		Offset:  offset,
		Source:  r.name,
	}, nil
}

// Expect reads the next chunk and fails with a format error if its tag is
// not one of tags.
func (r *Reader) Expect(tags ...Tag) (*Chunk, error) {
	c, err := r.ReadChunk()
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if c.Tag == t {
			return c, nil
		}
	}
	return nil, r.formatError(fmt.Errorf("unexpected chunk %q at offset %d, want one of %v", c.Tag, c.Offset, tags))
}

func (r *Reader) readError(err error) error {
	return resources.NewError(resources.KindRead, resources.ResourceTypeMeshCollection, r.name, "", err)
}

func (r *Reader) formatError(err error) error {
	return resources.NewError(resources.KindFormat, resources.ResourceTypeMeshCollection, r.name, "", err)
}
