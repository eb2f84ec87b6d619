package chunk

import (
	"bytes"
	"errors"
	"io"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/resources"
)

var (
	tagAAAA = MakeTag("AAAA")
	tagBBBB = MakeTag("BBBB")
)

func encode(c *qt.C, chunks map[Tag][]byte, order ...Tag) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, t := range order {
		c.Assert(w.WriteChunk(t, chunks[t]), qt.IsNil)
	}
	c.Assert(w.Written(), qt.Equals, int64(buf.Len()))
	return buf.Bytes()
}

func TestReader_RoundTrip(t *testing.T) {
	c := qt.New(t)
	data := encode(c, map[Tag][]byte{
		tagAAAA: []byte("hello"),
		tagBBBB: {},
	}, tagAAAA, tagBBBB)

	r := NewReader("test", bytes.NewReader(data), int64(len(data)))
	c.Assert(r.Position(), qt.Equals, int64(0))

	first, err := r.ReadChunk()
	c.Assert(err, qt.IsNil)
	c.Assert(first.Tag, qt.Equals, tagAAAA)
	c.Assert(string(first.Payload), qt.Equals, "hello")
	c.Assert(first.Offset, qt.Equals, int64(0))
	c.Assert(r.Position(), qt.Equals, int64(HeaderSize+5))
	c.Assert(r.More(), qt.IsTrue)

	second, err := r.ReadChunk()
	c.Assert(err, qt.IsNil)
	c.Assert(second.Tag, qt.Equals, tagBBBB)
	c.Assert(second.Payload, qt.HasLen, 0)
	c.Assert(second.Offset, qt.Equals, int64(HeaderSize+5))
	c.Assert(r.Position(), qt.Equals, int64(len(data)))
	c.Assert(r.More(), qt.IsFalse)
}

func TestReader_LengthExceedsStream(t *testing.T) {
	c := qt.New(t)
	data := encode(c, map[Tag][]byte{tagAAAA: []byte("0123456789")}, tagAAAA)

	// Pretend the stream ends 4 bytes early.
	r := NewReader("short", bytes.NewReader(data), int64(len(data)-4))
	_, err := r.ReadChunk()
	c.Assert(err, qt.ErrorIs, resources.ErrFormat)
	c.Assert(err, qt.ErrorMatches, `.*"short".*declares 10 bytes, only 6 left`)
}

func TestReader_TruncatedHeader(t *testing.T) {
	c := qt.New(t)
	r := NewReader("trunc", bytes.NewReader([]byte{'A', 'A'}), -1)

	_, err := r.ReadChunk()
	c.Assert(err, qt.ErrorIs, resources.ErrRead)
	c.Assert(errors.Is(err, io.ErrUnexpectedEOF), qt.IsTrue)
	c.Assert(resources.KindOf(err), qt.Equals, resources.KindRead)
	c.Assert(r.Position(), qt.Equals, int64(2))
}

func TestReader_TruncatedPayload(t *testing.T) {
	c := qt.New(t)
	data := encode(c, map[Tag][]byte{tagAAAA: []byte("0123456789")}, tagAAAA)

	// Unknown size skips the length check, so the short read is reported.
	r := NewReader("trunc", bytes.NewReader(data[:len(data)-3]), -1)
	_, err := r.ReadChunk()
	c.Assert(err, qt.ErrorIs, resources.ErrRead)
	c.Assert(err, qt.ErrorMatches, `.*"trunc".*payload at offset 8.*`)
}

func TestReader_EmptyStream(t *testing.T) {
	c := qt.New(t)
	r := NewReader("empty", bytes.NewReader(nil), 0)
	c.Assert(r.More(), qt.IsFalse)

	_, err := r.ReadChunk()
	c.Assert(err, qt.ErrorIs, resources.ErrRead)
	c.Assert(errors.Is(err, io.EOF), qt.IsTrue)
}

func TestReader_Expect(t *testing.T) {
	c := qt.New(t)
	data := encode(c, map[Tag][]byte{tagAAAA: nil, tagBBBB: nil}, tagAAAA, tagBBBB)
	r := NewReader("expect", bytes.NewReader(data), int64(len(data)))

	ch, err := r.Expect(tagAAAA)
	c.Assert(err, qt.IsNil)
	c.Assert(ch.Tag, qt.Equals, tagAAAA)

	_, err = r.Expect(tagAAAA)
	c.Assert(err, qt.ErrorIs, resources.ErrFormat)
}

func TestCursor(t *testing.T) {
	c := qt.New(t)

	var b Builder
	b.PutUint8(7)
	b.PutBool(true)
	b.PutUint16(0xbeef)
	b.PutUint32(123456)
	b.PutFloat32(1.5)
	b.PutString("a_Pos")
	b.PutBytes([]byte{1, 2, 3})
	payload, err := b.Bytes()
	c.Assert(err, qt.IsNil)

	cur := (&Chunk{Tag: tagAAAA, Payload: payload, Source: "cursor"}).Cursor()
	c.Assert(cur.ReadUint8(), qt.Equals, uint8(7))
	c.Assert(cur.ReadBool(), qt.IsTrue)
	c.Assert(cur.ReadUint16(), qt.Equals, uint16(0xbeef))
	c.Assert(cur.ReadUint32(), qt.Equals, uint32(123456))
	c.Assert(cur.ReadFloat32(), qt.Equals, float32(1.5))
	c.Assert(cur.ReadString(), qt.Equals, "a_Pos")
	c.Assert(cur.Remaining(), qt.Equals, 3)
	c.Assert(cur.Rest(), qt.DeepEquals, []byte{1, 2, 3})
	c.Assert(cur.Err(), qt.IsNil)

	// Underflow is sticky.
	c.Assert(cur.ReadUint32(), qt.Equals, uint32(0))
	c.Assert(cur.ReadUint8(), qt.Equals, uint8(0))
	c.Assert(cur.Err(), qt.ErrorIs, resources.ErrFormat)
	c.Assert(cur.Err(), qt.ErrorMatches, `.*chunk "AAAA".*uint32 needs 4 bytes.*`)
}

func TestBuilder_LongString(t *testing.T) {
	c := qt.New(t)

	var b Builder
	b.PutString(string(bytes.Repeat([]byte{'x'}, 300)))
	_, err := b.Bytes()
	c.Assert(err, qt.ErrorMatches, `string .* longer than 255 bytes`)
}
