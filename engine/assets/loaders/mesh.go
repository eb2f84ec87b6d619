package loaders

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/spaghettifunk/anima-assets/engine/assets/chunk"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// Chunk tags of a mesh record. A record is a MESH header followed by the
// number of body chunks the header announces.
var (
	TagMesh            = chunk.MakeTag("MESH")
	TagVertexBuffer    = chunk.MakeTag("VBUF")
	TagVertexBufferLZ4 = chunk.MakeTag("VBLZ")
	TagIndexBuffer     = chunk.MakeTag("IBUF")
)

const maxAttributeCount = 4

// DecodeMesh reads the next mesh record from r and uploads it.
func DecodeMesh(r *chunk.Reader, f renderer.Factory) (string, *metadata.Mesh, error) {
	data, err := ReadMeshData(r)
	if err != nil {
		return "", nil, err
	}
	mesh, err := f.CreateMesh(data)
	if err != nil {
		return data.Name, nil, resources.NewError(resources.KindCreate, resources.ResourceTypeMesh, data.Name, r.Name(), err)
	}
	return data.Name, mesh, nil
}

// ReadMeshData reads the next mesh record from r without uploading it.
func ReadMeshData(r *chunk.Reader) (*metadata.MeshData, error) {
	header, err := r.Expect(TagMesh)
	if err != nil {
		return nil, err
	}
	cur := header.Cursor()
	data := &metadata.MeshData{
		Name:        cur.ReadString(),
		VertexCount: cur.ReadUint32(),
	}
	bodyCount := int(cur.ReadUint8())
	if err := cur.Err(); err != nil {
		return nil, err
	}

	formatErr := func(format string, args ...interface{}) error {
		return resources.NewError(resources.KindFormat, resources.ResourceTypeMesh, data.Name, r.Name(), fmt.Errorf(format, args...))
	}
	if data.Name == "" {
		return nil, formatErr("mesh record at offset %d has no name", header.Offset)
	}
	if strings.Contains(data.Name, resources.MeshKeySeparator) {
		return nil, formatErr("mesh name must not contain %q", resources.MeshKeySeparator)
	}
	if cur.Remaining() != 0 {
		return nil, formatErr("%d trailing bytes in %s chunk", cur.Remaining(), TagMesh)
	}

	var haveVertices bool
	for i := 0; i < bodyCount; i++ {
		c, err := r.ReadChunk()
		if err != nil {
			return nil, err
		}
		switch c.Tag {
		case TagVertexBuffer, TagVertexBufferLZ4:
			if haveVertices {
				return nil, formatErr("duplicate vertex buffer at offset %d", c.Offset)
			}
			if err := readVertexBuffer(c, data); err != nil {
				return nil, err
			}
			haveVertices = true
		case TagIndexBuffer:
			if data.IndexFormat != metadata.IndexFormatNone {
				return nil, formatErr("duplicate index buffer at offset %d", c.Offset)
			}
			if err := readIndexBuffer(c, data); err != nil {
				return nil, err
			}
		default:
			return nil, formatErr("unexpected chunk %q at offset %d", c.Tag, c.Offset)
		}
	}
	if !haveVertices {
		return nil, formatErr("no vertex buffer")
	}
	return data, nil
}

func readVertexBuffer(c *chunk.Chunk, data *metadata.MeshData) error {
	formatErr := func(format string, args ...interface{}) error {
		return resources.NewError(resources.KindFormat, resources.ResourceTypeMesh, data.Name, c.Source,
			fmt.Errorf("%s chunk: %s", c.Tag, fmt.Sprintf(format, args...)))
	}

	cur := c.Cursor()
	data.Stride = cur.ReadUint8()
	count := int(cur.ReadUint8())
	data.Attributes = make([]metadata.VertexAttribute, 0, count)
	for i := 0; i < count; i++ {
		data.Attributes = append(data.Attributes, metadata.VertexAttribute{
			Name:       cur.ReadString(),
			Format:     metadata.VertexFormat(cur.ReadUint8()),
			Count:      cur.ReadUint8(),
			Offset:     cur.ReadUint8(),
			Normalized: cur.ReadBool(),
		})
	}
	raw := cur.Rest()
	if err := cur.Err(); err != nil {
		return err
	}

	if data.Stride == 0 {
		return formatErr("zero stride")
	}
	for _, a := range data.Attributes {
		if !strings.HasPrefix(a.Name, PrefixAttrib) {
			return formatErr("attribute %q lacks the %q prefix", a.Name, PrefixAttrib)
		}
		if a.Format.Size() == 0 {
			return formatErr("attribute %s has unknown format %d", a.Name, uint8(a.Format))
		}
		if a.Count == 0 || a.Count > maxAttributeCount {
			return formatErr("attribute %s has %d components", a.Name, a.Count)
		}
		if int(a.Offset)+int(a.Size()) > int(data.Stride) {
			return formatErr("attribute %s ends at byte %d, past the %d byte stride", a.Name, int(a.Offset)+int(a.Size()), data.Stride)
		}
	}

	want := int64(data.VertexCount) * int64(data.Stride)
	if c.Tag == TagVertexBufferLZ4 {
		inflated, err := io.ReadAll(io.LimitReader(lz4.NewReader(bytes.NewReader(raw)), want+1))
		if err != nil {
			return formatErr("inflate: %v", err)
		}
		raw = inflated
	}
	if int64(len(raw)) != want {
		return formatErr("vertex data holds %d bytes, want %d (%d vertices * %d)", len(raw), want, data.VertexCount, data.Stride)
	}
	data.Vertices = raw
	return nil
}

func readIndexBuffer(c *chunk.Chunk, data *metadata.MeshData) error {
	cur := c.Cursor()
	format := metadata.IndexFormat(cur.ReadUint8())
	raw := cur.Rest()
	if err := cur.Err(); err != nil {
		return err
	}

	var reason string
	switch {
	case format != metadata.IndexFormatUint16 && format != metadata.IndexFormatUint32:
		reason = fmt.Sprintf("unknown index width %d", uint8(format))
	case len(raw)%int(format) != 0:
		reason = fmt.Sprintf("%d bytes is not a multiple of the %d byte index width", len(raw), format)
	}
	if reason != "" {
		return resources.NewError(resources.KindFormat, resources.ResourceTypeMesh, data.Name, c.Source,
			fmt.Errorf("%s chunk: %s", c.Tag, reason))
	}
	data.IndexFormat = format
	data.Indices = raw
	return nil
}

// EncodeMesh writes data as one mesh record. compress stores the vertex
// data LZ4 compressed.
func EncodeMesh(w *chunk.Writer, data *metadata.MeshData, compress bool) error {
	var bodies []*chunk.Chunk

	var vb chunk.Builder
	vb.PutUint8(data.Stride)
	vb.PutUint8(uint8(len(data.Attributes)))
	for _, a := range data.Attributes {
		vb.PutString(a.Name)
		vb.PutUint8(uint8(a.Format))
		vb.PutUint8(a.Count)
		vb.PutUint8(a.Offset)
		vb.PutBool(a.Normalized)
	}
	vertexTag := TagVertexBuffer
	if compress {
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data.Vertices); err != nil {
			return fmt.Errorf("mesh %s: compress vertices: %w", data.Name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("mesh %s: compress vertices: %w", data.Name, err)
		}
		vb.PutBytes(buf.Bytes())
		vertexTag = TagVertexBufferLZ4
	} else {
		vb.PutBytes(data.Vertices)
	}
	payload, err := vb.Bytes()
	if err != nil {
		return fmt.Errorf("mesh %s: %w", data.Name, err)
	}
	bodies = append(bodies, &chunk.Chunk{Tag: vertexTag, Payload: payload})

	if data.IndexFormat != metadata.IndexFormatNone {
		var ib chunk.Builder
		ib.PutUint8(uint8(data.IndexFormat))
		ib.PutBytes(data.Indices)
		payload, _ := ib.Bytes()
		bodies = append(bodies, &chunk.Chunk{Tag: TagIndexBuffer, Payload: payload})
	}

	var hb chunk.Builder
	hb.PutString(data.Name)
	hb.PutUint32(data.VertexCount)
	hb.PutUint8(uint8(len(bodies)))
	header, err := hb.Bytes()
	if err != nil {
		return fmt.Errorf("mesh %s: %w", data.Name, err)
	}

	if err := w.WriteChunk(TagMesh, header); err != nil {
		return err
	}
	for _, b := range bodies {
		if err := w.WriteChunk(b.Tag, b.Payload); err != nil {
			return err
		}
	}
	return nil
}
