package loaders

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing/fstest"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/assets/chunk"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

func triangle(name string) *metadata.MeshData {
	var vertices []byte
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		vertices = binary.LittleEndian.AppendUint32(vertices, math.Float32bits(v))
	}
	return &metadata.MeshData{
		Name:        name,
		VertexCount: 3,
		Stride:      12,
		Attributes: []metadata.VertexAttribute{
			{Name: "a_Pos", Format: metadata.VertexFormatFloat32, Count: 3},
		},
		Vertices:    vertices,
		IndexFormat: metadata.IndexFormatUint16,
		Indices:     []byte{0, 0, 1, 0, 2, 0},
	}
}

func collection(c *qt.C, compress bool, meshes ...*metadata.MeshData) []byte {
	var buf bytes.Buffer
	w := chunk.NewWriter(&buf)
	for _, m := range meshes {
		c.Assert(EncodeMesh(w, m, compress), qt.IsNil)
	}
	return buf.Bytes()
}

func pngBytes(c *qt.C, w, h int, fill color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	c.Assert(png.Encode(&buf, img), qt.IsNil)
	return buf.Bytes()
}

func file(data []byte) *fstest.MapFile {
	return &fstest.MapFile{Data: data}
}
