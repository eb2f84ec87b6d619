package headless

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

const vertexSrc = `
#version 150 core
// attribute vec3 a_Commented;
in vec3 a_Pos;
in vec3 a_Normal;
in vec2 a_Tex;
out vec2 v_Tex;
uniform mat4 u_Transform;
uniform mat3 u_NormalRotation;
/* uniform vec4 u_Hidden; */
void main() {
	v_Tex = a_Tex;
	gl_Position = u_Transform * vec4(a_Pos, 1.0);
}
`

const fragmentSrc = `
#version 150 core
in vec2 v_Tex;
out vec4 Target0;
uniform vec4 u_Color;
uniform mat4 u_Transform;
uniform sampler2D t_Diffuse;
void main() {
	Target0 = u_Color * texture(t_Diffuse, v_Tex);
}
`

func names(params []metadata.ShaderParam) []string {
	var out []string
	for _, p := range params {
		out = append(out, p.Name)
	}
	return out
}

func TestFactory_LinkProgram(t *testing.T) {
	c := qt.New(t)
	f := NewFactory()

	p, err := f.LinkProgram([]byte(vertexSrc), []byte(fragmentSrc))
	c.Assert(err, qt.IsNil)
	c.Assert(p.ID, qt.Not(qt.Equals), "")
	c.Assert(names(p.Attributes), qt.DeepEquals, []string{"a_Pos", "a_Normal", "a_Tex"})
	c.Assert(names(p.Uniforms), qt.DeepEquals, []string{"u_Transform", "u_NormalRotation", "u_Color"})
	c.Assert(names(p.Textures), qt.DeepEquals, []string{"t_Diffuse"})

	u, ok := p.Uniform("u_NormalRotation")
	c.Assert(ok, qt.IsTrue)
	c.Assert(u.Type, qt.Equals, metadata.ShaderParamTypeMatrix3)
	c.Assert(f.Counts().Programs, qt.Equals, 1)
}

func TestFactory_LinkProgramErrors(t *testing.T) {
	c := qt.New(t)
	f := NewFactory()

	_, err := f.LinkProgram(nil, []byte(fragmentSrc))
	c.Assert(err, qt.ErrorMatches, `compile vertex stage: empty source`)

	_, err = f.LinkProgram([]byte(vertexSrc), []byte("uniform vec4 u_Color;"))
	c.Assert(err, qt.ErrorMatches, `compile fragment stage: no main function`)

	_, err = f.LinkProgram([]byte(vertexSrc), []byte("uniform vec3 u_Transform; void main() {}"))
	c.Assert(err, qt.ErrorMatches, `link: uniform u_Transform declared as mat4 and vec3`)

	_, err = f.LinkProgram([]byte(vertexSrc), []byte("attribute vec3 a_Pos; void main() {}"))
	c.Assert(err, qt.ErrorMatches, `compile fragment stage: attribute declared outside the vertex stage`)

	c.Assert(f.Counts().Programs, qt.Equals, 0)
}

func TestFactory_Textures(t *testing.T) {
	c := qt.New(t)
	f := NewFactory()

	info, pixels := metadata.FallbackTextureInfo()
	tex, err := f.CreateTexture(info)
	c.Assert(err, qt.IsNil)
	c.Assert(f.UpdateTexture(tex, pixels), qt.IsNil)
	c.Assert(tex.Generation, qt.Equals, uint32(1))
	c.Assert(f.UpdateTexture(tex, []uint8{1, 2}), qt.ErrorMatches, `texture fallback: got 2 bytes of pixel data, want 4`)

	_, err = f.CreateTexture(&metadata.TextureInfo{Name: "empty", Format: metadata.TextureFormatRGBA8})
	c.Assert(err, qt.ErrorMatches, `texture empty: invalid size 0x0`)

	boom := errors.New("device lost")
	f.RejectTexture = func(*metadata.TextureInfo) error { return boom }
	_, err = f.CreateTexture(info)
	c.Assert(err, qt.Equals, boom)

	c.Assert(f.Counts(), qt.DeepEquals, Counts{Textures: 1, TextureUploads: 1})
}

func TestFactory_CreateMesh(t *testing.T) {
	c := qt.New(t)
	f := NewFactory()

	data := &metadata.MeshData{
		Name:        "Tri",
		VertexCount: 3,
		Stride:      4,
		Attributes:  []metadata.VertexAttribute{{Name: "a_Pos", Format: metadata.VertexFormatUint8, Count: 4}},
		Vertices:    make([]byte, 12),
		IndexFormat: metadata.IndexFormatUint16,
		Indices:     []byte{0, 0, 1, 0, 2, 0},
	}
	m, err := f.CreateMesh(data)
	c.Assert(err, qt.IsNil)
	c.Assert(m.IndexCount, qt.Equals, uint32(3))
	c.Assert(m.HasAttribute("a_Pos"), qt.IsTrue)

	data.Indices = []byte{0, 0, 1, 0, 3, 0}
	_, err = f.CreateMesh(data)
	c.Assert(err, qt.ErrorMatches, `mesh Tri: index 2 out of range \(3 >= 3\)`)

	data.Indices = nil
	data.Vertices = data.Vertices[:8]
	_, err = f.CreateMesh(data)
	c.Assert(err, qt.ErrorMatches, `mesh Tri: vertex buffer holds 8 bytes, want 12`)
}
