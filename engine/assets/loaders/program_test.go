package loaders

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/anima-assets/engine/renderer/components"
	"github.com/spaghettifunk/anima-assets/engine/renderer/headless"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

const phongVert = `#version 150 core
in vec3 a_Pos;
in vec3 a_Normal;
uniform mat4 u_Transform;
uniform mat3 u_NormalRotation;
void main() { gl_Position = u_Transform * vec4(a_Pos, 1.0); }
`

const phongFrag = `#version 150 core
uniform vec4 u_Color;
uniform sampler2D t_Diffuse;
out vec4 Target0;
void main() { Target0 = u_Color; }
`

func shaderFS() fstest.MapFS {
	return fstest.MapFS{
		"shader/phong.glslv":    file([]byte(phongVert)),
		"shader/phong.glslf":    file([]byte(phongFrag)),
		"shader/vertonly.glslv": file([]byte(phongVert)),
		"shader/fragonly.glslf": file([]byte(phongFrag)),
		"shader/broken.glslv":   file([]byte(phongVert)),
		"shader/broken.glslf":   file([]byte("uniform vec4 u_Color;")),
	}
}

func TestProgramPaths(t *testing.T) {
	c := qt.New(t)
	vert, frag := ProgramPaths("shader", "phong")
	c.Assert(vert, qt.Equals, "shader/phong.glslv")
	c.Assert(frag, qt.Equals, "shader/phong.glslf")
}

func TestProgramLoader_Load(t *testing.T) {
	c := qt.New(t)
	f := headless.NewFactory()

	p, err := NewProgramLoader(shaderFS(), f, "shader").Load("phong")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "phong")
	c.Assert(f.Counts().Programs, qt.Equals, 1)

	link, err := BindParams(p)
	c.Assert(err, qt.IsNil)
	c.Assert(link.Transform.Type, qt.Equals, metadata.ShaderParamTypeMatrix4)
	c.Assert(link.Diffuse.Name, qt.Equals, ParamDiffuse)
}

func TestProgramLoader_ReadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", "shader/missing.glslv"},
		{"fragonly", "shader/fragonly.glslv"},
		{"vertonly", "shader/vertonly.glslf"},
	}
	pl := NewProgramLoader(shaderFS(), headless.NewFactory(), "shader")
	for _, test := range tests {
		c := qt.New(t)
		_, err := pl.Load(test.name)
		c.Assert(err, qt.ErrorIs, resources.ErrRead)
		c.Assert(errors.Is(err, fs.ErrNotExist), qt.IsTrue)

		var rerr *resources.Error
		c.Assert(errors.As(err, &rerr), qt.IsTrue)
		c.Assert(rerr.Path, qt.Equals, test.path)
		c.Assert(rerr.Resource, qt.Equals, resources.ResourceTypeProgram)
	}
}

func TestProgramLoader_LinkError(t *testing.T) {
	c := qt.New(t)

	_, err := NewProgramLoader(shaderFS(), headless.NewFactory(), "shader").Load("broken")
	c.Assert(err, qt.ErrorIs, resources.ErrCreate)
	c.Assert(err, qt.ErrorMatches, `program "broken": resource creation failed: compile fragment stage: no main function`)
}

func TestBindParams_Missing(t *testing.T) {
	c := qt.New(t)
	p := &metadata.Program{
		Name: "flat",
		Uniforms: []metadata.ShaderParam{
			{Name: ParamTransform, Type: metadata.ShaderParamTypeMatrix4},
			{Name: ParamColor, Type: metadata.ShaderParamTypeFloat32_3},
		},
	}

	_, err := BindParams(p)
	c.Assert(err, qt.ErrorIs, resources.ErrBind)
	c.Assert(err, qt.ErrorMatches, `program "flat": parameter binding failed: u_NormalRotation missing; u_Color is vec3, want vec4; t_Diffuse missing`)
}

func TestCheckAttributes(t *testing.T) {
	c := qt.New(t)
	p := &metadata.Program{
		Name:       "phong",
		Attributes: []metadata.ShaderParam{{Name: "a_Pos"}, {Name: "a_Normal"}, {Name: "gl_VertexID"}},
	}

	ok := &metadata.Mesh{Name: "Body", Attributes: []metadata.VertexAttribute{{Name: "a_Pos"}, {Name: "a_Normal"}}}
	c.Assert(CheckAttributes(p, ok), qt.IsNil)

	bad := &metadata.Mesh{Name: "Head", Attributes: []metadata.VertexAttribute{{Name: "a_Pos"}}}
	err := CheckAttributes(p, bad)
	c.Assert(err, qt.ErrorIs, resources.ErrBind)
	c.Assert(err, qt.ErrorMatches, `.*mesh Head lacks attributes a_Normal`)
}

func TestNewParams(t *testing.T) {
	c := qt.New(t)
	node := components.NewNode("n")
	node.Position = mgl32.Vec3{1, 2, 3}
	m := &metadata.Material{DiffuseColour: mgl32.Vec4{1, 0, 0, 1}}

	params := NewParams(node, m)
	c.Assert(params.Transform.Col(3), qt.Equals, mgl32.Vec4{1, 2, 3, 1})
	c.Assert(params.NormalRotation, qt.Equals, mgl32.Ident3())
	c.Assert(params.Color, qt.Equals, m.DiffuseColour)
}
