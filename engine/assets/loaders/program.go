package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/components"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// Name prefixes of program parameters.
const (
	PrefixAttrib  = "a_"
	PrefixUniform = "u_"
	PrefixTexture = "t_"
)

// Parameters every material program binds.
const (
	ParamTransform      = "u_Transform"
	ParamNormalRotation = "u_NormalRotation"
	ParamColor          = "u_Color"
	ParamDiffuse        = "t_Diffuse"
)

var paramLayout = []struct {
	name string
	typ  metadata.ShaderParamType
}{
	{ParamTransform, metadata.ShaderParamTypeMatrix4},
	{ParamNormalRotation, metadata.ShaderParamTypeMatrix3},
	{ParamColor, metadata.ShaderParamTypeFloat32_4},
	{ParamDiffuse, metadata.ShaderParamTypeSampler2D},
}

// Params are the per-draw values of a material program.
type Params struct {
	Transform      mgl32.Mat4
	NormalRotation mgl32.Mat3
	Color          mgl32.Vec4
	Diffuse        *metadata.TextureMap
}

// NewParams fills the parameters of an entity drawn at node with material.
func NewParams(node *components.Node, material *metadata.Material) Params {
	return Params{
		Transform:      node.WorldMatrix(),
		NormalRotation: node.NormalRotation(),
		Color:          material.DiffuseColour,
		Diffuse:        material.DiffuseMap,
	}
}

// ParamLink holds where each of Params lives in a linked program.
type ParamLink struct {
	Transform      metadata.ShaderParam
	NormalRotation metadata.ShaderParam
	Color          metadata.ShaderParam
	Diffuse        metadata.ShaderParam
}

// ProgramPaths returns the vertex and fragment source paths of name.
func ProgramPaths(shaderDir, name string) (string, string) {
	base := path.Join(shaderDir, name)
	return base + resources.VertexShaderExtension, base + resources.FragmentShaderExtension
}

type ProgramLoader struct {
	fsys      fs.FS
	factory   renderer.Factory
	shaderDir string
}

func NewProgramLoader(fsys fs.FS, f renderer.Factory, shaderDir string) *ProgramLoader {
	return &ProgramLoader{
		fsys:      fsys,
		factory:   f,
		shaderDir: shaderDir,
	}
}

// Load reads both stages of name, vertex first, and links them.
func (pl *ProgramLoader) Load(name string) (*metadata.Program, error) {
	vertPath, fragPath := ProgramPaths(pl.shaderDir, name)

	vertSrc, err := readAsset(pl.fsys, resources.ResourceTypeProgram, name, vertPath)
	if err != nil {
		return nil, err
	}
	fragSrc, err := readAsset(pl.fsys, resources.ResourceTypeProgram, name, fragPath)
	if err != nil {
		return nil, err
	}

	program, err := pl.factory.LinkProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, resources.NewError(resources.KindCreate, resources.ResourceTypeProgram, name, "", err)
	}
	program.Name = name
	core.LogDebug("linked program %s (%s, %s)", name, vertPath, fragPath)
	return program, nil
}

// BindParams resolves every parameter of Params against the program's
// reflected parameters. All failures are reported at once.
func BindParams(p *metadata.Program) (*ParamLink, error) {
	link := &ParamLink{}
	slots := map[string]*metadata.ShaderParam{
		ParamTransform:      &link.Transform,
		ParamNormalRotation: &link.NormalRotation,
		ParamColor:          &link.Color,
		ParamDiffuse:        &link.Diffuse,
	}

	var problems []string
	for _, want := range paramLayout {
		var (
			got metadata.ShaderParam
			ok  bool
		)
		if strings.HasPrefix(want.name, PrefixTexture) {
			got, ok = p.Texture(want.name)
		} else {
			got, ok = p.Uniform(want.name)
		}
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s missing", want.name))
		case got.Type != want.typ:
			problems = append(problems, fmt.Sprintf("%s is %s, want %s", want.name, got.Type, want.typ))
		default:
			*slots[want.name] = got
		}
	}
	if len(problems) > 0 {
		return nil, resources.NewError(resources.KindBind, resources.ResourceTypeProgram, p.Name, "",
			errors.New(strings.Join(problems, "; ")))
	}
	return link, nil
}

// CheckAttributes verifies that mesh supplies every attribute program reads.
func CheckAttributes(p *metadata.Program, mesh *metadata.Mesh) error {
	var missing []string
	for _, a := range p.Attributes {
		if !strings.HasPrefix(a.Name, PrefixAttrib) {
			continue
		}
		if !mesh.HasAttribute(a.Name) {
			missing = append(missing, a.Name)
		}
	}
	if len(missing) > 0 {
		return resources.NewError(resources.KindBind, resources.ResourceTypeProgram, p.Name, "",
			fmt.Errorf("mesh %s lacks attributes %s", mesh.Name, strings.Join(missing, ", ")))
	}
	return nil
}
