package metadata

import "fmt"

/** @brief Shader stages a program is linked from. */
type ShaderStage int

const (
	ShaderStageVertex   ShaderStage = 0x0000001
	ShaderStageFragment ShaderStage = 0x0000002
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

/** @brief Types a reflected program parameter can have. */
type ShaderParamType uint

const (
	ShaderParamTypeFloat32   ShaderParamType = 0
	ShaderParamTypeFloat32_2 ShaderParamType = 1
	ShaderParamTypeFloat32_3 ShaderParamType = 2
	ShaderParamTypeFloat32_4 ShaderParamType = 3
	ShaderParamTypeInt32     ShaderParamType = 4
	ShaderParamTypeUint32    ShaderParamType = 5
	ShaderParamTypeMatrix3   ShaderParamType = 6
	ShaderParamTypeMatrix4   ShaderParamType = 7
	ShaderParamTypeSampler2D ShaderParamType = 8
)

var glslTypes = map[string]ShaderParamType{
	"float":     ShaderParamTypeFloat32,
	"vec2":      ShaderParamTypeFloat32_2,
	"vec3":      ShaderParamTypeFloat32_3,
	"vec4":      ShaderParamTypeFloat32_4,
	"int":       ShaderParamTypeInt32,
	"uint":      ShaderParamTypeUint32,
	"mat3":      ShaderParamTypeMatrix3,
	"mat4":      ShaderParamTypeMatrix4,
	"sampler2D": ShaderParamTypeSampler2D,
}

/** @brief Maps a GLSL type name to a parameter type. */
func ShaderParamTypeFromString(s string) (ShaderParamType, error) {
	if t, ok := glslTypes[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("string %s is not a valid ShaderParamType", s)
}

func (t ShaderParamType) String() string {
	for name, v := range glslTypes {
		if v == t {
			return name
		}
	}
	return fmt.Sprintf("ShaderParamType(%d)", uint(t))
}

func (t ShaderParamType) IsSampler() bool {
	return t == ShaderParamTypeSampler2D
}

/**
 * @brief A parameter the linker reflected from a program.
 */
type ShaderParam struct {
	Name string
	Type ShaderParamType
	/** @brief Location used by the backend to address the parameter. */
	Location uint16
}

/**
 * @brief An opaque handle to a linked program.
 */
type Program struct {
	/** @brief Identifier assigned by the factory. */
	ID   string
	Name string
	/** @brief Vertex inputs. */
	Attributes []ShaderParam
	/** @brief Non-sampler uniforms. */
	Uniforms []ShaderParam
	/** @brief Sampler uniforms. */
	Textures []ShaderParam
	/** @brief Backend specific data. */
	InternalData interface{}
}

func findParam(params []ShaderParam, name string) (ShaderParam, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return ShaderParam{}, false
}

func (p *Program) Attribute(name string) (ShaderParam, bool) {
	return findParam(p.Attributes, name)
}

func (p *Program) Uniform(name string) (ShaderParam, bool) {
	return findParam(p.Uniforms, name)
}

func (p *Program) Texture(name string) (ShaderParam, bool) {
	return findParam(p.Textures, name)
}
