/*
Package sample builds the sample asset tree used by the CLI demo mode and
the end-to-end tests: one scene with a two-mesh collection, a texture, a
phong program and a preload manifest.
*/
package sample

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/anima-assets/engine/assets/chunk"
	"github.com/spaghettifunk/anima-assets/engine/assets/loaders"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

const (
	SceneID      = "data/vika"
	ManifestPath = "data/preload.yaml"
	PreloadGroup = "vika"
	ShaderDir    = "shader"
)

// Keys of the meshes stored in the sample collection.
const (
	BodyMesh = "Body@vika"
	HeadMesh = "Head@vika"
)

const PhongVertex = `#version 150 core
in vec3 a_Pos;
in vec3 a_Normal;
in vec2 a_TexCoord;
uniform mat4 u_Transform;
uniform mat3 u_NormalRotation;
out vec3 v_Normal;
out vec2 v_TexCoord;
void main() {
	v_Normal = u_NormalRotation * a_Normal;
	v_TexCoord = a_TexCoord;
	gl_Position = u_Transform * vec4(a_Pos, 1.0);
}
`

const PhongFragment = `#version 150 core
in vec3 v_Normal;
in vec2 v_TexCoord;
uniform vec4 u_Color;
uniform sampler2D t_Diffuse;
out vec4 Target0;
void main() {
	float light = max(dot(normalize(v_Normal), vec3(0.0, 0.0, 1.0)), 0.2);
	Target0 = u_Color * texture(t_Diffuse, v_TexCoord) * light;
}
`

const SceneJSON = `{
	"nodes": {
		"root": {},
		"body": {"parent": "root", "pos": [0, 0, -5]},
		"head": {"parent": "body", "pos": [0, 1.5, 0], "scale": 0.5},
		"eye": {"parent": "root", "pos": [0, 1, 5]}
	},
	"materials": {
		"skin": {"program": "phong", "texture": "/skin.png"},
		"hair": {"program": "phong", "color": [0.3, 0.2, 0.1, 1]}
	},
	"entities": {
		"body": {"node": "body", "mesh": "Body@vika", "material": "skin"},
		"head": {"node": "head", "mesh": "Head@vika", "material": "hair"}
	},
	"cameras": {
		"main": {"node": "eye", "fov": 60, "near": 0.1, "far": 100}
	}
}
`

const ManifestYAML = `version: "1"
groups:
  vika:
    meshes: [Body@vika, Head@vika]
    textures: [/skin.png]
    programs: [phong]
`

// Files returns the sample tree keyed by slash separated path.
func Files() (map[string][]byte, error) {
	meshes, err := Collection(true, Quad("Body"), Quad("Head"))
	if err != nil {
		return nil, err
	}
	skin, err := PNG(4, 4, color.NRGBA{R: 230, G: 190, B: 170, A: 255})
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		SceneID + ".json":          []byte(SceneJSON),
		SceneID + "/vika.k3mesh":   meshes,
		SceneID + "/skin.png":      skin,
		ShaderDir + "/phong.glslv": []byte(PhongVertex),
		ShaderDir + "/phong.glslf": []byte(PhongFragment),
		ManifestPath:               []byte(ManifestYAML),
	}, nil
}

// WriteTo writes the sample tree below dir, creating directories as needed.
func WriteTo(dir string) error {
	files, err := Files()
	if err != nil {
		return err
	}
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return err
		}
	}
	core.LogInfo("wrote %d sample assets to %s", len(files), dir)
	return nil
}

// Quad is a unit square in the XY plane with position, normal and texture
// coordinates, indexed with 16 bit indices.
func Quad(name string) *metadata.MeshData {
	corners := [][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	var vertices []byte
	put := func(vs ...float32) {
		for _, v := range vs {
			vertices = binary.LittleEndian.AppendUint32(vertices, math.Float32bits(v))
		}
	}
	for _, c := range corners {
		put(c[0], c[1], 0)
		put(0, 0, 1)
		put(c[0]+0.5, c[1]+0.5)
	}
	var indices []byte
	for _, i := range []uint16{0, 1, 2, 2, 3, 0} {
		indices = binary.LittleEndian.AppendUint16(indices, i)
	}
	return &metadata.MeshData{
		Name:        name,
		VertexCount: uint32(len(corners)),
		Stride:      32,
		Attributes: []metadata.VertexAttribute{
			{Name: "a_Pos", Format: metadata.VertexFormatFloat32, Count: 3, Offset: 0},
			{Name: "a_Normal", Format: metadata.VertexFormatFloat32, Count: 3, Offset: 12},
			{Name: "a_TexCoord", Format: metadata.VertexFormatFloat32, Count: 2, Offset: 24},
		},
		Vertices:    vertices,
		IndexFormat: metadata.IndexFormatUint16,
		Indices:     indices,
	}
}

// Collection encodes meshes back to back into one .k3mesh image.
func Collection(compress bool, meshes ...*metadata.MeshData) ([]byte, error) {
	var buf bytes.Buffer
	w := chunk.NewWriter(&buf)
	for _, m := range meshes {
		if err := loaders.EncodeMesh(w, m, compress); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// PNG encodes a w by h image filled with fill.
func PNG(w, h int, fill color.NRGBA) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
