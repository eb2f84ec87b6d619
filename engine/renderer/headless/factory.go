// Package headless provides a renderer.Factory that validates and records
// resource creation without a GPU. It backs asset validation runs and tests.
package headless

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

// Counts records how many objects of each class were created.
type Counts struct {
	Textures       int
	TextureUploads int
	Samplers       int
	Meshes         int
	Programs       int
}

type Factory struct {
	counts Counts

	// Hooks let callers reject specific requests, e.g. to exercise failure
	// paths of the loaders.
	RejectTexture func(info *metadata.TextureInfo) error
	RejectSampler func(info *metadata.SamplerInfo) error
	RejectMesh    func(data *metadata.MeshData) error
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Counts() Counts {
	return f.counts
}

func (f *Factory) CreateTexture(info *metadata.TextureInfo) (*metadata.Texture, error) {
	if f.RejectTexture != nil {
		if err := f.RejectTexture(info); err != nil {
			return nil, err
		}
	}
	if info.Width == 0 || info.Height == 0 {
		return nil, fmt.Errorf("texture %s: invalid size %dx%d", info.Name, info.Width, info.Height)
	}
	if info.Format.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("texture %s: unsupported format %d", info.Name, info.Format)
	}

	f.counts.Textures++
	t := &metadata.Texture{
		ID:     uuid.NewString(),
		Name:   info.Name,
		Width:  info.Width,
		Height: info.Height,
		Format: info.Format,
		Flags:  info.Flags,
	}
	core.LogDebug("headless: created texture %s (%dx%d) id=%s", t.Name, t.Width, t.Height, t.ID)
	return t, nil
}

func (f *Factory) UpdateTexture(texture *metadata.Texture, pixels []uint8) error {
	want := texture.Width * texture.Height * texture.Format.BytesPerPixel()
	if uint32(len(pixels)) != want {
		return fmt.Errorf("texture %s: got %d bytes of pixel data, want %d", texture.Name, len(pixels), want)
	}
	f.counts.TextureUploads++
	texture.Generation++
	texture.InternalData = pixels
	return nil
}

func (f *Factory) CreateSampler(info *metadata.SamplerInfo) (*metadata.Sampler, error) {
	if f.RejectSampler != nil {
		if err := f.RejectSampler(info); err != nil {
			return nil, err
		}
	}
	f.counts.Samplers++
	return &metadata.Sampler{
		ID:   uuid.NewString(),
		Info: *info,
	}, nil
}

func (f *Factory) CreateMesh(data *metadata.MeshData) (*metadata.Mesh, error) {
	if f.RejectMesh != nil {
		if err := f.RejectMesh(data); err != nil {
			return nil, err
		}
	}
	if data.VertexCount == 0 {
		return nil, fmt.Errorf("mesh %s: no vertices", data.Name)
	}
	if uint64(len(data.Vertices)) != uint64(data.VertexCount)*uint64(data.Stride) {
		return nil, fmt.Errorf("mesh %s: vertex buffer holds %d bytes, want %d", data.Name, len(data.Vertices), data.VertexCount*uint32(data.Stride))
	}
	count := data.IndexCount()
	for i := uint32(0); i < count; i++ {
		if idx := data.Index(i); idx >= data.VertexCount {
			return nil, fmt.Errorf("mesh %s: index %d out of range (%d >= %d)", data.Name, i, idx, data.VertexCount)
		}
	}

	f.counts.Meshes++
	m := &metadata.Mesh{
		ID:          uuid.NewString(),
		Name:        data.Name,
		VertexCount: data.VertexCount,
		IndexCount:  count,
		Attributes:  append([]metadata.VertexAttribute(nil), data.Attributes...),
	}
	core.LogDebug("headless: created mesh %s (%d vertices, %d indices) id=%s", m.Name, m.VertexCount, m.IndexCount, m.ID)
	return m, nil
}

func (f *Factory) LinkProgram(vertex, fragment []byte) (*metadata.Program, error) {
	vs, err := reflectStage(metadata.ShaderStageVertex, vertex)
	if err != nil {
		return nil, err
	}
	fs, err := reflectStage(metadata.ShaderStageFragment, fragment)
	if err != nil {
		return nil, err
	}

	p := &metadata.Program{
		ID:         uuid.NewString(),
		Attributes: vs.inputs,
	}
	// Uniforms declared in both stages are linked once.
	seen := make(map[string]metadata.ShaderParamType)
	location := uint16(0)
	for _, u := range append(vs.uniforms, fs.uniforms...) {
		if t, ok := seen[u.Name]; ok {
			if t != u.Type {
				return nil, fmt.Errorf("link: uniform %s declared as %s and %s", u.Name, t, u.Type)
			}
			continue
		}
		seen[u.Name] = u.Type
		u.Location = location
		location++
		if u.Type.IsSampler() {
			p.Textures = append(p.Textures, u)
		} else {
			p.Uniforms = append(p.Uniforms, u)
		}
	}

	f.counts.Programs++
	core.LogDebug("headless: linked program id=%s (%d attributes, %d uniforms, %d textures)",
		p.ID, len(p.Attributes), len(p.Uniforms), len(p.Textures))
	return p, nil
}
