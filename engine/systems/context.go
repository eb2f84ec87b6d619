package systems

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-assets/engine/assets/loaders"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

const DefaultShaderDir = "shader"

type LoadContextOption func(*LoadContext)

// WithFileSystem resolves every asset path against fsys instead of the
// working directory.
func WithFileSystem(fsys fs.FS) LoadContextOption {
	return func(lc *LoadContext) {
		lc.fsys = fsys
	}
}

// WithShaderDir sets the directory program sources are read from.
func WithShaderDir(dir string) LoadContextOption {
	return func(lc *LoadContext) {
		lc.shaderDir = dir
	}
}

// LoadContext is one load session: it owns the resource cache, borrows the
// factory, and tracks the prefix of the scene being loaded. It is not safe
// for concurrent use and must not be reentered from its own loaders.
type LoadContext struct {
	id        uuid.UUID
	fsys      fs.FS
	factory   renderer.Factory
	cache     *ResourceCache
	prefix    string
	shaderDir string

	fallbackTexture *metadata.Texture
	pointSampler    *metadata.Sampler

	meshes   *loaders.MeshCollectionLoader
	textures *loaders.TextureLoader
	programs *loaders.ProgramLoader

	logger *log.Logger
}

// NewLoadContext creates the session and eagerly creates the fallback
// texture and point sampler. If either cannot be created no context is
// returned.
func NewLoadContext(f renderer.Factory, opts ...LoadContextOption) (*LoadContext, error) {
	lc := &LoadContext{
		id:        uuid.New(),
		factory:   f,
		cache:     NewResourceCache(),
		shaderDir: DefaultShaderDir,
	}
	for _, opt := range opts {
		opt(lc)
	}
	if lc.fsys == nil {
		lc.fsys = os.DirFS(".")
	}
	lc.logger = core.WithFields("session", lc.id.String()[:8])

	info, pixels := metadata.FallbackTextureInfo()
	texture, err := f.CreateTexture(info)
	if err == nil {
		err = f.UpdateTexture(texture, pixels)
	}
	if err != nil {
		err = resources.NewError(resources.KindCreate, resources.ResourceTypeTexture, info.Name, "", err)
		core.LogError(err.Error())
		return nil, err
	}

	samplerInfo := metadata.PointSamplerInfo()
	sampler, err := f.CreateSampler(samplerInfo)
	if err != nil {
		err = resources.NewError(resources.KindCreate, resources.ResourceTypeSampler, samplerInfo.Name, "", err)
		core.LogError(err.Error())
		return nil, err
	}

	lc.fallbackTexture = texture
	lc.pointSampler = sampler
	lc.meshes = loaders.NewMeshCollectionLoader(lc.fsys, f)
	lc.textures = loaders.NewTextureLoader(lc.fsys, f)
	lc.programs = loaders.NewProgramLoader(lc.fsys, f, lc.shaderDir)

	lc.logger.Debug("load context ready")
	return lc, nil
}

func (lc *LoadContext) SessionID() uuid.UUID {
	return lc.id
}

// Prefix is the directory of the scene currently being loaded.
func (lc *LoadContext) Prefix() string {
	return lc.prefix
}

func (lc *LoadContext) SetPrefix(prefix string) {
	lc.prefix = prefix
}

func (lc *LoadContext) FallbackTexture() *metadata.Texture {
	return lc.fallbackTexture
}

func (lc *LoadContext) FallbackSampler() *metadata.Sampler {
	return lc.pointSampler
}

// FallbackTextureMap pairs the fallback texture with the point sampler.
func (lc *LoadContext) FallbackTextureMap() *metadata.TextureMap {
	return &metadata.TextureMap{
		Texture: lc.fallbackTexture,
		Sampler: lc.pointSampler,
		Use:     metadata.TextureUseMapDiffuse,
	}
}

// Cache exposes the session cache for inspection.
func (lc *LoadContext) Cache() *ResourceCache {
	return lc.cache
}

func (lc *LoadContext) FS() fs.FS {
	return lc.fsys
}

// RequestMesh returns the mesh stored under key, "<mesh>@<collection>". On a
// miss the whole collection is scanned from <prefix>/<collection>.k3mesh and
// every mesh in it is cached.
func (lc *LoadContext) RequestMesh(key string) (*metadata.Mesh, error) {
	if m, ok := lc.cache.LookupMesh(key); ok {
		return m, nil
	}

	name, collection, ok := strings.Cut(key, resources.MeshKeySeparator)
	if !ok {
		return nil, resources.NewError(resources.KindKeyFormat, resources.ResourceTypeMesh, key, "",
			fmt.Errorf("expected <mesh>%s<collection>", resources.MeshKeySeparator))
	}

	if err := lc.loadMeshCollection(collection); err != nil {
		return nil, resources.NewError(resources.KindOf(err), resources.ResourceTypeMesh, key,
			loaders.MeshCollectionPath(lc.prefix, collection), err)
	}
	if m, ok := lc.cache.LookupMesh(key); ok {
		return m, nil
	}
	return nil, resources.NewError(resources.KindNotFound, resources.ResourceTypeMesh, key,
		loaders.MeshCollectionPath(lc.prefix, collection), fmt.Errorf("collection %s has no mesh %s", collection, name))
}

func (lc *LoadContext) loadMeshCollection(collection string) error {
	_, err := lc.meshes.Load(lc.prefix, collection, func(name string, mesh *metadata.Mesh) {
		key := name + resources.MeshKeySeparator + collection
		if !lc.cache.InsertMesh(key, mesh) {
			lc.logger.Debugf("mesh %s already cached, keeping the first one", key)
		}
	})
	return err
}

// RequestTexture returns the texture at <prefix><name>. The outcome of the
// first request for name, failure included, is returned for every later one.
func (lc *LoadContext) RequestTexture(name string) (*metadata.Texture, error) {
	t, hit, err := lc.cache.texture(name, func() (*metadata.Texture, error) {
		return lc.textures.Load(lc.prefix+name, name)
	})
	if !hit && err != nil {
		lc.logger.Warnf("texture %s: %s", name, err)
	}
	return t, err
}

// RequestProgram returns the program linked from <shaderDir>/<name>.glslv and
// <shaderDir>/<name>.glslf, memoized like textures.
func (lc *LoadContext) RequestProgram(name string) (*metadata.Program, error) {
	p, hit, err := lc.cache.program(name, func() (*metadata.Program, error) {
		return lc.programs.Load(name)
	})
	if !hit && err != nil {
		lc.logger.Warnf("program %s: %s", name, err)
	}
	return p, err
}
