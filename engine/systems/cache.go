package systems

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

type textureOutcome struct {
	texture *metadata.Texture
	err     error
}

type programOutcome struct {
	program *metadata.Program
	err     error
}

// ResourceCache memoizes resource requests of one load session.
//
// Texture and program tables remember the whole outcome of the first
// request, failures included. The mesh table only ever holds successfully
// created meshes: a failed mesh request is retried on the next request.
type ResourceCache struct {
	meshes   map[string]*metadata.Mesh
	textures map[string]textureOutcome
	programs map[string]programOutcome
}

func NewResourceCache() *ResourceCache {
	return &ResourceCache{
		meshes:   make(map[string]*metadata.Mesh),
		textures: make(map[string]textureOutcome),
		programs: make(map[string]programOutcome),
	}
}

func (rc *ResourceCache) LookupMesh(key string) (*metadata.Mesh, bool) {
	m, ok := rc.meshes[key]
	return m, ok
}

// InsertMesh stores mesh under key unless key is already present. It reports
// whether the mesh was stored.
func (rc *ResourceCache) InsertMesh(key string, mesh *metadata.Mesh) bool {
	if _, ok := rc.meshes[key]; ok {
		return false
	}
	rc.meshes[key] = mesh
	return true
}

// texture returns the memoized outcome for name, calling load on the first
// request only. The bool reports a cache hit.
func (rc *ResourceCache) texture(name string, load func() (*metadata.Texture, error)) (*metadata.Texture, bool, error) {
	if o, ok := rc.textures[name]; ok {
		return o.texture, true, o.err
	}
	t, err := load()
	rc.textures[name] = textureOutcome{texture: t, err: err}
	return t, false, err
}

func (rc *ResourceCache) program(name string, load func() (*metadata.Program, error)) (*metadata.Program, bool, error) {
	if o, ok := rc.programs[name]; ok {
		return o.program, true, o.err
	}
	p, err := load()
	rc.programs[name] = programOutcome{program: p, err: err}
	return p, false, err
}

func (rc *ResourceCache) MeshKeys() []string {
	return sortedKeys(rc.meshes)
}

func (rc *ResourceCache) TextureKeys() []string {
	return sortedKeys(rc.textures)
}

func (rc *ResourceCache) ProgramKeys() []string {
	return sortedKeys(rc.programs)
}

// Len returns the number of entries of all three tables.
func (rc *ResourceCache) Len() int {
	return len(rc.meshes) + len(rc.textures) + len(rc.programs)
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
