package loaders

import (
	"bufio"
	"io/fs"

	"github.com/spaghettifunk/anima-assets/engine/assets/chunk"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// MeshCollectionPath is the file a collection is stored in.
func MeshCollectionPath(prefix, collection string) string {
	return prefix + "/" + collection + resources.MeshCollectionExtension
}

// MeshCollectionLoader decodes every mesh record of a .k3mesh file.
type MeshCollectionLoader struct {
	fsys    fs.FS
	factory renderer.Factory
}

func NewMeshCollectionLoader(fsys fs.FS, f renderer.Factory) *MeshCollectionLoader {
	return &MeshCollectionLoader{
		fsys:    fsys,
		factory: f,
	}
}

// Load scans <prefix>/<collection>.k3mesh front to back and hands each
// decoded mesh to register, in file order. It stops at the first failing
// record; meshes registered before the failure stay registered. It returns
// the number of meshes registered.
func (l *MeshCollectionLoader) Load(prefix, collection string, register func(name string, mesh *metadata.Mesh)) (int, error) {
	path := MeshCollectionPath(prefix, collection)
	f, size, err := openAsset(l.fsys, resources.ResourceTypeMeshCollection, collection, path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	core.LogDebug("scanning mesh collection %s (%d bytes)", path, size)
	r := chunk.NewReader(path, bufio.NewReader(f), size)
	count := 0
	for r.Position() < size {
		name, mesh, err := DecodeMesh(r, l.factory)
		if err != nil {
			core.LogWarn("mesh collection %s: stopped after %d meshes at offset %d: %s", path, count, r.Position(), err)
			return count, err
		}
		register(name, mesh)
		count++
	}
	core.LogInfo("loaded %d meshes from %s", count, path)
	return count, nil
}
