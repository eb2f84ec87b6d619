package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

const ManifestVersion = "1"

// AssetGroup lists the assets requested together when a group is preloaded.
type AssetGroup struct {
	Meshes   []string `yaml:"meshes"`
	Textures []string `yaml:"textures"`
	Programs []string `yaml:"programs"`
}

// Len returns the number of entries of the group.
func (g *AssetGroup) Len() int {
	return len(g.Meshes) + len(g.Textures) + len(g.Programs)
}

// Manifest is the preload manifest, a set of named asset groups.
type Manifest struct {
	Version string                 `yaml:"version"`
	Groups  map[string]*AssetGroup `yaml:"groups"`
}

// Group returns the named group or core.ErrUnknownGroup.
func (m *Manifest) Group(name string) (*AssetGroup, error) {
	g, ok := m.Groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownGroup, name)
	}
	return g, nil
}

// LoadManifest reads and validates the manifest at p.
func LoadManifest(fsys fs.FS, p string) (*Manifest, error) {
	name := strings.TrimPrefix(path.Clean(p), "/")
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		err = resources.NewError(resources.KindOpen, resources.ResourceTypeManifest, p, p, err)
		core.LogError(err.Error())
		return nil, err
	}

	m, err := DecodeManifest(data)
	if err != nil {
		err = resources.NewError(resources.KindDecode, resources.ResourceTypeManifest, p, p, err)
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("manifest %s: %d groups", p, len(m.Groups))
	return m, nil
}

// DecodeManifest parses a YAML manifest. Unknown fields are rejected.
func DecodeManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	m := &Manifest{}
	if err := dec.Decode(m); err != nil {
		return nil, err
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %q, want %q", m.Version, ManifestVersion)
	}
	for name, g := range m.Groups {
		if g == nil {
			m.Groups[name] = &AssetGroup{}
		}
	}
	return m, nil
}
