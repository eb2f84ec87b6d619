package systems

import (
	"fmt"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// Preload requests every entry of the named manifest group through lc, in
// manifest order: meshes, then textures, then programs. It stops at the first
// entry that fails.
func Preload(lc *LoadContext, m *assets.Manifest, group string) error {
	g, err := m.Group(group)
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	fail := func(kind, entry string, err error) error {
		err = resources.NewError(resources.KindParse, resources.ResourceTypeManifest, group, "",
			fmt.Errorf("%s %s: %w", kind, entry, err))
		core.LogError(err.Error())
		return err
	}
	for _, key := range g.Meshes {
		if _, err := lc.RequestMesh(key); err != nil {
			return fail("mesh", key, err)
		}
	}
	for _, name := range g.Textures {
		if _, err := lc.RequestTexture(name); err != nil {
			return fail("texture", name, err)
		}
	}
	for _, name := range g.Programs {
		if _, err := lc.RequestProgram(name); err != nil {
			return fail("program", name, err)
		}
	}

	lc.logger.Infof("preloaded group %s (%d entries)", group, g.Len())
	return nil
}
