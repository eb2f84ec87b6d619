package systems

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer/headless"
	"github.com/spaghettifunk/anima-assets/engine/resources"
	"github.com/spaghettifunk/anima-assets/testbed/sample"
)

func TestPreload_WarmsCache(t *testing.T) {
	c := qt.New(t)
	fsys := countingSample(c)
	f := headless.NewFactory()
	lc := newContext(c, fsys, f)

	m, err := assets.LoadManifest(fsys, sample.ManifestPath)
	c.Assert(err, qt.IsNil)
	c.Assert(Preload(lc, m, sample.PreloadGroup), qt.IsNil)
	c.Assert(lc.Cache().MeshKeys(), qt.DeepEquals, []string{sample.BodyMesh, sample.HeadMesh})
	c.Assert(lc.Cache().TextureKeys(), qt.DeepEquals, []string{"/skin.png"})
	c.Assert(lc.Cache().ProgramKeys(), qt.DeepEquals, []string{"phong"})
	c.Assert(fsys.opens[collectionFile], qt.Equals, 1)

	_, err = LoadScene(lc, sample.SceneID)
	c.Assert(err, qt.IsNil)
	c.Assert(fsys.opens[collectionFile], qt.Equals, 1)
	c.Assert(fsys.opens["data/vika/skin.png"], qt.Equals, 1)
	c.Assert(f.Counts().Meshes, qt.Equals, 2)
}

func TestPreload_Errors(t *testing.T) {
	c := qt.New(t)
	lc := newContext(c, countingSample(c), headless.NewFactory())

	m, err := assets.DecodeManifest([]byte(`version: "1"
groups:
  broken:
    meshes: [Body@vika, Tail@vika]
    programs: [phong]
`))
	c.Assert(err, qt.IsNil)

	err = Preload(lc, m, "missing")
	c.Assert(err, qt.ErrorIs, core.ErrUnknownGroup)

	err = Preload(lc, m, "broken")
	c.Assert(err, qt.ErrorIs, resources.ErrParse)
	c.Assert(err, qt.ErrorIs, resources.ErrNotFound)
	c.Assert(err, qt.ErrorMatches, `manifest "broken": parse failed: mesh Tail@vika: .*`)
	c.Assert(lc.Cache().ProgramKeys(), qt.HasLen, 0)
}
