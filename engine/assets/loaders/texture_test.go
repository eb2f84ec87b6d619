package loaders

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/renderer/headless"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

func TestTextureLoader_Load(t *testing.T) {
	c := qt.New(t)
	fsys := fstest.MapFS{
		"data/vika/wall.png":  file(pngBytes(c, 4, 2, color.NRGBA{R: 200, A: 255})),
		"data/vika/glass.png": file(pngBytes(c, 1, 1, color.NRGBA{B: 255, A: 128})),
	}
	f := headless.NewFactory()
	tl := NewTextureLoader(fsys, f)

	wall, err := tl.Load("data/vika/wall.png", "/wall.png")
	c.Assert(err, qt.IsNil)
	c.Assert(wall.Name, qt.Equals, "/wall.png")
	c.Assert(wall.Width, qt.Equals, uint32(4))
	c.Assert(wall.Height, qt.Equals, uint32(2))
	c.Assert(wall.Format, qt.Equals, metadata.TextureFormatRGBA8)
	c.Assert(wall.Flags, qt.Equals, metadata.TextureFlagBits(0))
	c.Assert(wall.InternalData.([]uint8)[:4], qt.DeepEquals, []uint8{200, 0, 0, 255})

	glass, err := tl.Load("data/vika/glass.png", "/glass.png")
	c.Assert(err, qt.IsNil)
	c.Assert(glass.Flags, qt.Equals, metadata.TextureFlagBits(metadata.TextureFlagHasTransparency))

	c.Assert(f.Counts().Textures, qt.Equals, 2)
	c.Assert(f.Counts().TextureUploads, qt.Equals, 2)
}

func TestTextureLoader_Errors(t *testing.T) {
	c := qt.New(t)
	fsys := fstest.MapFS{
		"bad.png":  file([]byte("definitely not an image")),
		"good.png": file(pngBytes(c, 1, 1, color.NRGBA{A: 255})),
	}
	f := headless.NewFactory()
	tl := NewTextureLoader(fsys, f)

	_, err := tl.Load("missing.png", "missing.png")
	c.Assert(err, qt.ErrorIs, resources.ErrOpen)

	_, err = tl.Load("bad.png", "bad.png")
	c.Assert(err, qt.ErrorIs, resources.ErrDecode)
	c.Assert(errors.Is(err, image.ErrFormat), qt.IsTrue)

	f.RejectTexture = func(*metadata.TextureInfo) error { return errors.New("no slots") }
	_, err = tl.Load("good.png", "good.png")
	c.Assert(err, qt.ErrorIs, resources.ErrCreate)
	c.Assert(err, qt.ErrorMatches, `texture "good.png": resource creation failed \(good.png\): no slots`)
}

func TestToRGBA_Offset(t *testing.T) {
	c := qt.New(t)

	src := image.NewRGBA(image.Rect(2, 2, 4, 3))
	src.Set(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	dst := toRGBA(src)

	c.Assert(dst.Bounds(), qt.Equals, image.Rect(0, 0, 2, 1))
	c.Assert(dst.Pix[:4], qt.DeepEquals, []uint8{1, 2, 3, 255})
}
