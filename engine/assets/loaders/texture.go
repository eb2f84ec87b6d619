package loaders

import (
	"bufio"
	"image"
	"io/fs"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

type TextureLoader struct {
	fsys    fs.FS
	factory renderer.Factory
}

func NewTextureLoader(fsys fs.FS, f renderer.Factory) *TextureLoader {
	return &TextureLoader{
		fsys:    fsys,
		factory: f,
	}
}

// Load decodes the image at path and uploads it as an RGBA8 texture named
// name.
func (tl *TextureLoader) Load(path, name string) (*metadata.Texture, error) {
	file, _, err := openAsset(tl.fsys, resources.ResourceTypeTexture, name, path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, resources.NewError(resources.KindDecode, resources.ResourceTypeTexture, name, path, err)
	}

	rgba := toRGBA(img)
	b := rgba.Bounds()
	info := &metadata.TextureInfo{
		Name:   name,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Format: metadata.TextureFormatRGBA8,
	}
	if hasTransparency(rgba) {
		info.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
	}

	texture, err := tl.factory.CreateTexture(info)
	if err != nil {
		return nil, resources.NewError(resources.KindCreate, resources.ResourceTypeTexture, name, path, err)
	}
	if err := tl.factory.UpdateTexture(texture, rgba.Pix); err != nil {
		return nil, resources.NewError(resources.KindCreate, resources.ResourceTypeTexture, name, path, err)
	}
	core.LogDebug("loaded %s texture %s (%dx%d)", format, path, info.Width, info.Height)
	return texture, nil
}

// toRGBA returns img as a tightly packed RGBA image with origin (0,0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func hasTransparency(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return true
		}
	}
	return false
}
