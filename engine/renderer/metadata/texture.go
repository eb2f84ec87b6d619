package metadata

const (
	/** @brief Name of the 1x1 texture used when a material has no texture of its own. */
	FALLBACK_TEXTURE_NAME string = "fallback"
	/** @brief Name of the nearest-filtering, tiling sampler paired with the fallback texture. */
	POINT_SAMPLER_NAME string = "point"
)

/** @brief Pixel layouts a texture can be created with. */
type TextureFormat int

const (
	TextureFormatUnknown TextureFormat = iota
	/** @brief 8 bits per channel, red green blue alpha. */
	TextureFormatRGBA8
)

/** @brief Number of bytes of one pixel, 0 for unknown formats. */
func (f TextureFormat) BytesPerPixel() uint32 {
	switch f {
	case TextureFormatRGBA8:
		return 4
	default:
		return 0
	}
}

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

/**
 * @brief Describes a texture to create.
 */
type TextureInfo struct {
	Name   string
	Width  uint32
	Height uint32
	Format TextureFormat
	Flags  TextureFlagBits
}

/** @brief Size in bytes of the full image. */
func (ti *TextureInfo) DataSize() uint32 {
	return ti.Width * ti.Height * ti.Format.BytesPerPixel()
}

/**
 * @brief An opaque handle to a texture.
 */
type Texture struct {
	/** @brief Identifier assigned by the factory. */
	ID string
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	Format TextureFormat
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is uploaded. */
	Generation uint32
	/** @brief Backend specific data. */
	InternalData interface{}
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/**
 * @brief Describes a sampler to create.
 */
type SamplerInfo struct {
	Name string
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief The repeat mode on the W axis (or Z, or U) */
	RepeatW TextureRepeat
}

/** @brief Nearest filtering with tiling on every axis. */
func PointSamplerInfo() *SamplerInfo {
	return &SamplerInfo{
		Name:          POINT_SAMPLER_NAME,
		FilterMinify:  TextureFilterModeNearest,
		FilterMagnify: TextureFilterModeNearest,
		RepeatU:       TextureRepeatRepeat,
		RepeatV:       TextureRepeatRepeat,
		RepeatW:       TextureRepeatRepeat,
	}
}

/**
 * @brief An opaque handle to a sampler.
 */
type Sampler struct {
	ID   string
	Info SamplerInfo
	/** @brief Backend specific data. */
	InternalData interface{}
}

/** @brief A collection of texture uses */
type TextureUse int

const (
	/** @brief An unknown use. This is default, but should never actually be used. */
	TextureUseUnknown TextureUse = 0x00
	/** @brief The texture is used as a diffuse map. */
	TextureUseMapDiffuse TextureUse = 0x01
)

/**
 * @brief Pairs a texture with the sampler it is read through.
 */
type TextureMap struct {
	Texture *Texture
	Sampler *Sampler
	Use     TextureUse
}

/**
 * @brief Pixel data of the fallback texture: a single opaque black RGBA8
 * pixel. It is created in code so no asset is needed.
 */
func FallbackTextureInfo() (*TextureInfo, []uint8) {
	return &TextureInfo{
		Name:   FALLBACK_TEXTURE_NAME,
		Width:  1,
		Height: 1,
		Format: TextureFormatRGBA8,
	}, []uint8{0, 0, 0, 0xff}
}
