package renderer

import "github.com/spaghettifunk/anima-assets/engine/renderer/metadata"

// Factory is the GPU resource-creation capability the loaders depend on.
// Implementations own the device; the loading layer only borrows it for the
// duration of a load session. Handles returned by a Factory outlive the
// session that requested them.
type Factory interface {
	/** @brief Allocates an empty texture described by info. */
	CreateTexture(info *metadata.TextureInfo) (*metadata.Texture, error)
	/** @brief Uploads the full mip 0 image of texture. pixels must match its size and format. */
	UpdateTexture(texture *metadata.Texture, pixels []uint8) error
	/** @brief Creates a sampler object. */
	CreateSampler(info *metadata.SamplerInfo) (*metadata.Sampler, error)
	/** @brief Uploads vertex and index buffers. */
	CreateMesh(data *metadata.MeshData) (*metadata.Mesh, error)
	/**
	 * @brief Compiles and links a vertex + fragment program from source.
	 * The returned program lists the attributes, uniforms and texture
	 * samplers the link reflected.
	 */
	LinkProgram(vertex, fragment []byte) (*metadata.Program, error)
}
