package resources

type ResourceType int

/** @brief Resource classes handled by the loading layer. */
const (
	/** @brief No resource, used for files the loading layer ignores. */
	ResourceTypeNone ResourceType = iota
	/** @brief A single mesh, stored inside a mesh collection. */
	ResourceTypeMesh
	/** @brief A mesh collection file (.k3mesh). */
	ResourceTypeMeshCollection
	/** @brief An image uploaded as a 2D texture. */
	ResourceTypeTexture
	/** @brief A texture sampler. */
	ResourceTypeSampler
	/** @brief A linked vertex + fragment shader program. */
	ResourceTypeProgram
	/** @brief A scene description (.json). */
	ResourceTypeScene
	/** @brief A preload manifest (.yaml). */
	ResourceTypeManifest
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeMeshCollection:
		return "mesh collection"
	case ResourceTypeTexture:
		return "texture"
	case ResourceTypeSampler:
		return "sampler"
	case ResourceTypeProgram:
		return "program"
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeManifest:
		return "manifest"
	default:
		return "none"
	}
}

/** @brief Separator between mesh name and collection name in a mesh key. */
const MeshKeySeparator = "@"

/** @brief File extension of mesh collections. */
const MeshCollectionExtension = ".k3mesh"

/** @brief File extension of scene descriptions. */
const SceneExtension = ".json"

/** @brief File extensions of the vertex and fragment stages of a program. */
const (
	VertexShaderExtension   = ".glslv"
	FragmentShaderExtension = ".glslf"
)
