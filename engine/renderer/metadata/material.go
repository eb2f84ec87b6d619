package metadata

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief A material, which represents the properties of a surface: the
 * program it is drawn with, its colour and its diffuse texture.
 */
type Material struct {
	/** @brief The material name. */
	Name string
	/** @brief The linked program the material is drawn with. */
	Program *Program
	/** @brief The diffuse colour, bound to u_Color. */
	DiffuseColour mgl32.Vec4
	/** @brief The diffuse texture map, bound to t_Diffuse. */
	DiffuseMap *TextureMap
	/** @brief Whether the material needs blending. */
	Transparent bool
}
