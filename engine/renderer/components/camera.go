package components

import (
	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Perspective projection parameters.
 */
type Projection struct {
	/** @brief Vertical field of view in degrees. */
	FovY float32
	/** @brief Width over height of the target. */
	Aspect float32
	Near   float32
	Far    float32
}

/**
 * @brief Represents a camera attached to a scene node. The view matrix follows
 * the node; the projection is rebuilt lazily whenever it is changed.
 */
type Camera struct {
	Name string
	Node *Node
	/**
	 * @brief The projection of this camera.
	 * NOTE: Do not set this directly, use SetProjection() or SetAspect() instead
	 * so the projection matrix is recalculated when needed.
	 */
	Projection Projection
	/** @brief Internal flag used to determine when the projection matrix needs to be rebuilt. */
	IsDirty          bool
	projectionMatrix mgl32.Mat4
}

func NewCamera(name string, node *Node, projection Projection) *Camera {
	return &Camera{
		Name:       name,
		Node:       node,
		Projection: projection,
		IsDirty:    true,
	}
}

func (c *Camera) SetProjection(p Projection) {
	c.Projection = p
	c.IsDirty = true
}

// SetAspect is called once the output surface size is known.
func (c *Camera) SetAspect(aspect float32) {
	c.Projection.Aspect = aspect
	c.IsDirty = true
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	if c.IsDirty {
		p := c.Projection
		c.projectionMatrix = mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
		c.IsDirty = false
	}
	return c.projectionMatrix
}

func (c *Camera) GetView() mgl32.Mat4 {
	if c.Node == nil {
		return mgl32.Ident4()
	}
	return c.Node.WorldMatrix().Inv()
}

func (c *Camera) Position() mgl32.Vec3 {
	if c.Node == nil {
		return mgl32.Vec3{}
	}
	return c.Node.WorldMatrix().Col(3).Vec3()
}
