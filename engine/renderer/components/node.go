package components

import (
	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief A node of the scene graph holding a local transform relative to its
 * parent.
 */
type Node struct {
	Name   string
	Parent *Node

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    1,
	}
}

// LocalMatrix is translation * rotation * uniform scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale, n.Scale, n.Scale)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// NormalRotation is the rotation part used to transform normals.
func (n *Node) NormalRotation() mgl32.Mat3 {
	return n.WorldMatrix().Mat3().Inv().Transpose()
}
