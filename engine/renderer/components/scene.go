package components

import (
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

/**
 * @brief A drawable: a mesh placed at a node and drawn with a material.
 */
type Entity struct {
	Name     string
	Node     *Node
	Mesh     *metadata.Mesh
	Material *metadata.Material
}

/**
 * @brief A fully resolved scene. It only references resource handles and
 * holds nothing of the load session that produced it.
 */
type Scene struct {
	/** @brief Identifier the scene was loaded from. */
	ID        string
	Nodes     []*Node
	Materials []*metadata.Material
	Entities  []*Entity
	Cameras   []*Camera
}

func (s *Scene) Node(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func (s *Scene) Entity(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (s *Scene) Material(name string) *metadata.Material {
	for _, m := range s.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MainCamera is the first camera of the scene, or nil.
func (s *Scene) MainCamera() *Camera {
	if len(s.Cameras) == 0 {
		return nil
	}
	return s.Cameras[0]
}
