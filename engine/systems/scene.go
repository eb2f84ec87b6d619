package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/anima-assets/engine/assets/loaders"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer/components"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

var white = mgl32.Vec4{1, 1, 1, 1}

// LoadScene reads <id>.json and resolves every resource it references
// through lc. The context prefix is set to id before the first resource is
// requested. Either the whole scene resolves or no scene is returned.
func LoadScene(lc *LoadContext, id string) (*components.Scene, error) {
	core.LogInfo("Loading scene from %s", id)

	desc, err := loaders.ReadSceneDesc(lc.fsys, id)
	if err != nil {
		return nil, err
	}
	lc.SetPrefix(id)

	b := &sceneBuilder{
		lc:        lc,
		desc:      desc,
		scene:     &components.Scene{ID: id},
		nodes:     make(map[string]*components.Node, len(desc.Nodes)),
		materials: make(map[string]*metadata.Material, len(desc.Materials)),
	}
	steps := []func() (string, error){
		b.buildNodes,
		b.buildMaterials,
		b.buildEntities,
		b.buildCameras,
	}
	for _, step := range steps {
		if elem, err := step(); err != nil {
			err = resources.NewError(resources.KindParse, resources.ResourceTypeScene, id, loaders.ScenePath(id),
				fmt.Errorf("%s: %w", elem, err))
			core.LogError(err.Error())
			return nil, err
		}
	}

	core.LogInfo("scene %s: %d nodes, %d materials, %d entities, %d cameras",
		id, len(b.scene.Nodes), len(b.scene.Materials), len(b.scene.Entities), len(b.scene.Cameras))
	return b.scene, nil
}

type sceneBuilder struct {
	lc        *LoadContext
	desc      *loaders.SceneDesc
	scene     *components.Scene
	nodes     map[string]*components.Node
	materials map[string]*metadata.Material
}

func (b *sceneBuilder) buildNodes() (string, error) {
	names := sortedKeys(b.desc.Nodes)
	for _, name := range names {
		nd := b.desc.Nodes[name]
		n := components.NewNode(name)
		n.Position = mgl32.Vec3(nd.Pos)
		if nd.Rot != nil {
			r := *nd.Rot
			n.Rotation = mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		}
		if nd.Scale != nil {
			n.Scale = *nd.Scale
		}
		b.nodes[name] = n
		b.scene.Nodes = append(b.scene.Nodes, n)
	}

	for _, name := range names {
		parent := b.desc.Nodes[name].Parent
		if parent == "" {
			continue
		}
		p, ok := b.nodes[parent]
		if !ok {
			return "node " + name, fmt.Errorf("unknown parent %q", parent)
		}
		b.nodes[name].Parent = p
	}

	// A chain longer than the node count loops.
	for _, name := range names {
		steps := 0
		for n := b.nodes[name]; n != nil; n = n.Parent {
			if steps > len(names) {
				return "node " + name, errors.New("parent chain forms a cycle")
			}
			steps++
		}
	}
	return "", nil
}

func (b *sceneBuilder) buildMaterials() (string, error) {
	for _, name := range sortedKeys(b.desc.Materials) {
		md := b.desc.Materials[name]
		elem := "material " + name

		program, err := b.lc.RequestProgram(md.Program)
		if err != nil {
			return elem, err
		}
		if _, err := loaders.BindParams(program); err != nil {
			return elem, err
		}

		m := &metadata.Material{
			Name:          name,
			Program:       program,
			DiffuseColour: white,
			DiffuseMap:    b.lc.FallbackTextureMap(),
			Transparent:   md.Transparent,
		}
		if md.Color != nil {
			m.DiffuseColour = mgl32.Vec4(*md.Color)
		}
		if md.Texture != "" {
			texture, err := b.lc.RequestTexture(md.Texture)
			if err != nil {
				return elem, err
			}
			m.DiffuseMap = &metadata.TextureMap{
				Texture: texture,
				Sampler: b.lc.FallbackSampler(),
				Use:     metadata.TextureUseMapDiffuse,
			}
		}
		b.materials[name] = m
		b.scene.Materials = append(b.scene.Materials, m)
	}
	return "", nil
}

func (b *sceneBuilder) buildEntities() (string, error) {
	for _, name := range sortedKeys(b.desc.Entities) {
		ed := b.desc.Entities[name]
		elem := "entity " + name

		node, ok := b.nodes[ed.Node]
		if !ok {
			return elem, fmt.Errorf("unknown node %q", ed.Node)
		}
		material, ok := b.materials[ed.Material]
		if !ok {
			return elem, fmt.Errorf("unknown material %q", ed.Material)
		}
		mesh, err := b.lc.RequestMesh(ed.Mesh)
		if err != nil {
			return elem, err
		}
		if err := loaders.CheckAttributes(material.Program, mesh); err != nil {
			return elem, err
		}

		b.scene.Entities = append(b.scene.Entities, &components.Entity{
			Name:     name,
			Node:     node,
			Mesh:     mesh,
			Material: material,
		})
	}
	return "", nil
}

func (b *sceneBuilder) buildCameras() (string, error) {
	for _, name := range sortedKeys(b.desc.Cameras) {
		cd := b.desc.Cameras[name]
		elem := "camera " + name

		node, ok := b.nodes[cd.Node]
		if !ok {
			return elem, fmt.Errorf("unknown node %q", cd.Node)
		}
		if cd.Fov <= 0 || cd.Fov >= 180 {
			return elem, fmt.Errorf("fov %g out of (0, 180)", cd.Fov)
		}
		if cd.Near <= 0 || cd.Far <= cd.Near {
			return elem, fmt.Errorf("invalid clip range [%g, %g]", cd.Near, cd.Far)
		}
		b.scene.Cameras = append(b.scene.Cameras, components.NewCamera(name, node, components.Projection{
			FovY:   cd.Fov,
			Aspect: 1,
			Near:   cd.Near,
			Far:    cd.Far,
		}))
	}
	return "", nil
}
