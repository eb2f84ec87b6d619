package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"

	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// NodeDesc places a node relative to its parent. Parent is empty for roots.
type NodeDesc struct {
	Parent string      `json:"parent"`
	Pos    [3]float32  `json:"pos"`
	Rot    *[4]float32 `json:"rot,omitempty"`
	Scale  *float32    `json:"scale,omitempty"`
}

// MaterialDesc names the program and texture of a material. Texture is
// resolved relative to the scene prefix.
type MaterialDesc struct {
	Program     string      `json:"program"`
	Color       *[4]float32 `json:"color,omitempty"`
	Texture     string      `json:"texture,omitempty"`
	Transparent bool        `json:"transparent,omitempty"`
}

// EntityDesc references a mesh by its mesh@collection key.
type EntityDesc struct {
	Node     string `json:"node"`
	Mesh     string `json:"mesh"`
	Material string `json:"material"`
}

// CameraDesc is a perspective camera. Fov is vertical, in degrees.
type CameraDesc struct {
	Node string  `json:"node"`
	Fov  float32 `json:"fov"`
	Near float32 `json:"near"`
	Far  float32 `json:"far"`
}

// SceneDesc is the structural form of a scene file, before any resource is
// resolved.
type SceneDesc struct {
	Nodes     map[string]NodeDesc     `json:"nodes"`
	Materials map[string]MaterialDesc `json:"materials"`
	Entities  map[string]EntityDesc   `json:"entities"`
	Cameras   map[string]CameraDesc   `json:"cameras"`
}

// ScenePath is the file a scene id is stored in.
func ScenePath(id string) string {
	return id + resources.SceneExtension
}

// ReadSceneDesc opens, reads and decodes <id>.json.
func ReadSceneDesc(fsys fs.FS, id string) (*SceneDesc, error) {
	path := ScenePath(id)
	f, _, err := openAsset(fsys, resources.ResourceTypeScene, id, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, resources.NewError(resources.KindRead, resources.ResourceTypeScene, id, path, err)
	}

	desc, err := DecodeSceneDesc(bytes.NewReader(data))
	if err != nil {
		return nil, resources.NewError(resources.KindDecode, resources.ResourceTypeScene, id, path, err)
	}
	return desc, nil
}

// DecodeSceneDesc decodes a scene description, rejecting unknown fields.
func DecodeSceneDesc(r io.Reader) (*SceneDesc, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	desc := &SceneDesc{}
	if err := dec.Decode(desc); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the scene object")
	}
	return desc, nil
}
