package metadata

import (
	"encoding/binary"
	"fmt"
)

/** @brief Component formats a vertex attribute can use. */
type VertexFormat uint8

const (
	VertexFormatFloat32 VertexFormat = 1
	VertexFormatUint8   VertexFormat = 2
	VertexFormatInt8    VertexFormat = 3
	VertexFormatUint16  VertexFormat = 4
	VertexFormatInt16   VertexFormat = 5
)

/** @brief Size in bytes of a single component, 0 for unknown formats. */
func (f VertexFormat) Size() uint8 {
	switch f {
	case VertexFormatFloat32:
		return 4
	case VertexFormatUint8, VertexFormatInt8:
		return 1
	case VertexFormatUint16, VertexFormatInt16:
		return 2
	default:
		return 0
	}
}

func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat32:
		return "f32"
	case VertexFormatUint8:
		return "u8"
	case VertexFormatInt8:
		return "i8"
	case VertexFormatUint16:
		return "u16"
	case VertexFormatInt16:
		return "i16"
	default:
		return fmt.Sprintf("VertexFormat(%d)", uint8(f))
	}
}

/**
 * @brief Describes one interleaved attribute inside a vertex.
 */
type VertexAttribute struct {
	/** @brief The attribute name, as the shader declares it (a_ prefixed). */
	Name string
	/** @brief The component format. */
	Format VertexFormat
	/** @brief The number of components, 1 to 4. */
	Count uint8
	/** @brief Byte offset of the attribute inside a vertex. */
	Offset uint8
	/** @brief Whether integer components are normalized to [0,1] or [-1,1]. */
	Normalized bool
}

/** @brief Size in bytes of the whole attribute. */
func (a VertexAttribute) Size() uint8 {
	return a.Format.Size() * a.Count
}

/** @brief Index element width in bytes. IndexFormatNone means non-indexed drawing. */
type IndexFormat uint8

const (
	IndexFormatNone   IndexFormat = 0
	IndexFormatUint16 IndexFormat = 2
	IndexFormatUint32 IndexFormat = 4
)

/**
 * @brief CPU side mesh data handed to the factory for upload.
 */
type MeshData struct {
	Name        string
	VertexCount uint32
	/** @brief Size in bytes of one interleaved vertex. */
	Stride      uint8
	Attributes  []VertexAttribute
	Vertices    []byte
	IndexFormat IndexFormat
	Indices     []byte
}

func (m *MeshData) IndexCount() uint32 {
	if m.IndexFormat == IndexFormatNone {
		return 0
	}
	return uint32(len(m.Indices) / int(m.IndexFormat))
}

/** @brief Returns the i-th index. The caller keeps i below IndexCount. */
func (m *MeshData) Index(i uint32) uint32 {
	switch m.IndexFormat {
	case IndexFormatUint16:
		return uint32(binary.LittleEndian.Uint16(m.Indices[i*2:]))
	case IndexFormatUint32:
		return binary.LittleEndian.Uint32(m.Indices[i*4:])
	default:
		return i
	}
}

func (m *MeshData) Attribute(name string) (VertexAttribute, bool) {
	for _, a := range m.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

/**
 * @brief An opaque handle to an uploaded mesh.
 */
type Mesh struct {
	/** @brief Identifier assigned by the factory. */
	ID          string
	Name        string
	VertexCount uint32
	IndexCount  uint32
	Attributes  []VertexAttribute
	/** @brief Backend specific data (buffers). */
	InternalData interface{}
}

func (m *Mesh) HasAttribute(name string) bool {
	for _, a := range m.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}
