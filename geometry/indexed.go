package geometry

import "fmt"

// IndexedMesh is a triangle list drawn through an index buffer, so that
// vertices shared between triangles are stored once. It requires a
// context implementing IndexedContext.
type IndexedMesh struct {
	vertices VertexData
	indices  []uint32
	res      Resource
}

// NewIndexedMesh creates an indexed mesh from copies of vertices and
// indices. The vertex data must satisfy the stride, the index count must
// be a multiple of three, and every index must refer to a vertex.
func NewIndexedMesh(vertices []float32, indices []uint32) (*IndexedMesh, error) {
	data := VertexData(vertices)
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidIndexData, len(indices))
	}
	n := uint32(data.VertexCount())
	for i, idx := range indices {
		if idx >= n {
			return nil, fmt.Errorf("%w: index %d at position %d exceeds vertex count %d", ErrInvalidIndexData, idx, i, n)
		}
	}
	return &IndexedMesh{
		vertices: append(VertexData(nil), data...),
		indices:  append([]uint32(nil), indices...),
	}, nil
}

// Draw implements Geometry. It returns ErrIndexedUnsupported when ctx
// cannot draw indexed geometry.
func (m *IndexedMesh) Draw(ctx Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	ic, ok := ctx.(IndexedContext)
	if !ok {
		return ErrIndexedUnsupported
	}
	h, err := m.res.GetOrCreateIndexed(ic, m.vertices, m.indices, PositionTexture)
	if err != nil {
		return err
	}
	ic.BindVertexArray(h.Array)
	ic.DrawElements(0, int32(len(m.indices)))
	return nil
}

// VertexCount implements Geometry.
func (m *IndexedMesh) VertexCount() int { return m.vertices.VertexCount() }

// TriangleCount implements Geometry.
func (m *IndexedMesh) TriangleCount() int { return len(m.indices) / 3 }

// IndexCount returns the number of indices drawn per call.
func (m *IndexedMesh) IndexCount() int { return len(m.indices) }

// Resource returns the GPU resource backing the mesh.
func (m *IndexedMesh) Resource() *Resource { return &m.res }

// Vertices returns a copy of the mesh's vertex data.
func (m *IndexedMesh) Vertices() VertexData {
	return append(VertexData(nil), m.vertices...)
}

// Indices returns a copy of the mesh's index data.
func (m *IndexedMesh) Indices() []uint32 {
	return append([]uint32(nil), m.indices...)
}
