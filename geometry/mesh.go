package geometry

// Mesh is a shape built from an arbitrary list of vertices in the
// [PositionTexture] layout, drawn as a triangle list.
type Mesh struct {
	vertices VertexData
	res      Resource
}

// NewMesh creates a mesh from a copy of vertices. It returns an error
// wrapping ErrInvalidVertexData when len(vertices) is not a multiple of
// Stride.
func NewMesh(vertices []float32) (*Mesh, error) {
	data := VertexData(vertices)
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &Mesh{vertices: append(VertexData(nil), data...)}, nil
}

// Draw implements Geometry.
func (m *Mesh) Draw(ctx Context) error {
	return drawArrays(ctx, &m.res, m.vertices)
}

// VertexCount implements Geometry.
func (m *Mesh) VertexCount() int { return m.vertices.VertexCount() }

// TriangleCount implements Geometry.
func (m *Mesh) TriangleCount() int { return m.vertices.VertexCount() / 3 }

// Vertices returns a copy of the mesh's vertex data.
func (m *Mesh) Vertices() VertexData {
	return append(VertexData(nil), m.vertices...)
}

// Resource returns the GPU resource backing the mesh.
func (m *Mesh) Resource() *Resource { return &m.res }
