package geometry

// cubeVertices is the unit cube centred on the origin, six faces of two
// triangles each.
var cubeVertices = VertexData{
	// back (-z)
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	-0.5, -0.5, -0.5, 0, 0,
	// front (+z)
	-0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,
	// left (-x)
	-0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, -0.5, 1, 1,
	-0.5, -0.5, -0.5, 0, 1,
	-0.5, -0.5, -0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, 0.5, 0.5, 1, 0,
	// right (+x)
	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,
	// bottom (-y)
	-0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 1, 1,
	0.5, -0.5, 0.5, 1, 0,
	0.5, -0.5, 0.5, 1, 0,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, -0.5, -0.5, 0, 1,
	// top (+y)
	-0.5, 0.5, -0.5, 0, 1,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, 0.5, 0, 0,
	-0.5, 0.5, -0.5, 0, 1,
}

// CubeVertexCount is the number of vertices of a Cube (12 triangles).
const CubeVertexCount = 36

// Cube is the unit cube centred on the origin.
//
// Each Cube owns its own Resource; two cubes never share GPU buffers.
type Cube struct {
	res Resource
}

// NewCube returns a new unit cube.
func NewCube() *Cube { return &Cube{} }

// Draw implements Geometry.
func (c *Cube) Draw(ctx Context) error {
	return drawArrays(ctx, &c.res, cubeVertices)
}

// VertexCount implements Geometry.
func (c *Cube) VertexCount() int { return CubeVertexCount }

// TriangleCount implements Geometry.
func (c *Cube) TriangleCount() int { return CubeVertexCount / 3 }

// Vertices returns a copy of the cube's vertex data.
func (c *Cube) Vertices() VertexData {
	return append(VertexData(nil), cubeVertices...)
}

// Resource returns the GPU resource backing the cube.
func (c *Cube) Resource() *Resource { return &c.res }
