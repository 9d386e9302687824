package geometry

// DefaultUVScale is the texture coordinate extent of a Plane when no
// WithUVScale option is given. Textures repeat this many times across the
// plane when sampled with a repeating sampler.
const DefaultUVScale = 100

// PlaneVertexCount is the number of vertices of a Plane (2 triangles).
const PlaneVertexCount = 6

// PlaneOption configures a Plane during creation.
type PlaneOption func(*planeOptions)

type planeOptions struct {
	uvScale float32
}

// WithUVScale sets the texture coordinate extent of the plane. The
// corners opposite the origin get texture coordinate s instead of 1.
func WithUVScale(s float32) PlaneOption {
	return func(o *planeOptions) {
		o.uvScale = s
	}
}

// Plane is a unit quad in the XZ plane centred on the origin, facing +Y.
type Plane struct {
	uvScale  float32
	vertices VertexData
	res      Resource
}

// NewPlane returns a new plane. The UV scale is baked into the plane's
// vertex data here and cannot change afterwards.
func NewPlane(opts ...PlaneOption) *Plane {
	o := planeOptions{uvScale: DefaultUVScale}
	for _, opt := range opts {
		opt(&o)
	}
	s := o.uvScale
	return &Plane{
		uvScale: s,
		vertices: VertexData{
			-0.5, 0, -0.5, 0, 0,
			0.5, 0, -0.5, s, 0,
			0.5, 0, 0.5, s, s,
			-0.5, 0, -0.5, 0, 0,
			-0.5, 0, 0.5, 0, s,
			0.5, 0, 0.5, s, s,
		},
	}
}

// Draw implements Geometry.
func (p *Plane) Draw(ctx Context) error {
	return drawArrays(ctx, &p.res, p.vertices)
}

// VertexCount implements Geometry.
func (p *Plane) VertexCount() int { return PlaneVertexCount }

// TriangleCount implements Geometry.
func (p *Plane) TriangleCount() int { return PlaneVertexCount / 3 }

// UVScale returns the texture coordinate extent baked into the plane.
func (p *Plane) UVScale() float32 { return p.uvScale }

// Vertices returns a copy of the plane's vertex data.
func (p *Plane) Vertices() VertexData {
	return append(VertexData(nil), p.vertices...)
}

// Resource returns the GPU resource backing the plane.
func (p *Plane) Resource() *Resource { return &p.res }
