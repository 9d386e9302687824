package geometry

import (
	"errors"
	"fmt"
)

// Geometry is a drawable shape.
//
// Implementations are substitutable: the render loop holds a
// heterogeneous []Geometry and calls Draw on each without knowing the
// concrete type. The built-in implementations are [Empty], [*Mesh],
// [*Cube], [*Plane] and [*IndexedMesh].
type Geometry interface {
	// Draw issues the shape's draw command on ctx, creating its GPU
	// resources on the first call. ctx must be the same device for every
	// call on one shape.
	Draw(ctx Context) error

	// VertexCount returns the number of vertex records of the shape.
	VertexCount() int

	// TriangleCount returns the number of triangles drawn per call.
	TriangleCount() int
}

// Compile-time interface checks.
var (
	_ Geometry = Empty{}
	_ Geometry = (*Mesh)(nil)
	_ Geometry = (*Cube)(nil)
	_ Geometry = (*Plane)(nil)
	_ Geometry = (*IndexedMesh)(nil)
)

// Empty is a shape with no geometry. Drawing it does nothing.
type Empty struct{}

// NewEmpty returns the empty shape.
func NewEmpty() Empty { return Empty{} }

// Draw does nothing and never touches ctx.
func (Empty) Draw(Context) error { return nil }

// VertexCount returns 0.
func (Empty) VertexCount() int { return 0 }

// TriangleCount returns 0.
func (Empty) TriangleCount() int { return 0 }

// DrawAll draws every shape in order. A shape that fails is skipped and
// the remaining shapes are still drawn; the failures are returned joined.
func DrawAll(ctx Context, shapes []Geometry) error {
	var errs []error
	for i, s := range shapes {
		if s == nil {
			continue
		}
		if err := s.Draw(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shape %d (%T): %w", i, s, err))
		}
	}
	return errors.Join(errs...)
}

// drawArrays is the shared draw protocol of the non-indexed shapes.
func drawArrays(ctx Context, res *Resource, data VertexData) error {
	if ctx == nil {
		return ErrNilContext
	}
	h, err := res.GetOrCreate(ctx, data, PositionTexture)
	if err != nil {
		return err
	}
	ctx.BindVertexArray(h.Array)
	ctx.DrawArrays(0, int32(data.VertexCount()))
	return nil
}
