// Package geometry provides the drawable shapes of the functor runtime and
// the lazy GPU buffer lifecycle shared by all of them.
//
// # Overview
//
// Every shape implements [Geometry]. The render loop holds a heterogeneous
// list of shapes and calls Draw once per frame per visible shape:
//
//	shapes := []geometry.Geometry{geometry.NewCube(), geometry.NewPlane()}
//	for _, s := range shapes {
//	    if err := s.Draw(ctx); err != nil {
//	        // skip the shape for this frame
//	    }
//	}
//
// # Resource Lifecycle
//
// A shape's vertex buffer and vertex array binding are created by a
// [Resource] the first time the shape is drawn, and reused for every later
// draw. Creation happens at most once per shape instance, even when several
// goroutines race on the first draw. The handles are never released: the
// [Context] owns the GPU memory and tears it down at process exit.
//
// # Vertex Layout
//
// Vertex data is a flat []float32 with a fixed stride of 5 floats per
// vertex: three position components followed by two texture coordinates.
// See [PositionTexture].
//
// # Threading
//
// A Context must only be used from the goroutine that owns it, and all
// draws for one shape must go to the same Context. Neither precondition is
// checked at runtime.
package geometry
