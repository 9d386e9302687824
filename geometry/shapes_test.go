package geometry_test

import (
	"testing"

	"github.com/functor-dev/functor/geometry"
	"github.com/functor-dev/functor/geometry/geometrytest"
)

func TestCubeCounts(t *testing.T) {
	c := geometry.NewCube()
	if c.VertexCount() != 36 {
		t.Errorf("VertexCount() = %d, want 36", c.VertexCount())
	}
	if c.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", c.TriangleCount())
	}
	if got := len(c.Vertices()); got != 36*geometry.Stride {
		t.Errorf("len(Vertices()) = %d, want %d", got, 36*geometry.Stride)
	}

	rec := geometrytest.NewRecorder()
	if err := c.Draw(rec); err != nil {
		t.Fatal(err)
	}
	draws := rec.Draws()
	if len(draws) != 1 || draws[0].Count != 36 {
		t.Errorf("draws = %+v, want one draw of 36", draws)
	}
	if got := rec.UploadedBytes(); got != 36*geometry.Stride*4 {
		t.Errorf("uploaded %d bytes, want %d", got, 36*geometry.Stride*4)
	}
}

func TestCubeVerticesInUnitBox(t *testing.T) {
	v := geometry.NewCube().Vertices()
	for i := 0; i < len(v); i += geometry.Stride {
		for j := 0; j < 3; j++ {
			if p := v[i+j]; p != -0.5 && p != 0.5 {
				t.Fatalf("vertex %d component %d = %v, want ±0.5", i/geometry.Stride, j, p)
			}
		}
		for j := 3; j < 5; j++ {
			if uv := v[i+j]; uv != 0 && uv != 1 {
				t.Fatalf("vertex %d texcoord %d = %v, want 0 or 1", i/geometry.Stride, j-3, uv)
			}
		}
	}
}

func TestPlaneCounts(t *testing.T) {
	for _, scale := range []float32{0, 1, 2.5, geometry.DefaultUVScale, 1e6} {
		p := geometry.NewPlane(geometry.WithUVScale(scale))
		if p.VertexCount() != 6 || p.TriangleCount() != 2 {
			t.Errorf("scale %v: counts = %d/%d, want 6/2", scale, p.VertexCount(), p.TriangleCount())
		}
		rec := geometrytest.NewRecorder()
		if err := p.Draw(rec); err != nil {
			t.Fatal(err)
		}
		if d := rec.Draws(); len(d) != 1 || d[0].Count != 6 {
			t.Errorf("scale %v: draws = %+v, want one draw of 6", scale, d)
		}
	}
}

func TestPlaneUVScaleBaked(t *testing.T) {
	p := geometry.NewPlane()
	if p.UVScale() != geometry.DefaultUVScale {
		t.Errorf("default UVScale() = %v, want %v", p.UVScale(), geometry.DefaultUVScale)
	}

	p = geometry.NewPlane(geometry.WithUVScale(4))
	v := p.Vertices()
	var maxUV float32
	for i := 0; i < len(v); i += geometry.Stride {
		if v[i+1] != 0 {
			t.Errorf("vertex %d y = %v, want 0", i/geometry.Stride, v[i+1])
		}
		maxUV = max(maxUV, v[i+3], v[i+4])
	}
	if maxUV != 4 {
		t.Errorf("max texcoord = %v, want 4", maxUV)
	}
}

func TestShapesArePerInstance(t *testing.T) {
	rec := geometrytest.NewRecorder()
	a, b := geometry.NewCube(), geometry.NewCube()
	for range 3 {
		if err := a.Draw(rec); err != nil {
			t.Fatal(err)
		}
		if err := b.Draw(rec); err != nil {
			t.Fatal(err)
		}
	}
	if rec.BuffersCreated() != 2 {
		t.Errorf("buffers = %d, want 2 (one per cube)", rec.BuffersCreated())
	}
	ha, _ := a.Resource().Handles()
	hb, _ := b.Resource().Handles()
	if ha == hb {
		t.Errorf("two cubes share handles %+v", ha)
	}

	// Planes with different scales keep their own data.
	p1 := geometry.NewPlane(geometry.WithUVScale(1))
	p2 := geometry.NewPlane(geometry.WithUVScale(8))
	rec.Reset()
	if err := p1.Draw(rec); err != nil {
		t.Fatal(err)
	}
	if err := p2.Draw(rec); err != nil {
		t.Fatal(err)
	}
	ups := rec.Uploads()
	if len(ups) != 2 || string(ups[0].Data) == string(ups[1].Data) {
		t.Error("planes with different UV scales uploaded identical data")
	}
}

func TestEmptyNeverTouchesContext(t *testing.T) {
	rec := geometrytest.NewRecorder()
	e := geometry.NewEmpty()
	for range 5 {
		if err := e.Draw(rec); err != nil {
			t.Fatalf("Empty.Draw() = %v", err)
		}
	}
	if err := e.Draw(nil); err != nil {
		t.Errorf("Empty.Draw(nil) = %v", err)
	}
	if calls := rec.Calls(); len(calls) != 0 {
		t.Errorf("Empty.Draw made calls: %q", calls)
	}
	if e.VertexCount() != 0 || e.TriangleCount() != 0 {
		t.Error("Empty reports non-zero counts")
	}
}

func TestHeterogeneousDrawAll(t *testing.T) {
	m, err := geometry.NewMesh(quad)
	if err != nil {
		t.Fatal(err)
	}
	shapes := []geometry.Geometry{
		geometry.NewEmpty(),
		m,
		geometry.NewCube(),
		geometry.NewPlane(),
		nil,
	}
	rec := geometrytest.NewRecorder()
	for range 2 {
		if err := geometry.DrawAll(rec, shapes); err != nil {
			t.Fatalf("DrawAll() = %v", err)
		}
	}
	draws := rec.Draws()
	wantCounts := []int32{6, 36, 6, 6, 36, 6}
	if len(draws) != len(wantCounts) {
		t.Fatalf("draws = %d, want %d", len(draws), len(wantCounts))
	}
	for i, want := range wantCounts {
		if draws[i].Count != want {
			t.Errorf("draw %d count = %d, want %d", i, draws[i].Count, want)
		}
	}
	if rec.BuffersCreated() != 3 {
		t.Errorf("buffers = %d, want 3", rec.BuffersCreated())
	}
}
