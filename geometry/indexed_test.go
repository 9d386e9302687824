package geometry_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/functor-dev/functor/geometry"
	"github.com/functor-dev/functor/geometry/geometrytest"
)

// square is the four corners of the quad, shared by two triangles.
var square = []float32{
	-0.5, 0, -0.5, 0, 0,
	0.5, 0, -0.5, 1, 0,
	0.5, 0, 0.5, 1, 1,
	-0.5, 0, 0.5, 0, 1,
}

func TestNewIndexedMeshValidation(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		want     error
	}{
		{"valid", square, []uint32{0, 1, 2, 0, 3, 2}, nil},
		{"no indices", square, nil, nil},
		{"bad stride", square[:7], []uint32{0, 1, 2}, geometry.ErrInvalidVertexData},
		{"partial triangle", square, []uint32{0, 1}, geometry.ErrInvalidIndexData},
		{"out of range", square, []uint32{0, 1, 4}, geometry.ErrInvalidIndexData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geometry.NewIndexedMesh(tt.vertices, tt.indices)
			if tt.want == nil {
				if err != nil {
					t.Errorf("NewIndexedMesh() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("NewIndexedMesh() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIndexedMeshDraw(t *testing.T) {
	m, err := geometry.NewIndexedMesh(square, []uint32{0, 1, 2, 0, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 || m.IndexCount() != 6 || m.TriangleCount() != 2 {
		t.Errorf("counts = %d/%d/%d, want 4/6/2", m.VertexCount(), m.IndexCount(), m.TriangleCount())
	}

	rec := geometrytest.NewRecorder()
	for range 3 {
		if err := m.Draw(rec); err != nil {
			t.Fatal(err)
		}
	}
	if rec.BuffersCreated() != 2 || rec.ArraysCreated() != 1 {
		t.Errorf("buffers=%d arrays=%d, want 2 and 1", rec.BuffersCreated(), rec.ArraysCreated())
	}

	h, ok := m.Resource().Handles()
	if !ok || h.Index == 0 {
		t.Fatalf("handles = %+v, %t, want an index buffer", h, ok)
	}
	if got := rec.IndexBuffer(h.Array); got != h.Index {
		t.Errorf("array index buffer = %d, want %d", got, h.Index)
	}

	ups := rec.Uploads()
	if len(ups) != 2 {
		t.Fatalf("uploads = %d, want 2", len(ups))
	}
	if ups[0].Index || len(ups[0].Data) != 80 {
		t.Errorf("vertex upload = index:%t %d bytes, want 80 vertex bytes", ups[0].Index, len(ups[0].Data))
	}
	if !ups[1].Index || len(ups[1].Data) != 24 {
		t.Errorf("index upload = index:%t %d bytes, want 24 index bytes", ups[1].Index, len(ups[1].Data))
	}
	if got := binary.NativeEndian.Uint32(ups[1].Data[16:]); got != 3 {
		t.Errorf("fifth index = %d, want 3", got)
	}

	for _, d := range rec.Draws() {
		if !d.Indexed || d.Count != 6 || d.Array != h.Array {
			t.Errorf("draw = %+v, want indexed draw of 6 on array %d", d, h.Array)
		}
	}
}

func TestIndexedMeshUnsupportedContext(t *testing.T) {
	m, err := geometry.NewIndexedMesh(square, []uint32{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	rec := geometrytest.NewRecorder()
	if err := m.Draw(rec.ArraysOnly()); !errors.Is(err, geometry.ErrIndexedUnsupported) {
		t.Errorf("Draw() = %v, want ErrIndexedUnsupported", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("unsupported draw made calls: %q", rec.Calls())
	}
}

func TestIndexedMeshIndexUploadFailureReleasesBuffers(t *testing.T) {
	m, err := geometry.NewIndexedMesh(square, []uint32{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	rec := &failIndexRecorder{Recorder: geometrytest.NewRecorder()}
	if err := m.Draw(rec); !errors.Is(err, geometry.ErrResourceCreationFailed) {
		t.Fatalf("Draw() = %v, want ErrResourceCreationFailed", err)
	}
	if got := rec.Deleted(); len(got) != 2 {
		t.Errorf("deleted = %v, want vertex and index buffers", got)
	}
	if m.Resource().Initialized() {
		t.Error("resource initialized after failure")
	}
}

// failIndexRecorder fails index uploads only.
type failIndexRecorder struct {
	*geometrytest.Recorder
}

func (r *failIndexRecorder) IndexData([]byte) error {
	return errOutOfMemory
}
