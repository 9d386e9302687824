// Package model holds the model aggregate loaded by the runtime: a list of
// indexed meshes, each with a base color texture reference and a transform.
//
// Texture and model file decoding live elsewhere; this package only
// describes the result and draws it through the geometry core.
package model

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/math/f32"

	"github.com/functor-dev/functor/geometry"
)

// Texture2D references a 2D texture by name and source path.
// The zero value means "no texture".
type Texture2D struct {
	Name string
	Path string
}

// IsZero reports whether t references no texture.
func (t Texture2D) IsZero() bool {
	return t.Name == "" && t.Path == ""
}

// ModelMesh is one indexed mesh of a model with its material and
// placement.
type ModelMesh struct {
	// BaseColorTexture is the material's base color texture.
	BaseColorTexture Texture2D

	// Mesh is the indexed vertex-position-texture geometry.
	Mesh *geometry.IndexedMesh

	// Transform places the mesh in model space. Row-major. The zero
	// matrix is treated as the identity.
	Transform f32.Mat4
}

// Placed returns the mesh with Transform applied to its vertex
// positions. Texture coordinates are kept. When the transform is the
// identity (or zero) the original mesh is returned unchanged.
func (mm ModelMesh) Placed() (*geometry.IndexedMesh, error) {
	if mm.Mesh == nil {
		return nil, nil
	}
	if mm.Transform == (f32.Mat4{}) || mm.Transform == Identity() {
		return mm.Mesh, nil
	}
	v := mm.Mesh.Vertices()
	for i := 0; i+2 < len(v); i += geometry.Stride {
		p := TransformPoint(mm.Transform, f32.Vec3{v[i], v[i+1], v[i+2]})
		v[i], v[i+1], v[i+2] = p[0], p[1], p[2]
	}
	return geometry.NewIndexedMesh(v, mm.Mesh.Indices())
}

// Model is an ordered list of meshes drawn together.
// It implements geometry.Geometry so a render loop can draw it like any
// other shape.
type Model struct {
	Meshes []ModelMesh

	mu     sync.Mutex
	placed []*geometry.IndexedMesh
}

var _ geometry.Geometry = (*Model)(nil)

// New returns a model with the given meshes.
func New(meshes ...ModelMesh) *Model {
	return &Model{Meshes: meshes}
}

// Len returns the number of meshes.
func (m *Model) Len() int { return len(m.Meshes) }

// Draw draws every mesh in order, placed by its transform. Meshes
// without geometry are skipped. A failing mesh does not stop the others;
// the failures are joined.
//
// Placed meshes are built on the first draw and reused afterwards, so
// each keeps its own GPU resource.
func (m *Model) Draw(ctx geometry.Context) error {
	meshes, err := m.placedMeshes()
	if err != nil {
		return err
	}
	var errs []error
	for i, mesh := range meshes {
		if mesh == nil {
			continue
		}
		if err := mesh.Draw(ctx); err != nil {
			errs = append(errs, fmt.Errorf("model: mesh %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Model) placedMeshes() ([]*geometry.IndexedMesh, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.placed) == len(m.Meshes) && m.placed != nil {
		return m.placed, nil
	}
	placed := make([]*geometry.IndexedMesh, len(m.Meshes))
	for i, mm := range m.Meshes {
		p, err := mm.Placed()
		if err != nil {
			return nil, fmt.Errorf("model: place mesh %d: %w", i, err)
		}
		placed[i] = p
	}
	m.placed = placed
	return placed, nil
}

// VertexCount returns the total vertex count of all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mm := range m.Meshes {
		if mm.Mesh != nil {
			n += mm.Mesh.VertexCount()
		}
	}
	return n
}

// TriangleCount returns the total triangle count of all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mm := range m.Meshes {
		if mm.Mesh != nil {
			n += mm.Mesh.TriangleCount()
		}
	}
	return n
}

// Textures returns the distinct non-zero base color textures in mesh
// order.
func (m *Model) Textures() []Texture2D {
	seen := make(map[Texture2D]bool)
	var out []Texture2D
	for _, mm := range m.Meshes {
		t := mm.BaseColorTexture
		if t.IsZero() || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
