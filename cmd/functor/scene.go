package main

import (
	"fmt"

	"github.com/functor-dev/functor/geometry"
	"github.com/functor-dev/functor/internal/project"
	"github.com/functor-dev/functor/model"
)

// namedShape pairs a preview shape with its manifest name.
type namedShape struct {
	name  string
	shape geometry.Geometry
}

// markerVertices is a small upright quad drawn above the plane.
var (
	markerVertices = []float32{
		-0.1, 0.0, 0, 0, 0,
		0.1, 0.0, 0, 1, 0,
		0.1, 0.2, 0, 1, 1,
		-0.1, 0.2, 0, 0, 1,
	}
	markerIndices = []uint32{0, 1, 2, 0, 2, 3}
)

// previewScene returns the shapes develop renders and build summarizes.
func previewScene() ([]namedShape, error) {
	marker, err := geometry.NewIndexedMesh(markerVertices, markerIndices)
	if err != nil {
		return nil, fmt.Errorf("marker mesh: %w", err)
	}
	return []namedShape{
		{name: "cube", shape: geometry.NewCube()},
		{name: "plane", shape: geometry.NewPlane()},
		{name: "marker", shape: model.New(model.ModelMesh{
			BaseColorTexture: model.Texture2D{Name: "marker", Path: "textures/marker.png"},
			Mesh:             marker,
			Transform:        model.Translation(0, 0.5, 0),
		})},
	}, nil
}

func shapes(scene []namedShape) []geometry.Geometry {
	out := make([]geometry.Geometry, len(scene))
	for i, s := range scene {
		out[i] = s.shape
	}
	return out
}

func summarize(scene []namedShape) []project.ShapeSummary {
	out := make([]project.ShapeSummary, len(scene))
	for i, s := range scene {
		n := s.shape.VertexCount()
		out[i] = project.ShapeSummary{
			Name:      s.name,
			Vertices:  n,
			Triangles: s.shape.TriangleCount(),
			Bytes:     n * geometry.PositionTexture.FloatsPerVertex() * 4,
		}
	}
	return out
}
