// Package functor is the runtime library behind functor projects.
//
// # Overview
//
// The runtime is split into small packages:
//   - geometry: drawable shapes (Mesh, Cube, Plane, Empty, IndexedMesh)
//     and the lazily created GPU resources behind them
//   - model: models made of indexed meshes, texture references and
//     transforms
//   - render: a geometry.Context on gogpu/wgpu's HAL, device acquisition
//     and the preview frame loop
//
// The functor command (cmd/functor) provides the init, build and develop
// workflows on top of these packages.
//
// # Quick Start
//
//	dev, _ := render.OpenDevice(render.BackendNoop)
//	defer dev.Close()
//	gctx, _ := dev.NewContext()
//
//	cube := geometry.NewCube()
//	r, _ := render.NewRenderer(gctx)
//	r.Add(cube)
//	_ = r.Run(ctx, 60)
//
// # Logging
//
// All packages log through the logger installed with SetLogger. By default
// nothing is logged.
package functor

// Version is the runtime version.
const Version = "0.1.0"
