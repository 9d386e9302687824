// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render connects the geometry core to a GPU device through
// gogpu/wgpu's HAL.
//
// # Core Types
//
//   - HALContext: a geometry.Context backed by a hal.Device and hal.Queue
//   - Device: an opened HAL instance, device and queue (Vulkan or noop)
//   - Pipeline: the fixed position/texcoord preview pipeline
//   - Renderer: the frame loop that draws a list of shapes once per frame
//
// # Usage
//
// Standalone, for example from the develop command:
//
//	dev, err := render.OpenDevice(render.BackendVulkan)
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	gctx, err := dev.NewContext()
//	if err != nil {
//	    return err
//	}
//	defer gctx.Destroy()
//
//	r, err := render.NewRenderer(gctx, render.WithTargetSize(640, 480))
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//	r.Add(geometry.NewCube(), geometry.NewPlane())
//	err = r.Run(ctx, 60)
//
// Sharing the host application's device:
//
//	gctx, err := render.NewContextFromProvider(app.GPUContextProvider())
//
// # Threading
//
// A HALContext and a Renderer must be used from one goroutine, the one
// that owns the device. Shapes drawn through a HALContext keep handles
// that are only meaningful to that context.
package render
