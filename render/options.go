// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// Default renderer settings.
const (
	DefaultTargetWidth  = 640
	DefaultTargetHeight = 480
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r, err := render.NewRenderer(gctx,
//	    render.WithTargetSize(1280, 720),
//	    render.WithClearColor(gputypes.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}),
//	)
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	width    uint32
	height   uint32
	clear    gputypes.Color
	pipeline *Pipeline
	onFrame  func(FrameStats)
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		width:  DefaultTargetWidth,
		height: DefaultTargetHeight,
		clear:  gputypes.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
	}
}

// WithClearColor sets the color the target is cleared to each frame.
func WithClearColor(c gputypes.Color) RendererOption {
	return func(o *rendererOptions) {
		o.clear = c
	}
}

// WithTargetSize sets the offscreen target size in pixels. Zero values
// keep the default.
func WithTargetSize(width, height uint32) RendererOption {
	return func(o *rendererOptions) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithPipeline makes the renderer draw with p instead of creating its own
// preview pipeline. The renderer does not destroy a pipeline passed in
// this way, and the target takes the pipeline's format.
func WithPipeline(p *Pipeline) RendererOption {
	return func(o *rendererOptions) {
		o.pipeline = p
	}
}

// WithFrameCallback registers fn to be called after every frame that
// completes without a device error.
func WithFrameCallback(fn func(FrameStats)) RendererOption {
	return func(o *rendererOptions) {
		o.onFrame = fn
	}
}
