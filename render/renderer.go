// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	functor "github.com/functor-dev/functor"
	"github.com/functor-dev/functor/geometry"
)

// FrameStats describes one rendered frame.
type FrameStats struct {
	// Frame is the 1-based index of the frame.
	Frame uint64

	// Shapes is the number of shapes the renderer held.
	Shapes int

	// Drawn is the number of shapes whose Draw returned no error.
	Drawn int

	// Skipped is the number of shapes whose Draw failed.
	Skipped int

	// Duration is the wall time spent encoding and waiting.
	Duration time.Duration
}

// Renderer is the frame loop collaborator. Each frame it clears an
// offscreen target, calls Draw once for every shape through its HALContext
// and submits the recorded commands.
//
// A Renderer is NOT thread-safe. Use it from the goroutine that owns the
// device.
type Renderer struct {
	ctx *HALContext

	pipeline     *Pipeline
	ownsPipeline bool

	target offscreenTarget
	width  uint32
	height uint32
	clear  gputypes.Color

	shapes  []geometry.Geometry
	frames  uint64
	onFrame func(FrameStats)
}

// NewRenderer creates a renderer that draws through ctx. No GPU objects
// are created until the first frame.
func NewRenderer(ctx *HALContext, opts ...RendererOption) (*Renderer, error) {
	if ctx == nil {
		return nil, ErrNilDevice
	}

	options := defaultRendererOptions()
	for _, opt := range opts {
		opt(&options)
	}

	r := &Renderer{
		ctx:      ctx,
		pipeline: options.pipeline,
		width:    options.width,
		height:   options.height,
		clear:    options.clear,
		onFrame:  options.onFrame,
	}
	if r.pipeline == nil {
		r.pipeline = NewPipeline(ctx.Device(), DefaultTargetFormat)
		r.ownsPipeline = true
	}
	return r, nil
}

// Context returns the geometry context shapes are drawn through.
func (r *Renderer) Context() *HALContext { return r.ctx }

// Add appends shapes to the frame. Nil shapes are ignored.
func (r *Renderer) Add(shapes ...geometry.Geometry) {
	for _, s := range shapes {
		if s != nil {
			r.shapes = append(r.shapes, s)
		}
	}
}

// SetShapes replaces the frame's shapes.
func (r *Renderer) SetShapes(shapes []geometry.Geometry) {
	r.shapes = r.shapes[:0]
	r.Add(shapes...)
}

// Shapes returns a copy of the frame's shapes.
func (r *Renderer) Shapes() []geometry.Geometry {
	return append([]geometry.Geometry(nil), r.shapes...)
}

// Frames returns the number of frames rendered so far.
func (r *Renderer) Frames() uint64 { return r.frames }

// Size returns the target size in pixels.
func (r *Renderer) Size() (width, height uint32) { return r.width, r.height }

// Frame renders one frame. Shapes that fail to draw are skipped, logged
// at Warn and counted in FrameStats. The returned error reports device
// failures only.
func (r *Renderer) Frame() (FrameStats, error) {
	start := time.Now()
	stats := FrameStats{Frame: r.frames + 1, Shapes: len(r.shapes)}

	device := r.ctx.Device()
	pipeline, err := r.pipeline.Ensure()
	if err != nil {
		return stats, err
	}
	if err := r.target.ensure(device, r.width, r.height, r.pipeline.Format()); err != nil {
		return stats, err
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "functor_frame_encoder",
	})
	if err != nil {
		return stats, fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("functor_frame"); err != nil {
		return stats, fmt.Errorf("render: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "functor_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.target.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clear,
		}},
	})
	rp.SetPipeline(pipeline)

	r.ctx.BeginPass(rp)
	r.drawShapes(&stats)
	if err := r.ctx.EndPass(); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return stats, err
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return stats, fmt.Errorf("render: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	queue := r.ctx.Queue()
	idx, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return stats, fmt.Errorf("render: submit: %w", err)
	}
	if err := awaitSubmission(device, queue, idx); err != nil {
		return stats, err
	}

	r.frames++
	stats.Duration = time.Since(start)
	functor.Logger().Debug("render: frame",
		slog.Uint64("frame", stats.Frame),
		slog.Int("drawn", stats.Drawn),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("duration", stats.Duration))
	if r.onFrame != nil {
		r.onFrame(stats)
	}
	return stats, nil
}

// awaitSubmission blocks until the GPU has finished submission idx.
func awaitSubmission(device hal.Device, queue hal.Queue, idx uint64) error {
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait for GPU: %w", err)
	}
	if done := queue.PollCompleted(); done < idx {
		return fmt.Errorf("%w: submission %d, completed %d", ErrSubmissionIncomplete, idx, done)
	}
	return nil
}

// drawShapes calls Draw once per shape inside the active pass.
func (r *Renderer) drawShapes(stats *FrameStats) {
	for i, s := range r.shapes {
		if err := s.Draw(r.ctx); err != nil {
			stats.Skipped++
			functor.Logger().Warn("render: shape skipped",
				slog.Int("index", i),
				slog.String("type", fmt.Sprintf("%T", s)),
				slog.String("error", err.Error()))
			continue
		}
		stats.Drawn++
	}
}

// Run renders frames until n frames are done or ctx is cancelled. A
// non-positive n runs until cancellation. Cancellation is checked between
// frames only, and Run then returns ctx.Err().
func (r *Renderer) Run(ctx context.Context, n int) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Destroy releases the target and, unless it was supplied with
// WithPipeline, the pipeline. Shape resources stay with the HALContext.
func (r *Renderer) Destroy() {
	device := r.ctx.Device()
	r.target.destroy(device)
	if r.ownsPipeline {
		r.pipeline.Destroy()
	}
}

// IsCanceled reports whether err is a context cancellation, which ends a
// Run normally.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
