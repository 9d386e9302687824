// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/functor-dev/functor/geometry"
)

// failingShape always fails to draw.
type failingShape struct{}

var errShape = errors.New("shape failed")

func (failingShape) Draw(geometry.Context) error { return errShape }
func (failingShape) VertexCount() int            { return 0 }
func (failingShape) TriangleCount() int          { return 0 }

func TestNewRendererNil(t *testing.T) {
	if _, err := NewRenderer(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewRenderer(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestRendererOptions(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	want := gputypes.Color{R: 1, A: 1}
	r, err := NewRenderer(ctx, WithTargetSize(320, 0), WithClearColor(want))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	w, h := r.Size()
	if w != 320 || h != DefaultTargetHeight {
		t.Errorf("Size() = %dx%d, want 320x%d", w, h, DefaultTargetHeight)
	}
	if r.clear != want {
		t.Errorf("clear = %+v, want %+v", r.clear, want)
	}
	if !r.ownsPipeline {
		t.Error("renderer should own its default pipeline")
	}
}

func TestRendererWithPipeline(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	p := NewPipeline(ctx.Device(), gputypes.TextureFormatRGBA8Unorm)
	r, err := NewRenderer(ctx, WithPipeline(p))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if r.ownsPipeline || r.pipeline != p {
		t.Error("renderer should use the supplied pipeline without owning it")
	}
	r.Destroy()
	p.Destroy()
}

func TestRendererAddSkipsNil(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	r, _ := NewRenderer(ctx)
	r.Add(geometry.NewCube(), nil, geometry.NewEmpty())
	if got := len(r.Shapes()); got != 2 {
		t.Errorf("len(Shapes()) = %d, want 2", got)
	}

	r.SetShapes([]geometry.Geometry{geometry.NewPlane()})
	if got := len(r.Shapes()); got != 1 {
		t.Errorf("len(Shapes()) after SetShapes = %d, want 1", got)
	}
}

func TestRendererFrame(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	r, err := NewRenderer(ctx, WithTargetSize(64, 64))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	cube := geometry.NewCube()
	plane := geometry.NewPlane()
	r.Add(cube, plane, geometry.NewEmpty(), failingShape{})

	for i := 1; i <= 3; i++ {
		stats, err := r.Frame()
		skipOnNagaLimitation(t, err)
		if err != nil {
			t.Fatalf("Frame #%d failed: %v", i, err)
		}
		if stats.Frame != uint64(i) {
			t.Errorf("Frame = %d, want %d", stats.Frame, i)
		}
		if stats.Shapes != 4 || stats.Drawn != 3 || stats.Skipped != 1 {
			t.Errorf("frame %d stats = %+v, want 4 shapes, 3 drawn, 1 skipped", i, stats)
		}
	}

	s := ctx.Stats()
	if s.Buffers != 2 || s.Arrays != 2 {
		t.Errorf("allocations = %d buffers, %d arrays, want 2, 2", s.Buffers, s.Arrays)
	}
	wantBytes := uint64((geometry.CubeVertexCount + geometry.PlaneVertexCount) * geometry.Stride * 4)
	if s.BytesUploaded != wantBytes {
		t.Errorf("BytesUploaded = %d, want %d", s.BytesUploaded, wantBytes)
	}
	if s.Draws != 6 {
		t.Errorf("Draws = %d, want 6 (2 shapes x 3 frames)", s.Draws)
	}
	if s.SkippedDraws != 0 {
		t.Errorf("SkippedDraws = %d, want 0", s.SkippedDraws)
	}
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}
}

func TestRendererFrameEndEncodingFails(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	dev := &endFailDevice{Device: device}
	ctx, err := NewContext(dev, queue)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Destroy()

	r, err := NewRenderer(ctx, WithTargetSize(16, 16))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()
	r.Add(geometry.NewPlane())

	_, err = r.Frame()
	skipOnNagaLimitation(t, err)
	if !errors.Is(err, errInjected) {
		t.Fatalf("Frame() error = %v, want the end encoding error", err)
	}
	if len(dev.encoders) != 1 || !dev.encoders[0].discarded {
		t.Error("encoder not discarded after EndEncoding failed")
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", r.Frames())
	}
}

func TestAwaitSubmission(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name    string
		device  hal.Device
		queue   hal.Queue
		idx     uint64
		wantErr error
	}{
		{"completed", idleDevice{Device: device}, stalledQueue{Queue: queue, done: 3}, 3, nil},
		{"ahead", idleDevice{Device: device}, stalledQueue{Queue: queue, done: 5}, 3, nil},
		{"wait fails", idleDevice{Device: device, err: errInjected}, stalledQueue{Queue: queue, done: 3}, 3, errInjected},
		{"incomplete", idleDevice{Device: device}, stalledQueue{Queue: queue, done: 2}, 3, ErrSubmissionIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := awaitSubmission(tt.device, tt.queue, tt.idx)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("awaitSubmission() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("awaitSubmission() = %v, want %v", err, tt.wantErr)
			}
			if strings.Contains(err.Error(), "%!") {
				t.Errorf("malformed error text %q", err)
			}
		})
	}
}

func TestRendererRun(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	var seen []uint64
	r, _ := NewRenderer(ctx,
		WithTargetSize(16, 16),
		WithFrameCallback(func(s FrameStats) { seen = append(seen, s.Frame) }),
	)
	defer r.Destroy()
	r.Add(geometry.NewCube())

	err := r.Run(context.Background(), 5)
	skipOnNagaLimitation(t, err)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if r.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", r.Frames())
	}
	if len(seen) != 5 || seen[4] != 5 {
		t.Errorf("frame callback saw %v, want frames 1..5", seen)
	}
}

func TestRendererRunCancelled(t *testing.T) {
	ctx, cleanup := newNoopContext(t)
	defer cleanup()

	r, _ := NewRenderer(ctx)
	defer r.Destroy()

	runCtx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(runCtx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !IsCanceled(err) {
		t.Error("IsCanceled should report cancellation")
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", r.Frames())
	}
}
