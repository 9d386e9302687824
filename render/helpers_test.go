// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newNoopContext returns a HALContext on a noop device.
func newNoopContext(t *testing.T) (*HALContext, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	ctx, err := NewContext(device, queue)
	if err != nil {
		cleanup()
		t.Fatalf("NewContext failed: %v", err)
	}
	return ctx, func() {
		ctx.Destroy()
		cleanup()
	}
}

// fakePass records the commands a HALContext issues.
type fakePass struct {
	calls []string
}

func (p *fakePass) SetPipeline(hal.RenderPipeline) {
	p.calls = append(p.calls, "SetPipeline")
}

func (p *fakePass) SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64) {
	p.calls = append(p.calls, fmt.Sprintf("SetVertexBuffer(%d, %t, %d)", slot, buffer != nil, offset))
}

func (p *fakePass) SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	p.calls = append(p.calls, fmt.Sprintf("SetIndexBuffer(%t, %v, %d)", buffer != nil, format == gputypes.IndexFormatUint32, offset))
}

func (p *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.calls = append(p.calls, fmt.Sprintf("Draw(%d, %d, %d, %d)", vertexCount, instanceCount, firstVertex, firstInstance))
}

func (p *fakePass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.calls = append(p.calls, fmt.Sprintf("DrawIndexed(%d, %d, %d, %d, %d)", indexCount, instanceCount, firstIndex, baseVertex, firstInstance))
}

func (p *fakePass) String() string {
	return strings.Join(p.calls, "; ")
}

// skipOnNagaLimitation skips the test when the shader compiler reports a
// missing feature.
func skipOnNagaLimitation(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
}

var errInjected = errors.New("injected failure")

// failingWriteQueue rejects every buffer write.
type failingWriteQueue struct {
	hal.Queue
}

func (failingWriteQueue) WriteBuffer(hal.Buffer, uint64, []byte) error {
	return errInjected
}

// stalledQueue reports a fixed completed submission index.
type stalledQueue struct {
	hal.Queue
	done uint64
}

func (q stalledQueue) PollCompleted() uint64 { return q.done }

// idleDevice returns err from WaitIdle.
type idleDevice struct {
	hal.Device
	err error
}

func (d idleDevice) WaitIdle() error { return d.err }

// endFailDevice hands out encoders whose EndEncoding fails.
type endFailDevice struct {
	hal.Device
	encoders []*endFailEncoder
}

func (d *endFailDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	e := &endFailEncoder{CommandEncoder: enc}
	d.encoders = append(d.encoders, e)
	return e, nil
}

type endFailEncoder struct {
	hal.CommandEncoder
	discarded bool
}

func (e *endFailEncoder) EndEncoding() (hal.CommandBuffer, error) {
	return nil, errInjected
}

func (e *endFailEncoder) DiscardEncoding() {
	e.discarded = true
	e.CommandEncoder.DiscardEncoding()
}
