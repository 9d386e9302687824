// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	functor "github.com/functor-dev/functor"
	"github.com/functor-dev/functor/geometry"
)

// PassEncoder is the subset of hal.RenderPassEncoder used to record draws.
// hal.RenderPassEncoder satisfies it.
type PassEncoder interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// Stats counts the work a HALContext has done since it was created.
type Stats struct {
	// Buffers is the number of buffer handles allocated.
	Buffers int

	// Arrays is the number of vertex arrays allocated.
	Arrays int

	// BytesUploaded is the total number of bytes written to the queue.
	BytesUploaded uint64

	// Draws is the number of draw calls recorded into a pass.
	Draws int

	// SkippedDraws is the number of draw calls dropped because no pass
	// was active or the array had no vertex buffer.
	SkippedDraws int
}

// halBuffer is the device buffer behind a BufferHandle. buf is nil until
// the first upload.
type halBuffer struct {
	buf   hal.Buffer
	size  uint64
	usage gputypes.BufferUsage
}

// vertexArray records the attribute layout and buffers of one ArrayHandle.
type vertexArray struct {
	vertex  geometry.BufferHandle
	index   geometry.BufferHandle
	stride  int32
	attribs map[uint32]gputypes.VertexAttribute
	enabled map[uint32]bool
}

// HALContext implements geometry.Context and geometry.IndexedContext on a
// hal.Device and hal.Queue.
//
// Handles are small integers owned by the context. Device buffers are
// created on upload, sized to the data, and replaced when a larger or
// smaller upload arrives. Draws are recorded into the pass installed with
// BeginPass.
type HALContext struct {
	device hal.Device
	queue  hal.Queue

	nextID  uint64
	buffers map[geometry.BufferHandle]*halBuffer
	arrays  map[geometry.ArrayHandle]*vertexArray

	boundBuffer geometry.BufferHandle
	boundArray  geometry.ArrayHandle

	pass  PassEncoder
	stats Stats
}

// Compile-time interface checks.
var (
	_ geometry.Context       = (*HALContext)(nil)
	_ geometry.IndexedContext = (*HALContext)(nil)
	_ geometry.BufferDeleter  = (*HALContext)(nil)
)

// NewContext creates a HALContext on device and queue.
// The caller keeps ownership of both.
func NewContext(device hal.Device, queue hal.Queue) (*HALContext, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &HALContext{
		device:  device,
		queue:   queue,
		buffers: make(map[geometry.BufferHandle]*halBuffer),
		arrays:  make(map[geometry.ArrayHandle]*vertexArray),
	}, nil
}

// Device returns the underlying HAL device.
func (c *HALContext) Device() hal.Device { return c.device }

// Queue returns the underlying HAL queue.
func (c *HALContext) Queue() hal.Queue { return c.queue }

// Stats returns a snapshot of the context counters.
func (c *HALContext) Stats() Stats { return c.stats }

// BeginPass directs subsequent draws into rp until EndPass.
func (c *HALContext) BeginPass(rp PassEncoder) {
	c.pass = rp
}

// EndPass detaches the active pass. It returns ErrNoActivePass when no
// pass was active.
func (c *HALContext) EndPass() error {
	if c.pass == nil {
		return ErrNoActivePass
	}
	c.pass = nil
	return nil
}

// CreateBuffer allocates a buffer handle. The device buffer is created by
// the first BufferData or IndexData call.
func (c *HALContext) CreateBuffer() (geometry.BufferHandle, error) {
	c.nextID++
	h := geometry.BufferHandle(c.nextID)
	c.buffers[h] = &halBuffer{}
	c.stats.Buffers++
	return h, nil
}

// BindBuffer makes b the current vertex buffer. Zero unbinds.
func (c *HALContext) BindBuffer(b geometry.BufferHandle) {
	c.boundBuffer = b
}

// BufferData uploads data to the bound vertex buffer.
func (c *HALContext) BufferData(data []byte) error {
	if c.boundBuffer == 0 {
		return ErrNoBoundBuffer
	}
	return c.upload(c.boundBuffer, data, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// CreateVertexArray allocates a vertex array handle.
func (c *HALContext) CreateVertexArray() (geometry.ArrayHandle, error) {
	c.nextID++
	h := geometry.ArrayHandle(c.nextID)
	c.arrays[h] = &vertexArray{
		attribs: make(map[uint32]gputypes.VertexAttribute),
		enabled: make(map[uint32]bool),
	}
	c.stats.Arrays++
	return h, nil
}

// BindVertexArray makes a the current vertex array. Zero unbinds.
func (c *HALContext) BindVertexArray(a geometry.ArrayHandle) {
	c.boundArray = a
}

// VertexAttribPointer records attribute slot of the bound array as
// reading from the bound buffer.
func (c *HALContext) VertexAttribPointer(slot uint32, components int32, typ geometry.AttribType, _ bool, stride, offset int32) {
	va := c.arrays[c.boundArray]
	if va == nil {
		return
	}
	format, ok := vertexFormat(components, typ)
	if !ok {
		functor.Logger().Warn("render: unsupported vertex attribute",
			slog.Uint64("slot", uint64(slot)),
			slog.Int("components", int(components)),
			slog.String("type", typ.String()))
		return
	}
	va.vertex = c.boundBuffer
	va.stride = stride
	va.attribs[slot] = gputypes.VertexAttribute{
		Format:         format,
		Offset:         uint64(offset),
		ShaderLocation: slot,
	}
}

// EnableVertexAttribArray enables attribute slot of the bound array.
func (c *HALContext) EnableVertexAttribArray(slot uint32) {
	if va := c.arrays[c.boundArray]; va != nil {
		va.enabled[slot] = true
	}
}

// DrawArrays records a non-indexed draw of the bound array into the
// active pass.
func (c *HALContext) DrawArrays(first, count int32) {
	buf, ok := c.drawable(false)
	if !ok {
		return
	}
	c.pass.SetVertexBuffer(0, buf, 0)
	c.pass.Draw(uint32(count), 1, uint32(first), 0)
	c.stats.Draws++
}

// BindIndexBuffer attaches b as the index buffer of the bound array.
func (c *HALContext) BindIndexBuffer(b geometry.BufferHandle) {
	if va := c.arrays[c.boundArray]; va != nil {
		va.index = b
	}
}

// IndexData uploads uint32 indices to the index buffer of the bound array.
func (c *HALContext) IndexData(data []byte) error {
	va := c.arrays[c.boundArray]
	if va == nil || va.index == 0 {
		return ErrNoBoundBuffer
	}
	return c.upload(va.index, data, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
}

// DrawElements records an indexed draw of the bound array into the
// active pass.
func (c *HALContext) DrawElements(first, count int32) {
	buf, ok := c.drawable(true)
	if !ok {
		return
	}
	va := c.arrays[c.boundArray]
	c.pass.SetVertexBuffer(0, buf, 0)
	c.pass.SetIndexBuffer(c.buffers[va.index].buf, gputypes.IndexFormatUint32, 0)
	c.pass.DrawIndexed(uint32(count), 1, uint32(first), 0, 0)
	c.stats.Draws++
}

// DeleteBuffer releases b and its device buffer.
func (c *HALContext) DeleteBuffer(b geometry.BufferHandle) {
	hb, ok := c.buffers[b]
	if !ok {
		return
	}
	if hb.buf != nil {
		c.device.DestroyBuffer(hb.buf)
	}
	delete(c.buffers, b)
	if c.boundBuffer == b {
		c.boundBuffer = 0
	}
}

// VertexLayout returns the vertex buffer layout recorded for a, with
// enabled attributes ordered by shader location.
func (c *HALContext) VertexLayout(a geometry.ArrayHandle) (gputypes.VertexBufferLayout, bool) {
	va := c.arrays[a]
	if va == nil {
		return gputypes.VertexBufferLayout{}, false
	}
	return va.layout(), true
}

// Destroy releases every device buffer. Handles held by shapes become
// invalid.
func (c *HALContext) Destroy() {
	for h, hb := range c.buffers {
		if hb.buf != nil {
			c.device.DestroyBuffer(hb.buf)
		}
		delete(c.buffers, h)
	}
	clear(c.arrays)
	c.boundBuffer = 0
	c.boundArray = 0
	c.pass = nil
}

// upload writes data into the device buffer behind h, recreating it when
// the size changes.
func (c *HALContext) upload(h geometry.BufferHandle, data []byte, usage gputypes.BufferUsage) error {
	hb, ok := c.buffers[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, h)
	}
	if len(data) == 0 {
		return nil
	}

	size := alignUp(uint64(len(data)), 4)
	if hb.buf == nil || hb.size != size || hb.usage != usage {
		if hb.buf != nil {
			c.device.DestroyBuffer(hb.buf)
			hb.buf = nil
		}
		buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("functor_buffer_%d", h),
			Size:  size,
			Usage: usage,
		})
		if err != nil {
			return fmt.Errorf("render: create buffer (%d bytes): %w", size, err)
		}
		hb.buf = buf
		hb.size = size
		hb.usage = usage
	}

	if uint64(len(data)) != size {
		padded := make([]byte, size)
		copy(padded, data)
		data = padded
	}
	if err := c.queue.WriteBuffer(hb.buf, 0, data); err != nil {
		return fmt.Errorf("render: write buffer %d: %w", h, err)
	}
	c.stats.BytesUploaded += uint64(len(data))

	functor.Logger().Debug("render: buffer upload",
		slog.Uint64("handle", uint64(h)),
		slog.Uint64("bytes", size))
	return nil
}

// drawable reports whether the bound array can be drawn now and returns
// its vertex buffer.
func (c *HALContext) drawable(indexed bool) (hal.Buffer, bool) {
	if c.pass == nil {
		c.skip("no active pass")
		return nil, false
	}
	va := c.arrays[c.boundArray]
	if va == nil {
		c.skip("no vertex array bound")
		return nil, false
	}
	hb := c.buffers[va.vertex]
	if hb == nil || hb.buf == nil {
		c.skip("vertex array has no vertex buffer")
		return nil, false
	}
	if indexed {
		ib := c.buffers[va.index]
		if ib == nil || ib.buf == nil {
			c.skip("vertex array has no index buffer")
			return nil, false
		}
	}
	return hb.buf, true
}

func (c *HALContext) skip(reason string) {
	c.stats.SkippedDraws++
	functor.Logger().Warn("render: draw skipped",
		slog.String("reason", reason),
		slog.Uint64("array", uint64(c.boundArray)))
}

// layout builds the vertex buffer layout from the enabled attributes.
func (va *vertexArray) layout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, 0, len(va.attribs))
	for slot := uint32(0); slot < maxVertexAttributes; slot++ {
		if a, ok := va.attribs[slot]; ok && va.enabled[slot] {
			attrs = append(attrs, a)
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(va.stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// maxVertexAttributes bounds the shader locations a layout may use.
const maxVertexAttributes = 16

// vertexFormat maps a float attribute of 1-4 components to its format.
func vertexFormat(components int32, typ geometry.AttribType) (gputypes.VertexFormat, bool) {
	if typ != geometry.AttribFloat32 {
		return 0, false
	}
	switch components {
	case 1:
		return gputypes.VertexFormatFloat32, true
	case 2:
		return gputypes.VertexFormatFloat32x2, true
	case 3:
		return gputypes.VertexFormatFloat32x3, true
	case 4:
		return gputypes.VertexFormatFloat32x4, true
	default:
		return 0, false
	}
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
