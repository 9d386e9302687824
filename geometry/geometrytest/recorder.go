// Package geometrytest provides a recording geometry.Context for tests.
package geometrytest

import (
	"fmt"
	"sync"

	"github.com/functor-dev/functor/geometry"
)

// AttribPointer is one recorded VertexAttribPointer call.
type AttribPointer struct {
	Slot       uint32
	Components int32
	Type       geometry.AttribType
	Normalized bool
	Stride     int32
	Offset     int32
	Buffer     geometry.BufferHandle
}

// Draw is one recorded draw submission.
type Draw struct {
	Array   geometry.ArrayHandle
	Indexed bool
	First   int32
	Count   int32
}

// Upload is one recorded BufferData or IndexData call.
type Upload struct {
	Buffer geometry.BufferHandle
	Index  bool
	Data   []byte
}

// Recorder is an in-memory geometry.IndexedContext that records every
// call. Failures can be injected through the Fail* fields before use.
//
// Recorder is safe for concurrent use so that tests can race first draws.
type Recorder struct {
	// FailCreateBuffer, when non-nil, is returned by CreateBuffer.
	FailCreateBuffer error
	// FailCreateVertexArray, when non-nil, is returned by CreateVertexArray.
	FailCreateVertexArray error
	// FailBufferData, when non-nil, is returned by BufferData and IndexData.
	FailBufferData error

	mu       sync.Mutex
	nextID   uint64
	calls    []string
	buffers  int
	arrays   int
	uploads  []Upload
	draws    []Draw
	deleted  []geometry.BufferHandle
	attribs  map[geometry.ArrayHandle][]AttribPointer
	enabled  map[geometry.ArrayHandle][]uint32
	indexOf  map[geometry.ArrayHandle]geometry.BufferHandle
	boundBuf geometry.BufferHandle
	boundArr geometry.ArrayHandle
}

var (
	_ geometry.IndexedContext = (*Recorder)(nil)
	_ geometry.BufferDeleter  = (*Recorder)(nil)
)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		attribs: make(map[geometry.ArrayHandle][]AttribPointer),
		enabled: make(map[geometry.ArrayHandle][]uint32),
		indexOf: make(map[geometry.ArrayHandle]geometry.BufferHandle),
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// CreateBuffer implements geometry.Context.
func (r *Recorder) CreateBuffer() (geometry.BufferHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("CreateBuffer")
	if r.FailCreateBuffer != nil {
		return 0, r.FailCreateBuffer
	}
	r.nextID++
	r.buffers++
	return geometry.BufferHandle(r.nextID), nil
}

// BindBuffer implements geometry.Context.
func (r *Recorder) BindBuffer(b geometry.BufferHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindBuffer(%d)", b)
	r.boundBuf = b
}

// BufferData implements geometry.Context.
func (r *Recorder) BufferData(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BufferData(%d)", len(data))
	if r.FailBufferData != nil {
		return r.FailBufferData
	}
	r.uploads = append(r.uploads, Upload{Buffer: r.boundBuf, Data: append([]byte(nil), data...)})
	return nil
}

// CreateVertexArray implements geometry.Context.
func (r *Recorder) CreateVertexArray() (geometry.ArrayHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("CreateVertexArray")
	if r.FailCreateVertexArray != nil {
		return 0, r.FailCreateVertexArray
	}
	r.nextID++
	r.arrays++
	return geometry.ArrayHandle(r.nextID), nil
}

// BindVertexArray implements geometry.Context.
func (r *Recorder) BindVertexArray(a geometry.ArrayHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindVertexArray(%d)", a)
	r.boundArr = a
}

// VertexAttribPointer implements geometry.Context.
func (r *Recorder) VertexAttribPointer(slot uint32, components int32, typ geometry.AttribType, normalized bool, stride, offset int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("VertexAttribPointer(%d, %d, %s, %t, %d, %d)", slot, components, typ, normalized, stride, offset)
	r.attribs[r.boundArr] = append(r.attribs[r.boundArr], AttribPointer{
		Slot:       slot,
		Components: components,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		Buffer:     r.boundBuf,
	})
}

// EnableVertexAttribArray implements geometry.Context.
func (r *Recorder) EnableVertexAttribArray(slot uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("EnableVertexAttribArray(%d)", slot)
	r.enabled[r.boundArr] = append(r.enabled[r.boundArr], slot)
}

// DrawArrays implements geometry.Context.
func (r *Recorder) DrawArrays(first, count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawArrays(%d, %d)", first, count)
	r.draws = append(r.draws, Draw{Array: r.boundArr, First: first, Count: count})
}

// BindIndexBuffer implements geometry.IndexedContext.
func (r *Recorder) BindIndexBuffer(b geometry.BufferHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindIndexBuffer(%d)", b)
	r.indexOf[r.boundArr] = b
}

// IndexData implements geometry.IndexedContext.
func (r *Recorder) IndexData(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("IndexData(%d)", len(data))
	if r.FailBufferData != nil {
		return r.FailBufferData
	}
	r.uploads = append(r.uploads, Upload{Buffer: r.indexOf[r.boundArr], Index: true, Data: append([]byte(nil), data...)})
	return nil
}

// DrawElements implements geometry.IndexedContext.
func (r *Recorder) DrawElements(first, count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawElements(%d, %d)", first, count)
	r.draws = append(r.draws, Draw{Array: r.boundArr, Indexed: true, First: first, Count: count})
}

// DeleteBuffer implements geometry.BufferDeleter.
func (r *Recorder) DeleteBuffer(b geometry.BufferHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DeleteBuffer(%d)", b)
	r.deleted = append(r.deleted, b)
}

// Calls returns a copy of the recorded call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// BuffersCreated returns the number of successful CreateBuffer calls.
func (r *Recorder) BuffersCreated() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffers
}

// ArraysCreated returns the number of successful CreateVertexArray calls.
func (r *Recorder) ArraysCreated() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.arrays
}

// Uploads returns the recorded uploads.
func (r *Recorder) Uploads() []Upload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Upload(nil), r.uploads...)
}

// UploadedBytes returns the total number of bytes uploaded.
func (r *Recorder) UploadedBytes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.uploads {
		n += len(u.Data)
	}
	return n
}

// Draws returns the recorded draw submissions.
func (r *Recorder) Draws() []Draw {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Draw(nil), r.draws...)
}

// Deleted returns the buffers released through DeleteBuffer.
func (r *Recorder) Deleted() []geometry.BufferHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]geometry.BufferHandle(nil), r.deleted...)
}

// AttribPointers returns the attribute pointers recorded for array a.
func (r *Recorder) AttribPointers(a geometry.ArrayHandle) []AttribPointer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AttribPointer(nil), r.attribs[a]...)
}

// EnabledSlots returns the attribute slots enabled on array a.
func (r *Recorder) EnabledSlots(a geometry.ArrayHandle) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint32(nil), r.enabled[a]...)
}

// IndexBuffer returns the index buffer attached to array a.
func (r *Recorder) IndexBuffer(a geometry.ArrayHandle) geometry.BufferHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf[a]
}

// Bound returns the currently bound buffer and vertex array.
func (r *Recorder) Bound() (geometry.BufferHandle, geometry.ArrayHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boundBuf, r.boundArr
}

// Reset clears the call log and counters but keeps injected failures and
// the handle sequence, so handles stay unique across a Reset.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.buffers = 0
	r.arrays = 0
	r.uploads = nil
	r.draws = nil
	r.deleted = nil
}

// ArraysOnly wraps r so that only the geometry.Context methods are
// visible, hiding indexed draw support.
func (r *Recorder) ArraysOnly() geometry.Context {
	return arraysOnly{r}
}

type arraysOnly struct {
	geometry.Context
}
