package geometry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/functor-dev/functor"
)

// Handles is the GPU handle set memoized by a Resource.
type Handles struct {
	// Buffer holds the uploaded vertex data.
	Buffer BufferHandle

	// Array is the vertex array binding describing the attribute layout.
	Array ArrayHandle

	// Index holds the uploaded index data. Zero for non-indexed shapes.
	Index BufferHandle
}

// Resource is the lazily created GPU state backing one shape instance:
// a vertex buffer, its vertex array binding, and for indexed shapes an
// index buffer.
//
// The handles are created on the first successful GetOrCreate call and
// returned unchanged by every later call, without touching the Context.
// Concurrent first calls are serialized so creation happens at most once.
// A failed creation memoizes nothing; the next call tries again.
//
// Once populated, a Resource is never mutated or released. The Context
// owns the underlying GPU memory.
//
// The zero value is an uninitialized Resource ready for use. A Resource
// must not be copied after first use.
type Resource struct {
	mu      sync.Mutex
	handles atomic.Pointer[Handles]
}

// Initialized reports whether the handles have been created.
func (r *Resource) Initialized() bool {
	return r.handles.Load() != nil
}

// Handles returns the memoized handles and true, or the zero Handles and
// false before the first successful creation.
func (r *Resource) Handles() (Handles, bool) {
	if h := r.handles.Load(); h != nil {
		return *h, true
	}
	return Handles{}, false
}

// GetOrCreate returns the vertex buffer and vertex array for data,
// uploading data and configuring layout on the first call only.
func (r *Resource) GetOrCreate(ctx Context, data VertexData, layout AttributeLayout) (Handles, error) {
	return r.getOrCreate(func() (Handles, error) {
		return createArray(ctx, data, layout)
	})
}

// GetOrCreateIndexed is GetOrCreate for indexed shapes: the index buffer
// is created, uploaded and attached to the vertex array as well.
func (r *Resource) GetOrCreateIndexed(ctx IndexedContext, data VertexData, indices []uint32, layout AttributeLayout) (Handles, error) {
	return r.getOrCreate(func() (Handles, error) {
		return createIndexedArray(ctx, data, indices, layout)
	})
}

func (r *Resource) getOrCreate(create func() (Handles, error)) (Handles, error) {
	if h := r.handles.Load(); h != nil {
		return *h, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have won the race while we waited.
	if h := r.handles.Load(); h != nil {
		return *h, nil
	}

	h, err := create()
	if err != nil {
		return Handles{}, err
	}
	r.handles.Store(&h)
	return h, nil
}

// createArray uploads data and records layout into a new vertex array.
// Both bindings are reset to zero afterwards so later calls cannot
// modify the new array by accident.
func createArray(ctx Context, data VertexData, layout AttributeLayout) (Handles, error) {
	vbo, err := uploadVertices(ctx, data)
	if err != nil {
		return Handles{}, err
	}

	vao, err := ctx.CreateVertexArray()
	if err != nil {
		releaseBuffer(ctx, vbo)
		return Handles{}, fmt.Errorf("%w: create vertex array: %w", ErrResourceCreationFailed, err)
	}
	ctx.BindVertexArray(vao)
	layout.configure(ctx)

	ctx.BindBuffer(0)
	ctx.BindVertexArray(0)

	functor.Logger().Debug("geometry: vertex array created",
		"vertices", data.VertexCount(),
		"bytes", data.ByteSize(),
		"buffer", uint64(vbo),
		"array", uint64(vao))

	return Handles{Buffer: vbo, Array: vao}, nil
}

// createIndexedArray is createArray plus an index buffer attached to the
// vertex array while it is bound.
func createIndexedArray(ctx IndexedContext, data VertexData, indices []uint32, layout AttributeLayout) (Handles, error) {
	vbo, err := uploadVertices(ctx, data)
	if err != nil {
		return Handles{}, err
	}

	vao, err := ctx.CreateVertexArray()
	if err != nil {
		releaseBuffer(ctx, vbo)
		return Handles{}, fmt.Errorf("%w: create vertex array: %w", ErrResourceCreationFailed, err)
	}
	ctx.BindVertexArray(vao)
	layout.configure(ctx)

	ibo, err := ctx.CreateBuffer()
	if err != nil {
		ctx.BindVertexArray(0)
		releaseBuffer(ctx, vbo)
		return Handles{}, fmt.Errorf("%w: create index buffer: %w", ErrResourceCreationFailed, err)
	}
	ctx.BindIndexBuffer(ibo)
	if err := ctx.IndexData(indexBytes(indices)); err != nil {
		ctx.BindVertexArray(0)
		releaseBuffer(ctx, vbo)
		releaseBuffer(ctx, ibo)
		return Handles{}, fmt.Errorf("%w: upload indices: %w", ErrResourceCreationFailed, err)
	}

	// The array must be unbound first so it keeps its index buffer.
	ctx.BindVertexArray(0)
	ctx.BindBuffer(0)

	functor.Logger().Debug("geometry: indexed vertex array created",
		"vertices", data.VertexCount(),
		"indices", len(indices),
		"bytes", data.ByteSize()+len(indices)*4)

	return Handles{Buffer: vbo, Array: vao, Index: ibo}, nil
}

// uploadVertices creates a buffer, binds it, and uploads data. The buffer
// is left bound for the attribute pointers that follow.
func uploadVertices(ctx Context, data VertexData) (BufferHandle, error) {
	vbo, err := ctx.CreateBuffer()
	if err != nil {
		return 0, fmt.Errorf("%w: create vertex buffer: %w", ErrResourceCreationFailed, err)
	}
	ctx.BindBuffer(vbo)
	if err := ctx.BufferData(data.Bytes()); err != nil {
		ctx.BindBuffer(0)
		releaseBuffer(ctx, vbo)
		return 0, fmt.Errorf("%w: upload vertices: %w", ErrResourceCreationFailed, err)
	}
	return vbo, nil
}

// releaseBuffer hands an orphaned buffer back to ctx when it supports it.
func releaseBuffer(ctx Context, b BufferHandle) {
	if d, ok := ctx.(BufferDeleter); ok && b != 0 {
		d.DeleteBuffer(b)
	}
}
