package geometry

// BufferHandle is an opaque handle to a GPU buffer owned by a Context.
// The zero value is the null buffer; binding it unbinds the current buffer.
type BufferHandle uint64

// ArrayHandle is an opaque handle to a vertex array binding owned by a
// Context. The zero value is the null array.
type ArrayHandle uint64

// AttribType is the scalar type of a vertex attribute component.
type AttribType uint32

// Attribute component types.
const (
	// AttribFloat32 is a 32-bit IEEE 754 float.
	AttribFloat32 AttribType = iota + 1
)

// String returns the string representation of AttribType.
func (t AttribType) String() string {
	switch t {
	case AttribFloat32:
		return "Float32"
	default:
		return "Unknown"
	}
}

// Context is the graphics device handle consumed by shapes. It is supplied
// by the windowing/render-loop layer; shapes never create or destroy it.
//
// The method set follows the immediate-mode model: buffers and vertex
// arrays are bound, then configured or drawn. Binding state is not
// restored by callers, so the last bound array stays current until the
// next bind.
type Context interface {
	// CreateBuffer allocates a new, empty buffer.
	CreateBuffer() (BufferHandle, error)

	// BindBuffer makes b the current vertex buffer. Zero unbinds.
	BindBuffer(b BufferHandle)

	// BufferData uploads data to the currently bound vertex buffer,
	// replacing its contents. The bytes are copied verbatim.
	BufferData(data []byte) error

	// CreateVertexArray allocates a new vertex array binding.
	CreateVertexArray() (ArrayHandle, error)

	// BindVertexArray makes a the current vertex array. Zero unbinds.
	BindVertexArray(a ArrayHandle)

	// VertexAttribPointer configures attribute slot of the bound vertex
	// array to read from the bound buffer. stride and offset are in bytes.
	VertexAttribPointer(slot uint32, components int32, typ AttribType, normalized bool, stride, offset int32)

	// EnableVertexAttribArray enables attribute slot of the bound array.
	EnableVertexAttribArray(slot uint32)

	// DrawArrays issues a triangle-list draw of count vertices starting at
	// first, using the bound vertex array.
	DrawArrays(first, count int32)
}

// IndexedContext is implemented by contexts that can draw through an
// index buffer. Indexed shapes type-assert for it at draw time.
type IndexedContext interface {
	Context

	// BindIndexBuffer attaches b as the index buffer of the bound vertex
	// array. Zero detaches.
	BindIndexBuffer(b BufferHandle)

	// IndexData uploads native-endian uint32 indices to the bound index
	// buffer.
	IndexData(data []byte) error

	// DrawElements issues a triangle-list draw of count indices starting
	// at index first, using the bound vertex array and its index buffer.
	DrawElements(first, count int32)
}

// BufferDeleter is implemented by contexts that can release a buffer.
// Resource uses it to hand back a buffer orphaned by a failed creation.
type BufferDeleter interface {
	DeleteBuffer(b BufferHandle)
}
