package geometry

import "errors"

// Geometry errors.
var (
	// ErrInvalidVertexData is returned when the vertex float count is not a
	// multiple of the attribute stride.
	ErrInvalidVertexData = errors.New("geometry: vertex data length is not a multiple of the stride")

	// ErrInvalidIndexData is returned when an index is out of range or the
	// index count is not a multiple of three.
	ErrInvalidIndexData = errors.New("geometry: invalid index data")

	// ErrResourceCreationFailed is returned when the graphics context could
	// not allocate or upload a buffer or vertex array.
	ErrResourceCreationFailed = errors.New("geometry: GPU resource creation failed")

	// ErrIndexedUnsupported is returned when an indexed shape is drawn with
	// a context that does not implement IndexedContext.
	ErrIndexedUnsupported = errors.New("geometry: context does not support indexed draws")

	// ErrNilContext is returned when Draw is called without a context.
	ErrNilContext = errors.New("geometry: nil context")
)
