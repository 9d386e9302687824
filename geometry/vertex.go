package geometry

import (
	"encoding/binary"
	"fmt"
	"math"
)

// VertexData is a flat sequence of float32 vertex components, read in
// records of Stride floats.
type VertexData []float32

// Validate reports ErrInvalidVertexData when the length is not a multiple
// of Stride.
func (v VertexData) Validate() error {
	if len(v)%Stride != 0 {
		return fmt.Errorf("%w: %d floats, stride %d", ErrInvalidVertexData, len(v), Stride)
	}
	return nil
}

// VertexCount returns the number of whole vertex records.
func (v VertexData) VertexCount() int {
	return len(v) / Stride
}

// ByteSize returns the size in bytes of the uploaded image of v.
func (v VertexData) ByteSize() int {
	return len(v) * floatSize
}

// Bytes returns the native-endian binary image of v, four bytes per float,
// with no value transformation. The result is a fresh slice.
func (v VertexData) Bytes() []byte {
	buf := make([]byte, 0, v.ByteSize())
	for _, f := range v {
		buf = binary.NativeEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

// indexBytes returns the native-endian binary image of indices.
func indexBytes(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		buf = binary.NativeEndian.AppendUint32(buf, i)
	}
	return buf
}
