package geometry

// Stride is the number of float32 components per vertex record:
// three for position and two for the texture coordinate.
const Stride = 5

// floatSize is the size in bytes of one float32 component.
const floatSize = 4

// Attribute describes one vertex attribute slot.
type Attribute struct {
	// Slot is the shader input location.
	Slot uint32

	// Components is the number of float32 components (1-4).
	Components int32

	// Offset is the byte offset of the attribute within a vertex record.
	Offset int32
}

// AttributeLayout describes how a vertex record is split into attributes.
type AttributeLayout struct {
	// Stride is the byte size of one vertex record.
	Stride int32

	// Attributes are configured in order.
	Attributes []Attribute
}

// PositionTexture is the layout of every built-in shape:
//
//	slot 0: position (vec3<f32>) offset 0
//	slot 1: texcoord (vec2<f32>) offset 12
//
// Total = 20 bytes per vertex.
var PositionTexture = AttributeLayout{
	Stride: Stride * floatSize,
	Attributes: []Attribute{
		{Slot: 0, Components: 3, Offset: 0},
		{Slot: 1, Components: 2, Offset: 3 * floatSize},
	},
}

// FloatsPerVertex returns the number of float32 components in one record.
func (l AttributeLayout) FloatsPerVertex() int {
	return int(l.Stride) / floatSize
}

// configure enables and points every attribute of l at the bound buffer.
// The target vertex array and buffer must already be bound.
func (l AttributeLayout) configure(ctx Context) {
	for _, a := range l.Attributes {
		ctx.EnableVertexAttribArray(a.Slot)
		ctx.VertexAttribPointer(a.Slot, a.Components, AttribFloat32, false, l.Stride, a.Offset)
	}
}
