package phong

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute slots shared by vertex inputs, vertex outputs and fragment
// inputs.
const (
	AttributePosition = 0
	AttributeNormal   = 1

	// NumAttributes is the number of interpolated slots.
	NumAttributes = 2
)

// VertexInput is one object-space vertex as fetched by the host.
type VertexInput struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// VertexOutput carries the clip-space position for the rasterizer and the
// attributes the host interpolates across a primitive.
type VertexOutput struct {
	ClipPosition mgl32.Vec4
	Position     mgl32.Vec3
	Normal       mgl32.Vec3
}

// Attribute returns the interpolable output in the given slot.
func (o VertexOutput) Attribute(slot int) mgl32.Vec3 {
	switch slot {
	case AttributePosition:
		return o.Position
	case AttributeNormal:
		return o.Normal
	}
	panic(&ContractError{Stage: "vertex", What: "unknown output attribute slot", Name: fmt.Sprint(slot)})
}

// FragmentInput holds the interpolated attributes of a single fragment.
type FragmentInput struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// SetAttribute stores an interpolated value in the given slot.
func (in *FragmentInput) SetAttribute(slot int, v mgl32.Vec3) {
	switch slot {
	case AttributePosition:
		in.Position = v
	case AttributeNormal:
		in.Normal = v
	default:
		panic(&ContractError{Stage: "fragment", What: "unknown input attribute slot", Name: fmt.Sprint(slot)})
	}
}

// FragmentOutput is the RGBA colour written for one fragment.
type FragmentOutput struct {
	Color mgl32.Vec4
}
