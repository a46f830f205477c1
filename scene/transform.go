package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a mesh in the world. Rotation is Euler angles in
// degrees, applied X then Y then Z.
type Transform struct {
	Position mgl32.Vec3 `yaml:"position" toml:"position"`
	Rotation mgl32.Vec3 `yaml:"rotation" toml:"rotation"`
	Scale    mgl32.Vec3 `yaml:"scale" toml:"scale"`
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(t.Rotation.Z()),
		mgl32.DegToRad(t.Rotation.Y()),
		mgl32.DegToRad(t.Rotation.X()),
		mgl32.ZYX,
	)
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Quat().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}
