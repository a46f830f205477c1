package scene

import (
	"github.com/gekko3d/phong"
	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	Position mgl32.Vec3 `yaml:"position" toml:"position"`
	Target   mgl32.Vec3 `yaml:"target" toml:"target"`
	Up       mgl32.Vec3 `yaml:"up" toml:"up"`
	FovY     float32    `yaml:"fov_y" toml:"fov_y"` // degrees
	Near     float32    `yaml:"near" toml:"near"`
	Far      float32    `yaml:"far" toml:"far"`
}

func NewCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{0, 2, 5},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     45,
		Near:     0.1,
		Far:      100,
	}
}

// GetForward is the unit view direction, or zero when the camera sits on
// its target.
func (c Camera) GetForward() mgl32.Vec3 {
	return phong.Normalize(c.Target.Sub(c.Position))
}

// Oriented reports whether the camera has a usable view basis: a view
// direction that is not parallel to Up.
func (c Camera) Oriented() bool {
	return c.GetForward().Cross(c.Up).Len() > 1e-6
}

func (c Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}
