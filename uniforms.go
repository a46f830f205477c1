package phong

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names resolved by the shader stages.
const (
	UniformViewMatrix       = "viewMatrix"
	UniformProjectionMatrix = "projectionMatrix"
	UniformCameraPosition   = "cameraPosition"
	UniformLightPosition    = "lightPosition"
)

// Uniforms is the lookup capability a host exposes to the stages. The
// boolean result reports whether a value of the requested type exists
// under name.
type Uniforms interface {
	Mat4(name string) (mgl32.Mat4, bool)
	Vec3(name string) (mgl32.Vec3, bool)
}

// ContractError describes a host that broke the calling contract of a
// stage. Stages panic with it instead of returning.
type ContractError struct {
	Stage string
	What  string
	Name  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: host contract violation: %s %q", e.Stage, e.What, e.Name)
}

func mustMat4(u Uniforms, stage, name string) mgl32.Mat4 {
	if u == nil {
		panic(&ContractError{Stage: stage, What: "nil uniforms handle resolving", Name: name})
	}
	m, ok := u.Mat4(name)
	if !ok {
		panic(&ContractError{Stage: stage, What: "missing mat4 uniform", Name: name})
	}
	return m
}

func mustVec3(u Uniforms, stage, name string) mgl32.Vec3 {
	if u == nil {
		panic(&ContractError{Stage: stage, What: "nil uniforms handle resolving", Name: name})
	}
	v, ok := u.Vec3(name)
	if !ok {
		panic(&ContractError{Stage: stage, What: "missing vec3 uniform", Name: name})
	}
	return v
}
