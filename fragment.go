package phong

import "github.com/chewxy/math32"

// FragmentStage shades one fragment with a single point light: a clamped
// diffuse term plus a specular term from the reflected view vector. There
// is no ambient term and the resulting RGB is not clamped. Alpha is 1.
//
// It panics with a *ContractError when a position uniform is missing.
func FragmentStage(in FragmentInput, u Uniforms, lt Lighting) FragmentOutput {
	cam := mustVec3(u, "fragment", UniformCameraPosition)
	light := mustVec3(u, "fragment", UniformLightPosition)

	l := Normalize(light.Sub(in.Position))
	n := Normalize(in.Normal)
	diffuse := Clamp(n.Dot(l), 0, 1)

	v := Normalize(cam.Sub(in.Position))
	r := Normalize(Reflect(v.Mul(-1), n))
	specular := math32.Pow(Clamp(r.Dot(l), 0, 1), lt.Material.Shininess)

	rgb := lt.Material.Diffuse.Mul(diffuse * lt.Light.DiffuseIntensity).
		Add(lt.Material.Specular.Mul(specular * lt.Light.SpecularIntensity))

	return FragmentOutput{Color: rgb.Vec4(1)}
}

// Shader binds a Lighting setup to both stages so a host can drive it as
// one program.
type Shader struct {
	Lighting Lighting
}

func NewShader(lt Lighting) Shader {
	return Shader{Lighting: lt}
}

func (s Shader) Vertex(in VertexInput, u Uniforms) VertexOutput {
	return VertexStage(in, u)
}

func (s Shader) Fragment(in FragmentInput, u Uniforms) FragmentOutput {
	return FragmentStage(in, u, s.Lighting)
}
