package phong

import "github.com/go-gl/mathgl/mgl32"

// Material holds the reflectance of a surface.
type Material struct {
	Diffuse   mgl32.Vec3 `yaml:"diffuse" toml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular" toml:"specular"`
	Shininess float32    `yaml:"shininess" toml:"shininess"`
}

func NewMaterial(diffuse, specular mgl32.Vec3, shininess float32) Material {
	return Material{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// Helper for the default green plastic
func DefaultMaterial() Material {
	return Material{
		Diffuse:   mgl32.Vec3{0, 1, 0},
		Specular:  mgl32.Vec3{1, 1, 1},
		Shininess: 40,
	}
}
