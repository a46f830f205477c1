package phong

// PointLight is the single light of the model. Its position comes from the
// lightPosition uniform; only the intensities are configured here.
type PointLight struct {
	DiffuseIntensity  float32 `yaml:"diffuse_intensity" toml:"diffuse_intensity"`
	SpecularIntensity float32 `yaml:"specular_intensity" toml:"specular_intensity"`
}

func DefaultPointLight() PointLight {
	return PointLight{
		DiffuseIntensity:  1.0,
		SpecularIntensity: 0.5,
	}
}

// Lighting parameterizes the fragment stage.
type Lighting struct {
	Material Material   `yaml:"material" toml:"material"`
	Light    PointLight `yaml:"light" toml:"light"`
}

func DefaultLighting() Lighting {
	return Lighting{
		Material: DefaultMaterial(),
		Light:    DefaultPointLight(),
	}
}
