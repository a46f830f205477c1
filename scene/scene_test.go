package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/phong"
	"github.com/gekko3d/phong/pipeline"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, phong.DefaultLighting(), cfg.Lighting)
	assert.Equal(t, float32(40), cfg.Lighting.Material.Shininess)
	assert.Equal(t, float32(0.5), cfg.Lighting.Light.SpecularIntensity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
image:
  width: 64
  height: 32
camera:
  position: [0, 0, 4]
light_position: [1, 2, 3]
lighting:
  material:
    diffuse: [1, 0, 0]
    shininess: 8
  light:
    specular_intensity: 0.25
mesh:
  kind: cube
  size: 1.5
  transform:
    rotation: [0, 45, 0]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Image.Width)
	assert.Equal(t, 32, cfg.Image.Height)
	assert.Equal(t, 2, cfg.Image.Supersample, "unset fields keep defaults")
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, cfg.Camera.Position)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.LightPosition)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cfg.Lighting.Material.Diffuse)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cfg.Lighting.Material.Specular)
	assert.Equal(t, float32(8), cfg.Lighting.Material.Shininess)
	assert.Equal(t, float32(1), cfg.Lighting.Light.DiffuseIntensity)
	assert.Equal(t, float32(0.25), cfg.Lighting.Light.SpecularIntensity)
	assert.Equal(t, MeshCube, cfg.Mesh.Kind)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cfg.Mesh.Transform.Scale)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "scene.toml", `
light_position = [0.0, 5.0, 0.0]

[image]
width = 16
height = 16
supersample = 1

[mesh]
kind = "plane"
size = 4.0
detail = 2

[lighting.material]
shininess = 20.0
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Image.Width)
	assert.Equal(t, 1, cfg.Image.Supersample)
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, cfg.LightPosition)
	assert.Equal(t, MeshPlane, cfg.Mesh.Kind)
	assert.Equal(t, 2, cfg.Mesh.Detail)
	assert.Equal(t, float32(20), cfg.Lighting.Material.Shininess)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.Lighting.Material.Diffuse)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "scene.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "bad.yaml", "image: [1, 2"))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(writeFile(t, "kind.yaml", "mesh:\n  kind: teapot\n"))
	assert.ErrorContains(t, err, "unknown mesh kind")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Image.Width = 0 }},
		{"supersample", func(c *Config) { c.Image.Supersample = 0 }},
		{"near plane", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"fov", func(c *Config) { c.Camera.FovY = 180 }},
		{"mesh size", func(c *Config) { c.Mesh.Size = -1 }},
		{"camera on target", func(c *Config) { c.Camera.Target = c.Camera.Position }},
		{"up along view", func(c *Config) { c.Camera.Up = c.Camera.GetForward() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestUniforms(t *testing.T) {
	cfg := Default()
	u := cfg.Uniforms(2)

	assert.Equal(t, []string{
		phong.UniformCameraPosition,
		phong.UniformLightPosition,
		phong.UniformProjectionMatrix,
		phong.UniformViewMatrix,
	}, u.Names())

	view, ok := u.Mat4(phong.UniformViewMatrix)
	require.True(t, ok)
	eye := view.Mul4x1(cfg.Camera.Position.Vec4(1))
	assert.InDelta(t, 0.0, eye.Vec3().Len(), 1e-5, "camera sits at the view-space origin")

	light, ok := u.Vec3(phong.UniformLightPosition)
	require.True(t, ok)
	assert.Equal(t, cfg.LightPosition, light)
}

func TestCamera_GetForward(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{0, 0, 5}
	c.Target = mgl32.Vec3{0, 0, -5}

	assert.InDelta(t, -1.0, c.GetForward().Z(), 1e-6)
	assert.InDelta(t, 1.0, c.GetForward().Len(), 1e-6)
	assert.True(t, c.Oriented())

	c.Target = c.Position
	assert.Equal(t, mgl32.Vec3{}, c.GetForward())
	assert.False(t, c.Oriented())
}

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.Vec3{0, 90, 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1})

	// +X rotated 90 degrees about Y lands on -Z
	assert.InDelta(t, 1.0, p[0], 1e-5)
	assert.InDelta(t, 2.0, p[1], 1e-5)
	assert.InDelta(t, 1.0, p[2], 1e-5)
}

func TestBuildMesh(t *testing.T) {
	cfg := Default()
	cfg.Mesh.Kind = MeshCube
	cfg.Mesh.Transform.Position = mgl32.Vec3{0, 10, 0}

	m, err := cfg.BuildMesh()

	require.NoError(t, err)
	assert.Len(t, m.Vertices, 24)
	for _, v := range m.Vertices {
		assert.InDelta(t, 10.0, v.Position.Y(), 0.5+1e-5)
	}

	cfg.Mesh.Kind = "teapot"
	_, err = cfg.BuildMesh()
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	cfg := Default()
	cfg.Image.Width = 24
	cfg.Image.Height = 24
	cfg.Mesh.Detail = 8

	img, stats, err := cfg.Render(context.Background(), pipeline.NewRenderer(pipeline.Options{}))

	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())
	assert.Positive(t, stats.Fragments)

	// the sphere fills the centre with green; the corner shows the background
	c := img.NRGBAAt(12, 12)
	assert.Greater(t, c.G, c.R)
	corner := img.NRGBAAt(0, 0)
	assert.Less(t, corner.G, uint8(40))
}
