package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gekko3d/phong"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type MeshKind string

const (
	MeshSphere MeshKind = "sphere"
	MeshPlane  MeshKind = "plane"
	MeshCube   MeshKind = "cube"
)

type MeshConfig struct {
	Kind MeshKind `yaml:"kind" toml:"kind"`
	// Size is the radius of a sphere or the edge length of a plane or cube.
	Size float32 `yaml:"size" toml:"size"`
	// Detail is stacks and slices for a sphere, divisions for a plane.
	Detail    int       `yaml:"detail" toml:"detail"`
	Transform Transform `yaml:"transform" toml:"transform"`
}

type ImageConfig struct {
	Width       int        `yaml:"width" toml:"width"`
	Height      int        `yaml:"height" toml:"height"`
	Supersample int        `yaml:"supersample" toml:"supersample"`
	Background  mgl32.Vec4 `yaml:"background" toml:"background"`
}

// Config describes one renderable scene: a camera, the light position, the
// fragment lighting parameters and a single mesh.
type Config struct {
	Image         ImageConfig    `yaml:"image" toml:"image"`
	Camera        Camera         `yaml:"camera" toml:"camera"`
	LightPosition mgl32.Vec3     `yaml:"light_position" toml:"light_position"`
	Lighting      phong.Lighting `yaml:"lighting" toml:"lighting"`
	Mesh          MeshConfig     `yaml:"mesh" toml:"mesh"`
}

func Default() Config {
	return Config{
		Image: ImageConfig{
			Width:       512,
			Height:      512,
			Supersample: 2,
			Background:  mgl32.Vec4{0.05, 0.05, 0.08, 1},
		},
		Camera:        NewCamera(),
		LightPosition: mgl32.Vec3{3, 4, 5},
		Lighting:      phong.DefaultLighting(),
		Mesh: MeshConfig{
			Kind:      MeshSphere,
			Size:      1,
			Detail:    32,
			Transform: NewTransform(),
		},
	}
}

// Load reads a scene from a .yaml, .yml or .toml file. Fields missing from
// the file keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("scene: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("scene: unsupported config format %q", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Image.Width <= 0 || c.Image.Height <= 0:
		return fmt.Errorf("scene: image size %dx%d must be positive", c.Image.Width, c.Image.Height)
	case c.Image.Supersample < 1:
		return fmt.Errorf("scene: supersample %d must be at least 1", c.Image.Supersample)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("scene: camera planes near=%g far=%g are invalid", c.Camera.Near, c.Camera.Far)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return fmt.Errorf("scene: camera fov %g out of range", c.Camera.FovY)
	case !c.Camera.Oriented():
		return fmt.Errorf("scene: camera at %v looking at %v has no view direction independent of up %v",
			c.Camera.Position, c.Camera.Target, c.Camera.Up)
	case c.Mesh.Size <= 0:
		return fmt.Errorf("scene: mesh size %g must be positive", c.Mesh.Size)
	}
	switch c.Mesh.Kind {
	case MeshSphere, MeshPlane, MeshCube:
	default:
		return fmt.Errorf("scene: unknown mesh kind %q", c.Mesh.Kind)
	}
	return nil
}
