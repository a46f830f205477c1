package scene

import (
	"context"
	"fmt"
	"image"

	"github.com/gekko3d/phong"
	"github.com/gekko3d/phong/pipeline"
)

// Uniforms binds the four shader uniforms for a viewport of the given
// aspect ratio.
func (c Config) Uniforms(aspect float32) *pipeline.UniformStore {
	u := pipeline.NewUniformStore()
	u.SetMat4(phong.UniformViewMatrix, c.Camera.GetViewMatrix())
	u.SetMat4(phong.UniformProjectionMatrix, c.Camera.GetProjectionMatrix(aspect))
	u.SetVec3(phong.UniformCameraPosition, c.Camera.Position)
	u.SetVec3(phong.UniformLightPosition, c.LightPosition)
	return u
}

// BuildMesh generates the configured mesh already placed in world space.
func (c Config) BuildMesh() (*pipeline.Mesh, error) {
	var m *pipeline.Mesh
	switch c.Mesh.Kind {
	case MeshSphere:
		m = pipeline.NewSphere(c.Mesh.Size, c.Mesh.Detail, c.Mesh.Detail*2)
	case MeshPlane:
		m = pipeline.NewPlane(c.Mesh.Size, c.Mesh.Detail)
	case MeshCube:
		m = pipeline.NewCube(c.Mesh.Size)
	default:
		return nil, fmt.Errorf("scene: unknown mesh kind %q", c.Mesh.Kind)
	}
	return m.Transformed(c.Mesh.Transform.ObjectToWorld()), nil
}

// RenderTarget returns a cleared framebuffer at supersampled resolution.
func (c Config) RenderTarget() *pipeline.Framebuffer {
	ss := max(c.Image.Supersample, 1)
	fb := pipeline.NewFramebuffer(c.Image.Width*ss, c.Image.Height*ss)
	fb.Clear(c.Image.Background)
	return fb
}

func (c Config) Aspect() float32 {
	return float32(c.Image.Width) / float32(c.Image.Height)
}

// Render draws the scene with the Blinn-Phong shader and returns the
// downsampled image.
func (c Config) Render(ctx context.Context, r *pipeline.Renderer) (*image.NRGBA, pipeline.DrawStats, error) {
	if err := c.Validate(); err != nil {
		return nil, pipeline.DrawStats{}, err
	}
	mesh, err := c.BuildMesh()
	if err != nil {
		return nil, pipeline.DrawStats{}, err
	}

	fb := c.RenderTarget()
	stats, err := r.Draw(ctx, fb, mesh, c.Uniforms(c.Aspect()), phong.NewShader(c.Lighting))
	if err != nil {
		return nil, stats, err
	}
	return fb.Downsample(c.Image.Supersample), stats, nil
}
