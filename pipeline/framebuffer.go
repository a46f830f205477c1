package pipeline

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/gekko3d/phong"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Framebuffer stores colour and depth per pixel. Row 0 is the top of the
// image.
type Framebuffer struct {
	Width  int
	Height int
	color  []mgl32.Vec4
	depth  []float32
}

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		color:  make([]mgl32.Vec4, width*height),
		depth:  make([]float32, width*height),
	}
	fb.Clear(mgl32.Vec4{0, 0, 0, 1})
	return fb
}

// Clear fills the colour buffer with c and resets depth to the far plane.
func (fb *Framebuffer) Clear(c mgl32.Vec4) {
	for i := range fb.color {
		fb.color[i] = c
		fb.depth[i] = math32.Inf(1)
	}
}

func (fb *Framebuffer) At(x, y int) mgl32.Vec4 {
	return fb.color[y*fb.Width+x]
}

func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.depth[y*fb.Width+x]
}

// testAndSet shades and stores the pixel when z is nearer than the stored depth.
func (fb *Framebuffer) testAndSet(x, y int, z float32, shade func() mgl32.Vec4) bool {
	i := y*fb.Width + x
	if !(z < fb.depth[i]) {
		return false
	}
	fb.depth[i] = z
	fb.color[i] = shade()
	return true
}

// Image converts the colour buffer to 8-bit RGBA, clamping each channel to
// [0, 1] on the way out.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte(c[0]),
				G: toByte(c[1]),
				B: toByte(c[2]),
				A: toByte(c[3]),
			})
		}
	}
	return img
}

// Downsample shrinks the framebuffer by factor with a Catmull-Rom filter.
// Rendering at a multiple of the target size and downsampling gives
// supersampled edges.
func (fb *Framebuffer) Downsample(factor int) *image.NRGBA {
	src := fb.Image()
	if factor <= 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, max(fb.Width/factor, 1), max(fb.Height/factor, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func toByte(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(math32.Floor(phong.Clamp(v, 0, 1)*255 + 0.5))
}
