package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
	"github.com/gekko3d/phong"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// Program is a pair of shader stages the renderer drives.
type Program interface {
	Vertex(in phong.VertexInput, u phong.Uniforms) phong.VertexOutput
	Fragment(in phong.FragmentInput, u phong.Uniforms) phong.FragmentOutput
}

type Options struct {
	Logger Logger
	// Workers bounds the goroutines used per stage. Zero means GOMAXPROCS.
	Workers int
	// BandHeight is the number of framebuffer rows one fragment job owns.
	BandHeight int
	// Progress, when set, is called after each finished band.
	Progress func(done, total int)
}

// Renderer is a CPU rasterizer hosting a Program. Vertices are shaded in
// parallel chunks, then the framebuffer is split into row bands that are
// rasterized concurrently; a band is the only writer of its rows.
type Renderer struct {
	logger     Logger
	workers    int
	bandHeight int
	progress   func(done, total int)
}

// DrawStats counts the work of one Draw. Rejected triangles reach behind
// the eye or have no area; Culled triangles lie entirely off-screen.
// Triangles counts only those handed to the rasterizer.
type DrawStats struct {
	Vertices  int
	Triangles int
	Rejected  int
	Culled    int
	Fragments int
}

type setupResult int

const (
	setupOK setupResult = iota
	setupRejected
	setupCulled
)

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		logger:     opts.Logger,
		workers:    opts.Workers,
		bandHeight: opts.BandHeight,
		progress:   opts.Progress,
	}
	if r.logger == nil {
		r.logger = NewNopLogger()
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.bandHeight <= 0 {
		r.bandHeight = 16
	}
	return r
}

// Logger returns the renderer's logger. Never nil.
func (r *Renderer) Logger() Logger {
	return r.logger
}

// screenVertex is a vertex after perspective divide and viewport mapping.
type screenVertex struct {
	x, y, z float32
	invW    float32
	attrs   [phong.NumAttributes]mgl32.Vec3
}

type triangle struct {
	v                      [3]screenVertex
	area                   float32
	minX, minY, maxX, maxY int
}

// Draw runs prog over every triangle of mesh and writes the shaded
// fragments into fb. A stage that panics (for instance on a missing
// uniform) aborts the draw and its panic is returned as an error.
//
// There is no near-plane clipping: a triangle with any corner at w <= 0 is
// dropped whole, so large geometry running past the camera loses the
// triangles that cross the eye plane.
func (r *Renderer) Draw(ctx context.Context, fb *Framebuffer, mesh *Mesh, u phong.Uniforms, prog Program) (DrawStats, error) {
	var stats DrawStats
	if err := mesh.Validate(); err != nil {
		return stats, err
	}

	outs, err := r.shadeVertices(ctx, mesh, u, prog)
	if err != nil {
		return stats, err
	}
	stats.Vertices = len(outs)

	tris := make([]triangle, 0, mesh.TriangleCount())
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		tri, res := setupTriangle(fb, outs[mesh.Indices[i]], outs[mesh.Indices[i+1]], outs[mesh.Indices[i+2]])
		switch res {
		case setupRejected:
			stats.Rejected++
		case setupCulled:
			stats.Culled++
		default:
			tris = append(tris, tri)
		}
	}
	stats.Triangles = len(tris)

	bands := (fb.Height + r.bandHeight - 1) / r.bandHeight
	counts := make([]int, bands)
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for b := 0; b < bands; b++ {
		b := b
		g.Go(func() (err error) {
			defer r.recoverStage("fragment", &err)
			y0 := b * r.bandHeight
			y1 := min(y0+r.bandHeight, fb.Height)
			for i := range tris {
				if err := gctx.Err(); err != nil {
					return err
				}
				counts[b] += rasterize(fb, &tris[i], y0, y1, u, prog)
			}
			if r.progress != nil {
				mu.Lock()
				done++
				r.progress(done, bands)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for _, c := range counts {
		stats.Fragments += c
	}
	r.logger.Debugf("draw mesh %s: %d vertices, %d triangles (%d rejected, %d culled), %d fragments",
		mesh.ID, stats.Vertices, stats.Triangles, stats.Rejected, stats.Culled, stats.Fragments)
	return stats, nil
}

func (r *Renderer) shadeVertices(ctx context.Context, mesh *Mesh, u phong.Uniforms, prog Program) ([]phong.VertexOutput, error) {
	outs := make([]phong.VertexOutput, len(mesh.Vertices))
	chunk := max((len(outs)+r.workers-1)/r.workers, 1)

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(outs); start += chunk {
		start := start
		end := min(start+chunk, len(outs))
		g.Go(func() (err error) {
			defer r.recoverStage("vertex", &err)
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				outs[i] = prog.Vertex(mesh.Vertices[i], u)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

func (r *Renderer) recoverStage(stage string, err *error) {
	p := recover()
	if p == nil {
		return
	}
	if e, ok := p.(error); ok {
		*err = fmt.Errorf("pipeline: %s stage failed: %w", stage, e)
	} else {
		*err = fmt.Errorf("pipeline: %s stage failed: %v", stage, p)
	}
	r.logger.Errorf("%v", *err)
}

// setupTriangle maps the clip-space corners to the screen. Triangles that
// reach behind the eye (w <= 0) or have no area are rejected; triangles
// whose bounds miss the framebuffer are culled.
func setupTriangle(fb *Framebuffer, a, b, c phong.VertexOutput) (triangle, setupResult) {
	var tri triangle
	for i, o := range [3]phong.VertexOutput{a, b, c} {
		w := o.ClipPosition.W()
		if !(w > 0) {
			return tri, setupRejected
		}
		inv := 1 / w
		sv := screenVertex{
			x:    (o.ClipPosition.X()*inv + 1) * 0.5 * float32(fb.Width),
			y:    (1 - o.ClipPosition.Y()*inv) * 0.5 * float32(fb.Height),
			z:    o.ClipPosition.Z()*inv*0.5 + 0.5,
			invW: inv,
		}
		for slot := 0; slot < phong.NumAttributes; slot++ {
			sv.attrs[slot] = o.Attribute(slot).Mul(inv)
		}
		tri.v[i] = sv
	}

	tri.area = edge(tri.v[0].x, tri.v[0].y, tri.v[1].x, tri.v[1].y, tri.v[2].x, tri.v[2].y)
	if tri.area == 0 || math32.IsNaN(tri.area) {
		return tri, setupRejected
	}

	minX := min(tri.v[0].x, tri.v[1].x, tri.v[2].x)
	maxX := max(tri.v[0].x, tri.v[1].x, tri.v[2].x)
	minY := min(tri.v[0].y, tri.v[1].y, tri.v[2].y)
	maxY := max(tri.v[0].y, tri.v[1].y, tri.v[2].y)
	tri.minX = max(int(math32.Floor(minX)), 0)
	tri.maxX = min(int(math32.Ceil(maxX)), fb.Width-1)
	tri.minY = max(int(math32.Floor(minY)), 0)
	tri.maxY = min(int(math32.Ceil(maxY)), fb.Height-1)
	if tri.minX > tri.maxX || tri.minY > tri.maxY {
		return tri, setupCulled
	}
	return tri, setupOK
}

// rasterize shades the pixels of tri whose rows fall in [y0, y1). It
// returns the number of fragments that passed the depth test.
func rasterize(fb *Framebuffer, tri *triangle, y0, y1 int, u phong.Uniforms, prog Program) int {
	lo := max(tri.minY, y0)
	hi := min(tri.maxY, y1-1)
	v := &tri.v
	written := 0

	for y := lo; y <= hi; y++ {
		py := float32(y) + 0.5
		for x := tri.minX; x <= tri.maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v[1].x, v[1].y, v[2].x, v[2].y, px, py) / tri.area
			w1 := edge(v[2].x, v[2].y, v[0].x, v[0].y, px, py) / tri.area
			w2 := edge(v[0].x, v[0].y, v[1].x, v[1].y, px, py) / tri.area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v[0].z + w1*v[1].z + w2*v[2].z
			if z < 0 || z > 1 {
				continue
			}

			ok := fb.testAndSet(x, y, z, func() mgl32.Vec4 {
				// perspective-correct interpolation
				invW := w0*v[0].invW + w1*v[1].invW + w2*v[2].invW
				var in phong.FragmentInput
				for slot := 0; slot < phong.NumAttributes; slot++ {
					a := v[0].attrs[slot].Mul(w0).
						Add(v[1].attrs[slot].Mul(w1)).
						Add(v[2].attrs[slot].Mul(w2))
					in.SetAttribute(slot, a.Mul(1/invW))
				}
				return prog.Fragment(in, u).Color
			})
			if ok {
				written++
			}
		}
	}
	return written
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}
