package pipeline

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/phong"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type MeshID string

func makeMeshID() MeshID {
	return MeshID(uuid.NewString())
}

// Mesh is an indexed triangle list. Every three indices form a triangle.
type Mesh struct {
	ID       MeshID
	Vertices []phong.VertexInput
	Indices  []uint32
}

func NewMesh(vertices []phong.VertexInput, indices []uint32) *Mesh {
	return &Mesh{
		ID:       makeMeshID(),
		Vertices: vertices,
		Indices:  indices,
	}
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that indices form whole triangles and stay in range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %s: %d indices is not a multiple of 3", m.ID, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %s: index %d at %d out of range (%d vertices)", m.ID, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Transformed returns a copy of the mesh with model applied: positions by
// the matrix, normals by its inverse transpose. The vertex stage has no
// model matrix, so this is where placement and non-uniform scale go.
func (m *Mesh) Transformed(model mgl32.Mat4) *Mesh {
	normalMat := model.Mat3().Inv().Transpose()
	out := make([]phong.VertexInput, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = phong.VertexInput{
			Position: model.Mul4x1(v.Position.Vec4(1)).Vec3(),
			Normal:   phong.Normalize(normalMat.Mul3x1(v.Normal)),
		}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	return NewMesh(out, indices)
}

// NewSphere builds a UV sphere centred on the origin.
func NewSphere(radius float32, stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	vertices := make([]phong.VertexInput, 0, (stacks+1)*(slices+1))
	for i := 0; i <= stacks; i++ {
		theta := math32.Pi * float32(i) / float32(stacks)
		st, ct := math32.Sincos(theta)
		for j := 0; j <= slices; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(slices)
			sp, cp := math32.Sincos(phi)
			n := mgl32.Vec3{st * cp, ct, st * sp}
			vertices = append(vertices, phong.VertexInput{
				Position: n.Mul(radius),
				Normal:   n,
			})
		}
	}

	indices := make([]uint32, 0, stacks*slices*6)
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return NewMesh(vertices, indices)
}

// NewPlane builds a square in the XZ plane facing +Y, split into
// divisions×divisions quads.
func NewPlane(size float32, divisions int) *Mesh {
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)
	up := mgl32.Vec3{0, 1, 0}

	vertices := make([]phong.VertexInput, 0, (divisions+1)*(divisions+1))
	for z := 0; z <= divisions; z++ {
		for x := 0; x <= divisions; x++ {
			vertices = append(vertices, phong.VertexInput{
				Position: mgl32.Vec3{-half + float32(x)*step, 0, -half + float32(z)*step},
				Normal:   up,
			})
		}
	}

	indices := make([]uint32, 0, divisions*divisions*6)
	row := uint32(divisions + 1)
	for z := 0; z < divisions; z++ {
		for x := 0; x < divisions; x++ {
			a := uint32(z)*row + uint32(x)
			b := a + row
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return NewMesh(vertices, indices)
}

// NewCube builds an axis-aligned cube with flat per-face normals.
func NewCube(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	vertices := make([]phong.VertexInput, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		c := f.normal.Mul(h)
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := c.Add(f.u.Mul(corner[0] * h)).Add(f.v.Mul(corner[1] * h))
			vertices = append(vertices, phong.VertexInput{Position: p, Normal: f.normal})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(vertices, indices)
}
