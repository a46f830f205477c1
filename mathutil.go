package phong

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp limits v to [lo, hi]. The v < hi test comes first, so v == hi is
// resolved by the upper branch.
func Clamp(v, lo, hi float32) float32 {
	if v < hi {
		return max(v, lo)
	}
	return min(v, hi)
}

// Normalize returns v scaled to unit length. A zero vector stays zero.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Reflect mirrors the incident vector i about the normal n: i - 2*dot(n,i)*n.
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec4 {
	return m.Mul4x1(p.Vec4(1))
}
