// Package math3d holds the numeric kernel shared by the scene graph and the
// geometry processor: Euler angles, matrix composition helpers and bounding
// volumes, all built on top of mgl64 value types.
package math3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize scales v to unit length. A zero vector is returned unchanged.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		l = 1
	}

	return v.Mul(1 / l)
}

// Component returns the i-th component of v. Indices outside 0..2 panic.
func Component(v mgl64.Vec3, i int) float64 {
	if i < 0 || i > 2 {
		panic(fmt.Sprintf("math3d: vector component index out of range: %d", i))
	}

	return v[i]
}

// SetComponent sets the i-th component of v. Indices outside 0..2 panic.
func SetComponent(v *mgl64.Vec3, i int, value float64) {
	if i < 0 || i > 2 {
		panic(fmt.Sprintf("math3d: vector component index out of range: %d", i))
	}
	v[i] = value
}

// ApplyMatrix4 transforms the point v by m, including the perspective divide.
func ApplyMatrix4(v mgl64.Vec3, m mgl64.Mat4) mgl64.Vec3 {
	r := m.Mul4x1(v.Vec4(1))
	w := r[3]
	if w == 0 {
		w = 1
	}

	return r.Vec3().Mul(1 / w)
}

// TransformDirection rotates v by the upper 3x3 of m and normalizes the result.
func TransformDirection(v mgl64.Vec3, m mgl64.Mat4) mgl64.Vec3 {
	return Normalize(m.Mul4x1(v.Vec4(0)).Vec3())
}

// ApplyMatrix3 multiplies v by m.
func ApplyMatrix3(v mgl64.Vec3, m mgl64.Mat3) mgl64.Vec3 {
	return m.Mul3x1(v)
}

// ApplyQuaternion rotates v by q.
func ApplyQuaternion(v mgl64.Vec3, q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(v)
}

// HasNaN reports whether any component of v is NaN.
func HasNaN(v mgl64.Vec3) bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}

// MinVec returns the component-wise minimum of a and b.
func MinVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// MaxVec returns the component-wise maximum of a and b.
func MaxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
