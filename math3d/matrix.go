package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Compose builds the affine matrix T * R * S from a position, a rotation and a scale.
func Compose(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) mgl64.Mat4 {
	m := rotation.Mat4()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*4+row] *= scale[col]
		}
	}
	SetPosition(&m, position)

	return m
}

// Decompose splits an affine matrix into position, rotation and scale.
// A negative determinant is attributed to the x axis scale.
func Decompose(m mgl64.Mat4) (position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) {
	sx := Column(m, 0).Len()
	sy := Column(m, 1).Len()
	sz := Column(m, 2).Len()
	if m.Det() < 0 {
		sx = -sx
	}

	position = Position(m)

	r := m
	scale = mgl64.Vec3{sx, sy, sz}
	for col := 0; col < 3; col++ {
		inv := 0.0
		if scale[col] != 0 {
			inv = 1 / scale[col]
		}
		for row := 0; row < 3; row++ {
			r[col*4+row] *= inv
		}
	}
	rotation = QuatFromRotationMatrix(r)

	return position, rotation, scale
}

// Column returns the xyz part of column i of m.
func Column(m mgl64.Mat4, i int) mgl64.Vec3 {
	return m.Col(i).Vec3()
}

// Position returns the translation column of m.
func Position(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[12], m[13], m[14]}
}

// SetPosition overwrites the translation column of m.
func SetPosition(m *mgl64.Mat4, p mgl64.Vec3) {
	m[12], m[13], m[14] = p[0], p[1], p[2]
}

// ExtractRotation returns the upper 3x3 of m with each column scaled to unit
// length, embedded in an otherwise identity matrix.
func ExtractRotation(m mgl64.Mat4) mgl64.Mat4 {
	r := mgl64.Ident4()
	for col := 0; col < 3; col++ {
		c := Normalize(Column(m, col))
		r[col*4], r[col*4+1], r[col*4+2] = c[0], c[1], c[2]
	}

	return r
}

// MakeRotationFromEuler returns the rotation matrix for e.
func MakeRotationFromEuler(e Euler) mgl64.Mat4 {
	return e.Quat().Mat4()
}

// MakeRotationFromQuaternion returns the rotation matrix for q.
func MakeRotationFromQuaternion(q mgl64.Quat) mgl64.Mat4 {
	return q.Mat4()
}

// LookAt returns a rotation matrix whose -Z axis points from eye towards target
// (its +Z axis points from target to eye) with the given up hint.
// Coincident eye and target default the forward axis to +Z; an up hint parallel
// to the forward axis is resolved by nudging the forward axis.
func LookAt(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z[2] = 1
	}
	z = Normalize(z)

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = Normalize(z)
		x = up.Cross(z)
	}
	x = Normalize(x)
	y := z.Cross(x)

	return mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of m.
// A singular matrix yields the zero matrix.
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// MaxScaleOnAxis returns the largest column length of the upper 3x3 of m.
func MaxScaleOnAxis(m mgl64.Mat4) float64 {
	return mgl64.ExtractMaxScale(m)
}

// QuatFromRotationMatrix converts the upper 3x3 of m, which must be a pure
// rotation, to a quaternion.
func QuatFromRotationMatrix(m mgl64.Mat4) mgl64.Quat {
	return mgl64.Mat4ToQuat(m)
}

// QuatFromAxisAngle returns the rotation of angle radians around the unit axis.
func QuatFromAxisAngle(axis mgl64.Vec3, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axis)
}

// Multiply returns q * p.
func Multiply(q, p mgl64.Quat) mgl64.Quat {
	return q.Mul(p)
}

// Premultiply returns p * q.
func Premultiply(q, p mgl64.Quat) mgl64.Quat {
	return p.Mul(q)
}
