package math3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// RotationOrder names the sequence in which the three axis rotations of an
// Euler triple are applied, read left to right as intrinsic rotations.
type RotationOrder uint8

const (
	XYZ RotationOrder = iota
	YZX
	ZXY
	XZY
	YXZ
	ZYX
)

// DefaultOrder is the rotation order of a zero Euler.
const DefaultOrder = XYZ

// gimbalThreshold bounds the matrix entry used for the middle angle; above it
// the first and third axes are aligned and the degenerate angle is set to 0.
const gimbalThreshold = 0.9999999

var rotationOrderNames = [...]string{"XYZ", "YZX", "ZXY", "XZY", "YXZ", "ZYX"}

// RotationOrders lists every supported order.
var RotationOrders = []RotationOrder{XYZ, YZX, ZXY, XZY, YXZ, ZYX}

func (o RotationOrder) String() string {
	if int(o) < len(rotationOrderNames) {
		return rotationOrderNames[o]
	}

	return fmt.Sprintf("RotationOrder(%d)", o)
}

// Valid reports whether o is one of the six supported orders.
func (o RotationOrder) Valid() bool {
	return int(o) < len(rotationOrderNames)
}

// ParseRotationOrder converts a name such as "YXZ" to its RotationOrder.
func ParseRotationOrder(s string) (RotationOrder, error) {
	for i, name := range rotationOrderNames {
		if name == s {
			return RotationOrder(i), nil
		}
	}

	return 0, errors.Errorf("unknown rotation order %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o RotationOrder) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, errors.Errorf("unknown rotation order %d", o)
	}

	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *RotationOrder) UnmarshalText(text []byte) error {
	order, err := ParseRotationOrder(string(text))
	if err != nil {
		return err
	}
	*o = order

	return nil
}

// Euler is a rotation expressed as three angles in radians plus the order
// in which they are applied.
type Euler struct {
	X, Y, Z float64
	Order   RotationOrder
}

// NewEuler creates an Euler from its angles and order.
func NewEuler(x, y, z float64, order RotationOrder) Euler {
	return Euler{X: x, Y: y, Z: z, Order: order}
}

// Vec3 returns the angles as a vector, dropping the order.
func (e Euler) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{e.X, e.Y, e.Z}
}

// Equal reports whether both Eulers have the same angles and order.
func (e Euler) Equal(other Euler) bool {
	return e.X == other.X && e.Y == other.Y && e.Z == other.Z && e.Order == other.Order
}

// Quat returns the quaternion equivalent of e.
func (e Euler) Quat() mgl64.Quat {
	return QuatFromEuler(e)
}

// Reorder returns the Euler describing the same rotation with a different
// order. Some information may be lost at gimbal lock.
func (e Euler) Reorder(order RotationOrder) Euler {
	return EulerFromQuaternion(e.Quat(), order)
}

// QuatFromEuler composes the three axis rotations of e in its order.
// An unknown order panics.
func QuatFromEuler(e Euler) mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(e.Y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(e.Z, mgl64.Vec3{0, 0, 1})

	switch e.Order {
	case XYZ:
		return qx.Mul(qy).Mul(qz)
	case YZX:
		return qy.Mul(qz).Mul(qx)
	case ZXY:
		return qz.Mul(qx).Mul(qy)
	case XZY:
		return qx.Mul(qz).Mul(qy)
	case YXZ:
		return qy.Mul(qx).Mul(qz)
	case ZYX:
		return qz.Mul(qy).Mul(qx)
	}

	panic(fmt.Sprintf("math3d: unknown rotation order %d", e.Order))
}

// EulerFromQuaternion converts a unit quaternion to Euler angles in the given order.
func EulerFromQuaternion(q mgl64.Quat, order RotationOrder) Euler {
	return EulerFromRotationMatrix(q.Mat4(), order)
}

// EulerFromRotationMatrix extracts Euler angles in the given order from the
// upper 3x3 of m, which must be unscaled. At gimbal lock the third angle of
// the sequence is set to 0. An unknown order panics.
func EulerFromRotationMatrix(m mgl64.Mat4, order RotationOrder) Euler {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]

	e := Euler{Order: order}

	switch order {
	case XYZ:
		e.Y = math.Asin(clamp(m13, -1, 1))
		if math.Abs(m13) < gimbalThreshold {
			e.X = math.Atan2(-m23, m33)
			e.Z = math.Atan2(-m12, m11)
		} else {
			e.X = math.Atan2(m32, m22)
			e.Z = 0
		}
	case YXZ:
		e.X = math.Asin(-clamp(m23, -1, 1))
		if math.Abs(m23) < gimbalThreshold {
			e.Y = math.Atan2(m13, m33)
			e.Z = math.Atan2(m21, m22)
		} else {
			e.Y = math.Atan2(-m31, m11)
			e.Z = 0
		}
	case ZXY:
		e.X = math.Asin(clamp(m32, -1, 1))
		if math.Abs(m32) < gimbalThreshold {
			e.Y = math.Atan2(-m31, m33)
			e.Z = math.Atan2(-m12, m22)
		} else {
			e.Y = 0
			e.Z = math.Atan2(m21, m11)
		}
	case ZYX:
		e.Y = math.Asin(-clamp(m31, -1, 1))
		if math.Abs(m31) < gimbalThreshold {
			e.X = math.Atan2(m32, m33)
			e.Z = math.Atan2(m21, m11)
		} else {
			e.X = 0
			e.Z = math.Atan2(-m12, m22)
		}
	case YZX:
		e.Z = math.Asin(clamp(m21, -1, 1))
		if math.Abs(m21) < gimbalThreshold {
			e.X = math.Atan2(-m23, m22)
			e.Y = math.Atan2(-m31, m11)
		} else {
			e.X = 0
			e.Y = math.Atan2(m13, m33)
		}
	case XZY:
		e.Z = math.Asin(-clamp(m12, -1, 1))
		if math.Abs(m12) < gimbalThreshold {
			e.X = math.Atan2(m32, m22)
			e.Y = math.Atan2(m13, m11)
		} else {
			e.X = math.Atan2(-m23, m33)
			e.Y = 0
		}
	default:
		panic(fmt.Sprintf("math3d: unknown rotation order %d", order))
	}

	return e
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
