package math3d

import "github.com/go-gl/mathgl/mgl64"

// Sphere is a bounding sphere. A negative radius marks an empty sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// EmptySphere returns a sphere that contains nothing.
func EmptySphere() Sphere {
	return Sphere{Radius: -1}
}

// IsEmpty reports whether the sphere contains no point.
func (s Sphere) IsEmpty() bool {
	return s.Radius < 0
}

// ContainsPoint reports whether p lies inside or on the sphere, within eps.
func (s Sphere) ContainsPoint(p mgl64.Vec3, eps float64) bool {
	return p.Sub(s.Center).Len() <= s.Radius+eps
}

// ApplyMatrix4 transforms the center by m and scales the radius by the
// largest axis scale of m.
func (s Sphere) ApplyMatrix4(m mgl64.Mat4) Sphere {
	return Sphere{
		Center: ApplyMatrix4(s.Center, m),
		Radius: s.Radius * MaxScaleOnAxis(m),
	}
}

// BoundingBox returns the box enclosing the sphere.
func (s Sphere) BoundingBox() Box3 {
	if s.IsEmpty() {
		return EmptyBox()
	}
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	return Box3{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}
