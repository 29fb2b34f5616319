package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 represents an axis-aligned bounding box
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing and absorbs the first point it is expanded by.
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// BoxFromPoints returns the smallest box containing every point.
func BoxFromPoints(points []mgl64.Vec3) Box3 {
	b := EmptyBox()
	for _, p := range points {
		b = b.ExpandByPoint(p)
	}

	return b
}

// IsEmpty reports whether the box contains no point.
func (b Box3) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

// ExpandByPoint grows the box so that it contains p.
func (b Box3) ExpandByPoint(p mgl64.Vec3) Box3 {
	return Box3{Min: MinVec(b.Min, p), Max: MaxVec(b.Max, p)}
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(other Box3) Box3 {
	return Box3{Min: MinVec(b.Min, other.Min), Max: MaxVec(b.Max, other.Max)}
}

// Center returns the middle of the box, or the origin for an empty box.
func (b Box3) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}

	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis, or zero for an empty box.
func (b Box3) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}

	return b.Max.Sub(b.Min)
}

// HasNaN reports whether either corner holds a NaN.
func (b Box3) HasNaN() bool {
	return HasNaN(b.Min) || HasNaN(b.Max)
}

// ContainsPoint checks if a point is inside the box
func (b Box3) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= b.Min.X() && point.X() <= b.Max.X() &&
		point.Y() >= b.Min.Y() && point.Y() <= b.Max.Y() &&
		point.Z() >= b.Min.Z() && point.Z() <= b.Max.Z()
}

// Overlaps checks if two boxes overlap
func (b Box3) Overlaps(other Box3) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}

	// Boxes overlap if they overlap on all three axes
	return b.Max.X() >= other.Min.X() && b.Min.X() <= other.Max.X() &&
		b.Max.Y() >= other.Min.Y() && b.Min.Y() <= other.Max.Y() &&
		b.Max.Z() >= other.Min.Z() && b.Min.Z() <= other.Max.Z()
}

// ApplyMatrix4 returns the axis-aligned box enclosing the 8 transformed corners.
func (b Box3) ApplyMatrix4(m mgl64.Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}

	corners := [8]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}

	result := EmptyBox()
	for _, corner := range corners {
		result = result.ExpandByPoint(ApplyMatrix4(corner, m))
	}

	return result
}
