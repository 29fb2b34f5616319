package geometry

import (
	"fmt"

	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Attribute is a per-vertex data channel: a flat buffer read as Count items
// of ItemSize components each.
type Attribute struct {
	Name       string
	Array      Buffer
	ItemSize   int
	Normalized bool
	// NeedsUpdate is raised whenever the data changes so that external
	// consumers know to re-upload it. They are expected to lower it.
	NeedsUpdate bool
	Version     uint64
}

// NewAttribute wraps array. Its length must be a multiple of itemSize.
func NewAttribute(array Buffer, itemSize int, normalized bool) (*Attribute, error) {
	if itemSize <= 0 {
		return nil, errors.Errorf("invalid item size %d", itemSize)
	}
	if array.Len()%itemSize != 0 {
		return nil, errors.Errorf("buffer length %d is not a multiple of item size %d", array.Len(), itemSize)
	}

	return &Attribute{Array: array, ItemSize: itemSize, Normalized: normalized}, nil
}

// NewFloat32Attribute copies values into a Float32 attribute.
func NewFloat32Attribute(values []float64, itemSize int) (*Attribute, error) {
	array := make(Float32Buffer, len(values))
	for i, v := range values {
		array[i] = float32(v)
	}

	return NewAttribute(array, itemSize, false)
}

// Count returns the number of items.
func (a *Attribute) Count() int {
	return a.Array.Len() / a.ItemSize
}

// MarkNeedsUpdate flags the attribute as modified.
func (a *Attribute) MarkNeedsUpdate() {
	a.NeedsUpdate = true
	a.Version++
}

// Component returns component c of item i. c outside 0..ItemSize-1 panics.
func (a *Attribute) Component(i, c int) float64 {
	a.checkComponent(c)
	return a.Array.At(i*a.ItemSize + c)
}

// SetComponent sets component c of item i. c outside 0..ItemSize-1 panics.
func (a *Attribute) SetComponent(i, c int, v float64) {
	a.checkComponent(c)
	a.Array.Set(i*a.ItemSize+c, v)
}

func (a *Attribute) checkComponent(c int) {
	if c < 0 || c >= a.ItemSize {
		panic(fmt.Sprintf("geometry: component %d out of range for item size %d", c, a.ItemSize))
	}
}

func (a *Attribute) X(i int) float64 { return a.Component(i, 0) }
func (a *Attribute) Y(i int) float64 { return a.Component(i, 1) }
func (a *Attribute) Z(i int) float64 { return a.Component(i, 2) }
func (a *Attribute) W(i int) float64 { return a.Component(i, 3) }

func (a *Attribute) SetXYZ(i int, x, y, z float64) {
	a.SetComponent(i, 0, x)
	a.SetComponent(i, 1, y)
	a.SetComponent(i, 2, z)
}

func (a *Attribute) SetXYZW(i int, x, y, z, w float64) {
	a.SetXYZ(i, x, y, z)
	a.SetComponent(i, 3, w)
}

// Vec3 reads the first three components of item i. Components beyond
// ItemSize read as 0.
func (a *Attribute) Vec3(i int) mgl64.Vec3 {
	var v mgl64.Vec3
	for c := 0; c < min(3, a.ItemSize); c++ {
		v[c] = a.Array.At(i*a.ItemSize + c)
	}
	return v
}

// SetVec3 writes the first three components of item i, dropping those
// beyond ItemSize.
func (a *Attribute) SetVec3(i int, v mgl64.Vec3) {
	for c := 0; c < min(3, a.ItemSize); c++ {
		a.Array.Set(i*a.ItemSize+c, v[c])
	}
}

// ApplyMatrix4 transforms every item as a point.
func (a *Attribute) ApplyMatrix4(m mgl64.Mat4) {
	for i := 0; i < a.Count(); i++ {
		a.SetVec3(i, math3d.ApplyMatrix4(a.Vec3(i), m))
	}
}

// ApplyNormalMatrix transforms every item by a normal matrix and normalizes it.
func (a *Attribute) ApplyNormalMatrix(m mgl64.Mat3) {
	for i := 0; i < a.Count(); i++ {
		a.SetVec3(i, math3d.Normalize(math3d.ApplyMatrix3(a.Vec3(i), m)))
	}
}

// TransformDirection rotates the xyz part of every item by the upper 3x3 of m
// and normalizes it.
func (a *Attribute) TransformDirection(m mgl64.Mat4) {
	for i := 0; i < a.Count(); i++ {
		a.SetVec3(i, math3d.TransformDirection(a.Vec3(i), m))
	}
}

// Floats returns a float64 copy of the buffer.
func (a *Attribute) Floats() []float64 {
	out := make([]float64, a.Array.Len())
	for i := range out {
		out[i] = a.Array.At(i)
	}
	return out
}

// Clone returns a deep copy of the attribute.
func (a *Attribute) Clone() *Attribute {
	c := *a
	c.Array = a.Array.Clone()
	return &c
}
