package geometry

import (
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// ApplyMatrix4 bakes m into the vertex data: positions as points, normals
// through the normal matrix, tangents as directions. Bounding volumes that
// were already computed are recomputed.
func (g *Geometry) ApplyMatrix4(m mgl64.Mat4) {
	if position := g.attributes[POSITION]; position != nil {
		position.ApplyMatrix4(m)
		position.MarkNeedsUpdate()
	}

	if normal := g.attributes[NORMAL]; normal != nil {
		normal.ApplyNormalMatrix(math3d.NormalMatrix(m))
		normal.MarkNeedsUpdate()
	}

	if tangent := g.attributes[TANGENT]; tangent != nil {
		tangent.TransformDirection(m)
		tangent.MarkNeedsUpdate()
	}

	// NaN bounds are already logged by the compute functions.
	if g.BoundingBox != nil {
		_ = g.ComputeBoundingBox()
	}
	if g.BoundingSphere != nil {
		_ = g.ComputeBoundingSphere()
	}
}

// ApplyQuaternion rotates the vertex data by q.
func (g *Geometry) ApplyQuaternion(q mgl64.Quat) {
	g.ApplyMatrix4(math3d.MakeRotationFromQuaternion(q))
}

// RotateX rotates the vertex data around the X axis. Meant for one-off edits,
// per-frame rotation belongs on the node.
func (g *Geometry) RotateX(angle float64) {
	g.ApplyMatrix4(mgl64.HomogRotate3DX(angle))
}

func (g *Geometry) RotateY(angle float64) {
	g.ApplyMatrix4(mgl64.HomogRotate3DY(angle))
}

func (g *Geometry) RotateZ(angle float64) {
	g.ApplyMatrix4(mgl64.HomogRotate3DZ(angle))
}

func (g *Geometry) Translate(x, y, z float64) {
	g.ApplyMatrix4(mgl64.Translate3D(x, y, z))
}

func (g *Geometry) Scale(x, y, z float64) {
	g.ApplyMatrix4(mgl64.Scale3D(x, y, z))
}

// LookAt rotates the vertex data so that +Z points at target from the origin.
func (g *Geometry) LookAt(target mgl64.Vec3) {
	m := math3d.LookAt(target, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	g.ApplyMatrix4(math3d.QuatFromRotationMatrix(m).Mat4())
}

// Center translates the vertex data so that its bounding box is centered on
// the origin.
func (g *Geometry) Center() {
	// a NaN box leaves a NaN offset; the error is already logged
	_ = g.ComputeBoundingBox()
	offset := g.BoundingBox.Center().Mul(-1)
	g.Translate(offset.X(), offset.Y(), offset.Z())
}

// SetFromPoints writes points into the position attribute, creating a
// Float32 attribute when there is none. An existing attribute is never
// resized: extra points are dropped with a warning.
func (g *Geometry) SetFromPoints(points []mgl64.Vec3) {
	position := g.attributes[POSITION]
	if position == nil {
		array := make(Float32Buffer, len(points)*3)
		for i, p := range points {
			array[i*3], array[i*3+1], array[i*3+2] = float32(p.X()), float32(p.Y()), float32(p.Z())
		}
		g.attributes[POSITION] = &Attribute{Array: array, ItemSize: 3}
		return
	}

	n := min(len(points), position.Count())
	for i := 0; i < n; i++ {
		position.SetVec3(i, points[i])
	}
	if len(points) > position.Count() {
		g.log().Warn("Buffer size too small for points data, use a new geometry instead",
			zap.Uint64("geometry", g.ID), zap.Int("points", len(points)), zap.Int("capacity", position.Count()))
	}
	position.MarkNeedsUpdate()
}
