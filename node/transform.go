package node

import (
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	xAxis = mgl64.Vec3{1, 0, 0}
	yAxis = mgl64.Vec3{0, 1, 0}
	zAxis = mgl64.Vec3{0, 0, 1}
)

// ApplyMatrix4 premultiplies the local matrix by m and decomposes the result
// back into position, rotation and scale.
func (n *Node) ApplyMatrix4(m mgl64.Mat4) {
	if n.MatrixAutoUpdate {
		n.UpdateMatrix()
	}
	n.Matrix = m.Mul4(n.Matrix)

	var q mgl64.Quat
	n.Position, q, n.Scale = math3d.Decompose(n.Matrix)
	n.SetQuaternion(q)
}

// ApplyQuaternion rotates the node by q in its parent space.
func (n *Node) ApplyQuaternion(q mgl64.Quat) {
	n.SetQuaternion(math3d.Premultiply(n.quaternion, q))
}

// SetRotationFromAxisAngle sets the orientation to angle radians around the unit axis.
func (n *Node) SetRotationFromAxisAngle(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(math3d.QuatFromAxisAngle(axis, angle))
}

// SetRotationFromEuler is SetRotation.
func (n *Node) SetRotationFromEuler(e math3d.Euler) {
	n.SetRotation(e)
}

// SetRotationFromMatrix sets the orientation from the upper 3x3 of m, which
// must be a pure rotation.
func (n *Node) SetRotationFromMatrix(m mgl64.Mat4) {
	n.SetQuaternion(math3d.QuatFromRotationMatrix(m))
}

// SetRotationFromQuaternion is SetQuaternion.
func (n *Node) SetRotationFromQuaternion(q mgl64.Quat) {
	n.SetQuaternion(q)
}

// RotateOnAxis rotates the node around a unit axis expressed in its own space.
func (n *Node) RotateOnAxis(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(math3d.Multiply(n.quaternion, math3d.QuatFromAxisAngle(axis, angle)))
}

// RotateOnWorldAxis rotates the node around a unit axis expressed in parent
// space. Not meant for nodes whose ancestors are rotated.
func (n *Node) RotateOnWorldAxis(axis mgl64.Vec3, angle float64) {
	n.SetQuaternion(math3d.Premultiply(n.quaternion, math3d.QuatFromAxisAngle(axis, angle)))
}

func (n *Node) RotateX(angle float64) { n.RotateOnAxis(xAxis, angle) }
func (n *Node) RotateY(angle float64) { n.RotateOnAxis(yAxis, angle) }
func (n *Node) RotateZ(angle float64) { n.RotateOnAxis(zAxis, angle) }

// TranslateOnAxis moves the node by distance along a unit axis expressed in
// its own space.
func (n *Node) TranslateOnAxis(axis mgl64.Vec3, distance float64) {
	n.Position = n.Position.Add(n.quaternion.Rotate(axis).Mul(distance))
}

func (n *Node) TranslateX(distance float64) { n.TranslateOnAxis(xAxis, distance) }
func (n *Node) TranslateY(distance float64) { n.TranslateOnAxis(yAxis, distance) }
func (n *Node) TranslateZ(distance float64) { n.TranslateOnAxis(zAxis, distance) }

// LocalToWorld converts a point from local to world space using the last
// computed world matrix.
func (n *Node) LocalToWorld(v mgl64.Vec3) mgl64.Vec3 {
	return math3d.ApplyMatrix4(v, n.MatrixWorld)
}

// WorldToLocal converts a point from world to local space using the last
// computed world matrix.
func (n *Node) WorldToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return math3d.ApplyMatrix4(v, n.MatrixWorld.Inv())
}

// LookAt rotates the node to face a world space target. Camera-like nodes
// point their -Z axis at the target, others their +Z axis. Ancestors with
// non-uniform scale are not supported.
func (n *Node) LookAt(target mgl64.Vec3) {
	n.UpdateWorldMatrix(true, false)
	position := math3d.Position(n.MatrixWorld)

	var m mgl64.Mat4
	if n.Kind.IsCameraLike() {
		m = math3d.LookAt(position, target, n.Up)
	} else {
		m = math3d.LookAt(target, position, n.Up)
	}
	q := math3d.QuatFromRotationMatrix(m)

	if n.parent != nil {
		parentRotation := math3d.QuatFromRotationMatrix(math3d.ExtractRotation(n.parent.MatrixWorld))
		q = math3d.Premultiply(q, parentRotation.Conjugate())
	}
	n.SetQuaternion(q)
}

// UpdateMatrix recomposes the local matrix and marks the world matrix stale.
func (n *Node) UpdateMatrix() {
	n.Matrix = math3d.Compose(n.Position, n.quaternion, n.Scale)
	n.MatrixWorldNeedsUpdate = true
}

// UpdateMatrixWorld refreshes the world matrices of n and its subtree. Once a
// node is recomputed, or force is true, every descendant is recomputed too.
func (n *Node) UpdateMatrixWorld(force bool) {
	if n.MatrixAutoUpdate {
		n.UpdateMatrix()
	}

	if n.MatrixWorldNeedsUpdate || force {
		n.computeWorld()
		n.MatrixWorldNeedsUpdate = false
		force = true
	}

	for _, child := range n.children {
		child.UpdateMatrixWorld(force)
	}
}

// UpdateWorldMatrix refreshes n's world matrix unconditionally, optionally
// refreshing its ancestors first and its subtree afterwards.
func (n *Node) UpdateWorldMatrix(updateParents, updateChildren bool) {
	if updateParents && n.parent != nil {
		n.parent.UpdateWorldMatrix(true, false)
	}

	if n.MatrixAutoUpdate {
		n.UpdateMatrix()
	}
	n.computeWorld()

	if updateChildren {
		for _, child := range n.children {
			child.UpdateWorldMatrix(false, true)
		}
	}
}

func (n *Node) computeWorld() {
	if n.parent == nil {
		n.MatrixWorld = n.Matrix
	} else {
		n.MatrixWorld = n.parent.MatrixWorld.Mul4(n.Matrix)
	}

	if n.Kind.KeepsInverse() {
		n.MatrixWorldInverse = n.MatrixWorld.Inv()
	}
}

// WorldPosition refreshes the ancestors' matrices and returns n's world position.
func (n *Node) WorldPosition() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	return math3d.Position(n.MatrixWorld)
}

// WorldQuaternion refreshes the ancestors' matrices and returns n's world orientation.
func (n *Node) WorldQuaternion() mgl64.Quat {
	n.UpdateWorldMatrix(true, false)
	_, q, _ := math3d.Decompose(n.MatrixWorld)
	return q
}

// WorldScale refreshes the ancestors' matrices and returns n's world scale.
func (n *Node) WorldScale() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	_, _, s := math3d.Decompose(n.MatrixWorld)
	return s
}

// WorldDirection returns the world space +Z axis of the node, or -Z for cameras.
func (n *Node) WorldDirection() mgl64.Vec3 {
	n.UpdateWorldMatrix(true, false)
	d := math3d.Normalize(math3d.Column(n.MatrixWorld, 2))
	if n.Kind == KindCamera {
		d = d.Mul(-1)
	}
	return d
}
