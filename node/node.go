// Package node implements the transform hierarchy: nodes owning a local
// position, rotation and scale, the matrices derived from them, and the
// parent/child tree that propagates world matrices.
package node

import (
	"maps"

	"github.com/akmonengine/scene3d/event"
	"github.com/akmonengine/scene3d/ident"
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tells what a node stands for. It only changes behavior through the
// capabilities below (camera-like orientation, inverse world matrix).
type Kind uint8

const (
	KindObject Kind = iota
	KindGroup
	KindScene
	KindMesh
	KindCamera
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object3D"
	case KindGroup:
		return "Group"
	case KindScene:
		return "Scene"
	case KindMesh:
		return "Mesh"
	case KindCamera:
		return "Camera"
	case KindLight:
		return "Light"
	}
	return "Unknown"
}

// IsCameraLike reports whether LookAt points the node's -Z axis at the target
// instead of its +Z axis.
func (k Kind) IsCameraLike() bool {
	return k == KindCamera || k == KindLight
}

// KeepsInverse reports whether the node maintains MatrixWorldInverse.
func (k Kind) KeepsInverse() bool {
	return k == KindCamera
}

var (
	// DefaultUp is the up hint given to new nodes.
	DefaultUp = mgl64.Vec3{0, 1, 0}
	// DefaultMatrixAutoUpdate is the MatrixAutoUpdate flag given to new nodes.
	DefaultMatrixAutoUpdate = true
)

// Node is an element of the transform hierarchy.
//
// Rotation and quaternion describe the same orientation; they are private and
// kept in sync by every setter. Matrix is derived from Position, the
// quaternion and Scale by UpdateMatrix. MatrixWorld is only valid after an
// update pass.
type Node struct {
	ID   uint64
	UUID string
	Name string
	Kind Kind

	Up       mgl64.Vec3
	Position mgl64.Vec3
	Scale    mgl64.Vec3

	rotation   math3d.Euler
	quaternion mgl64.Quat

	Matrix      mgl64.Mat4
	MatrixWorld mgl64.Mat4
	// MatrixWorldInverse is maintained for KindCamera only.
	MatrixWorldInverse mgl64.Mat4

	MatrixAutoUpdate       bool
	MatrixWorldNeedsUpdate bool

	Visible     bool
	RenderOrder int
	UserData    map[string]any

	parent   *Node
	children []*Node

	ids    *ident.Allocator
	events event.Events
}

// New creates a standalone node with an identity transform. ids issues the
// node id and must not be nil.
func New(ids *ident.Allocator, kind Kind) *Node {
	return &Node{
		ID:                 ids.Next(),
		UUID:               ident.NewUUID(),
		Kind:               kind,
		Up:                 DefaultUp,
		Scale:              mgl64.Vec3{1, 1, 1},
		rotation:           math3d.Euler{Order: math3d.DefaultOrder},
		quaternion:         mgl64.QuatIdent(),
		Matrix:             mgl64.Ident4(),
		MatrixWorld:        mgl64.Ident4(),
		MatrixWorldInverse: mgl64.Ident4(),
		MatrixAutoUpdate:   DefaultMatrixAutoUpdate,
		Visible:            true,
		UserData:           make(map[string]any),
		ids:                ids,
	}
}

// Rotation returns the orientation as Euler angles.
func (n *Node) Rotation() math3d.Euler {
	return n.rotation
}

// Quaternion returns the orientation as a quaternion.
func (n *Node) Quaternion() mgl64.Quat {
	return n.quaternion
}

// SetRotation sets the orientation from Euler angles and refreshes the quaternion.
func (n *Node) SetRotation(e math3d.Euler) {
	n.rotation = e
	n.quaternion = e.Quat()
}

// SetQuaternion sets the orientation and refreshes the Euler angles, keeping
// their current order.
func (n *Node) SetQuaternion(q mgl64.Quat) {
	n.quaternion = q
	n.rotation = math3d.EulerFromQuaternion(q, n.rotation.Order)
}

// SetRotationOrder changes the order of the Euler angles without changing the
// orientation.
func (n *Node) SetRotationOrder(order math3d.RotationOrder) {
	n.rotation = n.rotation.Reorder(order)
}

// Parent returns the node this node is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Subscribe registers listener for the events this node dispatches.
func (n *Node) Subscribe(eventType event.EventType, listener event.Listener) {
	n.events.Subscribe(eventType, listener)
}

// Copy overwrites n's state with source's, keeping n's identity. Children are
// cloned and added when recursive is true. UserData is copied shallowly.
func (n *Node) Copy(source *Node, recursive bool) *Node {
	n.Name = source.Name
	n.Kind = source.Kind
	n.Up = source.Up
	n.Position = source.Position
	n.rotation = source.rotation
	n.quaternion = source.quaternion
	n.Scale = source.Scale
	n.Matrix = source.Matrix
	n.MatrixWorld = source.MatrixWorld
	n.MatrixWorldInverse = source.MatrixWorldInverse
	n.MatrixAutoUpdate = source.MatrixAutoUpdate
	n.MatrixWorldNeedsUpdate = source.MatrixWorldNeedsUpdate
	n.Visible = source.Visible
	n.RenderOrder = source.RenderOrder
	n.UserData = maps.Clone(source.UserData)
	if n.UserData == nil {
		n.UserData = make(map[string]any)
	}

	if recursive {
		for _, child := range source.children {
			// a fresh clone is never n itself nor one of its ancestors
			_ = n.Add(child.Clone(true))
		}
	}

	return n
}

// Clone returns a new node with the same state and a fresh identity.
func (n *Node) Clone(recursive bool) *Node {
	return New(n.ids, n.Kind).Copy(n, recursive)
}
