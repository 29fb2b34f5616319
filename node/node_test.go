package node

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/scene3d/event"
	"github.com/akmonengine/scene3d/ident"
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vec3AlmostEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return almostEqual(a.X(), b.X(), tolerance) &&
		almostEqual(a.Y(), b.Y(), tolerance) &&
		almostEqual(a.Z(), b.Z(), tolerance)
}

func mat4AlmostEqual(a, b mgl64.Mat4, tolerance float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

// buildChain returns root -> mid -> leaf with non-trivial transforms.
func buildChain(ids *ident.Allocator) (root, mid, leaf *Node) {
	root = New(ids, KindGroup)
	root.Position = mgl64.Vec3{1, 2, 3}
	root.SetRotation(math3d.NewEuler(0.3, -0.2, 0.9, math3d.XYZ))
	root.Scale = mgl64.Vec3{2, 2, 2}

	mid = New(ids, KindObject)
	mid.Position = mgl64.Vec3{-4, 0, 1}
	mid.SetRotation(math3d.NewEuler(-1.1, 0.4, 0, math3d.YXZ))
	mid.Scale = mgl64.Vec3{1, 0.5, 3}

	leaf = New(ids, KindMesh)
	leaf.Position = mgl64.Vec3{0, 7, 0}
	leaf.RotateZ(0.25)

	if err := root.Add(mid); err != nil {
		panic(err)
	}
	if err := mid.Add(leaf); err != nil {
		panic(err)
	}
	return root, mid, leaf
}

// =============================================================================
// Construction & Orientation Tests
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	ids := ident.NewAllocator()
	a := New(ids, KindObject)
	b := New(ids, KindGroup)

	if a.ID != 0 || b.ID != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", a.ID, b.ID)
	}
	if a.UUID == "" || a.UUID == b.UUID {
		t.Errorf("UUIDs should be set and distinct: %q %q", a.UUID, b.UUID)
	}
	if a.Scale != (mgl64.Vec3{1, 1, 1}) || a.Up != DefaultUp {
		t.Errorf("unexpected defaults: scale %v up %v", a.Scale, a.Up)
	}
	if a.Quaternion() != mgl64.QuatIdent() || a.Rotation().Order != math3d.XYZ {
		t.Errorf("orientation should be identity XYZ")
	}
	if !a.Visible || !a.MatrixAutoUpdate || a.Parent() != nil || a.ChildCount() != 0 {
		t.Errorf("unexpected flags on a new node")
	}
}

func TestRotationQuaternionStayInSync(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)

	e := math3d.NewEuler(0.1, 0.2, 0.3, math3d.ZXY)
	n.SetRotation(e)
	if !mat4AlmostEqual(n.Quaternion().Mat4(), math3d.MakeRotationFromEuler(e), 1e-12) {
		t.Errorf("quaternion not refreshed by SetRotation")
	}

	q := math3d.QuatFromAxisAngle(mgl64.Vec3{1, 0, 0}, 0.5)
	n.SetQuaternion(q)
	if n.Rotation().Order != math3d.ZXY {
		t.Errorf("SetQuaternion should keep the Euler order, got %v", n.Rotation().Order)
	}
	if !vec3AlmostEqual(n.Rotation().Vec3(), mgl64.Vec3{0.5, 0, 0}, 1e-12) {
		t.Errorf("rotation = %v, want (0.5, 0, 0)", n.Rotation().Vec3())
	}

	n.SetRotationOrder(math3d.ZYX)
	if n.Rotation().Order != math3d.ZYX {
		t.Fatalf("order = %v, want ZYX", n.Rotation().Order)
	}
	if !mat4AlmostEqual(math3d.MakeRotationFromEuler(n.Rotation()), q.Mat4(), 1e-12) {
		t.Errorf("reordering changed the orientation")
	}
}

func TestRotateAndTranslateOnAxis(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)
	n.RotateY(math.Pi / 2)
	n.TranslateZ(2)

	if !vec3AlmostEqual(n.Position, mgl64.Vec3{2, 0, 0}, 1e-12) {
		t.Errorf("position = %v, want (2,0,0)", n.Position)
	}

	n.RotateOnWorldAxis(mgl64.Vec3{0, 1, 0}, -math.Pi/2)
	if !almostEqual(math.Abs(n.Quaternion().W), 1, 1e-12) {
		t.Errorf("quaternion = %v, want identity", n.Quaternion())
	}
}

func TestApplyMatrix4(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)
	n.Position = mgl64.Vec3{1, 0, 0}

	n.ApplyMatrix4(mgl64.Translate3D(0, 2, 0).Mul4(mgl64.Scale3D(3, 3, 3)))

	if !vec3AlmostEqual(n.Position, mgl64.Vec3{3, 2, 0}, 1e-12) {
		t.Errorf("position = %v, want (3,2,0)", n.Position)
	}
	if !vec3AlmostEqual(n.Scale, mgl64.Vec3{3, 3, 3}, 1e-12) {
		t.Errorf("scale = %v, want (3,3,3)", n.Scale)
	}
}

func TestApplyQuaternion(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)
	n.RotateX(0.4)
	q := math3d.QuatFromAxisAngle(mgl64.Vec3{0, 0, 1}, 0.6)

	want := q.Mul(n.Quaternion())
	n.ApplyQuaternion(q)

	if !mat4AlmostEqual(n.Quaternion().Mat4(), want.Mat4(), 1e-12) {
		t.Errorf("ApplyQuaternion should premultiply")
	}
}

// =============================================================================
// Hierarchy Update Tests
// =============================================================================

func TestUpdateMatrixWorld_ParentTimesLocal(t *testing.T) {
	root, mid, leaf := buildChain(ident.NewAllocator())
	root.UpdateMatrixWorld(true)

	root.Traverse(func(n *Node) {
		want := n.Matrix
		if n.Parent() != nil {
			want = n.Parent().MatrixWorld.Mul4(n.Matrix)
		}
		if !mat4AlmostEqual(n.MatrixWorld, want, 1e-12) {
			t.Errorf("node %d: world != parent world * local", n.ID)
		}
		if n.MatrixWorldNeedsUpdate {
			t.Errorf("node %d still dirty", n.ID)
		}
	})

	want := math3d.Compose(root.Position, root.Quaternion(), root.Scale).
		Mul4(math3d.Compose(mid.Position, mid.Quaternion(), mid.Scale)).
		Mul4(math3d.Compose(leaf.Position, leaf.Quaternion(), leaf.Scale))
	if !mat4AlmostEqual(leaf.MatrixWorld, want, 1e-9) {
		t.Errorf("leaf world matrix does not match the composed chain")
	}
}

func TestUpdateMatrixWorld_ManualMatrix(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)
	n.MatrixAutoUpdate = false
	n.Position = mgl64.Vec3{5, 5, 5}

	n.UpdateMatrixWorld(false)
	if n.MatrixWorld != mgl64.Ident4() {
		t.Errorf("clean manual node should keep its world matrix")
	}

	n.UpdateMatrix()
	n.UpdateMatrixWorld(false)
	if math3d.Position(n.MatrixWorld) != (mgl64.Vec3{5, 5, 5}) {
		t.Errorf("world position = %v, want (5,5,5)", math3d.Position(n.MatrixWorld))
	}
}

func TestUpdateMatrixWorld_DirtyParentForcesChildren(t *testing.T) {
	ids := ident.NewAllocator()
	parent := New(ids, KindObject)
	child := New(ids, KindObject)
	child.MatrixAutoUpdate = false
	child.Position = mgl64.Vec3{1, 0, 0}
	child.UpdateMatrix()
	_ = parent.Add(child)
	parent.UpdateMatrixWorld(false)

	parent.Position = mgl64.Vec3{0, 10, 0}
	parent.UpdateMatrixWorld(false)

	if !vec3AlmostEqual(math3d.Position(child.MatrixWorld), mgl64.Vec3{1, 10, 0}, 1e-12) {
		t.Errorf("child world position = %v, want (1,10,0)", math3d.Position(child.MatrixWorld))
	}
}

func TestUpdateWorldMatrix_Parents(t *testing.T) {
	root, _, leaf := buildChain(ident.NewAllocator())
	leaf.UpdateWorldMatrix(true, false)

	ref, _, refLeaf := buildChain(ident.NewAllocator())
	ref.UpdateMatrixWorld(true)

	if !mat4AlmostEqual(leaf.MatrixWorld, refLeaf.MatrixWorld, 1e-12) {
		t.Errorf("UpdateWorldMatrix(true, false) should refresh ancestors first")
	}
	if root.MatrixWorld != root.Matrix {
		t.Errorf("root world should equal its local matrix")
	}
}

func TestCameraKeepsWorldInverse(t *testing.T) {
	ids := ident.NewAllocator()
	rig := New(ids, KindGroup)
	rig.Position = mgl64.Vec3{0, 3, 0}
	camera := New(ids, KindCamera)
	camera.Position = mgl64.Vec3{0, 0, 10}
	_ = rig.Add(camera)

	rig.UpdateMatrixWorld(false)
	if !mat4AlmostEqual(camera.MatrixWorld.Mul4(camera.MatrixWorldInverse), mgl64.Ident4(), 1e-12) {
		t.Errorf("MatrixWorldInverse is not the inverse after UpdateMatrixWorld")
	}

	camera.Position = mgl64.Vec3{4, 0, 0}
	camera.UpdateWorldMatrix(true, false)
	if !mat4AlmostEqual(camera.MatrixWorld.Mul4(camera.MatrixWorldInverse), mgl64.Ident4(), 1e-12) {
		t.Errorf("MatrixWorldInverse is not the inverse after UpdateWorldMatrix")
	}
}

// =============================================================================
// LookAt & World Query Tests
// =============================================================================

func TestLookAt(t *testing.T) {
	t.Run("object faces target with +Z", func(t *testing.T) {
		n := New(ident.NewAllocator(), KindMesh)
		n.Position = mgl64.Vec3{1, 1, 1}
		n.LookAt(mgl64.Vec3{1, 1, 10})

		if d := n.WorldDirection(); !vec3AlmostEqual(d, mgl64.Vec3{0, 0, 1}, 1e-9) {
			t.Errorf("direction = %v, want (0,0,1)", d)
		}
	})

	t.Run("camera faces target with -Z", func(t *testing.T) {
		n := New(ident.NewAllocator(), KindCamera)
		n.LookAt(mgl64.Vec3{5, 0, 0})

		if d := n.WorldDirection(); !vec3AlmostEqual(d, mgl64.Vec3{1, 0, 0}, 1e-9) {
			t.Errorf("direction = %v, want (1,0,0)", d)
		}
	})

	t.Run("light points -Z at target", func(t *testing.T) {
		n := New(ident.NewAllocator(), KindLight)
		n.LookAt(mgl64.Vec3{0, -5, 0.001})
		n.UpdateMatrixWorld(true)

		minusZ := math3d.TransformDirection(mgl64.Vec3{0, 0, -1}, n.MatrixWorld)
		if !vec3AlmostEqual(minusZ, math3d.Normalize(mgl64.Vec3{0, -5, 0.001}), 1e-9) {
			t.Errorf("-Z = %v, want straight down", minusZ)
		}
	})

	t.Run("rotated parent is compensated", func(t *testing.T) {
		ids := ident.NewAllocator()
		parent := New(ids, KindGroup)
		parent.RotateY(0.7)
		parent.Position = mgl64.Vec3{0, 0, -3}
		camera := New(ids, KindCamera)
		_ = parent.Add(camera)

		camera.LookAt(mgl64.Vec3{0, 0, 10})
		if d := camera.WorldDirection(); !vec3AlmostEqual(d, mgl64.Vec3{0, 0, 1}, 1e-9) {
			t.Errorf("direction = %v, want (0,0,1)", d)
		}
	})
}

func TestWorldQueries(t *testing.T) {
	ids := ident.NewAllocator()
	parent := New(ids, KindGroup)
	parent.Position = mgl64.Vec3{10, 0, 0}
	parent.Scale = mgl64.Vec3{2, 2, 2}
	parent.RotateZ(math.Pi / 2)
	child := New(ids, KindObject)
	child.Position = mgl64.Vec3{1, 0, 0}
	_ = parent.Add(child)

	if p := child.WorldPosition(); !vec3AlmostEqual(p, mgl64.Vec3{10, 2, 0}, 1e-12) {
		t.Errorf("WorldPosition = %v, want (10,2,0)", p)
	}
	if s := child.WorldScale(); !vec3AlmostEqual(s, mgl64.Vec3{2, 2, 2}, 1e-12) {
		t.Errorf("WorldScale = %v, want (2,2,2)", s)
	}
	q := child.WorldQuaternion()
	if r := q.Rotate(mgl64.Vec3{1, 0, 0}); !vec3AlmostEqual(r, mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("WorldQuaternion rotates x to %v, want (0,1,0)", r)
	}

	world := child.LocalToWorld(mgl64.Vec3{0, 1, 0})
	if !vec3AlmostEqual(world, mgl64.Vec3{8, 2, 0}, 1e-12) {
		t.Errorf("LocalToWorld = %v, want (8,2,0)", world)
	}
	if back := child.WorldToLocal(world); !vec3AlmostEqual(back, mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("WorldToLocal = %v, want (0,1,0)", back)
	}
}

// =============================================================================
// Hierarchy Edit Tests
// =============================================================================

func TestAdd_SelfParentFails(t *testing.T) {
	ids := ident.NewAllocator()
	n := New(ids, KindObject)
	other := New(ids, KindObject)

	err := n.Add(other, n)
	if !errors.Is(err, ErrSelfParent) {
		t.Fatalf("err = %v, want ErrSelfParent", err)
	}
	if n.ChildCount() != 0 || other.Parent() != nil {
		t.Errorf("failed Add must not change the hierarchy")
	}
}

func TestAdd_CycleFails(t *testing.T) {
	root, _, leaf := buildChain(ident.NewAllocator())

	if err := leaf.Add(root); !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
	if err := leaf.Add(nil); !errors.Is(err, ErrNilChild) {
		t.Fatalf("err = %v, want ErrNilChild", err)
	}
}

func TestAdd_Reparents(t *testing.T) {
	ids := ident.NewAllocator()
	a := New(ids, KindGroup)
	b := New(ids, KindGroup)
	child := New(ids, KindObject)

	var got []event.EventType
	child.Subscribe(event.ADDED, func(e event.Event) { got = append(got, e.Type()) })
	child.Subscribe(event.REMOVED, func(e event.Event) { got = append(got, e.Type()) })
	var childAdded int
	b.Subscribe(event.CHILD_ADDED, func(event.Event) { childAdded++ })

	_ = a.Add(child)
	_ = b.Add(child)

	if child.Parent() != b || a.ChildCount() != 0 || b.ChildCount() != 1 {
		t.Fatalf("child should have moved from a to b")
	}
	want := []event.EventType{event.ADDED, event.REMOVED, event.ADDED}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if childAdded != 1 {
		t.Errorf("CHILD_ADDED dispatched %d times, want 1", childAdded)
	}
}

func TestRemoveAndClear(t *testing.T) {
	ids := ident.NewAllocator()
	parent := New(ids, KindGroup)
	a, b, c := New(ids, KindObject), New(ids, KindObject), New(ids, KindObject)
	_ = parent.Add(a, b, c)

	stranger := New(ids, KindObject)
	parent.Remove(stranger, b)
	if parent.ChildCount() != 2 || b.Parent() != nil {
		t.Fatalf("b should be removed and stranger ignored")
	}
	if children := parent.Children(); children[0] != a || children[1] != c {
		t.Errorf("remaining order = %v, want [a c]", children)
	}

	removed := 0
	a.Subscribe(event.REMOVED, func(event.Event) { removed++ })
	c.Subscribe(event.REMOVED, func(event.Event) { removed++ })

	a.RemoveFromParent()
	parent.Clear()
	if parent.ChildCount() != 0 || c.Parent() != nil || removed != 2 {
		t.Errorf("Clear left %d children, removed events %d", parent.ChildCount(), removed)
	}
}

func TestAttach_PreservesWorldPosition(t *testing.T) {
	ids := ident.NewAllocator()
	a := New(ids, KindGroup)
	a.Position = mgl64.Vec3{1, 0, 0}
	b := New(ids, KindObject)
	b.Position = mgl64.Vec3{5, 0, 0}

	if err := a.Attach(b); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if b.Parent() != a {
		t.Fatalf("b should be a child of a")
	}
	if !vec3AlmostEqual(b.Position, mgl64.Vec3{4, 0, 0}, 1e-12) {
		t.Errorf("local position = %v, want (4,0,0)", b.Position)
	}
	if p := math3d.Position(b.MatrixWorld); !vec3AlmostEqual(p, mgl64.Vec3{5, 0, 0}, 1e-12) {
		t.Errorf("world position = %v, want (5,0,0)", p)
	}
}

func TestAttach_PreservesWorldMatrixAcrossParents(t *testing.T) {
	ids := ident.NewAllocator()
	_, mid, leaf := buildChain(ids)
	mid.Scale = mgl64.Vec3{1.5, 1.5, 1.5}
	leaf.UpdateWorldMatrix(true, false)
	before := leaf.MatrixWorld

	other := New(ids, KindGroup)
	other.Position = mgl64.Vec3{-2, 8, 1}
	other.RotateX(1.2)
	other.Scale = mgl64.Vec3{0.5, 0.5, 0.5}

	if err := other.Attach(leaf); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if leaf.Parent() != other || mid.ChildCount() != 0 {
		t.Fatalf("leaf should have moved under other")
	}
	if !mat4AlmostEqual(leaf.MatrixWorld, before, 1e-9) {
		t.Errorf("world matrix changed:\n got %v\nwant %v", leaf.MatrixWorld, before)
	}
}

func TestAttach_SelfFails(t *testing.T) {
	n := New(ident.NewAllocator(), KindObject)
	if err := n.Attach(n); !errors.Is(err, ErrSelfParent) {
		t.Errorf("err = %v, want ErrSelfParent", err)
	}
}

// =============================================================================
// Traversal & Lookup Tests
// =============================================================================

func TestTraverse(t *testing.T) {
	ids := ident.NewAllocator()
	root := New(ids, KindScene)
	a, b := New(ids, KindGroup), New(ids, KindObject)
	a1 := New(ids, KindMesh)
	_ = root.Add(a, b)
	_ = a.Add(a1)

	var order []uint64
	root.Traverse(func(n *Node) { order = append(order, n.ID) })
	want := []uint64{root.ID, a.ID, a1.ID, b.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("traverse order = %v, want %v", order, want)
		}
	}

	a.Visible = false
	var visible int
	root.TraverseVisible(func(*Node) { visible++ })
	if visible != 2 {
		t.Errorf("visible nodes = %d, want 2", visible)
	}

	var ancestors []*Node
	a1.TraverseAncestors(func(n *Node) { ancestors = append(ancestors, n) })
	if len(ancestors) != 2 || ancestors[0] != a || ancestors[1] != root {
		t.Errorf("ancestors = %v, want [a root]", ancestors)
	}
	if a1.Root() != root || !root.IsAncestorOf(a1) || a1.IsAncestorOf(root) {
		t.Errorf("ancestry queries are inconsistent")
	}
}

func TestObjectLookups(t *testing.T) {
	root, mid, leaf := buildChain(ident.NewAllocator())
	mid.Name = "arm"
	leaf.Name = "hand"

	if root.ObjectByID(leaf.ID) != leaf {
		t.Errorf("ObjectByID failed")
	}
	if root.ObjectByName("arm") != mid {
		t.Errorf("ObjectByName failed")
	}
	if root.ObjectByUUID(leaf.UUID) != leaf {
		t.Errorf("ObjectByUUID failed")
	}
	if root.ObjectByName("missing") != nil {
		t.Errorf("missing name should return nil")
	}
	if got := root.FindAll(func(n *Node) bool { return n.Kind != KindMesh }); len(got) != 2 {
		t.Errorf("FindAll returned %d nodes, want 2", len(got))
	}
}

func TestClone(t *testing.T) {
	root, mid, _ := buildChain(ident.NewAllocator())
	root.Name = "root"
	root.UserData["tag"] = "x"

	clone := root.Clone(true)
	if clone.ID == root.ID || clone.UUID == root.UUID {
		t.Errorf("clone must get a fresh identity")
	}
	if clone.Name != "root" || clone.Position != root.Position || clone.Quaternion() != root.Quaternion() {
		t.Errorf("clone state differs from source")
	}
	if clone.ChildCount() != 1 || clone.Children()[0] == mid || clone.Children()[0].ChildCount() != 1 {
		t.Fatalf("recursive clone should duplicate the subtree")
	}

	clone.UserData["tag"] = "y"
	if root.UserData["tag"] != "x" {
		t.Errorf("clone UserData should not alias the source map")
	}

	if shallow := root.Clone(false); shallow.ChildCount() != 0 {
		t.Errorf("non-recursive clone should have no children")
	}
}
