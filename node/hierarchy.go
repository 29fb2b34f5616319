package node

import (
	"slices"

	"github.com/akmonengine/scene3d/event"
	"github.com/pkg/errors"
)

var (
	ErrSelfParent = errors.New("node can't be added as a child of itself")
	ErrCycle      = errors.New("node can't be added as a child of one of its descendants")
	ErrNilChild   = errors.New("nil child")
)

// checkChildren validates a batch before any of it is applied.
func (n *Node) checkChildren(children []*Node) error {
	for _, child := range children {
		switch {
		case child == nil:
			return ErrNilChild
		case child == n:
			return errors.Wrapf(ErrSelfParent, "node %d", n.ID)
		case child.IsAncestorOf(n):
			return errors.Wrapf(ErrCycle, "node %d under node %d", child.ID, n.ID)
		}
	}
	return nil
}

// Add appends children to n, detaching each one from its previous parent.
// The whole call fails without changes if any child is n itself, an ancestor
// of n, or nil. Local transforms are kept, so world poses may change.
func (n *Node) Add(children ...*Node) error {
	if err := n.checkChildren(children); err != nil {
		return err
	}

	for _, child := range children {
		child.RemoveFromParent()
		child.parent = n
		n.children = append(n.children, child)

		child.events.Dispatch(event.AddedEvent{Target: child})
		n.events.Dispatch(event.ChildAddedEvent{Target: n, Child: child})
	}

	return nil
}

// Remove detaches the given direct children from n. Nodes that are not
// children of n are ignored.
func (n *Node) Remove(children ...*Node) {
	for _, child := range children {
		i := slices.Index(n.children, child)
		if i < 0 {
			continue
		}

		child.parent = nil
		n.children = slices.Delete(n.children, i, i+1)

		child.events.Dispatch(event.RemovedEvent{Target: child})
		n.events.Dispatch(event.ChildRemovedEvent{Target: n, Child: child})
	}
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Clear detaches every child of n.
func (n *Node) Clear() {
	n.Remove(n.Children()...)
}

// Attach reparents child under n while preserving its world transform.
func (n *Node) Attach(child *Node) error {
	if err := n.checkChildren([]*Node{child}); err != nil {
		return err
	}

	n.UpdateWorldMatrix(true, false)
	m := n.MatrixWorld.Inv()

	if child.parent != nil {
		child.parent.UpdateWorldMatrix(true, false)
		m = m.Mul4(child.parent.MatrixWorld)
	}

	child.ApplyMatrix4(m)
	if err := n.Add(child); err != nil {
		return err
	}
	child.UpdateWorldMatrix(false, true)

	return nil
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n, or n itself.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Traverse calls fn on n and every descendant, depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// TraverseVisible is Traverse skipping invisible nodes and their subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, child := range n.children {
		child.TraverseVisible(fn)
	}
}

// TraverseAncestors calls fn on every ancestor of n, nearest first.
func (n *Node) TraverseAncestors(fn func(*Node)) {
	for p := n.parent; p != nil; p = p.parent {
		fn(p)
	}
}

// Find returns the first node of the subtree, n included, matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node of the subtree, n included, matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var found []*Node
	n.Traverse(func(node *Node) {
		if pred(node) {
			found = append(found, node)
		}
	})
	return found
}

func (n *Node) ObjectByID(id uint64) *Node {
	return n.Find(func(node *Node) bool { return node.ID == id })
}

func (n *Node) ObjectByName(name string) *Node {
	return n.Find(func(node *Node) bool { return node.Name == name })
}

func (n *Node) ObjectByUUID(uuid string) *Node {
	return n.Find(func(node *Node) bool { return node.UUID == uuid })
}
