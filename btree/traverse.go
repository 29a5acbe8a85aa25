package btree

import (
	"iter"
	"slices"
)

type TraversalOrder int

const (
	PreOrder TraversalOrder = iota
	PostOrder
)

func (o TraversalOrder) String() string {
	switch o {
	case PreOrder:
		return "pre-order"
	case PostOrder:
		return "post-order"
	default:
		return "unknown"
	}
}

// NodeView is a read-only snapshot of one node handed out by Nodes.
type NodeView struct {
	Keys  []int
	Depth int
	Leaf  bool
	// Index is the node's position among its parent's children, 0 for the root.
	Index int
}

// All yields every key in ascending order. Each range over the result walks
// the tree afresh; the tree must not be modified while ranging.
func (t *Tree) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		t.inOrder(t.root, yield)
	}
}

func (t *Tree) inOrder(id nodeID, yield func(int) bool) bool {
	n := t.node(id)
	for i, key := range n.keys {
		if !n.isLeaf() && !t.inOrder(n.children[i], yield) {
			return false
		}

		if !yield(key) {
			return false
		}
	}

	if !n.isLeaf() {
		return t.inOrder(n.children[len(n.children)-1], yield)
	}

	return true
}

// Nodes yields a view of every node in the given structural order.
func (t *Tree) Nodes(order TraversalOrder) iter.Seq[NodeView] {
	return func(yield func(NodeView) bool) {
		t.walk(t.root, 0, 0, order, yield)
	}
}

func (t *Tree) walk(id nodeID, depth, index int, order TraversalOrder, yield func(NodeView) bool) bool {
	n := t.node(id)
	view := NodeView{
		Keys:  slices.Clone(n.keys),
		Depth: depth,
		Leaf:  n.isLeaf(),
		Index: index,
	}

	if order == PreOrder && !yield(view) {
		return false
	}

	for i, child := range n.children {
		if !t.walk(child, depth+1, i, order, yield) {
			return false
		}
	}

	if order == PostOrder {
		return yield(view)
	}

	return true
}

// Keys returns all keys in ascending order.
func (t *Tree) Keys() []int {
	return slices.Collect(t.All())
}
