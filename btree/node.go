package btree

import (
	"fmt"
	"slices"
)

// nodeID is a stable handle into the tree's node arena.
type nodeID int32

const nilNode nodeID = -1

type node struct {
	keys     []int
	children []nodeID
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

// search returns the index of the first key that is >= key and whether
// that key is equal to key. The index doubles as the child to descend into.
func (n *node) search(key int) (int, bool) {
	return slices.BinarySearch(n.keys, key)
}

func (n *node) insertKeyAt(pos int, key int) {
	n.keys = append(n.keys, 0)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = key
}

func (n *node) removeKeyAt(pos int) int {
	key := n.keys[pos]
	copy(n.keys[pos:], n.keys[pos+1:])
	n.keys = n.keys[:len(n.keys)-1]

	return key
}

func (n *node) insertChildAt(pos int, child nodeID) {
	n.children = append(n.children, nilNode)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}

func (n *node) removeChildAt(pos int) nodeID {
	child := n.children[pos]
	copy(n.children[pos:], n.children[pos+1:])
	n.children[len(n.children)-1] = nilNode
	n.children = n.children[:len(n.children)-1]

	return child
}

// arena owns every node of a tree. Released slots go on a free list and are
// handed out again by allocate, so handles of live nodes never move.
type arena struct {
	nodes    []*node
	free     []nodeID
	live     int
	maxNodes int
	maxKeys  int
}

func newArena(order, maxNodes int) *arena {
	return &arena{
		maxNodes: maxNodes,
		maxKeys:  2*order - 1,
	}
}

// allocate returns an empty leaf with room for 2t-1 keys and 2t children.
func (a *arena) allocate() (nodeID, error) {
	if a.maxNodes > 0 && a.live >= a.maxNodes {
		return nilNode, fmt.Errorf("%w: node budget of %d exhausted", ALLOCATION_ERROR, a.maxNodes)
	}

	a.live++
	if len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		return id, nil
	}

	a.nodes = append(a.nodes, &node{
		keys:     make([]int, 0, a.maxKeys),
		children: make([]nodeID, 0, a.maxKeys+1),
	})

	return nodeID(len(a.nodes) - 1), nil
}

func (a *arena) release(id nodeID) {
	n := a.nodes[id]
	n.keys = n.keys[:0]
	n.children = n.children[:0]
	a.free = append(a.free, id)
	a.live--
}

func (a *arena) get(id nodeID) *node {
	return a.nodes[id]
}
