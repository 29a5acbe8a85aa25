// Package btree implements an in-memory B-tree of distinct integer keys
// with proactive splitting on insert and borrow/merge rebalancing on delete.
package btree

import (
	"fmt"
	"io"
	"log/slog"
)

// Tree is a B-tree of distinct integer keys with minimum degree t. Every node
// other than the root holds between t-1 and 2t-1 keys.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	order  int
	root   nodeID
	count  int
	height int
	nodes  *arena
	logger *slog.Logger
}

type Option func(*Tree)

// WithLogger sets the logger used for structural events. Defaults to a
// logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMaxNodes caps the number of live nodes. Inserts that would need more
// fail with ALLOCATION_ERROR. Zero means unlimited.
func WithMaxNodes(n int) Option {
	return func(t *Tree) {
		t.nodes.maxNodes = n
	}
}

// New creates an empty tree of the given order (minimum degree).
func New(order int, opts ...Option) (*Tree, error) {
	if order < 2 {
		return nil, fmt.Errorf("%w: got %d", INVALID_ORDER_ERROR, order)
	}

	t := &Tree{
		order:  order,
		nodes:  newArena(order, 0),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	root, err := t.nodes.allocate()
	if err != nil {
		return nil, err
	}
	t.root = root
	t.height = 1

	return t, nil
}

func (t *Tree) Order() int {
	return t.order
}

// Len returns the number of keys stored.
func (t *Tree) Len() int {
	return t.count
}

// Height returns the number of levels, 1 for a tree that is a single leaf.
func (t *Tree) Height() int {
	return t.height
}

func (t *Tree) Search(key int) bool {
	_, _, found := t.search(key, t.root)
	return found
}

// search descends from id and returns the node holding key and its index.
func (t *Tree) search(key int, id nodeID) (nodeID, int, bool) {
	for {
		n := t.node(id)
		i, found := n.search(key)
		if found {
			return id, i, true
		}

		if n.isLeaf() {
			return nilNode, 0, false
		}

		id = n.children[i]
	}
}

// Min returns the smallest key. ok is false when the tree is empty.
func (t *Tree) Min() (key int, ok bool) {
	if t.count == 0 {
		return 0, false
	}

	return t.minKey(t.root), true
}

// Max returns the largest key. ok is false when the tree is empty.
func (t *Tree) Max() (key int, ok bool) {
	if t.count == 0 {
		return 0, false
	}

	return t.maxKey(t.root), true
}

func (t *Tree) minKey(id nodeID) int {
	n := t.node(id)
	for !n.isLeaf() {
		n = t.node(n.children[0])
	}

	return n.keys[0]
}

func (t *Tree) maxKey(id nodeID) int {
	n := t.node(id)
	for !n.isLeaf() {
		n = t.node(n.children[len(n.children)-1])
	}

	return n.keys[len(n.keys)-1]
}

func (t *Tree) node(id nodeID) *node {
	return t.nodes.get(id)
}

func (t *Tree) maxKeys() int {
	return 2*t.order - 1
}

func (t *Tree) minKeys() int {
	return t.order - 1
}

// mustHold panics when an internal contract is broken. Public operations
// never trigger it on a tree built through them.
func (t *Tree) mustHold(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: "+format, append([]any{INVARIANT_ERROR}, args...)...))
	}
}
