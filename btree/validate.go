package btree

import "fmt"

// bound is one side of the open key range a subtree must lie in.
type bound struct {
	key int
	set bool
}

// Check walks the whole tree and returns an INVARIANT_ERROR describing the
// first violated structural rule, or nil.
func (t *Tree) Check() error {
	leafDepth := -1
	count, err := t.check(t.root, 0, bound{}, bound{}, &leafDepth)
	if err != nil {
		return err
	}

	if t.height != leafDepth+1 {
		return fmt.Errorf("%w: leaves at depth %d, tree reports height %d", INVARIANT_ERROR, leafDepth, t.height)
	}

	if count != t.count {
		return fmt.Errorf("%w: counted %d keys, tree reports %d", INVARIANT_ERROR, count, t.count)
	}

	if t.nodes.live != t.countNodes(t.root) {
		return fmt.Errorf("%w: %d live nodes allocated, %d reachable", INVARIANT_ERROR, t.nodes.live, t.countNodes(t.root))
	}

	return nil
}

// check validates the subtree at id whose keys must lie strictly between lo
// and hi. An unset bound leaves that side open.
func (t *Tree) check(id nodeID, depth int, lo, hi bound, leafDepth *int) (int, error) {
	n := t.node(id)

	if len(n.keys) > t.maxKeys() {
		return 0, fmt.Errorf("%w: node at depth %d holds %d keys, max %d", INVARIANT_ERROR, depth, len(n.keys), t.maxKeys())
	}

	if id != t.root && len(n.keys) < t.minKeys() {
		return 0, fmt.Errorf("%w: node at depth %d holds %d keys, min %d", INVARIANT_ERROR, depth, len(n.keys), t.minKeys())
	}

	if id == t.root && len(n.keys) == 0 && (!n.isLeaf() || t.count != 0) {
		return 0, fmt.Errorf("%w: empty root in a non-empty tree", INVARIANT_ERROR)
	}

	for i, key := range n.keys {
		if lo.set && key <= lo.key {
			return 0, fmt.Errorf("%w: key %d not above separator %d at depth %d", INVARIANT_ERROR, key, lo.key, depth)
		}

		if hi.set && key >= hi.key {
			return 0, fmt.Errorf("%w: key %d not below separator %d at depth %d", INVARIANT_ERROR, key, hi.key, depth)
		}

		if i > 0 && n.keys[i-1] >= key {
			return 0, fmt.Errorf("%w: keys %d and %d out of order at depth %d", INVARIANT_ERROR, n.keys[i-1], key, depth)
		}
	}

	if n.isLeaf() {
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return 0, fmt.Errorf("%w: leaves at depths %d and %d", INVARIANT_ERROR, *leafDepth, depth)
		}

		return len(n.keys), nil
	}

	if len(n.children) != len(n.keys)+1 {
		return 0, fmt.Errorf("%w: node at depth %d has %d keys and %d children", INVARIANT_ERROR, depth, len(n.keys), len(n.children))
	}

	count := len(n.keys)
	for i, child := range n.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = bound{key: n.keys[i-1], set: true}
		}
		if i < len(n.keys) {
			childHi = bound{key: n.keys[i], set: true}
		}

		c, err := t.check(child, depth+1, childLo, childHi, leafDepth)
		if err != nil {
			return 0, err
		}
		count += c
	}

	return count, nil
}

func (t *Tree) countNodes(id nodeID) int {
	total := 1
	for _, child := range t.node(id).children {
		total += t.countNodes(child)
	}

	return total
}
