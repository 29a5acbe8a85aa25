package btree

import "log/slog"

// Delete removes key and reports whether it was present. Deleting an absent
// key leaves the tree untouched.
func (t *Tree) Delete(key int) bool {
	// Rebalancing on the way down would reshape the tree even for a miss.
	if !t.Search(key) {
		return false
	}

	t.mustHold(t.deleteKey(t.root, key), "key %d found by search but not removed", key)
	t.count--

	return true
}

// deleteKey removes key from the subtree rooted at id. Every node it is
// called on is either the root or holds at least t keys, so a key can always
// be taken out of a leaf without underflow.
func (t *Tree) deleteKey(id nodeID, key int) bool {
	for {
		n := t.node(id)
		i, found := n.search(key)

		if n.isLeaf() {
			if !found {
				return false
			}

			t.mustHold(id == t.root || len(n.keys) > t.minKeys(), "removing %d from a leaf holding %d keys", key, len(n.keys))
			n.removeKeyAt(i)
			return true
		}

		var next nodeID
		if found {
			next, key = t.deleteFromInternal(id, i)
		} else {
			next = t.fillChild(id, i)
		}

		t.mustHold(next == t.root || len(t.node(next).keys) >= t.order, "descending into a node holding %d keys", len(t.node(next).keys))
		id = next
	}
}

// deleteFromInternal handles keys[i] of an internal node. It returns the
// child to continue in and the key that must be removed from it.
func (t *Tree) deleteFromInternal(id nodeID, i int) (nodeID, int) {
	n := t.node(id)
	left, right := n.children[i], n.children[i+1]

	switch {
	case len(t.node(left).keys) > t.minKeys():
		pred := t.maxKey(left)
		n.keys[i] = pred
		return left, pred
	case len(t.node(right).keys) > t.minKeys():
		succ := t.minKey(right)
		n.keys[i] = succ
		return right, succ
	default:
		key := n.keys[i]
		return t.mergeChildren(id, i), key
	}
}

// fillChild makes sure children[i] holds at least t keys before the descent
// continues into it, borrowing from a sibling or merging with one. It returns
// the node that now covers the range of children[i].
func (t *Tree) fillChild(id nodeID, i int) nodeID {
	n := t.node(id)
	if len(t.node(n.children[i]).keys) > t.minKeys() {
		return n.children[i]
	}

	hasLeft, hasRight := i > 0, i < len(n.keys)
	switch {
	case hasLeft && len(t.node(n.children[i-1]).keys) > t.minKeys():
		t.borrowFromLeft(id, i)
		return n.children[i]
	case hasRight && len(t.node(n.children[i+1]).keys) > t.minKeys():
		t.borrowFromRight(id, i)
		return n.children[i]
	case hasLeft:
		return t.mergeChildren(id, i-1)
	default:
		return t.mergeChildren(id, i)
	}
}

// borrowFromLeft rotates the left sibling's largest key up through the
// separator and the separator down into the front of children[i].
func (t *Tree) borrowFromLeft(id nodeID, i int) {
	parent := t.node(id)
	child := t.node(parent.children[i])
	sibling := t.node(parent.children[i-1])

	child.insertKeyAt(0, parent.keys[i-1])
	parent.keys[i-1] = sibling.removeKeyAt(len(sibling.keys) - 1)
	if !sibling.isLeaf() {
		child.insertChildAt(0, sibling.removeChildAt(len(sibling.children)-1))
	}
}

// borrowFromRight is the mirror of borrowFromLeft.
func (t *Tree) borrowFromRight(id nodeID, i int) {
	parent := t.node(id)
	child := t.node(parent.children[i])
	sibling := t.node(parent.children[i+1])

	child.keys = append(child.keys, parent.keys[i])
	parent.keys[i] = sibling.removeKeyAt(0)
	if !sibling.isLeaf() {
		child.children = append(child.children, sibling.removeChildAt(0))
	}
}

// mergeChildren folds keys[i] and children[i+1] into children[i], releases
// the right node and returns the merged one. When that empties the root the
// merged node becomes the new root.
func (t *Tree) mergeChildren(id nodeID, i int) nodeID {
	parent := t.node(id)
	leftID, rightID := parent.children[i], parent.children[i+1]
	left, right := t.node(leftID), t.node(rightID)
	t.mustHold(len(left.keys)+len(right.keys) < t.maxKeys(), "merge of nodes holding %d and %d keys", len(left.keys), len(right.keys))

	left.keys = append(left.keys, parent.removeKeyAt(i))
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)
	parent.removeChildAt(i + 1)
	t.nodes.release(rightID)

	if id == t.root && len(parent.keys) == 0 {
		t.nodes.release(id)
		t.root = leftID
		t.height--
		t.logger.Debug("root collapsed", slog.Int("height", t.height))
	}

	return leftID
}
