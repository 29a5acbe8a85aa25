package btree

import "log/slog"

// Insert adds key to the tree. It reports false without modifying anything
// when the key is already present. A non-nil error means a node could not be
// allocated; the tree is still valid and does not contain key.
func (t *Tree) Insert(key int) (bool, error) {
	if t.Search(key) {
		return false, nil
	}

	if len(t.node(t.root).keys) == t.maxKeys() {
		if err := t.growRoot(); err != nil {
			return false, err
		}
	}

	if err := t.insertNonFull(t.root, key); err != nil {
		return false, err
	}
	t.count++

	return true, nil
}

// growRoot puts a new root above the full one and splits the old root under
// it. This is the only way the tree gains a level.
func (t *Tree) growRoot() error {
	newRoot, err := t.nodes.allocate()
	if err != nil {
		t.logger.Debug("root split failed", slog.Any("err", err))
		return err
	}

	oldRoot := t.root
	t.node(newRoot).children = append(t.node(newRoot).children, oldRoot)
	if err := t.splitChild(newRoot, 0); err != nil {
		t.nodes.release(newRoot)
		t.logger.Debug("root split failed", slog.Any("err", err))
		return err
	}
	t.root = newRoot
	t.height++
	t.logger.Debug("root split", slog.Int("height", t.height), slog.Int("separator", t.node(newRoot).keys[0]))

	return nil
}

// splitChild splits the full child at position into two nodes of t-1 keys
// and moves the child's median key up into parent at position.
func (t *Tree) splitChild(parentID nodeID, position int) error {
	sibling, err := t.nodes.allocate()
	if err != nil {
		return err
	}

	parent := t.node(parentID)
	child := t.node(parent.children[position])
	t.mustHold(len(child.keys) == t.maxKeys(), "split of child %d holding %d keys, want %d", position, len(child.keys), t.maxKeys())
	t.mustHold(len(parent.keys) < t.maxKeys(), "split into a full parent")

	right := t.node(sibling)
	median := child.keys[t.order-1]
	right.keys = append(right.keys, child.keys[t.order:]...)
	child.keys = child.keys[:t.order-1]
	if !child.isLeaf() {
		right.children = append(right.children, child.children[t.order:]...)
		child.children = child.children[:t.order]
	}

	parent.insertKeyAt(position, median)
	parent.insertChildAt(position+1, sibling)

	return nil
}

func (t *Tree) insertNonFull(id nodeID, key int) error {
	for {
		n := t.node(id)
		t.mustHold(len(n.keys) < t.maxKeys(), "insert descended into a full node")

		i, _ := n.search(key)
		if n.isLeaf() {
			n.insertKeyAt(i, key)
			return nil
		}

		if len(t.node(n.children[i]).keys) == t.maxKeys() {
			if err := t.splitChild(id, i); err != nil {
				t.logger.Debug("split failed", slog.Int("key", key), slog.Any("err", err))
				return err
			}

			// The promoted median now sits at i; go right of it if needed.
			if key > n.keys[i] {
				i++
			}
		}

		id = n.children[i]
	}
}
