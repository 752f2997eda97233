package interval

// Tree is an interval tree: a red-black tree ordered by interval low bound
// (high bound as tie-break), where each node carries the maximum high bound
// of its subtree.
//
// A Tree is built once and queried many times. Concurrent readers are fine
// as long as no Insert runs at the same time; Insert rotates shared node
// links and needs external synchronization if used concurrently.
type Tree struct {
	root *node
	size int
}

// NewIntervalTree returns an empty tree.
func NewIntervalTree() *Tree {
	return &Tree{}
}

// Len returns the number of stored intervals.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds the closed range [low, high] to the tree. Reversed bounds are
// swapped. Duplicate ranges are stored as separate nodes; containment
// behavior is unaffected. Insert never fails.
func (t *Tree) Insert(low, high uint32) {
	n := &node{
		key:   NewInterval(low, high),
		color: red,
	}
	n.max = n.key.high

	t.bstInsert(n)
	t.insertFixup(n)
	t.size++
}

// ContainsPoint reports whether any stored interval contains key.
//
// The walk prunes via the max augmentation: a left subtree whose max is
// below key cannot contain it, and since lows only grow to the right, a
// right subtree is skipped whenever key is below the node's own low.
func (t *Tree) ContainsPoint(key uint32) bool {
	n := t.root
	for n != nil {
		if n.key.contains(key) {
			return true
		}
		if n.left != nil && n.left.max >= key {
			n = n.left
			continue
		}
		if key < n.key.low {
			return false
		}
		n = n.right
	}
	return false
}

// Height returns the height of the tree in edges (-1 when empty). Exposed
// for balance diagnostics; a red-black tree stays within 2*log2(n+1).
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *node) int {
	if n == nil {
		return -1
	}
	l, r := height(n.left), height(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// bstInsert performs a standard BST insertion ordered by (low, high),
// raising the max augmentation on every node along the descent.
func (t *Tree) bstInsert(n *node) {
	if t.root == nil {
		t.root = n
		return
	}

	cur := t.root
	for {
		if n.key.high > cur.max {
			cur.max = n.key.high
		}

		if n.key.less(cur.key) {
			if cur.left == nil {
				cur.left = n
				n.parent = cur
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				n.parent = cur
				return
			}
			cur = cur.right
		}
	}
}

// insertFixup restores the red-black properties after bstInsert.
func (t *Tree) insertFixup(n *node) {
	for n != t.root && !n.parent.isBlack() {
		parent := n.parent
		gp := parent.parent
		if gp == nil {
			break
		}

		if parent == gp.left {
			uncle := gp.right
			if !uncle.isBlack() {
				parent.color = black
				uncle.color = black
				gp.color = red
				n = gp
				continue
			}
			if n == parent.right {
				n = parent
				t.rotateLeft(n)
				parent = n.parent
			}
			parent.color = black
			gp.color = red
			t.rotateRight(gp)
		} else {
			uncle := gp.left
			if !uncle.isBlack() {
				parent.color = black
				uncle.color = black
				gp.color = red
				n = gp
				continue
			}
			if n == parent.left {
				n = parent
				t.rotateRight(n)
				parent = n.parent
			}
			parent.color = black
			gp.color = red
			t.rotateLeft(gp)
		}
	}

	t.root.color = black
}

func (t *Tree) rotateLeft(n *node) {
	pivot := n.right
	n.right = pivot.left
	if pivot.left != nil {
		pivot.left.parent = n
	}
	pivot.left = n

	t.replaceChild(n, pivot)

	// The demoted node first, then the pivot above it.
	n.recalcMax()
	pivot.recalcMax()
}

func (t *Tree) rotateRight(n *node) {
	pivot := n.left
	n.left = pivot.right
	if pivot.right != nil {
		pivot.right.parent = n
	}
	pivot.right = n

	t.replaceChild(n, pivot)

	n.recalcMax()
	pivot.recalcMax()
}

// replaceChild hangs pivot where n was and makes n a child of pivot.
func (t *Tree) replaceChild(n, pivot *node) {
	pivot.parent = n.parent
	switch {
	case n.parent == nil:
		t.root = pivot
	case n == n.parent.left:
		n.parent.left = pivot
	default:
		n.parent.right = pivot
	}
	n.parent = pivot
}
