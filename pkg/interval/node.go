// The red-black layout follows the interval tree in
// https://github.com/obitech/go-trees
package interval

type color bool

const (
	red   color = false
	black color = true
)

type node struct {
	key    Interval
	color  color
	left   *node
	right  *node
	parent *node
	max    uint32
}

// isBlack treats nil leaves as black.
func (n *node) isBlack() bool {
	return n == nil || n.color == black
}

// recalcMax recomputes the max augmentation from the node's own interval
// and its children.
func (n *node) recalcMax() {
	m := n.key.high
	if n.left != nil && n.left.max > m {
		m = n.left.max
	}
	if n.right != nil && n.right.max > m {
		m = n.right.max
	}
	n.max = m
}
