package panel

import (
	"fmt"
	"iter"
	"strings"
)

// GroupID identifies a panel group (a leaf of the tree).
type GroupID string

// PanelID identifies a tab.
type PanelID string

// Direction is the axis along which a split divides its space.
type Direction int

const (
	// Horizontal stacks the children: first on top, second below.
	Horizontal Direction = iota
	// Vertical places the children side by side: first left, second right.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseDirection parses "horizontal" or "vertical".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidValue, s)
}

// Side selects one child of a split.
type Side int

const (
	// First is the left or top child.
	First Side = iota
	// Second is the right or bottom child.
	Second
)

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// Path addresses a node by the sequence of children taken from the root.
// The empty path is the root.
type Path []Side

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "/" + strings.Join(parts, "/")
}

func (p Path) child(s Side) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// NodeKind discriminates the Node union.
type NodeKind int

const (
	// LeafNode holds one group.
	LeafNode NodeKind = iota
	// SplitNode divides its space between two children.
	SplitNode
)

// Node is one element of the panel tree. A leaf wraps a single group; a
// split divides its space between First and Second at Ratio (the share of
// First). Nodes are treated as immutable once built: operations copy the
// nodes on the path they change and share everything else.
type Node struct {
	Kind NodeKind

	// Leaf
	GroupID GroupID

	// Split
	Direction Direction
	Ratio     float64
	First     *Node
	Second    *Node
}

// Leaf returns a leaf node for the group.
func Leaf(id GroupID) *Node {
	return &Node{Kind: LeafNode, GroupID: id}
}

// NewSplit returns a split node. It panics if either child is nil.
func NewSplit(dir Direction, ratio float64, first, second *Node) *Node {
	n := &Node{Kind: SplitNode, Direction: dir, Ratio: ratio, First: first, Second: second}
	mustWellFormed(n)
	return n
}

// IsGroup reports whether n is a leaf.
func IsGroup(n *Node) bool {
	return n != nil && n.Kind == LeafNode
}

// IsGroup reports whether n is a leaf.
func (n *Node) IsGroup() bool {
	return IsGroup(n)
}

// Child returns the child on the given side of a split.
func (n *Node) Child(s Side) *Node {
	if s == First {
		return n.First
	}
	return n.Second
}

// withChild returns a copy of split n with the child on side s replaced.
func (n *Node) withChild(s Side, c *Node) *Node {
	cp := *n
	if s == First {
		cp.First = c
	} else {
		cp.Second = c
	}
	return &cp
}

// mustWellFormed panics if n is not a valid node. Only n itself is checked,
// not its descendants.
func mustWellFormed(n *Node) {
	if n == nil {
		panic(fmt.Errorf("%w: nil node", ErrMalformedTree))
	}
	switch n.Kind {
	case LeafNode:
	case SplitNode:
		if n.First == nil || n.Second == nil {
			panic(fmt.Errorf("%w: split with missing child", ErrMalformedTree))
		}
	default:
		panic(fmt.Errorf("%w: unknown node kind %d", ErrMalformedTree, n.Kind))
	}
}

// CollectGroupsInOrder yields the group id of every leaf in an in-order
// walk (first subtree, then second). This is the canonical focus order and
// the reading order used for rendering. The sequence can be ranged over any
// number of times.
func CollectGroupsInOrder(tree *Node) iter.Seq[GroupID] {
	return func(yield func(GroupID) bool) {
		walkLeaves(tree, yield)
	}
}

func walkLeaves(n *Node, yield func(GroupID) bool) bool {
	mustWellFormed(n)
	if n.Kind == LeafNode {
		return yield(n.GroupID)
	}
	return walkLeaves(n.First, yield) && walkLeaves(n.Second, yield)
}

// GroupsInOrder collects CollectGroupsInOrder into a slice.
func GroupsInOrder(tree *Node) []GroupID {
	var out []GroupID
	for id := range CollectGroupsInOrder(tree) {
		out = append(out, id)
	}
	return out
}

// LeafCount returns the number of leaves in the tree.
func LeafCount(tree *Node) int {
	n := 0
	for range CollectGroupsInOrder(tree) {
		n++
	}
	return n
}

// ContainsGroup reports whether the tree has a leaf for id.
func ContainsGroup(tree *Node, id GroupID) bool {
	_, ok := FindGroup(tree, id)
	return ok
}

// FindGroup returns the path of the leaf holding id.
func FindGroup(tree *Node, id GroupID) (Path, bool) {
	return findGroup(tree, id, nil)
}

func findGroup(n *Node, id GroupID, path Path) (Path, bool) {
	mustWellFormed(n)
	if n.Kind == LeafNode {
		if n.GroupID == id {
			if path == nil {
				path = Path{}
			}
			return path, true
		}
		return nil, false
	}
	if p, ok := findGroup(n.First, id, path.child(First)); ok {
		return p, true
	}
	return findGroup(n.Second, id, path.child(Second))
}

// NodeAt returns the node addressed by path.
func NodeAt(tree *Node, path Path) (*Node, bool) {
	n := tree
	for _, s := range path {
		mustWellFormed(n)
		if n.Kind != SplitNode {
			return nil, false
		}
		n = n.Child(s)
	}
	mustWellFormed(n)
	return n, true
}

// replaceAt rebuilds the spine from the root to path, substituting the node
// at path with fn(node). Subtrees off the path are shared.
func replaceAt(n *Node, path Path, fn func(*Node) *Node) *Node {
	if len(path) == 0 {
		return fn(n)
	}
	mustWellFormed(n)
	if n.Kind != SplitNode {
		panic(fmt.Errorf("%w: path %v descends into a leaf", ErrMalformedTree, path))
	}
	return n.withChild(path[0], replaceAt(n.Child(path[0]), path[1:], fn))
}

// firstLeaf returns the leftmost/topmost group of a subtree.
func firstLeaf(n *Node) GroupID {
	for {
		mustWellFormed(n)
		if n.Kind == LeafNode {
			return n.GroupID
		}
		n = n.First
	}
}

// Equal reports whether two trees have the same shape, ids, directions and
// ratios.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil || n.Kind != o.Kind {
		return false
	}
	if n.Kind == LeafNode {
		return n.GroupID == o.GroupID
	}
	return n.Direction == o.Direction &&
		n.Ratio == o.Ratio &&
		n.First.Equal(o.First) &&
		n.Second.Equal(o.Second)
}

// String renders the tree compactly, e.g. "v(0.50, g1, h(0.30, g2, g3))".
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	if n.Kind == LeafNode {
		b.WriteString(string(n.GroupID))
		return
	}
	fmt.Fprintf(b, "%c(%.2f, ", n.Direction.String()[0], n.Ratio)
	writeNode(b, n.First)
	b.WriteString(", ")
	writeNode(b, n.Second)
	b.WriteString(")")
}
