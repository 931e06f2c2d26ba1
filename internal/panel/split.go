package panel

import (
	"fmt"
	"math"
)

const (
	// DefaultRatio is the ratio of a freshly created split.
	DefaultRatio = 0.5
	// MinRatio and MaxRatio bound SetSplitRatio so no pane collapses to zero.
	MinRatio = 0.1
	MaxRatio = 0.9
)

// Placement says on which side of the target a new leaf goes.
type Placement int

const (
	// Before puts the new leaf first (left or top).
	Before Placement = iota
	// After puts the new leaf second (right or bottom).
	After
)

func (p Placement) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// RatioBounds is a closed interval split ratios are clamped to.
type RatioBounds struct {
	Min, Max float64
}

// DefaultRatioBounds is [MinRatio, MaxRatio].
var DefaultRatioBounds = RatioBounds{Min: MinRatio, Max: MaxRatio}

// Clamp limits r to the bounds.
func (b RatioBounds) Clamp(r float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, r))
}

// SplitLeaf replaces the leaf for target with a split of ratio DefaultRatio
// holding the original leaf and a new leaf for newID; placement decides
// which side the new leaf takes. The input tree is returned with
// ErrGroupNotFound if target is absent, or ErrDuplicateGroup if newID is
// already a leaf.
func SplitLeaf(tree *Node, target GroupID, dir Direction, newID GroupID, placement Placement) (*Node, error) {
	path, ok := FindGroup(tree, target)
	if !ok {
		return tree, fmt.Errorf("split %s: %w", target, ErrGroupNotFound)
	}
	if ContainsGroup(tree, newID) {
		return tree, fmt.Errorf("split %s into %s: %w", target, newID, ErrDuplicateGroup)
	}
	return replaceAt(tree, path, func(leaf *Node) *Node {
		added := Leaf(newID)
		if placement == Before {
			return NewSplit(dir, DefaultRatio, added, leaf)
		}
		return NewSplit(dir, DefaultRatio, leaf, added)
	}), nil
}

// SetSplitRatio sets the ratio of the split at path, clamped to
// DefaultRatioBounds. Only the ancestors of that split are copied.
func SetSplitRatio(tree *Node, path Path, ratio float64) (*Node, error) {
	return SetSplitRatioWithin(tree, path, ratio, DefaultRatioBounds)
}

// SetSplitRatioWithin is SetSplitRatio with explicit bounds.
func SetSplitRatioWithin(tree *Node, path Path, ratio float64, bounds RatioBounds) (*Node, error) {
	if math.IsNaN(ratio) {
		return tree, ErrInvalidRatio
	}
	n, ok := NodeAt(tree, path)
	if !ok || n.Kind != SplitNode {
		return tree, fmt.Errorf("set ratio at %v: %w", path, ErrNoSplitAtPath)
	}
	ratio = bounds.Clamp(ratio)
	if n.Ratio == ratio {
		return tree, nil
	}
	return replaceAt(tree, path, func(split *Node) *Node {
		cp := *split
		cp.Ratio = ratio
		return &cp
	}), nil
}

// parentSplitPath returns the path of the nearest ancestor split of the node
// at path whose direction is dir.
func parentSplitPath(tree *Node, path Path, dir Direction) (Path, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		n, _ := NodeAt(tree, path[:i])
		if n.Direction == dir {
			return path[:i:i], true
		}
	}
	return nil, false
}
