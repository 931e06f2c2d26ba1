package panel

// Rect is a cell rectangle: [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// SplitRect divides r for a split. The first child gets floor(size*ratio)
// cells and the second the remainder, so the children always tile r.
func SplitRect(r Rect, dir Direction, ratio float64) (Rect, Rect) {
	if dir == Vertical {
		w := int(float64(r.W) * ratio)
		return Rect{r.X, r.Y, w, r.H}, Rect{r.X + w, r.Y, r.W - w, r.H}
	}
	h := int(float64(r.H) * ratio)
	return Rect{r.X, r.Y, r.W, h}, Rect{r.X, r.Y + h, r.W, r.H - h}
}

// ComputeLayout assigns a rectangle inside bounds to every group of tree.
func ComputeLayout(tree *Node, bounds Rect) map[GroupID]Rect {
	out := make(map[GroupID]Rect)
	var walk func(*Node, Rect)
	walk = func(n *Node, r Rect) {
		mustWellFormed(n)
		if n.Kind == LeafNode {
			out[n.GroupID] = r
			return
		}
		a, b := SplitRect(r, n.Direction, n.Ratio)
		walk(n.First, a)
		walk(n.Second, b)
	}
	walk(tree, bounds)
	return out
}

// GroupAt returns the group whose rectangle contains (x, y).
func GroupAt(layout map[GroupID]Rect, x, y int) (GroupID, bool) {
	for id, r := range layout {
		if r.Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// Divider is the boundary between the two children of a split. Pos is the
// first column (Vertical) or row (Horizontal) of the second child; Bounds
// is the area of the whole split.
type Divider struct {
	Path      Path
	Direction Direction
	Pos       int
	Bounds    Rect
}

// Dividers lists the divider of every split, outermost first.
func Dividers(tree *Node, bounds Rect) []Divider {
	var out []Divider
	var walk func(*Node, Rect, Path)
	walk = func(n *Node, r Rect, path Path) {
		mustWellFormed(n)
		if n.Kind == LeafNode {
			return
		}
		a, b := SplitRect(r, n.Direction, n.Ratio)
		pos := b.Y
		if n.Direction == Vertical {
			pos = b.X
		}
		out = append(out, Divider{Path: path, Direction: n.Direction, Pos: pos, Bounds: r})
		walk(n.First, a, path.child(First))
		walk(n.Second, b, path.child(Second))
	}
	walk(tree, bounds, Path{})
	return out
}

// RatioAt converts a pointer position while dragging d into a split ratio
// (unclamped; SetSplitRatio clamps it).
func (d Divider) RatioAt(x, y int) float64 {
	if d.Direction == Vertical {
		if d.Bounds.W == 0 {
			return DefaultRatio
		}
		return float64(x-d.Bounds.X) / float64(d.Bounds.W)
	}
	if d.Bounds.H == 0 {
		return DefaultRatio
	}
	return float64(y-d.Bounds.Y) / float64(d.Bounds.H)
}

// EdgeFraction is the share of a group's width or height, measured from
// each edge, that resolves to a split drop.
const EdgeFraction = 0.25

// ResolveDropZone maps a drop at (x, y) onto the group under it. Points in
// an edge band resolve to the split on that side (the closest edge wins);
// the center appends the tab to the group.
func ResolveDropZone(layout map[GroupID]Rect, x, y int) (DropZone, bool) {
	id, ok := GroupAt(layout, x, y)
	if !ok {
		return DropZone{}, false
	}
	r := layout[id]
	fx := (float64(x-r.X) + 0.5) / float64(r.W)
	fy := (float64(y-r.Y) + 0.5) / float64(r.H)

	zone := DropZone{TargetGroupID: id, Position: AfterTab}
	best := EdgeFraction
	for _, c := range []struct {
		dist float64
		pos  DropPosition
	}{
		{fx, SplitLeft},
		{1 - fx, SplitRight},
		{fy, SplitTop},
		{1 - fy, SplitBottom},
	} {
		if c.dist < best {
			best = c.dist
			zone.Position = c.pos
		}
	}
	return zone, true
}
