package panel

// SetFocusedGroup focuses id. No-op if id is not a leaf of the tree.
func SetFocusedGroup(s State, id GroupID) State {
	if id == s.FocusedGroupID || !ContainsGroup(s.Tree, id) {
		return s
	}
	s.FocusedGroupID = id
	return s
}

// FocusGroupIndex focuses the index-th group in focus order. Indexes outside
// [0, groups) are ignored.
func FocusGroupIndex(s State, index int) State {
	id, ok := RefreshGroupOrder(s.Tree).At(index)
	if !ok {
		return s
	}
	return SetFocusedGroup(s, id)
}

// NextGroup focuses the group after the focused one in focus order. Focus
// stays put on the last group: the order does not wrap. With nothing
// focused, the first group is focused.
func NextGroup(s State) State {
	return stepFocus(s, 1)
}

// PrevGroup focuses the group before the focused one, stopping at the first
// group. With nothing focused, the last group is focused.
func PrevGroup(s State) State {
	return stepFocus(s, -1)
}

func stepFocus(s State, delta int) State {
	order := RefreshGroupOrder(s.Tree)
	cur, ok := order.Index(s.FocusedGroupID)
	if !ok {
		if delta > 0 {
			return FocusGroupIndex(s, 0)
		}
		return FocusGroupIndex(s, order.Len()-1)
	}
	return FocusGroupIndex(s, cur+delta)
}

// NavDirection is a spatial direction for FocusNeighbor.
type NavDirection int

const (
	NavLeft NavDirection = iota
	NavRight
	NavUp
	NavDown
)

func (d NavDirection) String() string {
	switch d {
	case NavLeft:
		return "left"
	case NavRight:
		return "right"
	case NavUp:
		return "up"
	case NavDown:
		return "down"
	}
	return "unknown"
}

// axis is the split direction whose divider d crosses.
func (d NavDirection) axis() Direction {
	if d == NavLeft || d == NavRight {
		return Vertical
	}
	return Horizontal
}

// forward reports whether d moves from a First child to a Second child.
func (d NavDirection) forward() bool {
	return d == NavRight || d == NavDown
}

// FocusNeighbor focuses the group spatially adjacent to the focused one in
// direction d. It climbs to the nearest split along d's axis that has a
// sibling on that side, then descends into the sibling along the edge
// facing the focused group. No-op at the workspace border.
func FocusNeighbor(s State, d NavDirection) State {
	id, ok := Neighbor(s.Tree, s.FocusedGroupID, d)
	if !ok {
		return s
	}
	return SetFocusedGroup(s, id)
}

// Neighbor returns the group adjacent to id in direction d.
func Neighbor(tree *Node, id GroupID, d NavDirection) (GroupID, bool) {
	path, ok := FindGroup(tree, id)
	if !ok {
		return "", false
	}
	from, to := First, Second
	if !d.forward() {
		from, to = Second, First
	}
	for i := len(path) - 1; i >= 0; i-- {
		split, _ := NodeAt(tree, path[:i])
		if split.Direction != d.axis() || path[i] != from {
			continue
		}
		n := split.Child(to)
		for !n.IsGroup() {
			mustWellFormed(n)
			if n.Direction == d.axis() {
				n = n.Child(from)
			} else {
				n = n.First
			}
		}
		return n.GroupID, true
	}
	return "", false
}
