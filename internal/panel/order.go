package panel

// GroupOrder caches the focus order of a tree together with an index by
// group id. It is derived data: rebuild it with RefreshGroupOrder after any
// structural change.
type GroupOrder struct {
	ids   []GroupID
	index map[GroupID]int
}

// RefreshGroupOrder derives the GroupOrder of tree.
func RefreshGroupOrder(tree *Node) GroupOrder {
	o := GroupOrder{index: make(map[GroupID]int)}
	for id := range CollectGroupsInOrder(tree) {
		o.index[id] = len(o.ids)
		o.ids = append(o.ids, id)
	}
	return o
}

// Len returns the number of groups.
func (o GroupOrder) Len() int { return len(o.ids) }

// At returns the i-th group.
func (o GroupOrder) At(i int) (GroupID, bool) {
	if i < 0 || i >= len(o.ids) {
		return "", false
	}
	return o.ids[i], true
}

// Index returns the position of id.
func (o GroupOrder) Index(id GroupID) (int, bool) {
	i, ok := o.index[id]
	return i, ok
}
