package panel

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// TabDefinition describes a tab owned by the caller. The engine only uses
// ID; Title and Render are for the view layer.
type TabDefinition struct {
	ID     PanelID
	Title  string
	Render func() string
	// Resize, when set, is told the body size of the group showing the tab.
	Resize func(width, height int)
}

// TabIDs returns the ids of tabs in order.
func TabIDs(tabs []TabDefinition) []PanelID {
	ids := make([]PanelID, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return ids
}

// IDFactory produces group ids that are unique for the lifetime of a state
// and all states derived from it.
type IDFactory interface {
	Next() GroupID
}

// IDFactoryFunc adapts a function to IDFactory.
type IDFactoryFunc func() GroupID

// Next calls f.
func (f IDFactoryFunc) Next() GroupID { return f() }

// SequentialIDs yields prefix1, prefix2, ... It is not safe for concurrent use.
type SequentialIDs struct {
	prefix string
	n      int
}

// NewSequentialIDs returns a factory starting at prefix1.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// SequentialIDsAfter returns a factory that continues past the highest
// prefixN id present in s, so ids of a restored state are never reused.
func SequentialIDsAfter(s State, prefix string) *SequentialIDs {
	f := NewSequentialIDs(prefix)
	for id := range s.GroupsByID {
		rest, ok := strings.CutPrefix(string(id), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > f.n {
			f.n = n
		}
	}
	return f
}

// Next returns the next id.
func (f *SequentialIDs) Next() GroupID {
	f.n++
	return GroupID(f.prefix + strconv.Itoa(f.n))
}

// State is the whole panel system: the layout tree, the table of groups
// keyed by id and the focused group ("" for none). States are values;
// commands return new states and never write to the tree or the map of
// their input.
type State struct {
	Tree           *Node
	GroupsByID     map[GroupID]GroupModel
	FocusedGroupID GroupID
}

// BuildInitialState returns a single-leaf tree with one focused group, named
// by ids, holding every tab. The first tab is active.
func BuildInitialState(tabs []TabDefinition, ids IDFactory) State {
	id := ids.Next()
	return State{
		Tree:           Leaf(id),
		GroupsByID:     map[GroupID]GroupModel{id: NewGroup(id, TabIDs(tabs)...)},
		FocusedGroupID: id,
	}
}

// Group returns the group for id.
func (s State) Group(id GroupID) (GroupModel, bool) {
	g, ok := s.GroupsByID[id]
	return g, ok
}

// FocusedGroup returns the focused group, if any.
func (s State) FocusedGroup() (GroupModel, bool) {
	if s.FocusedGroupID == "" {
		return GroupModel{}, false
	}
	return s.Group(s.FocusedGroupID)
}

// FindTab returns the first group, in focus order, holding tab.
func (s State) FindTab(tab PanelID) (GroupID, bool) {
	for id := range CollectGroupsInOrder(s.Tree) {
		if s.GroupsByID[id].HasTab(tab) {
			return id, true
		}
	}
	return "", false
}

// TabCount returns the number of tabs across all groups.
func (s State) TabCount() int {
	n := 0
	for _, g := range s.GroupsByID {
		n += len(g.Tabs)
	}
	return n
}

// Equal reports whether two states describe the same layout, tabs and focus.
func (s State) Equal(o State) bool {
	if s.FocusedGroupID != o.FocusedGroupID || !s.Tree.Equal(o.Tree) {
		return false
	}
	return maps.EqualFunc(s.GroupsByID, o.GroupsByID, GroupModel.Equal)
}

// withGroups returns a copy of s whose group table is a fresh map with fn
// applied to it.
func (s State) withGroups(fn func(map[GroupID]GroupModel)) State {
	groups := maps.Clone(s.GroupsByID)
	fn(groups)
	s.GroupsByID = groups
	return s
}

// updateGroup applies fn to group id. Unknown ids and unchanged groups
// return s as is.
func (s State) updateGroup(id GroupID, fn func(GroupModel) GroupModel) State {
	g, ok := s.GroupsByID[id]
	if !ok {
		return s
	}
	next := fn(g)
	if next.Equal(g) {
		return s
	}
	return s.withGroups(func(groups map[GroupID]GroupModel) {
		groups[id] = next
	})
}

// SplitGroup splits target with a new group placed after it. See SplitGroupAt.
func SplitGroup(s State, target GroupID, dir Direction, newID GroupID, tabs []PanelID) State {
	return SplitGroupAt(s, target, dir, After, newID, tabs)
}

// SplitGroupAt splits the leaf of target and creates group newID holding
// tabs, which becomes focused. Tabs already held by another group are moved
// out of it; groups emptied that way are closed. Unknown targets and ids
// already in use leave s unchanged.
func SplitGroupAt(s State, target GroupID, dir Direction, placement Placement, newID GroupID, tabs []PanelID) State {
	if _, ok := s.GroupsByID[target]; !ok {
		return s
	}
	if _, ok := s.GroupsByID[newID]; ok {
		return s
	}
	tree, err := SplitLeaf(s.Tree, target, dir, newID, placement)
	if err != nil {
		return s
	}
	created := NewGroup(newID, tabs...)
	var emptied []GroupID
	next := s.withGroups(func(groups map[GroupID]GroupModel) {
		for _, tab := range created.Tabs {
			src, ok := s.FindTab(tab)
			if !ok {
				continue
			}
			g := RemoveTabFromGroup(groups[src], tab)
			groups[src] = g
			if g.Empty() && !slices.Contains(emptied, src) {
				emptied = append(emptied, src)
			}
		}
		groups[newID] = created
	})
	next.Tree = tree
	next.FocusedGroupID = newID
	for _, id := range emptied {
		next = CloseGroup(next, id)
	}
	return next
}

// CanCloseGroup reports why CloseGroup would refuse to close id, or nil.
func CanCloseGroup(s State, id GroupID) error {
	if _, ok := s.GroupsByID[id]; !ok || !ContainsGroup(s.Tree, id) {
		return fmt.Errorf("close %s: %w", id, ErrGroupNotFound)
	}
	if s.Tree.IsGroup() {
		return fmt.Errorf("close %s: %w", id, ErrCannotCloseLastGroup)
	}
	return nil
}

// CloseGroup removes the leaf and the group for id, along with its tabs.
// Focus on the closed group moves to the first group of the sibling subtree
// that took its parent's place. Closing the last group or an unknown group
// returns s unchanged; use CanCloseGroup to learn why.
func CloseGroup(s State, id GroupID) State {
	if _, ok := s.GroupsByID[id]; !ok {
		return s
	}
	tree, heir, err := closeLeafPromoted(s.Tree, id)
	if err != nil {
		return s
	}
	next := s.withGroups(func(groups map[GroupID]GroupModel) {
		delete(groups, id)
	})
	next.Tree = tree
	if s.FocusedGroupID == id {
		next.FocusedGroupID = heir
	}
	return next
}

// MergeGroup appends the tabs of source to target, skipping tabs target
// already holds, then closes source. Source's active tab stays active in
// target and target is focused.
func MergeGroup(s State, source, target GroupID) State {
	src, ok := s.GroupsByID[source]
	if !ok || source == target {
		return s
	}
	dst, ok := s.GroupsByID[target]
	if !ok {
		return s
	}
	merged := dst
	for _, tab := range src.Tabs {
		merged = AddTabToGroup(merged, tab)
	}
	switch {
	case src.ActiveTabID != "":
		merged.ActiveTabID = src.ActiveTabID
	case dst.ActiveTabID != "":
		merged.ActiveTabID = dst.ActiveTabID
	}
	next := s.withGroups(func(groups map[GroupID]GroupModel) {
		groups[target] = merged
	})
	next = CloseGroup(next, source)
	next.FocusedGroupID = target
	return next
}

// AddTab appends tab to group and activates it.
func AddTab(s State, group GroupID, tab PanelID) State {
	return s.updateGroup(group, func(g GroupModel) GroupModel { return AddTabToGroup(g, tab) })
}

// AddTabAt inserts tab into group at index and activates it.
func AddTabAt(s State, group GroupID, tab PanelID, index int) State {
	return s.updateGroup(group, func(g GroupModel) GroupModel { return AddTabToGroupAtIndex(g, tab, index) })
}

// RemoveTab removes tab from group. The group stays in place even when it
// becomes empty.
func RemoveTab(s State, group GroupID, tab PanelID) State {
	return s.updateGroup(group, func(g GroupModel) GroupModel { return RemoveTabFromGroup(g, tab) })
}

// ReorderTab moves tab to toIndex within group.
func ReorderTab(s State, group GroupID, tab PanelID, toIndex int) State {
	return s.updateGroup(group, func(g GroupModel) GroupModel { return ReorderTabWithinGroup(g, tab, toIndex) })
}

// ActivateTab makes tab the active tab of group.
func ActivateTab(s State, group GroupID, tab PanelID) State {
	return s.updateGroup(group, func(g GroupModel) GroupModel { return SetActiveTab(g, tab) })
}

// CycleTab activates the tab delta positions away in the focused group.
func CycleTab(s State, delta int) State {
	return s.updateGroup(s.FocusedGroupID, func(g GroupModel) GroupModel { return CycleActiveTab(g, delta) })
}

// SetRatio sets the ratio of the split at path. Bad paths leave s unchanged.
func SetRatio(s State, path Path, ratio float64) State {
	tree, err := SetSplitRatio(s.Tree, path, ratio)
	if err != nil {
		return s
	}
	s.Tree = tree
	return s
}

// ResizeGroup grows group by delta along dir by adjusting the nearest
// enclosing split of that direction. A negative delta shrinks it.
func ResizeGroup(s State, group GroupID, dir Direction, delta float64, bounds RatioBounds) State {
	path, ok := FindGroup(s.Tree, group)
	if !ok {
		return s
	}
	splitPath, ok := parentSplitPath(s.Tree, path, dir)
	if !ok {
		return s
	}
	split, _ := NodeAt(s.Tree, splitPath)
	ratio := split.Ratio + delta
	if path[len(splitPath)] == Second {
		ratio = split.Ratio - delta
	}
	tree, err := SetSplitRatioWithin(s.Tree, splitPath, ratio, bounds)
	if err != nil {
		return s
	}
	s.Tree = tree
	return s
}

// Validate checks every structural and referential invariant of s and
// returns the first violation. It never panics.
func Validate(s State) error {
	if err := validateNode(s.Tree, nil); err != nil {
		return err
	}
	seen := make(map[GroupID]bool)
	for id := range CollectGroupsInOrder(s.Tree) {
		if seen[id] {
			return fmt.Errorf("%w: group %s appears twice in tree", ErrInvalidState, id)
		}
		seen[id] = true
		g, ok := s.GroupsByID[id]
		if !ok {
			return fmt.Errorf("%w: leaf %s has no group", ErrInvalidState, id)
		}
		if err := validateGroup(id, g); err != nil {
			return err
		}
	}
	if len(s.GroupsByID) != len(seen) {
		for id := range s.GroupsByID {
			if !seen[id] {
				return fmt.Errorf("%w: group %s is not in tree", ErrInvalidState, id)
			}
		}
	}
	if s.FocusedGroupID != "" && !seen[s.FocusedGroupID] {
		return fmt.Errorf("%w: focused group %s is not in tree", ErrInvalidState, s.FocusedGroupID)
	}
	return nil
}

func validateNode(n *Node, path Path) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at %v", ErrMalformedTree, path)
	}
	switch n.Kind {
	case LeafNode:
		if n.GroupID == "" {
			return fmt.Errorf("%w: leaf at %v has no group id", ErrMalformedTree, path)
		}
		return nil
	case SplitNode:
		if n.Direction != Horizontal && n.Direction != Vertical {
			return fmt.Errorf("%w: split at %v has direction %d", ErrMalformedTree, path, n.Direction)
		}
		if math.IsNaN(n.Ratio) || n.Ratio <= 0 || n.Ratio >= 1 {
			return fmt.Errorf("%w: split at %v has ratio %v", ErrMalformedTree, path, n.Ratio)
		}
		if err := validateNode(n.First, path.child(First)); err != nil {
			return err
		}
		return validateNode(n.Second, path.child(Second))
	default:
		return fmt.Errorf("%w: unknown node kind %d at %v", ErrMalformedTree, n.Kind, path)
	}
}

func validateGroup(id GroupID, g GroupModel) error {
	if g.ID != id {
		return fmt.Errorf("%w: group keyed %s has id %s", ErrInvalidState, id, g.ID)
	}
	tabs := make(map[PanelID]bool, len(g.Tabs))
	for _, t := range g.Tabs {
		if tabs[t] {
			return fmt.Errorf("%w: tab %s twice in group %s", ErrInvalidState, t, id)
		}
		tabs[t] = true
	}
	if g.ActiveTabID != "" && !tabs[g.ActiveTabID] {
		return fmt.Errorf("%w: active tab %s not in group %s", ErrInvalidState, g.ActiveTabID, id)
	}
	return nil
}
