package panel

import (
	"fmt"
	"slices"
)

// DropPosition is where, relative to the target group, a dragged tab lands.
type DropPosition int

const (
	// BeforeTab inserts the tab in front of the tab it was dropped on.
	BeforeTab DropPosition = iota
	// AfterTab inserts the tab behind the tab it was dropped on.
	AfterTab
	// SplitLeft opens a new group left of the target.
	SplitLeft
	// SplitRight opens a new group right of the target.
	SplitRight
	// SplitTop opens a new group above the target.
	SplitTop
	// SplitBottom opens a new group below the target.
	SplitBottom
)

var dropPositionNames = []string{
	BeforeTab:   "before-tab",
	AfterTab:    "after-tab",
	SplitLeft:   "split-left",
	SplitRight:  "split-right",
	SplitTop:    "split-top",
	SplitBottom: "split-bottom",
}

func (p DropPosition) String() string {
	if p < 0 || int(p) >= len(dropPositionNames) {
		return "unknown"
	}
	return dropPositionNames[p]
}

// ParseDropPosition parses names such as "after-tab" or "split-left".
func ParseDropPosition(s string) (DropPosition, error) {
	if i := slices.Index(dropPositionNames, s); i >= 0 {
		return DropPosition(i), nil
	}
	return 0, fmt.Errorf("%w: drop position %q", ErrInvalidValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p DropPosition) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(dropPositionNames) {
		return nil, fmt.Errorf("%w: drop position %d", ErrInvalidValue, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DropPosition) UnmarshalText(b []byte) error {
	v, err := ParseDropPosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// IsSplit reports whether p creates a new group next to the target.
func (p DropPosition) IsSplit() bool {
	_, _, ok := p.SplitPlacement()
	return ok
}

// SplitPlacement maps split positions to the direction and placement of the
// new leaf.
func (p DropPosition) SplitPlacement() (Direction, Placement, bool) {
	switch p {
	case SplitLeft:
		return Vertical, Before, true
	case SplitRight:
		return Vertical, After, true
	case SplitTop:
		return Horizontal, Before, true
	case SplitBottom:
		return Horizontal, After, true
	}
	return 0, 0, false
}

// DropZone is the resolved meaning of a drop location. ReferenceTabID is
// the tab the drop is relative to for BeforeTab/AfterTab; empty appends.
type DropZone struct {
	TargetGroupID  GroupID
	Position       DropPosition
	ReferenceTabID PanelID
}

// DraggingTab is a drag in progress. It lives on the caller's side only;
// abandoning a drag needs no engine call.
type DraggingTab struct {
	TabID         PanelID
	SourceGroupID GroupID
}

// Drop completes the drag onto zone.
func (d DraggingTab) Drop(s State, zone DropZone, ids IDFactory) State {
	return MoveTab(s, d.TabID, d.SourceGroupID, zone, ids)
}

// MoveTab moves tab out of source according to zone. Tab positions insert
// into the target's list next to the reference tab; split positions create
// a new group (named by ids) beside the target holding only the tab, and
// are no-ops when ids is nil. A
// source emptied by the move is closed. The group that receives the tab is
// focused and the tab is active there. Every tab ends up in exactly one
// place: moves never duplicate or drop tabs. Invalid or stale arguments, and
// moves that would not change anything, return s unchanged.
func MoveTab(s State, tab PanelID, source GroupID, zone DropZone, ids IDFactory) State {
	src, ok := s.GroupsByID[source]
	if !ok || !src.HasTab(tab) {
		return s
	}
	if _, ok := s.GroupsByID[zone.TargetGroupID]; !ok {
		return s
	}
	if dir, placement, ok := zone.Position.SplitPlacement(); ok {
		return moveToSplit(s, tab, source, zone.TargetGroupID, dir, placement, ids)
	}
	return moveToTabs(s, tab, source, zone)
}

func moveToTabs(s State, tab PanelID, source GroupID, zone DropZone) State {
	target := zone.TargetGroupID
	src, dst := s.GroupsByID[source], s.GroupsByID[target]
	if zone.ReferenceTabID == tab {
		return s
	}
	if source != target && dst.HasTab(tab) {
		return s
	}

	remaining := RemoveTabFromGroup(src, tab)
	base := dst
	if source == target {
		base = remaining
	}
	index := len(base.Tabs)
	if zone.ReferenceTabID != "" {
		index = base.IndexOf(zone.ReferenceTabID)
		if index < 0 {
			return s
		}
		if zone.Position == AfterTab {
			index++
		}
	}
	placed := AddTabToGroupAtIndex(base, tab, index)

	if source == target {
		if slices.Equal(placed.Tabs, src.Tabs) {
			return s
		}
		next := s.withGroups(func(groups map[GroupID]GroupModel) {
			groups[target] = placed
		})
		next.FocusedGroupID = target
		return next
	}

	next := s.withGroups(func(groups map[GroupID]GroupModel) {
		groups[source] = remaining
		groups[target] = placed
	})
	next.FocusedGroupID = target
	if remaining.Empty() {
		next = CloseGroup(next, source)
	}
	return next
}

func moveToSplit(s State, tab PanelID, source, target GroupID, dir Direction, placement Placement, ids IDFactory) State {
	src := s.GroupsByID[source]
	if ids == nil || source == target && len(src.Tabs) == 1 {
		return s
	}
	newID := ids.Next()
	if _, taken := s.GroupsByID[newID]; taken {
		return s
	}
	tree, err := SplitLeaf(s.Tree, target, dir, newID, placement)
	if err != nil {
		return s
	}
	remaining := RemoveTabFromGroup(src, tab)
	next := s.withGroups(func(groups map[GroupID]GroupModel) {
		groups[source] = remaining
		groups[newID] = NewGroup(newID, tab)
	})
	next.Tree = tree
	next.FocusedGroupID = newID
	if remaining.Empty() {
		next = CloseGroup(next, source)
	}
	return next
}
