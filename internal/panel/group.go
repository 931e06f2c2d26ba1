package panel

import "slices"

// GroupModel is an ordered list of tab ids sharing one region, with at most
// one active tab. ActiveTabID is "" when no tab is active, which is always
// the case for an empty group.
type GroupModel struct {
	ID          GroupID
	Tabs        []PanelID
	ActiveTabID PanelID
}

// NewGroup returns a group holding tabs with the first one active.
func NewGroup(id GroupID, tabs ...PanelID) GroupModel {
	g := GroupModel{ID: id}
	for _, t := range tabs {
		if !slices.Contains(g.Tabs, t) {
			g.Tabs = append(g.Tabs, t)
		}
	}
	if len(g.Tabs) > 0 {
		g.ActiveTabID = g.Tabs[0]
	}
	return g
}

// IndexOf returns the position of tab, or -1.
func (g GroupModel) IndexOf(tab PanelID) int {
	return slices.Index(g.Tabs, tab)
}

// HasTab reports whether the group holds tab.
func (g GroupModel) HasTab(tab PanelID) bool {
	return g.IndexOf(tab) >= 0
}

// Empty reports whether the group has no tabs.
func (g GroupModel) Empty() bool {
	return len(g.Tabs) == 0
}

// Equal compares id, tab order and active tab.
func (g GroupModel) Equal(o GroupModel) bool {
	return g.ID == o.ID && g.ActiveTabID == o.ActiveTabID && slices.Equal(g.Tabs, o.Tabs)
}

// AddTabToGroup appends tab and makes it active. If the group already holds
// tab it is only activated.
func AddTabToGroup(g GroupModel, tab PanelID) GroupModel {
	return AddTabToGroupAtIndex(g, tab, len(g.Tabs))
}

// AddTabToGroupAtIndex inserts tab at index, clamped to [0, len(tabs)], and
// makes it active. If the group already holds tab it is only activated.
func AddTabToGroupAtIndex(g GroupModel, tab PanelID, index int) GroupModel {
	if g.HasTab(tab) {
		return SetActiveTab(g, tab)
	}
	index = max(0, min(index, len(g.Tabs)))
	out := g
	out.Tabs = slices.Insert(slices.Clone(g.Tabs), index, tab)
	out.ActiveTabID = tab
	return out
}

// RemoveTabFromGroup removes tab. When the active tab is removed, the tab
// that slides into its index becomes active; if it was the last tab, the new
// last tab does; an emptied group has no active tab.
func RemoveTabFromGroup(g GroupModel, tab PanelID) GroupModel {
	idx := g.IndexOf(tab)
	if idx < 0 {
		return g
	}
	out := g
	out.Tabs = slices.Delete(slices.Clone(g.Tabs), idx, idx+1)
	if g.ActiveTabID != tab {
		return out
	}
	switch {
	case len(out.Tabs) == 0:
		out.ActiveTabID = ""
	case idx < len(out.Tabs):
		out.ActiveTabID = out.Tabs[idx]
	default:
		out.ActiveTabID = out.Tabs[len(out.Tabs)-1]
	}
	return out
}

// ReorderTabWithinGroup moves tab to toIndex keeping the relative order of
// the other tabs. Out-of-range or unchanged indexes are no-ops.
func ReorderTabWithinGroup(g GroupModel, tab PanelID, toIndex int) GroupModel {
	from := g.IndexOf(tab)
	if from < 0 || toIndex < 0 || toIndex >= len(g.Tabs) || toIndex == from {
		return g
	}
	tabs := slices.Delete(slices.Clone(g.Tabs), from, from+1)
	out := g
	out.Tabs = slices.Insert(tabs, toIndex, tab)
	return out
}

// SetActiveTab activates tab. No-op if the group does not hold it.
func SetActiveTab(g GroupModel, tab PanelID) GroupModel {
	if !g.HasTab(tab) || g.ActiveTabID == tab {
		return g
	}
	out := g
	out.ActiveTabID = tab
	return out
}

// CycleActiveTab activates the tab delta positions away from the current
// one, without wrapping.
func CycleActiveTab(g GroupModel, delta int) GroupModel {
	if len(g.Tabs) == 0 {
		return g
	}
	idx := g.IndexOf(g.ActiveTabID)
	if idx < 0 {
		return SetActiveTab(g, g.Tabs[0])
	}
	next := max(0, min(idx+delta, len(g.Tabs)-1))
	return SetActiveTab(g, g.Tabs[next])
}
