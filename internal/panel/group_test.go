package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddTabToGroup_AppendsAndActivates(t *testing.T) {
	g := NewGroup("g1", "a", "b")

	got := AddTabToGroup(g, "c")

	assert.Equal(t, []PanelID{"a", "b", "c"}, got.Tabs)
	assert.Equal(t, PanelID("c"), got.ActiveTabID)
	assert.Equal(t, []PanelID{"a", "b"}, g.Tabs, "input must not change")
}

func TestAddTabToGroup_ExistingTabOnlyActivates(t *testing.T) {
	g := NewGroup("g1", "a", "b")

	got := AddTabToGroup(g, "b")

	assert.Equal(t, []PanelID{"a", "b"}, got.Tabs)
	assert.Equal(t, PanelID("b"), got.ActiveTabID)
}

func TestAddTabToGroupAtIndex_Clamps(t *testing.T) {
	g := NewGroup("g1", "a", "b")

	tests := []struct {
		name  string
		index int
		want  []PanelID
	}{
		{"front", 0, []PanelID{"x", "a", "b"}},
		{"middle", 1, []PanelID{"a", "x", "b"}},
		{"end", 2, []PanelID{"a", "b", "x"}},
		{"negative clamps to front", -5, []PanelID{"x", "a", "b"}},
		{"overflow clamps to end", 99, []PanelID{"a", "b", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddTabToGroupAtIndex(g, "x", tt.index)
			assert.Equal(t, tt.want, got.Tabs)
			assert.Equal(t, PanelID("x"), got.ActiveTabID)
		})
	}
}

func TestRemoveTabFromGroup_ActiveFallback(t *testing.T) {
	tests := []struct {
		name       string
		group      GroupModel
		remove     PanelID
		wantTabs   []PanelID
		wantActive PanelID
	}{
		{
			name:       "active middle takes next at same index",
			group:      SetActiveTab(NewGroup("g", "a", "b", "c"), "b"),
			remove:     "b",
			wantTabs:   []PanelID{"a", "c"},
			wantActive: "c",
		},
		{
			name:       "active last falls back to new last",
			group:      SetActiveTab(NewGroup("g", "a", "b", "c"), "c"),
			remove:     "c",
			wantTabs:   []PanelID{"a", "b"},
			wantActive: "b",
		},
		{
			name:       "inactive removal keeps active",
			group:      SetActiveTab(NewGroup("g", "a", "b", "c"), "a"),
			remove:     "c",
			wantTabs:   []PanelID{"a", "b"},
			wantActive: "a",
		},
		{
			name:       "last tab empties group",
			group:      NewGroup("g", "a"),
			remove:     "a",
			wantTabs:   []PanelID{},
			wantActive: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveTabFromGroup(tt.group, tt.remove)
			assert.ElementsMatch(t, tt.wantTabs, got.Tabs)
			assert.Equal(t, tt.wantActive, got.ActiveTabID)
		})
	}
}

func TestRemoveTabFromGroup_MissingIsNoop(t *testing.T) {
	g := NewGroup("g", "a")
	assert.True(t, RemoveTabFromGroup(g, "zzz").Equal(g))
}

func TestReorderTabWithinGroup(t *testing.T) {
	g := NewGroup("g", "a", "b", "c", "d")

	assert.Equal(t, []PanelID{"b", "c", "a", "d"}, ReorderTabWithinGroup(g, "a", 2).Tabs)
	assert.Equal(t, []PanelID{"d", "a", "b", "c"}, ReorderTabWithinGroup(g, "d", 0).Tabs)
	assert.Equal(t, g.Tabs, ReorderTabWithinGroup(g, "b", 1).Tabs, "same index")
	assert.Equal(t, g.Tabs, ReorderTabWithinGroup(g, "b", 4).Tabs, "out of range")
	assert.Equal(t, g.Tabs, ReorderTabWithinGroup(g, "b", -1).Tabs, "negative")
	assert.Equal(t, g.Tabs, ReorderTabWithinGroup(g, "zzz", 0).Tabs, "unknown tab")
	assert.Equal(t, []PanelID{"a", "b", "c", "d"}, g.Tabs, "input must not change")
}

func TestSetActiveTab(t *testing.T) {
	g := NewGroup("g", "a", "b")

	assert.Equal(t, PanelID("b"), SetActiveTab(g, "b").ActiveTabID)
	assert.Equal(t, PanelID("a"), SetActiveTab(g, "zzz").ActiveTabID)
}

func TestCycleActiveTab_NoWrap(t *testing.T) {
	g := NewGroup("g", "a", "b", "c")

	assert.Equal(t, PanelID("b"), CycleActiveTab(g, 1).ActiveTabID)
	assert.Equal(t, PanelID("a"), CycleActiveTab(g, -1).ActiveTabID)
	assert.Equal(t, PanelID("c"), CycleActiveTab(g, 10).ActiveTabID)
}
