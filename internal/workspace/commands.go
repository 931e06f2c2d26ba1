package workspace

import (
	"strconv"

	"panellayout/internal/panel"
)

// Env is what commands may use besides the state itself.
type Env struct {
	IDs        panel.IDFactory
	Ratio      panel.RatioBounds
	ResizeStep float64
}

// Command is one user-level change to the workspace. Apply must be pure
// apart from drawing ids from env.IDs.
type Command interface {
	Name() string
	Apply(s panel.State, env Env) panel.State
	Attributes() map[string]string
}

// focusedOr returns id, or the focused group when id is empty.
func focusedOr(s panel.State, id panel.GroupID) panel.GroupID {
	if id == "" {
		return s.FocusedGroupID
	}
	return id
}

// SplitFocused splits the focused group. When the group has more than one
// tab its active tab moves into the new group; otherwise the new group
// starts empty.
type SplitFocused struct {
	Direction panel.Direction
	Placement panel.Placement
}

func (c SplitFocused) Name() string { return "split" }

func (c SplitFocused) Apply(s panel.State, env Env) panel.State {
	g, ok := s.FocusedGroup()
	if !ok {
		return s
	}
	var tabs []panel.PanelID
	if len(g.Tabs) > 1 && g.ActiveTabID != "" {
		tabs = []panel.PanelID{g.ActiveTabID}
	}
	return panel.SplitGroupAt(s, g.ID, c.Direction, c.Placement, env.IDs.Next(), tabs)
}

func (c SplitFocused) Attributes() map[string]string {
	return map[string]string{"direction": c.Direction.String(), "placement": c.Placement.String()}
}

// CloseGroup closes Group, or the focused group when Group is empty.
type CloseGroup struct {
	Group panel.GroupID
}

func (c CloseGroup) Name() string { return "close-group" }

func (c CloseGroup) Apply(s panel.State, _ Env) panel.State {
	return panel.CloseGroup(s, focusedOr(s, c.Group))
}

func (c CloseGroup) Attributes() map[string]string {
	return map[string]string{"group": string(c.Group)}
}

// MergeGroup moves every tab of Source into Target and closes Source.
// An empty Source means the focused group; an empty Target means the next
// group in focus order, or the previous one for the last group.
type MergeGroup struct {
	Source, Target panel.GroupID
}

func (c MergeGroup) Name() string { return "merge-group" }

func (c MergeGroup) Apply(s panel.State, _ Env) panel.State {
	source := focusedOr(s, c.Source)
	target := c.Target
	if target == "" {
		order := panel.RefreshGroupOrder(s.Tree)
		i, ok := order.Index(source)
		if !ok {
			return s
		}
		if next, ok := order.At(i + 1); ok {
			target = next
		} else if prev, ok := order.At(i - 1); ok {
			target = prev
		}
	}
	return panel.MergeGroup(s, source, target)
}

func (c MergeGroup) Attributes() map[string]string {
	return map[string]string{"group": string(c.Source), "target": string(c.Target)}
}

// MoveTab completes a drag of Tab from Source onto Zone.
type MoveTab struct {
	Tab    panel.PanelID
	Source panel.GroupID
	Zone   panel.DropZone
}

func (c MoveTab) Name() string { return "move-tab" }

func (c MoveTab) Apply(s panel.State, env Env) panel.State {
	return panel.MoveTab(s, c.Tab, c.Source, c.Zone, env.IDs)
}

func (c MoveTab) Attributes() map[string]string {
	return map[string]string{
		"tab":       string(c.Tab),
		"group":     string(c.Source),
		"target":    string(c.Zone.TargetGroupID),
		"position":  c.Zone.Position.String(),
		"reference": string(c.Zone.ReferenceTabID),
	}
}

// MoveActiveTab moves the active tab of the focused group onto a zone
// relative to Target (the focused group when empty).
type MoveActiveTab struct {
	Target   panel.GroupID
	Position panel.DropPosition
}

func (c MoveActiveTab) Name() string { return "move-tab" }

func (c MoveActiveTab) Apply(s panel.State, env Env) panel.State {
	g, ok := s.FocusedGroup()
	if !ok || g.ActiveTabID == "" {
		return s
	}
	zone := panel.DropZone{TargetGroupID: focusedOr(s, c.Target), Position: c.Position}
	return panel.MoveTab(s, g.ActiveTabID, g.ID, zone, env.IDs)
}

func (c MoveActiveTab) Attributes() map[string]string {
	return map[string]string{"target": string(c.Target), "position": c.Position.String()}
}

// ShiftActiveTab moves the active tab of the focused group Delta places
// within the group.
type ShiftActiveTab struct {
	Delta int
}

func (c ShiftActiveTab) Name() string { return "reorder-tab" }

func (c ShiftActiveTab) Apply(s panel.State, _ Env) panel.State {
	g, ok := s.FocusedGroup()
	if !ok {
		return s
	}
	return panel.ReorderTab(s, g.ID, g.ActiveTabID, g.IndexOf(g.ActiveTabID)+c.Delta)
}

func (c ShiftActiveTab) Attributes() map[string]string {
	return map[string]string{"delta": strconv.Itoa(c.Delta)}
}

// AddTab inserts Tab into Group (focused when empty) at Index; a negative
// Index appends.
type AddTab struct {
	Group panel.GroupID
	Tab   panel.PanelID
	Index int
}

func (c AddTab) Name() string { return "add-tab" }

func (c AddTab) Apply(s panel.State, _ Env) panel.State {
	group := focusedOr(s, c.Group)
	if c.Index < 0 {
		return panel.AddTab(s, group, c.Tab)
	}
	return panel.AddTabAt(s, group, c.Tab, c.Index)
}

func (c AddTab) Attributes() map[string]string {
	return map[string]string{"group": string(c.Group), "tab": string(c.Tab), "index": strconv.Itoa(c.Index)}
}

// RemoveTab removes Tab from Group. An empty Tab means the group's active
// tab.
type RemoveTab struct {
	Group panel.GroupID
	Tab   panel.PanelID
}

func (c RemoveTab) Name() string { return "remove-tab" }

func (c RemoveTab) Apply(s panel.State, _ Env) panel.State {
	group := focusedOr(s, c.Group)
	tab := c.Tab
	if tab == "" {
		g, ok := s.Group(group)
		if !ok || g.ActiveTabID == "" {
			return s
		}
		tab = g.ActiveTabID
	}
	return panel.RemoveTab(s, group, tab)
}

func (c RemoveTab) Attributes() map[string]string {
	return map[string]string{"group": string(c.Group), "tab": string(c.Tab)}
}

// ActivateTab makes Tab active in Group and focuses the group.
type ActivateTab struct {
	Group panel.GroupID
	Tab   panel.PanelID
}

func (c ActivateTab) Name() string { return "activate-tab" }

func (c ActivateTab) Apply(s panel.State, _ Env) panel.State {
	return panel.SetFocusedGroup(panel.ActivateTab(s, c.Group, c.Tab), c.Group)
}

func (c ActivateTab) Attributes() map[string]string {
	return map[string]string{"group": string(c.Group), "tab": string(c.Tab)}
}

// CycleTab activates a neighbouring tab of the focused group.
type CycleTab struct {
	Delta int
}

func (c CycleTab) Name() string { return "cycle-tab" }

func (c CycleTab) Apply(s panel.State, _ Env) panel.State {
	return panel.CycleTab(s, c.Delta)
}

func (c CycleTab) Attributes() map[string]string {
	return map[string]string{"delta": strconv.Itoa(c.Delta)}
}

// Focus focuses Group.
type Focus struct {
	Group panel.GroupID
}

func (c Focus) Name() string { return "focus" }

func (c Focus) Apply(s panel.State, _ Env) panel.State {
	return panel.SetFocusedGroup(s, c.Group)
}

func (c Focus) Attributes() map[string]string {
	return map[string]string{"group": string(c.Group)}
}

// FocusIndex focuses the Index-th group in focus order.
type FocusIndex struct {
	Index int
}

func (c FocusIndex) Name() string { return "focus-index" }

func (c FocusIndex) Apply(s panel.State, _ Env) panel.State {
	return panel.FocusGroupIndex(s, c.Index)
}

func (c FocusIndex) Attributes() map[string]string {
	return map[string]string{"index": strconv.Itoa(c.Index)}
}

// FocusNext and FocusPrev step through the focus order without wrapping.
type (
	FocusNext struct{}
	FocusPrev struct{}
)

func (FocusNext) Name() string                           { return "focus-next" }
func (FocusNext) Apply(s panel.State, _ Env) panel.State { return panel.NextGroup(s) }
func (FocusNext) Attributes() map[string]string          { return nil }

func (FocusPrev) Name() string                           { return "focus-prev" }
func (FocusPrev) Apply(s panel.State, _ Env) panel.State { return panel.PrevGroup(s) }
func (FocusPrev) Attributes() map[string]string          { return nil }

// FocusNeighbor focuses the spatially adjacent group.
type FocusNeighbor struct {
	Direction panel.NavDirection
}

func (c FocusNeighbor) Name() string { return "focus-neighbor" }

func (c FocusNeighbor) Apply(s panel.State, _ Env) panel.State {
	return panel.FocusNeighbor(s, c.Direction)
}

func (c FocusNeighbor) Attributes() map[string]string {
	return map[string]string{"direction": c.Direction.String()}
}

// SetRatio sets the ratio of the split at Path, clamped to env.Ratio.
type SetRatio struct {
	Path  panel.Path
	Ratio float64
}

func (c SetRatio) Name() string { return "set-ratio" }

func (c SetRatio) Apply(s panel.State, env Env) panel.State {
	tree, err := panel.SetSplitRatioWithin(s.Tree, c.Path, c.Ratio, env.Ratio)
	if err != nil {
		return s
	}
	s.Tree = tree
	return s
}

func (c SetRatio) Attributes() map[string]string {
	return map[string]string{"path": c.Path.String(), "ratio": strconv.FormatFloat(c.Ratio, 'f', 3, 64)}
}

// Resize grows (Steps > 0) or shrinks the focused group along Direction by
// Steps times env.ResizeStep.
type Resize struct {
	Direction panel.Direction
	Steps     int
}

func (c Resize) Name() string { return "resize" }

func (c Resize) Apply(s panel.State, env Env) panel.State {
	return panel.ResizeGroup(s, s.FocusedGroupID, c.Direction, float64(c.Steps)*env.ResizeStep, env.Ratio)
}

func (c Resize) Attributes() map[string]string {
	return map[string]string{"direction": c.Direction.String(), "steps": strconv.Itoa(c.Steps)}
}

// Grow resizes the focused group along the direction of its parent split.
type Grow struct {
	Steps int
}

func (c Grow) Name() string { return "resize" }

func (c Grow) Apply(s panel.State, env Env) panel.State {
	path, ok := panel.FindGroup(s.Tree, s.FocusedGroupID)
	if !ok || len(path) == 0 {
		return s
	}
	parent, _ := panel.NodeAt(s.Tree, path[:len(path)-1])
	return Resize{Direction: parent.Direction, Steps: c.Steps}.Apply(s, env)
}

func (c Grow) Attributes() map[string]string {
	return map[string]string{"steps": strconv.Itoa(c.Steps)}
}

// MoveActiveTabAcross moves the active tab of the focused group to the end
// of the group Delta steps away in focus order.
type MoveActiveTabAcross struct {
	Delta int
}

func (c MoveActiveTabAcross) Name() string { return "move-tab" }

func (c MoveActiveTabAcross) Apply(s panel.State, env Env) panel.State {
	order := panel.RefreshGroupOrder(s.Tree)
	i, ok := order.Index(s.FocusedGroupID)
	if !ok {
		return s
	}
	target, ok := order.At(i + c.Delta)
	if !ok {
		return s
	}
	return MoveActiveTab{Target: target, Position: panel.AfterTab}.Apply(s, env)
}

func (c MoveActiveTabAcross) Attributes() map[string]string {
	return map[string]string{"delta": strconv.Itoa(c.Delta)}
}
