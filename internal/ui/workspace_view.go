package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panellayout/internal/panel"
	"panellayout/internal/ui/textutil"
	"panellayout/internal/workspace"
)

// WorkspaceView draws the panel tree of a Store and turns mouse input into
// workspace commands. It never changes the Store itself: every change is
// returned as a CommandMsg for the app to dispatch.
type WorkspaceView struct {
	Store         *workspace.Store
	Width, Height int

	drag    *tabDrag
	divider *dividerDrag
	sizes   map[panel.PanelID]panel.Rect // last size passed to each tab's Resize
}

// tabDrag is a tab picked up from a tab bar.
type tabDrag struct {
	from   panel.DraggingTab
	x, y   int // press position
	moved  bool
	zone   panel.DropZone
	zoneOK bool
}

// dividerDrag is a split divider being dragged. ratio is previewed until
// release.
type dividerDrag struct {
	divider panel.Divider
	ratio   float64
	moved   bool
}

// NewWorkspaceView creates a view over store.
func NewWorkspaceView(store *workspace.Store) *WorkspaceView {
	return &WorkspaceView{Store: store}
}

// SetSize sets the area the tree is laid out in.
func (v *WorkspaceView) SetSize(width, height int) {
	v.Width, v.Height = width, height
}

// ResizeTabs tells every placed tab with a Resize hook the body size of its
// group. Tabs are only told when their size changed.
func (v *WorkspaceView) ResizeTabs() {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	if v.sizes == nil {
		v.sizes = make(map[panel.PanelID]panel.Rect)
	}
	s := v.Store.State()
	for id, r := range panel.ComputeLayout(s.Tree, v.bounds()) {
		body := panel.Rect{W: r.W - 2, H: r.H - 3}
		if body.W <= 0 || body.H <= 0 {
			continue
		}
		for _, tab := range s.GroupsByID[id].Tabs {
			def, ok := v.Store.Tab(tab)
			if !ok || def.Resize == nil || v.sizes[tab] == body {
				continue
			}
			v.sizes[tab] = body
			def.Resize(body.W, body.H)
		}
	}
}

func (v *WorkspaceView) bounds() panel.Rect {
	return panel.Rect{W: max(v.Width, 0), H: max(v.Height, 0)}
}

// Dragging reports whether a tab or divider drag is in progress.
func (v *WorkspaceView) Dragging() bool {
	return v.drag != nil || v.divider != nil
}

// CancelDrag abandons any drag in progress.
func (v *WorkspaceView) CancelDrag() {
	v.drag = nil
	v.divider = nil
}

// DragStatus describes the drag in progress for the status line.
func (v *WorkspaceView) DragStatus() string {
	switch {
	case v.divider != nil && v.divider.moved:
		ratio := v.Store.Options().Ratio.Clamp(v.divider.ratio)
		return fmt.Sprintf("resize %s → %.2f", v.divider.divider.Path, ratio)
	case v.drag != nil && v.drag.moved:
		tab := v.drag.from.TabID
		if !v.drag.zoneOK {
			return fmt.Sprintf("drag %s", tab)
		}
		z := v.drag.zone
		if z.ReferenceTabID != "" {
			return fmt.Sprintf("drag %s → %s %s %s", tab, z.TargetGroupID, z.Position, z.ReferenceTabID)
		}
		return fmt.Sprintf("drag %s → %s %s", tab, z.TargetGroupID, z.Position)
	}
	return ""
}

// state is the state to draw: the store's, with a divider drag previewed.
func (v *WorkspaceView) state() panel.State {
	s := v.Store.State()
	if v.divider != nil && v.divider.moved {
		preview := workspace.SetRatio{Path: v.divider.divider.Path, Ratio: v.divider.ratio}
		s = preview.Apply(s, workspace.Env{Ratio: v.Store.Options().Ratio})
	}
	return s
}

func (v *WorkspaceView) dropTarget() panel.GroupID {
	if v.drag == nil || !v.drag.moved || !v.drag.zoneOK {
		return ""
	}
	return v.drag.zone.TargetGroupID
}

// View renders the tree into exactly Width x Height cells.
func (v *WorkspaceView) View() string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}
	s := v.state()
	return v.renderNode(s, s.Tree, v.bounds())
}

func (v *WorkspaceView) renderNode(s panel.State, n *panel.Node, r panel.Rect) string {
	if n.IsGroup() {
		return v.renderGroup(s, n.GroupID, r)
	}
	a, b := panel.SplitRect(r, n.Direction, n.Ratio)
	switch {
	case a.W <= 0 || a.H <= 0:
		return v.renderNode(s, n.Second, b)
	case b.W <= 0 || b.H <= 0:
		return v.renderNode(s, n.First, a)
	}
	first, second := v.renderNode(s, n.First, a), v.renderNode(s, n.Second, b)
	if n.Direction == panel.Vertical {
		return lipgloss.JoinHorizontal(lipgloss.Top, first, second)
	}
	return lipgloss.JoinVertical(lipgloss.Left, first, second)
}

func (v *WorkspaceView) renderGroup(s panel.State, id panel.GroupID, r panel.Rect) string {
	if r.W < 3 || r.H < 3 {
		return blank(r.W, r.H)
	}
	g := s.GroupsByID[id]
	focused := id == s.FocusedGroupID
	w, h := r.W-2, r.H-2

	lines := make([]string, 0, h)
	lines = append(lines, v.tabBar(g, w).render(g.ActiveTabID, focused))
	lines = append(lines, v.body(g, w, h-1)...)

	style := Styles.Group
	switch {
	case v.dropTarget() == id:
		style = Styles.GroupDrop
	case focused:
		style = Styles.GroupFocused
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (v *WorkspaceView) tabBar(g panel.GroupModel, width int) tabBar {
	return layoutTabBar(g.Tabs, v.tabTitle, g.ActiveTabID, width)
}

func (v *WorkspaceView) body(g panel.GroupModel, w, h int) []string {
	if h <= 0 {
		return nil
	}
	if g.ActiveTabID == "" {
		lines := textutil.FitBlock("empty group", w, h)
		for i := range lines {
			lines[i] = Styles.Empty.Render(lines[i])
		}
		return lines
	}
	return textutil.FitBlock(v.tabContent(g.ActiveTabID), w, h)
}

func (v *WorkspaceView) tabTitle(id panel.PanelID) string {
	if def, ok := v.Store.Tab(id); ok && def.Title != "" {
		return def.Title
	}
	return string(id)
}

func (v *WorkspaceView) tabContent(id panel.PanelID) string {
	if def, ok := v.Store.Tab(id); ok && def.Render != nil {
		return def.Render()
	}
	return v.tabTitle(id)
}

func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// HandleMouse updates drag state and returns the command, if any, that the
// event completes. Press on a divider starts a resize, press on a tab
// activates it and picks it up, press anywhere else in a group focuses it.
func (v *WorkspaceView) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return v.press(msg.X, msg.Y)
	case tea.MouseActionMotion:
		v.motion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		return v.release(msg.X, msg.Y)
	}
	return nil
}

func (v *WorkspaceView) press(x, y int) tea.Cmd {
	v.CancelDrag()
	s := v.Store.State()
	if d, ok := v.dividerAt(s, x, y); ok {
		v.divider = &dividerDrag{divider: d, ratio: d.RatioAt(x, y)}
		return nil
	}
	layout := panel.ComputeLayout(s.Tree, v.bounds())
	id, ok := panel.GroupAt(layout, x, y)
	if !ok {
		return nil
	}
	r := layout[id]
	if y == r.Y+1 && r.W >= 3 && r.H >= 3 {
		if tab, ok := v.tabBar(s.GroupsByID[id], r.W-2).tabAt(x - r.X - 1); ok {
			v.drag = &tabDrag{from: panel.DraggingTab{TabID: tab, SourceGroupID: id}, x: x, y: y}
			return command(workspace.ActivateTab{Group: id, Tab: tab})
		}
	}
	return command(workspace.Focus{Group: id})
}

func (v *WorkspaceView) motion(x, y int) {
	switch {
	case v.divider != nil:
		v.divider.ratio = v.divider.divider.RatioAt(x, y)
		v.divider.moved = true
	case v.drag != nil:
		if x != v.drag.x || y != v.drag.y {
			v.drag.moved = true
		}
		v.drag.zone, v.drag.zoneOK = v.dropZone(x, y)
	}
}

func (v *WorkspaceView) release(x, y int) tea.Cmd {
	defer v.CancelDrag()
	switch {
	case v.divider != nil:
		if !v.divider.moved {
			return nil
		}
		d := v.divider.divider
		return command(workspace.SetRatio{Path: d.Path, Ratio: d.RatioAt(x, y)})
	case v.drag != nil:
		if !v.drag.moved && x == v.drag.x && y == v.drag.y {
			return nil
		}
		zone, ok := v.dropZone(x, y)
		if !ok {
			return nil
		}
		from := v.drag.from
		return command(workspace.MoveTab{Tab: from.TabID, Source: from.SourceGroupID, Zone: zone})
	}
	return nil
}

// dividerAt returns the innermost divider whose border cells include (x, y).
func (v *WorkspaceView) dividerAt(s panel.State, x, y int) (panel.Divider, bool) {
	var hit panel.Divider
	found := false
	for _, d := range panel.Dividers(s.Tree, v.bounds()) {
		b := d.Bounds
		if d.Direction == panel.Vertical {
			if y >= b.Y && y < b.Y+b.H && (x == d.Pos-1 || x == d.Pos) {
				hit, found = d, true
			}
			continue
		}
		if x >= b.X && x < b.X+b.W && (y == d.Pos-1 || y == d.Pos) {
			hit, found = d, true
		}
	}
	return hit, found
}

// dropZone resolves a drop at (x, y). The tab bar row inserts next to the
// tab under the pointer; the rest of the group uses the edge bands.
func (v *WorkspaceView) dropZone(x, y int) (panel.DropZone, bool) {
	s := v.Store.State()
	layout := panel.ComputeLayout(s.Tree, v.bounds())
	id, ok := panel.GroupAt(layout, x, y)
	if !ok {
		return panel.DropZone{}, false
	}
	r := layout[id]
	if y == r.Y+1 && r.W >= 3 && r.H >= 3 {
		pos, ref := v.tabBar(s.GroupsByID[id], r.W-2).dropAt(x - r.X - 1)
		return panel.DropZone{TargetGroupID: id, Position: pos, ReferenceTabID: ref}, true
	}
	return panel.ResolveDropZone(layout, x, y)
}

func command(c workspace.Command) tea.Cmd {
	return func() tea.Msg { return CommandMsg{Command: c} }
}
