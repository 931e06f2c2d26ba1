package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panellayout/internal/panel"
	"panellayout/internal/snapshot"
	"panellayout/internal/tmux"
	"panellayout/internal/trace"
	"panellayout/internal/ui/textutil"
	"panellayout/internal/workspace"
)

// AppModel is the root model: one WorkspaceView over a Store, a status
// line, and modal overlays for confirmations and snapshots.
type AppModel struct {
	Store        *workspace.Store
	Workspace    *WorkspaceView
	Snapshots    *snapshot.Store // nil disables save/load
	SnapshotName string          // name the workspace was loaded from or last saved as
	Recorder     *trace.Recorder // optional; feeds the status line
	KeyHandler   *KeyHandler
	Overlays     OverlayStack

	Status    string
	StatusErr bool

	// onDisk is the last state known to be stored under each snapshot name,
	// written or read by this app. saving counts saves still in flight.
	onDisk map[string]panel.State
	saving map[string]int

	lastCommand string
	scratch     int
	width       int
	height      int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model over store with the
// default keybindings.
func NewAppModel(store *workspace.Store, snapshots *snapshot.Store) *AppModel {
	reg := NewKeybindRegistry()
	bindDefaults(reg)
	return &AppModel{
		Store:      store,
		Workspace:  NewWorkspaceView(store),
		Snapshots:  snapshots,
		KeyHandler: NewKeyHandler(reg),
		onDisk:     make(map[string]panel.State),
		saving:     make(map[string]int),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.layout()
	return a, cmd
}

func (a *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		if a.Overlays.Len() > 0 {
			return nil
		}
		return a.Workspace.HandleMouse(msg)

	case CommandMsg:
		a.Overlays.Pop()
		a.dispatch(msg.Command)
		return nil
	case UndoMsg:
		if a.Store.Undo() {
			a.setStatus("undo")
		} else {
			a.setStatus("nothing to undo")
		}
		return nil
	case RedoMsg:
		if a.Store.Redo() {
			a.setStatus("redo")
		} else {
			a.setStatus("nothing to redo")
		}
		return nil
	case RequestCloseGroupMsg:
		a.requestCloseGroup()
		return nil
	case NewTabMsg:
		a.newTab()
		return nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return nil

	case ShowSaveSnapshotMsg:
		modal := NewSaveSnapshotModal(a.SnapshotName)
		a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
		return modal.Init()
	case SaveSnapshotMsg:
		a.Overlays.Pop()
		name := msg.Name
		if name == "" {
			name = a.SnapshotName
		}
		if name == "" {
			return func() tea.Msg { return ShowSaveSnapshotMsg{} }
		}
		normalized, err := snapshot.NormalizeName(name)
		if err != nil {
			a.setError(err)
			return nil
		}
		a.saving[normalized]++
		return saveSnapshotCmd(a.Snapshots, normalized, a.Store.State())
	case SnapshotSavedMsg:
		if a.saving[msg.Name] > 0 {
			a.saving[msg.Name]--
		}
		if msg.Err != nil {
			a.setError(msg.Err)
			return nil
		}
		a.onDisk[msg.Name] = msg.State
		a.SnapshotName = msg.Name
		a.setStatus("saved " + msg.Name)
		return nil
	case ShowSnapshotPickerMsg:
		return listSnapshotsCmd(a.Snapshots)
	case SnapshotListMsg:
		if msg.Err != nil {
			a.setError(msg.Err)
			return nil
		}
		a.Overlays.Push(Overlay{View: NewSnapshotPickerModal(msg.Entries)})
		return nil
	case LoadSnapshotMsg:
		a.Overlays.Pop()
		return loadSnapshotCmd(a.Snapshots, msg.Name)
	case SnapshotLoadedMsg:
		if msg.Err != nil {
			a.setError(msg.Err)
			return nil
		}
		if msg.Reload && a.isCurrent(msg.Name, msg.State) {
			return nil
		}
		a.Workspace.CancelDrag()
		if err := a.Store.Replace(context.Background(), msg.State); err != nil {
			a.setError(err)
			return nil
		}
		a.onDisk[msg.Name] = msg.State
		a.SnapshotName = msg.Name
		a.setStatus("loaded " + msg.Name)
		return nil
	case SnapshotChangedMsg:
		if msg.Name == "" || msg.Name != a.SnapshotName || a.saving[msg.Name] > 0 {
			return nil
		}
		return reloadSnapshotCmd(a.Snapshots, msg.Name)
	case DeleteSnapshotMsg:
		return deleteSnapshotCmd(a.Snapshots, msg.Name)
	case SnapshotDeletedMsg:
		if msg.Err != nil {
			a.setError(msg.Err)
			return nil
		}
		delete(a.onDisk, msg.Name)
		if a.SnapshotName == msg.Name {
			a.SnapshotName = ""
		}
		a.setStatus("deleted " + msg.Name)
		return nil

	case ShowTraceMsg:
		w, h := max(a.width*3/4, 20), max(a.Workspace.Height*3/4, 5)
		view := NewTraceView(a.Recorder, w, h)
		a.Overlays.Push(Overlay{View: view})
		return view.Init()

	case MirrorTmuxMsg:
		if !tmux.InTmux() {
			a.setError(fmt.Errorf("not running inside tmux"))
			return nil
		}
		name := a.SnapshotName
		if name == "" {
			name = "panels"
		}
		return mirrorTmuxCmd(name, a.Store.State().Tree)
	case TmuxMirroredMsg:
		if msg.Err != nil {
			a.setError(msg.Err)
			return nil
		}
		a.setStatus(fmt.Sprintf("mirrored %d panes to tmux", len(msg.Panes)))
		return nil
	case TabOutputMsg:
		return nil
	}

	// Anything else (cursor blink, list filtering) belongs to the top modal.
	return a.Overlays.UpdateTop(msg)
}

// isCurrent reports whether a reloaded state needs no action: it is what
// this app last wrote or read under name, or already the open layout.
func (a *AppModel) isCurrent(name string, state panel.State) bool {
	if known, ok := a.onDisk[name]; ok && known.Equal(state) {
		return true
	}
	if state.Equal(a.Store.State()) {
		a.onDisk[name] = state
		return true
	}
	return false
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	if s == "ctrl+c" {
		return tea.Quit
	}
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(s) {
			a.Overlays.Pop()
			return nil
		}
		return a.Overlays.UpdateTop(msg)
	}
	if s == "esc" && a.Workspace.Dragging() {
		a.Workspace.CancelDrag()
		return nil
	}
	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return cmd
		}
	}
	return nil
}

// dispatch applies cmd to the store and reports no-ops on the status line.
func (a *AppModel) dispatch(cmd workspace.Command) {
	a.lastCommand = cmd.Name()
	if a.Store.Dispatch(context.Background(), cmd) {
		a.setStatus("")
		return
	}
	a.setStatus(cmd.Name() + ": nothing to do")
}

// requestCloseGroup closes the focused group, asking first when it holds
// tabs.
func (a *AppModel) requestCloseGroup() {
	s := a.Store.State()
	g, ok := s.FocusedGroup()
	if !ok {
		return
	}
	if err := panel.CanCloseGroup(s, g.ID); err != nil {
		a.setError(err)
		return
	}
	if g.Empty() {
		a.dispatch(workspace.CloseGroup{Group: g.ID})
		return
	}
	a.Overlays.Push(Overlay{View: NewCloseGroupConfirmModal(g), Dismiss: "esc"})
}

// newTab registers a scratch tab and adds it to the focused group.
func (a *AppModel) newTab() {
	s := a.Store.State()
	var id panel.PanelID
	for {
		a.scratch++
		id = panel.PanelID(fmt.Sprintf("scratch-%d", a.scratch))
		_, registered := a.Store.Tab(id)
		_, placed := s.FindTab(id)
		if !registered && !placed {
			break
		}
	}
	n := a.scratch
	a.Store.RegisterTab(panel.TabDefinition{
		ID:    id,
		Title: fmt.Sprintf("scratch %d", n),
		Render: func() string {
			return fmt.Sprintf("scratch buffer %d", n)
		},
	})
	a.dispatch(workspace.AddTab{Tab: id, Index: -1})
}

func (a *AppModel) setStatus(s string) {
	a.Status, a.StatusErr = s, false
}

func (a *AppModel) setError(err error) {
	a.Status, a.StatusErr = err.Error(), true
}

// footer is the status line, or the leader help while a sequence is open.
func (a *AppModel) footer() string {
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		if help := RenderKeybindHelp(a.KeyHandler); help != "" {
			return lipgloss.NewStyle().MaxWidth(max(a.width, 1)).Render(help)
		}
	}
	return a.statusLine()
}

// layout gives the workspace everything above the footer.
func (a *AppModel) layout() {
	a.Workspace.SetSize(a.width, a.height-lipgloss.Height(a.footer()))
	a.Workspace.ResizeTabs()
}

func (a *AppModel) statusLine() string {
	s := a.Store.State()
	var parts []string
	order := panel.RefreshGroupOrder(s.Tree)
	if i, ok := order.Index(s.FocusedGroupID); ok {
		parts = append(parts, fmt.Sprintf("%s [%d/%d]", s.FocusedGroupID, i+1, order.Len()))
	}
	if a.SnapshotName != "" {
		parts = append(parts, a.SnapshotName)
	}
	switch {
	case a.Workspace.DragStatus() != "":
		parts = append(parts, a.Workspace.DragStatus())
	case a.Status != "":
		parts = append(parts, a.Status)
	case a.lastSpan() != "":
		parts = append(parts, a.lastSpan())
	case a.lastCommand != "":
		parts = append(parts, a.lastCommand)
	}
	var hist string
	if a.Store.CanUndo() {
		hist += "u:undo "
	}
	if a.Store.CanRedo() {
		hist += "ctrl+r:redo"
	}
	if hist != "" {
		parts = append(parts, strings.TrimSpace(hist))
	}

	style := Styles.Status
	if a.StatusErr {
		style = Styles.Error
	}
	return style.Render(textutil.PadRightVisual(strings.Join(parts, "  "), max(a.width, 0)))
}

func (a *AppModel) lastSpan() string {
	if a.Recorder == nil {
		return ""
	}
	recent := a.Recorder.Recent()
	if len(recent) == 0 {
		return ""
	}
	sp := recent[0]
	return fmt.Sprintf("%s %s", sp.Name, sp.Duration.Round(time.Microsecond))
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	body := a.Workspace.View()
	if a.Overlays.Len() > 0 {
		body = a.Overlays.Place(a.width, a.Workspace.Height)
	}
	footer := a.footer()
	if body == "" {
		return footer
	}
	return body + "\n" + footer
}
