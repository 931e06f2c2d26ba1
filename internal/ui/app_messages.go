package ui

import (
	"panellayout/internal/panel"
	"panellayout/internal/workspace"
)

// CommandMsg asks the app to dispatch a workspace command.
type CommandMsg struct {
	Command workspace.Command
}

// UndoMsg reverts the last workspace change.
type UndoMsg struct{}

// RedoMsg re-applies the last undone change.
type RedoMsg struct{}

// RequestCloseGroupMsg closes the focused group, asking first when it still
// holds tabs.
type RequestCloseGroupMsg struct{}

// NewTabMsg adds a fresh scratch tab to the focused group.
type NewTabMsg struct{}

// DismissModalMsg is sent when the user dismisses a modal (e.g. Esc).
type DismissModalMsg struct{}

// ShowSaveSnapshotMsg opens the name prompt for saving the workspace.
type ShowSaveSnapshotMsg struct{}

// ShowSnapshotPickerMsg opens the list of saved workspaces.
type ShowSnapshotPickerMsg struct{}

// SaveSnapshotMsg saves the current layout under Name. An empty Name uses
// the current workspace name.
type SaveSnapshotMsg struct {
	Name string
}

// SnapshotSavedMsg reports the outcome of a save. State is what was
// written.
type SnapshotSavedMsg struct {
	Name  string
	State panel.State
	Err   error
}

// LoadSnapshotMsg asks the app to load a saved workspace.
type LoadSnapshotMsg struct {
	Name string
}

// SnapshotLoadedMsg carries a loaded layout back to Update.
type SnapshotLoadedMsg struct {
	Name   string
	State  panel.State
	Err    error
	Reload bool // from SnapshotChangedMsg; silent when nothing changed
}

// DeleteSnapshotMsg removes a saved workspace.
type DeleteSnapshotMsg struct {
	Name string
}

// SnapshotDeletedMsg reports the outcome of a delete.
type SnapshotDeletedMsg struct {
	Name string
	Err  error
}

// ShowTraceMsg opens the log of recorded command spans.
type ShowTraceMsg struct{}

// MirrorTmuxMsg recreates the current layout as a tmux window.
type MirrorTmuxMsg struct{}

// TmuxMirroredMsg reports the outcome of a tmux mirror.
type TmuxMirroredMsg struct {
	Panes []string
	Err   error
}

// SnapshotListMsg carries the saved workspaces for the picker.
type SnapshotListMsg struct {
	Entries []SnapshotEntry
	Err     error
}

// TabOutputMsg reports that a tab's content changed outside the app, e.g. a
// command tab printed more output. It only triggers a redraw.
type TabOutputMsg struct {
	ID panel.PanelID
}

// SnapshotChangedMsg reports that a saved workspace changed on disk. The
// open workspace is reloaded from it.
type SnapshotChangedMsg struct {
	Name string
}
