package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"panellayout/internal/panel"
	"panellayout/internal/workspace"
)

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// bindDefaults registers the workspace keybindings.
func bindDefaults(reg *KeybindRegistry) {
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	for prefix, label := range map[string]string{
		"SPC s": "Split",
		"SPC g": "Group",
		"SPC m": "Move",
		"SPC t": "Tab",
		"SPC w": "Workspace",
	} {
		reg.Label(prefix, label)
	}

	// Split
	reg.BindWithDesc("SPC s v", command(workspace.SplitFocused{Direction: panel.Vertical, Placement: panel.After}), "Split right")
	reg.BindWithDesc("SPC s h", command(workspace.SplitFocused{Direction: panel.Horizontal, Placement: panel.After}), "Split down")

	// Group
	reg.BindWithDesc("SPC g d", msgCmd(RequestCloseGroupMsg{}), "Close group")
	reg.BindWithDesc("SPC g m", command(workspace.MergeGroup{}), "Merge into next")

	// Focus
	reg.BindWithDesc("tab", command(workspace.FocusNext{}), "Next group")
	reg.BindWithDesc("shift+tab", command(workspace.FocusPrev{}), "Previous group")
	for i := 1; i <= 9; i++ {
		reg.BindWithDesc(strconv.Itoa(i), command(workspace.FocusIndex{Index: i - 1}), "Focus group "+strconv.Itoa(i))
	}
	for _, nav := range []struct {
		keys []string
		dir  panel.NavDirection
	}{
		{[]string{"h", "left"}, panel.NavLeft},
		{[]string{"l", "right"}, panel.NavRight},
		{[]string{"k", "up"}, panel.NavUp},
		{[]string{"j", "down"}, panel.NavDown},
	} {
		for _, k := range nav.keys {
			reg.BindWithDesc(k, command(workspace.FocusNeighbor{Direction: nav.dir}), "Focus "+nav.dir.String())
		}
	}

	// Tabs
	reg.BindWithDesc("[", command(workspace.CycleTab{Delta: -1}), "Previous tab")
	reg.BindWithDesc("]", command(workspace.CycleTab{Delta: 1}), "Next tab")
	reg.BindWithDesc("H", command(workspace.ShiftActiveTab{Delta: -1}), "Shift tab left")
	reg.BindWithDesc("L", command(workspace.ShiftActiveTab{Delta: 1}), "Shift tab right")
	reg.BindWithDesc("SPC t n", msgCmd(NewTabMsg{}), "New tab")
	reg.BindWithDesc("SPC t d", command(workspace.RemoveTab{}), "Close tab")

	// Move the active tab
	reg.BindWithDesc("SPC m h", command(workspace.MoveActiveTab{Position: panel.SplitLeft}), "Split left")
	reg.BindWithDesc("SPC m l", command(workspace.MoveActiveTab{Position: panel.SplitRight}), "Split right")
	reg.BindWithDesc("SPC m k", command(workspace.MoveActiveTab{Position: panel.SplitTop}), "Split up")
	reg.BindWithDesc("SPC m j", command(workspace.MoveActiveTab{Position: panel.SplitBottom}), "Split down")
	reg.BindWithDesc("SPC m n", command(workspace.MoveActiveTabAcross{Delta: 1}), "Next group")
	reg.BindWithDesc("SPC m p", command(workspace.MoveActiveTabAcross{Delta: -1}), "Previous group")

	// Resize
	reg.BindWithDesc("+", command(workspace.Grow{Steps: 1}), "Grow")
	reg.BindWithDesc("=", command(workspace.Grow{Steps: 1}), "Grow")
	reg.BindWithDesc("-", command(workspace.Grow{Steps: -1}), "Shrink")
	reg.BindWithDesc(">", command(workspace.Resize{Direction: panel.Vertical, Steps: 1}), "Wider")
	reg.BindWithDesc("<", command(workspace.Resize{Direction: panel.Vertical, Steps: -1}), "Narrower")

	// History
	reg.BindWithDesc("u", msgCmd(UndoMsg{}), "Undo")
	reg.BindWithDesc("ctrl+r", msgCmd(RedoMsg{}), "Redo")

	// Workspace
	reg.BindWithDesc("SPC w w", msgCmd(SaveSnapshotMsg{}), "Save")
	reg.BindWithDesc("SPC w s", msgCmd(ShowSaveSnapshotMsg{}), "Save as")
	reg.BindWithDesc("SPC w l", msgCmd(ShowSnapshotPickerMsg{}), "Open")
	reg.BindWithDesc("SPC w t", msgCmd(MirrorTmuxMsg{}), "Mirror to tmux")
	reg.BindWithDesc("SPC w c", msgCmd(ShowTraceMsg{}), "Command log")
}
