package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SnapshotEntry is one saved workspace shown in the picker.
type SnapshotEntry struct {
	Name    string
	Summary string // e.g. "2 groups, 3 tabs"; empty when unreadable
}

func (e SnapshotEntry) FilterValue() string { return e.Name }
func (e SnapshotEntry) Title() string       { return e.Name }
func (e SnapshotEntry) Description() string { return e.Summary }

// SnapshotPickerModal lists saved workspaces. Enter loads the selection,
// ctrl+d deletes it.
type SnapshotPickerModal struct {
	list list.Model
}

// Ensure SnapshotPickerModal implements View.
var _ View = (*SnapshotPickerModal)(nil)

// NewSnapshotPickerModal creates a picker over entries.
func NewSnapshotPickerModal(entries []SnapshotEntry) *SnapshotPickerModal {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	delegate := NewCompactListDelegate()
	delegate.ShowDescription = true
	l := list.New(items, delegate, 40, 14)
	l.Title = "Open workspace"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &SnapshotPickerModal{list: l}
}

// Selected returns the highlighted entry.
func (m *SnapshotPickerModal) Selected() (SnapshotEntry, bool) {
	e, ok := m.list.SelectedItem().(SnapshotEntry)
	return e, ok
}

// Init implements View.
func (m *SnapshotPickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *SnapshotPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return LoadSnapshotMsg{Name: e.Name} }
			}
			return m, nil
		case "ctrl+d":
			if e, ok := m.Selected(); ok {
				m.list.RemoveItem(m.list.Index())
				return m, func() tea.Msg { return DeleteSnapshotMsg{Name: e.Name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SnapshotPickerModal) View() string {
	if len(m.list.Items()) == 0 {
		return modalFrame(modalNormal, "Open workspace", Styles.Empty.Render("No saved workspaces"), "Esc: close")
	}
	return modalFrame(modalList, "", m.list.View(), "Enter: open  ctrl+d: delete  /: filter  Esc: cancel")
}

// SaveSnapshotModal prompts for the name to save the workspace under.
type SaveSnapshotModal struct {
	input textinput.Model
}

// Ensure SaveSnapshotModal implements View.
var _ View = (*SaveSnapshotModal)(nil)

// NewSaveSnapshotModal creates the prompt, prefilled with current.
func NewSaveSnapshotModal(current string) *SaveSnapshotModal {
	ti := textinput.New()
	ti.Placeholder = "workspace-name"
	ti.Width = 40
	ti.SetValue(current)
	ti.Focus()
	return &SaveSnapshotModal{input: ti}
}

// Init implements View.
func (m *SaveSnapshotModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *SaveSnapshotModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name != "" {
				return m, func() tea.Msg { return SaveSnapshotMsg{Name: name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SaveSnapshotModal) View() string {
	return modalFrame(modalNormal, "Save workspace", m.input.View(), "Enter: save  Esc: cancel")
}
