package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"panellayout/internal/panel"
	"panellayout/internal/workspace"
)

// ConfirmModal asks a yes/no question. y or enter sends Yes; n or esc
// dismisses.
type ConfirmModal struct {
	Question string
	Subject  string
	Warning  string
	Yes      tea.Msg
}

var _ View = (*ConfirmModal)(nil)

// NewCloseGroupConfirmModal asks before closing g while it still holds
// tabs.
func NewCloseGroupConfirmModal(g panel.GroupModel) *ConfirmModal {
	n := len(g.Tabs)
	noun := "tabs"
	if n == 1 {
		noun = "tab"
	}
	return &ConfirmModal{
		Question: "Close group?",
		Subject:  fmt.Sprintf("Group %s: %s", g.ID, tabList(g.Tabs)),
		Warning:  fmt.Sprintf("%d %s will be closed", n, noun),
		Yes:      CommandMsg{Command: workspace.CloseGroup{Group: g.ID}},
	}
}

func tabList(tabs []panel.PanelID) string {
	const shown = 3
	out := ""
	for i, id := range tabs {
		if i == shown {
			return out + fmt.Sprintf(", +%d", len(tabs)-shown)
		}
		if i > 0 {
			out += ", "
		}
		out += string(id)
	}
	return out
}

func (m *ConfirmModal) Init() tea.Cmd { return nil }

func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "enter":
		yes := m.Yes
		return m, func() tea.Msg { return yes }
	case "n", "esc":
		return m, func() tea.Msg { return DismissModalMsg{} }
	}
	return m, nil
}

func (m *ConfirmModal) View() string {
	body := m.Subject
	if m.Warning != "" {
		body += "\n" + modalWarn.Render(m.Warning)
	}
	return modalFrame(modalWarning, m.Question, body, "y/enter: close  n/esc: keep")
}
