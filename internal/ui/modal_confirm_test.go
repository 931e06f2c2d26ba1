package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"panellayout/internal/panel"
	"panellayout/internal/workspace"
)

func TestCloseGroupConfirmModal(t *testing.T) {
	m := NewCloseGroupConfirmModal(panel.NewGroup("g2", "a", "b", "c", "d", "e"))

	out := m.View()
	for _, want := range []string{"Close group?", "g2", "a, b, c, +2", "5 tabs will be closed"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	_, cmd := m.Update(keyMsg("y"))
	msg, ok := cmd().(CommandMsg)
	if !ok {
		t.Fatalf("y produced %T, want CommandMsg", cmd())
	}
	if msg.Command != (workspace.CloseGroup{Group: "g2"}) {
		t.Errorf("command = %#v", msg.Command)
	}

	_, cmd = m.Update(keyMsg("n"))
	if _, ok := cmd().(DismissModalMsg); !ok {
		t.Error("n should dismiss")
	}

	_, cmd = m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	if cmd != nil {
		t.Error("non-key messages should be ignored")
	}
}

func TestCloseGroupConfirmModal_SingleTab(t *testing.T) {
	m := NewCloseGroupConfirmModal(panel.NewGroup("g1", "a"))
	if !strings.Contains(m.View(), "1 tab will be closed") {
		t.Errorf("view:\n%s", m.View())
	}
}
