package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is a modal: a Bubble Tea model that can replace itself on Update.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Overlay is a modal drawn over the workspace.
type Overlay struct {
	View View
	// Dismiss closes the overlay before View sees the key. Empty leaves
	// every key to View.
	Dismiss string
}

// IsDismissKey reports whether key closes o.
func (o Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack holds the open modals. Only the top one gets input or is
// drawn.
type OverlayStack struct {
	items []Overlay
}

// Push opens o above the others.
func (s *OverlayStack) Push(o Overlay) {
	s.items = append(s.items, o)
}

// Pop closes the top overlay. It is a no-op on an empty stack.
func (s *OverlayStack) Pop() (Overlay, bool) {
	top, ok := s.Peek()
	if ok {
		s.items = s.items[:len(s.items)-1]
	}
	return top, ok
}

// Peek returns the top overlay.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.items) == 0 {
		return Overlay{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s *OverlayStack) Len() int {
	return len(s.items)
}

// UpdateTop routes msg to the top overlay and keeps the view it returns.
func (s *OverlayStack) UpdateTop(msg tea.Msg) tea.Cmd {
	if len(s.items) == 0 {
		return nil
	}
	top := &s.items[len(s.items)-1]
	var cmd tea.Cmd
	top.View, cmd = top.View.Update(msg)
	return cmd
}

// Place renders the top overlay centered in a w x h area, or "" when the
// stack is empty.
func (s *OverlayStack) Place(w, h int) string {
	top, ok := s.Peek()
	if !ok {
		return ""
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, top.View.View())
}
