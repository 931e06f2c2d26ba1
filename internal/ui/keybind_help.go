package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func newLeaderHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h
}

var leaderHelpBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(ColorAccent)).
	Padding(0, 1)

// RenderKeybindHelp shows the keys that can follow the open leader
// sequence, or "" when none is open.
func RenderKeybindHelp(keyHandler *KeyHandler) string {
	if keyHandler == nil || keyHandler.Registry == nil {
		return ""
	}
	pending := keyHandler.Pending()
	if pending == "" {
		pending = "SPC"
	}
	bindings := keyHandler.Registry.helpBindings(pending)
	if len(bindings) == 0 {
		return ""
	}
	h := newLeaderHelp()
	return leaderHelpBox.Render(Styles.Muted.Render(pending) + "  " + h.ShortHelpView(bindings))
}
