package ui

import "github.com/charmbracelet/lipgloss"

type modalKind int

const (
	modalNormal modalKind = iota
	modalWarning
	modalList // tighter padding around a bubbles list
)

var (
	modalHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	modalWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	modalTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	modalDanger  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorDanger))
	modalBorders = map[modalKind]lipgloss.Style{
		modalNormal:  modalBox(ColorHighlight).Padding(1, 2),
		modalWarning: modalBox(ColorDanger).Padding(1, 2),
		modalList:    modalBox(ColorHighlight).Padding(0, 1),
	}
)

func modalBox(color string) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(color))
}

// modalFrame draws a bordered modal: an optional title, the body, then a
// help line.
func modalFrame(kind modalKind, title, body, help string) string {
	var content string
	if title != "" {
		style := modalTitle
		if kind == modalWarning {
			style = modalDanger
		}
		content = style.Render(title) + "\n\n"
	}
	content += body
	if help != "" {
		content += "\n\n" + modalHelp.Render(help)
	}
	return modalBorders[kind].Render(content)
}
