package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panellayout/internal/trace"
)

// TraceView lists the recorded command spans of the session, oldest first,
// as an ASCII tree under the session trace.
type TraceView struct {
	recorder *trace.Recorder
	viewport viewport.Model
	width    int
	height   int
}

// Ensure TraceView implements View
var _ View = (*TraceView)(nil)

// NewTraceView creates a trace view over recorder, which may be nil.
func NewTraceView(recorder *trace.Recorder, width, height int) *TraceView {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	v := &TraceView{recorder: recorder, viewport: vp}
	v.SetSize(width, height)
	v.viewport.GotoBottom()
	return v
}

// Init implements View
func (v *TraceView) Init() tea.Cmd {
	return v.viewport.Init()
}

// Update implements View
func (v *TraceView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return v, func() tea.Msg { return DismissModalMsg{} }
		case "j", "down":
			v.viewport.LineDown(1)
			return v, nil
		case "k", "up":
			v.viewport.LineUp(1)
			return v, nil
		case "ctrl+d", "pgdown":
			v.viewport.PageDown()
			return v, nil
		case "ctrl+u", "pgup":
			v.viewport.PageUp()
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *TraceView) View() string {
	return v.viewport.View()
}

// SetSize sets the outer size of the view, border included.
func (v *TraceView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
	v.refreshContent()
}

// refreshContent rebuilds the viewport content from the recorder.
func (v *TraceView) refreshContent() {
	if v.recorder == nil {
		v.viewport.SetContent(Styles.Muted.Render("Tracing disabled"))
		return
	}

	spans := v.recorder.Recent()
	slices.Reverse(spans)

	lines := []string{
		Styles.Title.Render(fmt.Sprintf("Trace: %s (%d commands)", shortTraceID(v.recorder.TraceID()), len(spans))),
		"",
	}
	if len(spans) == 0 {
		lines = append(lines, Styles.Muted.Render("  (no commands yet)"))
	}
	for i, span := range spans {
		lines = append(lines, v.renderSpan(span, i == len(spans)-1))
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderSpan renders one command span: name, duration, whether it changed
// the layout, and its arguments.
func (v *TraceView) renderSpan(span *trace.Span, isLast bool) string {
	connector := "├─"
	if isLast {
		connector = "└─"
	}

	name := span.Name
	if name == "" {
		name = "(unnamed)"
	}

	statusIcon := "✓"
	statusColor := "2" // green: layout changed
	if span.Attributes["changed"] == "false" {
		statusIcon = "·"
		statusColor = ColorMuted
	}

	var args []string
	for _, k := range slices.Sorted(maps.Keys(span.Attributes)) {
		if k == "changed" || k == "groups" || span.Attributes[k] == "" {
			continue
		}
		args = append(args, k+"="+span.Attributes[k])
	}

	line := fmt.Sprintf("%s %s %s %s", connector, name,
		Styles.Muted.Render(formatDuration(span.Duration)),
		lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(statusIcon))
	if len(args) > 0 {
		line += " " + Styles.Muted.Render(strings.Join(args, " "))
	}
	return line
}

// formatDuration formats a command duration in a human-readable way.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	}
	return d.Round(time.Microsecond).String()
}

// shortTraceID returns a shortened version of the trace ID for display
func shortTraceID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}
