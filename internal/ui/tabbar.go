package ui

import (
	"strings"

	"panellayout/internal/panel"
	"panellayout/internal/ui/textutil"
)

// maxTabTitleWidth caps a single tab label so one long title cannot hide
// the rest of the bar.
const maxTabTitleWidth = 20

const tabSeparator = "│"

// tabSpan is one tab's place in a rendered tab bar, in columns relative to
// the start of the bar.
type tabSpan struct {
	ID    panel.PanelID
	Label string
	X, W  int
}

// tabBar is the laid-out tab strip of one group.
type tabBar struct {
	Spans    []tabSpan
	Width    int
	Overflow bool // some tabs did not fit
}

func tabLabel(title string) string {
	return " " + textutil.Truncate(title, maxTabTitleWidth) + " "
}

// layoutTabBar places tabs left to right in width columns. When the active
// tab would not fit, the bar starts at it instead. A trailing "…" column
// is reserved when tabs are cut off.
func layoutTabBar(tabs []panel.PanelID, title func(panel.PanelID) string, active panel.PanelID, width int) tabBar {
	labels := make([]string, len(tabs))
	for i, id := range tabs {
		labels[i] = tabLabel(title(id))
	}

	place := func(start, avail int) ([]tabSpan, bool) {
		var spans []tabSpan
		x := 0
		for i := start; i < len(tabs); i++ {
			if i > start {
				x++ // separator
			}
			w := textutil.VisualWidth(labels[i])
			if x+w > avail {
				return spans, false
			}
			spans = append(spans, tabSpan{ID: tabs[i], Label: labels[i], X: x, W: w})
			x += w
		}
		return spans, true
	}

	if spans, all := place(0, width); all {
		return tabBar{Spans: spans, Width: width}
	}
	avail := width - 1
	start := 0
	spans, _ := place(0, avail)
	if active != "" && !containsSpan(spans, active) {
		for i, id := range tabs {
			if id == active {
				start = i
			}
		}
		spans, _ = place(start, avail)
	}
	return tabBar{Spans: spans, Width: width, Overflow: true}
}

func containsSpan(spans []tabSpan, id panel.PanelID) bool {
	for _, s := range spans {
		if s.ID == id {
			return true
		}
	}
	return false
}

// render draws the bar exactly b.Width columns wide.
func (b tabBar) render(active panel.PanelID, focused bool) string {
	if b.Width <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for i, s := range b.Spans {
		if i > 0 {
			sb.WriteString(Styles.TabSeparator.Render(tabSeparator))
			used++
		}
		style := Styles.TabInactive
		if s.ID == active {
			style = Styles.TabActiveBlurred
			if focused {
				style = Styles.TabActive
			}
		}
		sb.WriteString(style.Render(s.Label))
		used += s.W
	}
	pad := b.Width - used
	if b.Overflow {
		pad--
	}
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	if b.Overflow {
		sb.WriteString(Styles.Muted.Render(textutil.TruncateEllipsis))
	}
	return sb.String()
}

// tabAt returns the tab under column x.
func (b tabBar) tabAt(x int) (panel.PanelID, bool) {
	for _, s := range b.Spans {
		if x >= s.X && x < s.X+s.W {
			return s.ID, true
		}
	}
	return "", false
}

// dropAt resolves a drop on column x of the bar: the left half of a tab
// inserts before it, the right half after it, and anything past the last
// tab appends.
func (b tabBar) dropAt(x int) (panel.DropPosition, panel.PanelID) {
	for _, s := range b.Spans {
		if x < s.X {
			return panel.BeforeTab, s.ID
		}
		if x < s.X+s.W {
			if x < s.X+s.W/2 {
				return panel.BeforeTab, s.ID
			}
			return panel.AfterTab, s.ID
		}
	}
	return panel.AfterTab, ""
}
