package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"panellayout/internal/panel"
)

func idTitle(id panel.PanelID) string { return string(id) }

func TestLayoutTabBar_Fits(t *testing.T) {
	bar := layoutTabBar([]panel.PanelID{"a", "b", "c"}, idTitle, "a", 20)

	if bar.Overflow {
		t.Error("three short tabs should fit in 20 columns")
	}
	wantX := []int{0, 4, 8}
	if len(bar.Spans) != len(wantX) {
		t.Fatalf("got %d spans, want %d", len(bar.Spans), len(wantX))
	}
	for i, s := range bar.Spans {
		if s.X != wantX[i] || s.W != 3 {
			t.Errorf("span %d = {X:%d W:%d}, want {X:%d W:3}", i, s.X, s.W, wantX[i])
		}
	}
	if w := lipgloss.Width(bar.render("a", true)); w != 20 {
		t.Errorf("render width = %d, want 20", w)
	}
}

func TestLayoutTabBar_OverflowKeepsActiveVisible(t *testing.T) {
	tabs := []panel.PanelID{"alpha", "bravo", "charlie"}

	bar := layoutTabBar(tabs, idTitle, "charlie", 12)
	if !bar.Overflow {
		t.Fatal("expected overflow")
	}
	if len(bar.Spans) != 1 || bar.Spans[0].ID != "charlie" {
		t.Errorf("spans = %+v, want only charlie", bar.Spans)
	}
	out := bar.render("charlie", false)
	if w := lipgloss.Width(out); w != 12 {
		t.Errorf("render width = %d, want 12", w)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("overflowing bar should end with an ellipsis: %q", out)
	}

	bar = layoutTabBar(tabs, idTitle, "alpha", 12)
	if len(bar.Spans) != 1 || bar.Spans[0].ID != "alpha" {
		t.Errorf("spans = %+v, want only alpha", bar.Spans)
	}
}

func TestLayoutTabBar_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 50)
	bar := layoutTabBar([]panel.PanelID{"t"}, func(panel.PanelID) string { return long }, "t", 80)

	if len(bar.Spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(bar.Spans))
	}
	if bar.Spans[0].W != maxTabTitleWidth+2 {
		t.Errorf("label width = %d, want %d", bar.Spans[0].W, maxTabTitleWidth+2)
	}
}

func TestTabBar_TabAt(t *testing.T) {
	bar := layoutTabBar([]panel.PanelID{"a", "b"}, idTitle, "a", 20)

	tests := []struct {
		x    int
		want panel.PanelID
		ok   bool
	}{
		{0, "a", true},
		{2, "a", true},
		{3, "", false}, // separator
		{4, "b", true},
		{15, "", false},
	}
	for _, tt := range tests {
		got, ok := bar.tabAt(tt.x)
		if got != tt.want || ok != tt.ok {
			t.Errorf("tabAt(%d) = %q, %v; want %q, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTabBar_DropAt(t *testing.T) {
	bar := layoutTabBar([]panel.PanelID{"a", "b"}, idTitle, "a", 20)

	tests := []struct {
		x       int
		wantPos panel.DropPosition
		wantRef panel.PanelID
	}{
		{0, panel.BeforeTab, "a"},
		{2, panel.AfterTab, "a"},
		{3, panel.BeforeTab, "b"},
		{6, panel.AfterTab, "b"},
		{12, panel.AfterTab, ""},
	}
	for _, tt := range tests {
		pos, ref := bar.dropAt(tt.x)
		if pos != tt.wantPos || ref != tt.wantRef {
			t.Errorf("dropAt(%d) = %s %q, want %s %q", tt.x, pos, ref, tt.wantPos, tt.wantRef)
		}
	}
}
