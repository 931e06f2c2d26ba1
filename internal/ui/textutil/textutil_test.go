package textutil

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"editor", 10, "editor"},
		{"editor", 6, "editor"},
		{"terminal", 5, "term…"},
		{"terminal", 1, "…"},
		{"terminal", 0, ""},
		{"日本語タブ", 5, "日本…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if w := VisualWidth(Truncate(tt.in, tt.max)); w > tt.max && tt.max > 0 {
			t.Errorf("Truncate(%q, %d) is %d columns wide", tt.in, tt.max, w)
		}
	}
}

func TestPadRightVisual(t *testing.T) {
	if got := PadRightVisual("ab", 4); got != "ab  " {
		t.Errorf("PadRightVisual = %q, want %q", got, "ab  ")
	}
	if got := PadRightVisual("日本", 5); VisualWidth(got) != 5 {
		t.Errorf("PadRightVisual(wide) width = %d, want 5", VisualWidth(got))
	}
	if got := PadRightVisual("abcdef", 4); got != "abc…" {
		t.Errorf("PadRightVisual(long) = %q, want %q", got, "abc…")
	}
}

func TestFitBlock(t *testing.T) {
	got := FitBlock("first line\n\tx\nthird\nfourth", 6, 3)
	want := []string{"first…", "    x ", "third "}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("FitBlock = %q, want %q", got, want)
	}

	got = FitBlock("one", 3, 2)
	if len(got) != 2 || got[1] != "   " {
		t.Errorf("FitBlock pads missing lines, got %q", got)
	}
	if FitBlock("x", 3, 0) != nil {
		t.Error("FitBlock with zero height should be nil")
	}
}
