package tmux

import (
	"os"
	"slices"
	"testing"

	"panellayout/internal/panel"
)

func TestPlanLayout_SingleLeaf(t *testing.T) {
	plan := PlanLayout(panel.Leaf("g1"))
	if len(plan.Steps) != 0 {
		t.Errorf("Steps = %v, want none", plan.Steps)
	}
	if !slices.Equal(plan.Groups, []panel.GroupID{"g1"}) {
		t.Errorf("Groups = %v, want [g1]", plan.Groups)
	}
}

func TestPlanLayout_Nested(t *testing.T) {
	// g1 | (g2 / g3), with g1 at 30% width and g2 at 75% height.
	tree := panel.NewSplit(panel.Vertical, 0.3,
		panel.Leaf("g1"),
		panel.NewSplit(panel.Horizontal, 0.75, panel.Leaf("g2"), panel.Leaf("g3")),
	)

	plan := PlanLayout(tree)

	wantSteps := []SplitStep{
		{Pane: 0, NewPane: 1, Horizontal: true, Percent: 70},
		{Pane: 1, NewPane: 2, Horizontal: false, Percent: 25},
	}
	if !slices.Equal(plan.Steps, wantSteps) {
		t.Errorf("Steps = %+v, want %+v", plan.Steps, wantSteps)
	}
	wantGroups := []panel.GroupID{"g1", "g2", "g3"}
	if !slices.Equal(plan.Groups, wantGroups) {
		t.Errorf("Groups = %v, want %v", plan.Groups, wantGroups)
	}
}

func TestPlanLayout_FirstSubtreeFirst(t *testing.T) {
	tree := panel.NewSplit(panel.Horizontal, 0.5,
		panel.NewSplit(panel.Vertical, 0.5, panel.Leaf("g1"), panel.Leaf("g2")),
		panel.Leaf("g3"),
	)

	plan := PlanLayout(tree)

	wantSteps := []SplitStep{
		{Pane: 0, NewPane: 1, Horizontal: false, Percent: 50},
		{Pane: 0, NewPane: 2, Horizontal: true, Percent: 50},
	}
	if !slices.Equal(plan.Steps, wantSteps) {
		t.Errorf("Steps = %+v, want %+v", plan.Steps, wantSteps)
	}
	wantGroups := []panel.GroupID{"g1", "g3", "g2"}
	if !slices.Equal(plan.Groups, wantGroups) {
		t.Errorf("Groups = %v, want %v", plan.Groups, wantGroups)
	}
}

func TestSecondPercent_Clamped(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{0.5, 50},
		{0.1, 90},
		{0.999, 1},
		{0.001, 99},
	}
	for _, tt := range tests {
		if got := secondPercent(tt.ratio); got != tt.want {
			t.Errorf("secondPercent(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	got := splitArgs("%3", true, 40)
	want := []string{"split-window", "-d", "-h", "-l", "40%", "-t", "%3", "-P", "-F", "#{pane_id}"}
	if !slices.Equal(got, want) {
		t.Errorf("splitArgs = %v, want %v", got, want)
	}
}

func TestApplyLayout(t *testing.T) {
	if os.Getenv("TMUX") == "" {
		t.Skip("Skipping tmux test: not running inside tmux")
	}
	tree := panel.NewSplit(panel.Vertical, 0.5, panel.Leaf("g1"), panel.Leaf("g2"))
	ids, err := ApplyLayout("panellayout-test", PlanLayout(tree))
	if err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}
	defer KillWindow(ids[0])

	if len(ids) != 2 {
		t.Fatalf("ApplyLayout returned %d panes, want 2", len(ids))
	}
	n, err := WindowPaneCount(ids[0])
	if err != nil {
		t.Fatalf("WindowPaneCount: %v", err)
	}
	if n != 2 {
		t.Errorf("WindowPaneCount = %d, want 2", n)
	}
}
