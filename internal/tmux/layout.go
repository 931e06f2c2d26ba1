package tmux

import (
	"fmt"
	"math"

	"panellayout/internal/panel"
)

// SplitStep is one split-window call. Panes are numbered in creation order:
// pane 0 is the window's first pane and step i creates pane NewPane.
type SplitStep struct {
	Pane       int  // Ordinal of the pane to split
	NewPane    int  // Ordinal of the pane the step creates
	Horizontal bool // tmux -h: side by side
	Percent    int  // Share of the new pane, 1-99
}

// Plan is the ordered split steps for a tree plus the group each pane ends
// up showing, indexed by pane ordinal.
type Plan struct {
	Steps  []SplitStep
	Groups []panel.GroupID
}

// PlanLayout converts tree into split steps. At a split the current pane
// keeps the first child and the new pane takes the second; the first
// subtree is laid out before the second.
func PlanLayout(tree *panel.Node) Plan {
	p := Plan{Groups: []panel.GroupID{""}}
	p.add(tree, 0)
	return p
}

func (p *Plan) add(n *panel.Node, pane int) {
	if n.IsGroup() {
		p.Groups[pane] = n.GroupID
		return
	}
	created := len(p.Groups)
	p.Groups = append(p.Groups, "")
	p.Steps = append(p.Steps, SplitStep{
		Pane:       pane,
		NewPane:    created,
		Horizontal: n.Direction == panel.Vertical,
		Percent:    secondPercent(n.Ratio),
	})
	p.add(n.First, pane)
	p.add(n.Second, created)
}

func secondPercent(ratio float64) int {
	pct := int(math.Round((1 - ratio) * 100))
	return max(1, min(99, pct))
}

// ApplyLayout opens a window named name and replays plan in it. Panes are
// titled with their group id. The window is removed again if a step fails.
func ApplyLayout(name string, plan Plan) (paneIDs []string, err error) {
	root, err := NewWindow(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = KillWindow(root)
		}
	}()

	paneIDs = make([]string, len(plan.Groups))
	paneIDs[0] = root
	for i, step := range plan.Steps {
		id, err := SplitPane(paneIDs[step.Pane], step.Horizontal, step.Percent)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		paneIDs[step.NewPane] = id
	}
	n, err := WindowPaneCount(root)
	if err != nil {
		return nil, err
	}
	if n != len(plan.Groups) {
		return nil, fmt.Errorf("window %s has %d panes, want %d", name, n, len(plan.Groups))
	}
	for i, group := range plan.Groups {
		if err := SetPaneTitle(paneIDs[i], string(group)); err != nil {
			return nil, err
		}
	}
	return paneIDs, nil
}
