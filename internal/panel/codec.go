package panel

import (
	"encoding/json"
	"fmt"
)

// Wire records. Trees are plain nested objects tagged by "type".
type (
	nodeJSON struct {
		Type      string    `json:"type"`
		GroupID   GroupID   `json:"groupId,omitempty"`
		Direction string    `json:"direction,omitempty"`
		Ratio     float64   `json:"ratio,omitempty"`
		First     *nodeJSON `json:"first,omitempty"`
		Second    *nodeJSON `json:"second,omitempty"`
	}

	groupJSON struct {
		ID          GroupID   `json:"id"`
		Tabs        []PanelID `json:"tabs"`
		ActiveTabID PanelID   `json:"activeTabId,omitempty"`
	}

	stateJSON struct {
		Tree           *nodeJSON             `json:"tree"`
		Groups         map[GroupID]groupJSON `json:"groups"`
		FocusedGroupID GroupID               `json:"focusedGroupId,omitempty"`
	}
)

const (
	leafType  = "leaf"
	splitType = "split"
)

func toNodeJSON(n *Node) *nodeJSON {
	if n == nil {
		return nil
	}
	if n.Kind == LeafNode {
		return &nodeJSON{Type: leafType, GroupID: n.GroupID}
	}
	return &nodeJSON{
		Type:      splitType,
		Direction: n.Direction.String(),
		Ratio:     n.Ratio,
		First:     toNodeJSON(n.First),
		Second:    toNodeJSON(n.Second),
	}
}

func (w *nodeJSON) node(path Path) (*Node, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: missing node at %v", ErrMalformedTree, path)
	}
	switch w.Type {
	case leafType:
		if w.GroupID == "" {
			return nil, fmt.Errorf("%w: leaf at %v has no group id", ErrMalformedTree, path)
		}
		return Leaf(w.GroupID), nil
	case splitType:
		dir, err := ParseDirection(w.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: split at %v: %v", ErrMalformedTree, path, err)
		}
		first, err := w.First.node(path.child(First))
		if err != nil {
			return nil, err
		}
		second, err := w.Second.node(path.child(Second))
		if err != nil {
			return nil, err
		}
		n := &Node{Kind: SplitNode, Direction: dir, Ratio: w.Ratio, First: first, Second: second}
		if err := validateNode(n, path); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %q at %v", ErrMalformedTree, w.Type, path)
	}
}

// MarshalJSON encodes the tree as nested leaf/split records.
func (n *Node) MarshalJSON() ([]byte, error) {
	if err := validateNode(n, nil); err != nil {
		return nil, err
	}
	return json.Marshal(toNodeJSON(n))
}

// UnmarshalJSON decodes a tree and rejects structurally invalid input.
func (n *Node) UnmarshalJSON(b []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	decoded, err := w.node(nil)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalJSON encodes the state with its group table keyed by id.
func (s State) MarshalJSON() ([]byte, error) {
	if err := validateNode(s.Tree, nil); err != nil {
		return nil, err
	}
	w := stateJSON{
		Tree:           toNodeJSON(s.Tree),
		Groups:         make(map[GroupID]groupJSON, len(s.GroupsByID)),
		FocusedGroupID: s.FocusedGroupID,
	}
	for id, g := range s.GroupsByID {
		tabs := g.Tabs
		if tabs == nil {
			tabs = []PanelID{}
		}
		w.Groups[id] = groupJSON{ID: g.ID, Tabs: tabs, ActiveTabID: g.ActiveTabID}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a state and runs Validate on it. On error s is left
// untouched.
func (s *State) UnmarshalJSON(b []byte) error {
	var w stateJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	tree, err := w.Tree.node(nil)
	if err != nil {
		return err
	}
	decoded := State{
		Tree:           tree,
		GroupsByID:     make(map[GroupID]GroupModel, len(w.Groups)),
		FocusedGroupID: w.FocusedGroupID,
	}
	for id, g := range w.Groups {
		decoded.GroupsByID[id] = GroupModel{ID: g.ID, Tabs: g.Tabs, ActiveTabID: g.ActiveTabID}
	}
	if err := Validate(decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}
