package panel

import "fmt"

// CloseLeaf removes the leaf for id. Its parent split is replaced by the
// surviving sibling subtree, so the collapse never reaches further than one
// level. The only leaf of a tree cannot be closed: the tree is returned with
// ErrCannotCloseLastGroup. An unknown id yields ErrGroupNotFound.
func CloseLeaf(tree *Node, id GroupID) (*Node, error) {
	path, ok := FindGroup(tree, id)
	if !ok {
		return tree, fmt.Errorf("close %s: %w", id, ErrGroupNotFound)
	}
	if len(path) == 0 {
		return tree, fmt.Errorf("close %s: %w", id, ErrCannotCloseLastGroup)
	}
	parent := path[:len(path)-1]
	closed := path[len(path)-1]
	return replaceAt(tree, parent, func(split *Node) *Node {
		if closed == First {
			return split.Second
		}
		return split.First
	}), nil
}

// closeLeafPromoted is CloseLeaf that also reports the group that should
// inherit focus: the first leaf of the promoted sibling.
func closeLeafPromoted(tree *Node, id GroupID) (*Node, GroupID, error) {
	path, ok := FindGroup(tree, id)
	if !ok || len(path) == 0 {
		next, err := CloseLeaf(tree, id)
		return next, "", err
	}
	parent, _ := NodeAt(tree, path[:len(path)-1])
	sibling := parent.First
	if path[len(path)-1] == First {
		sibling = parent.Second
	}
	next, err := CloseLeaf(tree, id)
	if err != nil {
		return tree, "", err
	}
	return next, firstLeaf(sibling), nil
}
