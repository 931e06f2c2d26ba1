package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseLeaf_PromotesSibling(t *testing.T) {
	tree := sampleTree()

	got, err := CloseLeaf(tree, "g2")
	require.NoError(t, err)
	assert.Equal(t, "v(0.50, g1, g3)", got.String())

	got, err = CloseLeaf(tree, "g1")
	require.NoError(t, err)
	assert.Same(t, tree.Second, got, "sibling subtree is promoted as is")
}

func TestCloseLeaf_LastGroupRefused(t *testing.T) {
	tree := Leaf("g1")

	got, err := CloseLeaf(tree, "g1")
	assert.ErrorIs(t, err, ErrCannotCloseLastGroup)
	assert.Same(t, tree, got)
}

func TestCloseLeaf_Unknown(t *testing.T) {
	tree := sampleTree()

	got, err := CloseLeaf(tree, "zzz")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Same(t, tree, got)
}

func TestFocusOrderConsistentAfterSplitsAndCloses(t *testing.T) {
	ids := NewSequentialIDs("g")
	first := ids.Next()
	tree := Leaf(first)
	live := []GroupID{first}

	steps := []struct {
		split  bool
		target int
		dir    Direction
	}{
		{true, 0, Vertical},
		{true, 1, Horizontal},
		{true, 0, Horizontal},
		{false, 2, 0},
		{true, 2, Vertical},
		{false, 0, 0},
		{true, 1, Vertical},
		{false, 3, 0},
	}
	for i, st := range steps {
		var err error
		if st.split {
			id := ids.Next()
			tree, err = SplitLeaf(tree, live[st.target], st.dir, id, After)
			require.NoError(t, err)
		} else {
			tree, err = CloseLeaf(tree, live[st.target])
			require.NoError(t, err)
		}
		live = GroupsInOrder(tree)

		seen := map[GroupID]bool{}
		for _, id := range live {
			assert.False(t, seen[id], "step %d: duplicate %s", i, id)
			seen[id] = true
		}
		assert.Equal(t, LeafCount(tree), len(live), "step %d", i)
	}
}
