package panel

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree is v(0.5, g1, h(0.3, g2, g3)).
func sampleTree() *Node {
	return NewSplit(Vertical, 0.5,
		Leaf("g1"),
		NewSplit(Horizontal, 0.3, Leaf("g2"), Leaf("g3")),
	)
}

func TestCollectGroupsInOrder_InOrderWalk(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, []GroupID{"g1", "g2", "g3"}, GroupsInOrder(tree))
	assert.Equal(t, 3, LeafCount(tree))
}

func TestCollectGroupsInOrder_Restartable(t *testing.T) {
	seq := CollectGroupsInOrder(sampleTree())

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestCollectGroupsInOrder_EarlyBreak(t *testing.T) {
	var got []GroupID
	for id := range CollectGroupsInOrder(sampleTree()) {
		got = append(got, id)
		if id == "g2" {
			break
		}
	}
	assert.Equal(t, []GroupID{"g1", "g2"}, got)
}

func TestIsGroup(t *testing.T) {
	assert.True(t, IsGroup(Leaf("g1")))
	assert.False(t, IsGroup(sampleTree()))
	assert.False(t, IsGroup(nil))
}

func TestFindGroup_Paths(t *testing.T) {
	tree := sampleTree()

	p, ok := FindGroup(tree, "g3")
	require.True(t, ok)
	assert.Equal(t, Path{Second, Second}, p)

	p, ok = FindGroup(Leaf("g1"), "g1")
	require.True(t, ok)
	assert.Empty(t, p)

	_, ok = FindGroup(tree, "nope")
	assert.False(t, ok)
}

func TestNodeAt(t *testing.T) {
	tree := sampleTree()

	n, ok := NodeAt(tree, Path{Second})
	require.True(t, ok)
	assert.Equal(t, SplitNode, n.Kind)
	assert.Equal(t, 0.3, n.Ratio)

	_, ok = NodeAt(tree, Path{First, First})
	assert.False(t, ok, "cannot descend below a leaf")
}

func TestMalformedTreePanics(t *testing.T) {
	broken := &Node{Kind: SplitNode, Direction: Vertical, Ratio: 0.5, First: Leaf("g1")}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrMalformedTree))
	}()
	GroupsInOrder(broken)
}

func TestNode_EqualAndString(t *testing.T) {
	assert.True(t, sampleTree().Equal(sampleTree()))
	assert.False(t, sampleTree().Equal(Leaf("g1")))
	assert.Equal(t, "v(0.50, g1, h(0.30, g2, g3))", sampleTree().String())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Vertical")
	require.NoError(t, err)
	assert.Equal(t, Vertical, d)

	_, err = ParseDirection("diagonal")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRefreshGroupOrder(t *testing.T) {
	o := RefreshGroupOrder(sampleTree())

	assert.Equal(t, 3, o.Len())
	i, ok := o.Index("g2")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	id, ok := o.At(2)
	require.True(t, ok)
	assert.Equal(t, GroupID("g3"), id)
	_, ok = o.At(3)
	assert.False(t, ok)
}
