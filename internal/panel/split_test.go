package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLeaf_Placement(t *testing.T) {
	after, err := SplitLeaf(Leaf("g1"), "g1", Vertical, "g2", After)
	require.NoError(t, err)
	assert.Equal(t, "v(0.50, g1, g2)", after.String())

	before, err := SplitLeaf(Leaf("g1"), "g1", Horizontal, "g2", Before)
	require.NoError(t, err)
	assert.Equal(t, "h(0.50, g2, g1)", before.String())
}

func TestSplitLeaf_SharesUntouchedSubtrees(t *testing.T) {
	tree := sampleTree()

	got, err := SplitLeaf(tree, "g3", Vertical, "g4", After)
	require.NoError(t, err)

	assert.Same(t, tree.First, got.First)
	assert.Same(t, tree.Second.First, got.Second.First)
	assert.Equal(t, "v(0.50, g1, h(0.30, g2, g3))", tree.String(), "input must not change")
}

func TestSplitLeaf_Errors(t *testing.T) {
	tree := sampleTree()

	got, err := SplitLeaf(tree, "missing", Vertical, "g9", After)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Same(t, tree, got)

	got, err = SplitLeaf(tree, "g1", Vertical, "g2", After)
	assert.ErrorIs(t, err, ErrDuplicateGroup)
	assert.Same(t, tree, got)
}

func TestSplitThenCloseRoundTrip(t *testing.T) {
	for _, target := range []GroupID{"g1", "g2", "g3"} {
		for _, dir := range []Direction{Horizontal, Vertical} {
			for _, placement := range []Placement{Before, After} {
				tree := sampleTree()
				split, err := SplitLeaf(tree, target, dir, "new", placement)
				require.NoError(t, err)

				back, err := CloseLeaf(split, "new")
				require.NoError(t, err)
				assert.True(t, back.Equal(tree), "split %s %v %v then close: got %v", target, dir, placement, back)
			}
		}
	}
}

func TestSetSplitRatio_Clamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.3, 0.3},
		{0.05, MinRatio},
		{-4, MinRatio},
		{0.95, MaxRatio},
		{12, MaxRatio},
		{math.Inf(1), MaxRatio},
		{0.1, 0.1},
		{0.9, 0.9},
	}
	for _, tt := range tests {
		got, err := SetSplitRatio(sampleTree(), Path{Second}, tt.in)
		require.NoError(t, err)
		n, _ := NodeAt(got, Path{Second})
		assert.Equal(t, tt.want, n.Ratio, "ratio %v", tt.in)
	}
}

func TestSetSplitRatio_PathCopiesOnlyAncestors(t *testing.T) {
	tree := sampleTree()

	got, err := SetSplitRatio(tree, Path{Second}, 0.7)
	require.NoError(t, err)

	assert.NotSame(t, tree, got)
	assert.Same(t, tree.First, got.First)
	assert.Same(t, tree.Second.First, got.Second.First)
	assert.Equal(t, 0.3, tree.Second.Ratio)
	assert.Equal(t, 0.5, got.Ratio)
}

func TestSetSplitRatio_Errors(t *testing.T) {
	tree := sampleTree()

	_, err := SetSplitRatio(tree, Path{First}, 0.5)
	assert.ErrorIs(t, err, ErrNoSplitAtPath)

	_, err = SetSplitRatio(tree, Path{First, Second}, 0.5)
	assert.ErrorIs(t, err, ErrNoSplitAtPath)

	got, err := SetSplitRatio(tree, Path{}, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidRatio)
	assert.Same(t, tree, got)
}

func TestRatioBounds_Custom(t *testing.T) {
	got, err := SetSplitRatioWithin(sampleTree(), Path{}, 0.1, RatioBounds{Min: 0.25, Max: 0.75})
	require.NoError(t, err)
	assert.Equal(t, 0.25, got.Ratio)
}
