package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout_TilesBounds(t *testing.T) {
	layout := ComputeLayout(sampleTree(), Rect{X: 0, Y: 0, W: 81, H: 20})

	assert.Equal(t, Rect{0, 0, 40, 20}, layout["g1"])
	assert.Equal(t, Rect{40, 0, 41, 6}, layout["g2"])
	assert.Equal(t, Rect{40, 6, 41, 14}, layout["g3"])

	area := 0
	for _, r := range layout {
		area += r.W * r.H
	}
	assert.Equal(t, 81*20, area)
}

func TestGroupAt(t *testing.T) {
	layout := ComputeLayout(sampleTree(), Rect{W: 80, H: 20})

	id, ok := GroupAt(layout, 10, 10)
	require.True(t, ok)
	assert.Equal(t, GroupID("g1"), id)

	id, ok = GroupAt(layout, 79, 19)
	require.True(t, ok)
	assert.Equal(t, GroupID("g3"), id)

	_, ok = GroupAt(layout, 80, 0)
	assert.False(t, ok)
}

func TestDividers(t *testing.T) {
	divs := Dividers(sampleTree(), Rect{W: 80, H: 20})

	require.Len(t, divs, 2)
	assert.Equal(t, Path{}, divs[0].Path)
	assert.Equal(t, 40, divs[0].Pos)
	assert.Equal(t, Path{Second}, divs[1].Path)
	assert.Equal(t, Horizontal, divs[1].Direction)
	assert.Equal(t, 6, divs[1].Pos)

	assert.InDelta(t, 0.25, divs[0].RatioAt(20, 0), 1e-9)
	assert.InDelta(t, 0.5, divs[1].RatioAt(0, 10), 1e-9)
}

func TestDividerDragSetsClampedRatio(t *testing.T) {
	tree := sampleTree()
	div := Dividers(tree, Rect{W: 80, H: 20})[0]

	got, err := SetSplitRatio(tree, div.Path, div.RatioAt(2, 0))
	require.NoError(t, err)
	assert.Equal(t, MinRatio, got.Ratio)
}

func TestResolveDropZone(t *testing.T) {
	layout := map[GroupID]Rect{"g1": {X: 0, Y: 0, W: 40, H: 20}}

	tests := []struct {
		x, y int
		want DropPosition
	}{
		{1, 10, SplitLeft},
		{38, 10, SplitRight},
		{20, 1, SplitTop},
		{20, 18, SplitBottom},
		{20, 10, AfterTab},
	}
	for _, tt := range tests {
		zone, ok := ResolveDropZone(layout, tt.x, tt.y)
		require.True(t, ok)
		assert.Equal(t, GroupID("g1"), zone.TargetGroupID)
		assert.Equal(t, tt.want, zone.Position, "(%d,%d)", tt.x, tt.y)
	}

	_, ok := ResolveDropZone(layout, 50, 50)
	assert.False(t, ok)
}

func TestDropPosition_Text(t *testing.T) {
	b, err := SplitTop.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "split-top", string(b))

	var p DropPosition
	require.NoError(t, p.UnmarshalText([]byte("after-tab")))
	assert.Equal(t, AfterTab, p)
	assert.ErrorIs(t, p.UnmarshalText([]byte("middle")), ErrInvalidValue)
}
