package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panellayout/internal/panel"
)

func sampleState() panel.State {
	return panel.State{
		Tree: panel.NewSplit(panel.Vertical, 0.4, panel.Leaf("g1"), panel.Leaf("g2")),
		GroupsByID: map[panel.GroupID]panel.GroupModel{
			"g1": panel.NewGroup("g1", "a", "b"),
			"g2": panel.NewGroup("g2", "c"),
		},
		FocusedGroupID: "g2",
	}
}

func TestNewStore_UsesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	store, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestStore_Path_NormalizesName(t *testing.T) {
	store := NewStoreAt("/base")

	got, err := store.Path("My Layout")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/base", "my-layout.json"), got)

	for _, bad := range []string{"", "  ", "..", "a/b", `a\b`} {
		_, err := store.Path(bad)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", bad)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested"))
	want := sampleState()

	require.NoError(t, store.Save("Dev", want))

	got, ok, err := store.Load("dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(want), "got %s", got.Tree)

	leftovers, err := filepath.Glob(filepath.Join(store.Dir(), ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStore_Save_Overwrites(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	require.NoError(t, store.Save("dev", sampleState()))

	next := panel.CloseGroup(sampleState(), "g2")
	require.NoError(t, store.Save("dev", next))

	got, ok, err := store.Load("dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "g1", got.Tree.String())
}

func TestStore_Load_Missing(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	_, ok, err := store.Load("nope")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Load_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"tree":`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.json"),
		[]byte(`{"tree":{"type":"leaf","groupId":"g1"},"groups":{}}`), 0o644))

	_, ok, err := store.Load("bad")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load workspace bad")
	assert.False(t, ok)

	_, _, err = store.Load("orphan")
	assert.ErrorIs(t, err, panel.ErrInvalidState)
}

func TestStore_ListAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Save("zeta", sampleState()))
	require.NoError(t, store.Save("alpha", sampleState()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)

	require.NoError(t, store.Delete("zeta"))
	require.NoError(t, store.Delete("zeta"))
	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, names)
}

func TestStore_List_MissingDir(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "absent"))

	names, err := store.List()
	assert.NoError(t, err)
	assert.Nil(t, names)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "2 groups, 3 tabs", Summary(sampleState()))

	single := panel.State{
		Tree:       panel.Leaf("g1"),
		GroupsByID: map[panel.GroupID]panel.GroupModel{"g1": panel.NewGroup("g1", "a")},
	}
	assert.Equal(t, "1 group, 1 tab", Summary(single))
}
