package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Watch_ReportsSaves(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "workspaces"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx, 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, store.Save("Dev", sampleState()))

	select {
	case name := <-changes:
		assert.Equal(t, "dev", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "channel should close after cancel")
}

func TestSnapshotName(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want string
		ok   bool
	}{
		{fsnotify.Event{Name: "/w/dev.json", Op: fsnotify.Create}, "dev", true},
		{fsnotify.Event{Name: "/w/dev.json", Op: fsnotify.Write}, "dev", true},
		{fsnotify.Event{Name: "/w/dev.json", Op: fsnotify.Remove}, "", false},
		{fsnotify.Event{Name: "/w/.tmp-123.json", Op: fsnotify.Create}, "", false},
		{fsnotify.Event{Name: "/w/readme.md", Op: fsnotify.Write}, "", false},
	}
	for _, tt := range tests {
		got, ok := snapshotName(tt.ev)
		assert.Equal(t, tt.want, got, tt.ev.String())
		assert.Equal(t, tt.ok, ok, tt.ev.String())
	}
}
