package ui

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"panellayout/internal/panel"
	"panellayout/internal/snapshot"
	"panellayout/internal/tmux"
)

var errNoSnapshots = errors.New("workspace snapshots unavailable")

// saveSnapshotCmd writes state under name off the update loop.
func saveSnapshotCmd(store *snapshot.Store, name string, state panel.State) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return SnapshotSavedMsg{Name: name, Err: errNoSnapshots}
		}
		normalized, err := snapshot.NormalizeName(name)
		if err != nil {
			return SnapshotSavedMsg{Name: name, Err: err}
		}
		if err := store.Save(normalized, state); err != nil {
			log.Printf("save workspace %s: %v", normalized, err)
			return SnapshotSavedMsg{Name: normalized, Err: err}
		}
		return SnapshotSavedMsg{Name: normalized, State: state}
	}
}

// loadSnapshotCmd reads the snapshot for name.
func loadSnapshotCmd(store *snapshot.Store, name string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return SnapshotLoadedMsg{Name: name, Err: errNoSnapshots}
		}
		state, ok, err := store.Load(name)
		if err != nil {
			log.Printf("%v", err)
			return SnapshotLoadedMsg{Name: name, Err: err}
		}
		if !ok {
			return SnapshotLoadedMsg{Name: name, Err: fmt.Errorf("workspace %s not found", name)}
		}
		return SnapshotLoadedMsg{Name: name, State: state}
	}
}

// reloadSnapshotCmd re-reads the open workspace after it changed on disk.
func reloadSnapshotCmd(store *snapshot.Store, name string) tea.Cmd {
	load := loadSnapshotCmd(store, name)
	return func() tea.Msg {
		msg := load().(SnapshotLoadedMsg)
		msg.Reload = true
		return msg
	}
}

// listSnapshotsCmd lists saved workspaces with a short summary of each.
// Snapshots that fail to load are listed without one.
func listSnapshotsCmd(store *snapshot.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return SnapshotListMsg{Err: errNoSnapshots}
		}
		names, err := store.List()
		if err != nil {
			return SnapshotListMsg{Err: err}
		}
		entries := make([]SnapshotEntry, len(names))
		for i, name := range names {
			entries[i] = SnapshotEntry{Name: name}
			if state, ok, err := store.Load(name); err == nil && ok {
				entries[i].Summary = snapshot.Summary(state)
			}
		}
		return SnapshotListMsg{Entries: entries}
	}
}

func deleteSnapshotCmd(store *snapshot.Store, name string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return SnapshotDeletedMsg{Name: name, Err: errNoSnapshots}
		}
		return SnapshotDeletedMsg{Name: name, Err: store.Delete(name)}
	}
}

// mirrorTmuxCmd recreates tree as a new tmux window named name.
func mirrorTmuxCmd(name string, tree *panel.Node) tea.Cmd {
	return func() tea.Msg {
		panes, err := tmux.ApplyLayout(name, tmux.PlanLayout(tree))
		if err != nil {
			log.Printf("mirror layout to tmux: %v", err)
		}
		return TmuxMirroredMsg{Panes: panes, Err: err}
	}
}
