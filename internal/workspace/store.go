// Package workspace owns the live panel state of a session. A Store applies
// Commands to it, keeps undo/redo history and records one trace span per
// dispatched command.
package workspace

import (
	"context"
	"fmt"
	"sync"

	"panellayout/internal/panel"
	"panellayout/internal/trace"
)

const (
	// DefaultHistoryLimit is the number of undo steps kept when Options
	// leaves HistoryLimit at zero.
	DefaultHistoryLimit = 100
	// DefaultResizeStep is the ratio change of one resize step.
	DefaultResizeStep = 0.05
	// GroupIDPrefix prefixes every generated group id.
	GroupIDPrefix = "g"
)

// Options configures a Store. Zero fields take defaults.
type Options struct {
	HistoryLimit int
	Ratio        panel.RatioBounds
	ResizeStep   float64
}

func (o Options) withDefaults() Options {
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Ratio == (panel.RatioBounds{}) {
		o.Ratio = panel.DefaultRatioBounds
	}
	if o.ResizeStep <= 0 {
		o.ResizeStep = DefaultResizeStep
	}
	return o
}

// Store holds the current state, the undo and redo stacks and the tab
// registry. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	state    panel.State
	undo     []panel.State // Oldest first
	redo     []panel.State // Most recently undone last
	tabs     map[panel.PanelID]panel.TabDefinition
	ids      panel.IDFactory
	opts     Options
	recorder *trace.Recorder // nil disables span recording
}

// New builds the initial single-group state holding tabs.
func New(tabs []panel.TabDefinition, opts Options) *Store {
	ids := panel.NewSequentialIDs(GroupIDPrefix)
	return newStore(panel.BuildInitialState(tabs, ids), ids, tabs, opts)
}

// Restore wraps a previously saved state. Tabs named by the state but
// missing from tabs are registered with their id as title.
func Restore(state panel.State, tabs []panel.TabDefinition, opts Options) (*Store, error) {
	if err := panel.Validate(state); err != nil {
		return nil, fmt.Errorf("restore workspace: %w", err)
	}
	s := newStore(state, panel.SequentialIDsAfter(state, GroupIDPrefix), tabs, opts)
	for _, g := range state.GroupsByID {
		for _, id := range g.Tabs {
			if _, ok := s.tabs[id]; !ok {
				s.tabs[id] = panel.TabDefinition{ID: id, Title: string(id)}
			}
		}
	}
	return s, nil
}

func newStore(state panel.State, ids panel.IDFactory, tabs []panel.TabDefinition, opts Options) *Store {
	s := &Store{
		state: state,
		tabs:  make(map[panel.PanelID]panel.TabDefinition, len(tabs)),
		ids:   ids,
		opts:  opts.withDefaults(),
	}
	for _, t := range tabs {
		s.tabs[t.ID] = t
	}
	return s
}

// SetRecorder attaches a span recorder. Passing nil disables recording.
func (s *Store) SetRecorder(r *trace.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// State returns the current state. States are immutable values, so the
// caller may keep it.
func (s *Store) State() panel.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Options returns the effective options.
func (s *Store) Options() Options {
	return s.opts
}

// Tab returns the definition registered for id.
func (s *Store) Tab(id panel.PanelID) (panel.TabDefinition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tabs[id]
	return t, ok
}

// RegisterTab adds or replaces a tab definition. Registration alone does not
// place the tab in any group; dispatch AddTab for that.
func (s *Store) RegisterTab(t panel.TabDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[t.ID] = t
}

// Dispatch applies cmd to the current state. It reports whether the state
// changed; only changes are pushed onto the undo stack.
func (s *Store) Dispatch(ctx context.Context, cmd Command) bool {
	s.mu.Lock()
	recorder := s.recorder
	var span *trace.Span
	if recorder != nil {
		span = recorder.Start(cmd.Name(), cmd.Attributes())
	}

	prev := s.state
	next := cmd.Apply(prev, Env{IDs: s.ids, Ratio: s.opts.Ratio, ResizeStep: s.opts.ResizeStep})
	changed := !next.Equal(prev)
	if changed {
		s.pushUndo(prev)
		s.redo = nil
		s.state = next
	}
	s.mu.Unlock()

	if span != nil {
		span.Attributes["changed"] = fmt.Sprint(changed)
		span.Attributes["groups"] = fmt.Sprint(panel.LeafCount(next.Tree))
		recorder.End(ctx, span)
	}
	return changed
}

// Replace swaps in a whole new state, e.g. one loaded from a snapshot. It
// is undoable like any command.
func (s *Store) Replace(ctx context.Context, state panel.State) error {
	if err := panel.Validate(state); err != nil {
		return fmt.Errorf("replace workspace: %w", err)
	}
	s.Dispatch(ctx, replace{state: state})
	s.mu.Lock()
	s.ids = panel.SequentialIDsAfter(unionGroups(s.state, s.undo), GroupIDPrefix)
	s.mu.Unlock()
	return nil
}

// replace is the command behind Store.Replace.
type replace struct {
	state panel.State
}

func (replace) Name() string                         { return "replace" }
func (c replace) Apply(panel.State, Env) panel.State { return c.state }
func (replace) Attributes() map[string]string        { return nil }

// unionGroups returns a state whose group table holds every group id seen
// in cur and history, for resuming id generation.
func unionGroups(cur panel.State, history []panel.State) panel.State {
	all := make(map[panel.GroupID]panel.GroupModel, len(cur.GroupsByID))
	for _, st := range append([]panel.State{cur}, history...) {
		for id, g := range st.GroupsByID {
			all[id] = g
		}
	}
	return panel.State{GroupsByID: all}
}

func (s *Store) pushUndo(st panel.State) {
	s.undo = append(s.undo, st)
	if over := len(s.undo) - s.opts.HistoryLimit; over > 0 {
		s.undo = append(s.undo[:0:0], s.undo[over:]...)
	}
}

// Undo restores the state before the last change.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	last := len(s.undo) - 1
	s.redo = append(s.redo, s.state)
	s.state = s.undo[last]
	s.undo = s.undo[:last]
	return true
}

// Redo reapplies the last undone change.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	last := len(s.redo) - 1
	s.undo = append(s.undo, s.state)
	s.state = s.redo[last]
	s.redo = s.redo[:last]
	return true
}

// CanUndo reports whether Undo would change the state.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would change the state.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}
