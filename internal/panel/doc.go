// Package panel implements the panel-tree layout engine: a binary split tree
// of tabbed panel groups and the commands that split, close, merge, move,
// reorder and focus-navigate through it.
//
// Core types:
//   - Node: tagged union of a leaf (one group) and a split (two children at a ratio)
//   - GroupModel: ordered tab ids with one active tab
//   - State: tree + group table + focused group
//   - DropZone: the semantic target of a drag-and-drop gesture
//
// Every command takes a State (or Node / GroupModel) and returns a new one.
// Inputs are never modified, so callers can keep old states as undo
// snapshots. Commands that reference unknown groups or tabs return their
// input unchanged. A structurally broken tree (a split with a missing child)
// is a caller bug and makes the engine panic with ErrMalformedTree.
package panel
