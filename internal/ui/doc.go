// Package ui is the Bubble Tea shell around a workspace.Store.
//
// The pieces:
//   - WorkspaceView: renders the panel tree as bordered groups with tab bars
//     and turns mouse input (focus, tab drags, divider drags) into commands
//   - KeybindRegistry and KeyHandler: spacemacs-style SPC sequences
//   - OverlayStack: modals (confirm, snapshot picker, trace log) that take
//     keys before the workspace does
//
// Every layout change is sent as a CommandMsg and applied through
// workspace.Store.Dispatch, so undo and tracing see all of them.
package ui
