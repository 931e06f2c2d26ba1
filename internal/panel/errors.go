package panel

import "errors"

var (
	// ErrGroupNotFound is returned when a group id is not a leaf of the tree.
	ErrGroupNotFound = errors.New("group not found")
	// ErrDuplicateGroup is returned when a new group id is already in use.
	ErrDuplicateGroup = errors.New("group already exists")
	// ErrCannotCloseLastGroup is returned when closing the only leaf.
	ErrCannotCloseLastGroup = errors.New("cannot close last group")
	// ErrNoSplitAtPath is returned when a path does not address a split.
	ErrNoSplitAtPath = errors.New("no split at path")
	// ErrInvalidRatio is returned for ratios that cannot be clamped (NaN).
	ErrInvalidRatio = errors.New("invalid split ratio")
	// ErrInvalidValue is returned when parsing an unknown enum string.
	ErrInvalidValue = errors.New("invalid value")
	// ErrMalformedTree marks structural invariant violations. The engine
	// panics with an error wrapping it; Validate returns it.
	ErrMalformedTree = errors.New("malformed panel tree")
	// ErrInvalidState marks a State whose group table, tabs or focus do not
	// agree with its tree.
	ErrInvalidState = errors.New("invalid panel state")
)
