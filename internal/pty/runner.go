// Package pty runs commands under a pseudo-terminal so their output can be
// shown inside a tab.
package pty

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and resizes pseudo-terminals.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start spawns cmd attached to a new pty of the given size. The caller ends
// the session by closing the returned handle.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Resize sets the window size of a pty returned by Start. Other handles are
// ignored.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
