// Package tmux mirrors a panel layout into tmux panes via exec.
// Commands target the current tmux server (TMUX env set).
package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// InTmux reports whether the process runs inside a tmux client.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

// run executes tmux with args and returns its trimmed stdout.
func run(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(errOut.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// WindowPaneCount returns the number of panes in the window of target, or
// of the current window when target is empty.
func WindowPaneCount(target string) (int, error) {
	args := []string{"display-message", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	out, err := run(append(args, "#{window_panes}")...)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("parse pane count: %w", err)
	}
	return n, nil
}

// NewWindow opens a background window named name and returns the id of its
// only pane (e.g. %4).
func NewWindow(name string) (paneID string, err error) {
	return run("new-window", "-d", "-P", "-F", "#{pane_id}", "-n", name)
}

// SplitPane splits target and returns the new pane ID. The new pane takes
// percent of the space and is placed right of (horizontal) or below
// (vertical) target, like split-window -h / -v.
func SplitPane(target string, horizontal bool, percent int) (string, error) {
	return run(splitArgs(target, horizontal, percent)...)
}

func splitArgs(target string, horizontal bool, percent int) []string {
	flag := "-v"
	if horizontal {
		flag = "-h"
	}
	return []string{"split-window", "-d", flag, "-l", strconv.Itoa(percent) + "%", "-t", target, "-P", "-F", "#{pane_id}"}
}

// SetPaneTitle sets the title shown in the pane border.
func SetPaneTitle(paneID, title string) error {
	_, err := run("select-pane", "-t", paneID, "-T", title)
	return err
}

// KillWindow kills the window holding paneID.
func KillWindow(paneID string) error {
	_, err := run("kill-window", "-t", paneID)
	return err
}

// KillPane kills the pane with the given ID.
func KillPane(paneID string) error {
	_, err := run("kill-pane", "-t", paneID)
	return err
}
