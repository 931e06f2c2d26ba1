package pty

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// DefaultLineLimit is the number of output lines an Output keeps.
const DefaultLineLimit = 500

// ErrStarted is returned when Start is called twice.
var ErrStarted = errors.New("command already started")

// Output runs one command and keeps the tail of what it prints, with
// terminal escape sequences removed. It is safe to Render from one
// goroutine while output arrives on another.
type Output struct {
	runner Runner
	limit  int

	mu       sync.Mutex
	lines    []string
	partial  string
	rwc      io.ReadWriteCloser
	cmd      *exec.Cmd
	onUpdate func()
	done     chan struct{}
	stop     func() bool
}

// NewOutput creates an Output that spawns through runner and keeps at most
// limit lines. A non-positive limit uses DefaultLineLimit.
func NewOutput(runner Runner, limit int) *Output {
	if limit <= 0 {
		limit = DefaultLineLimit
	}
	return &Output{runner: runner, limit: limit, done: make(chan struct{})}
}

// OnUpdate registers fn to be called after new output is appended. fn runs
// on the reading goroutine.
func (o *Output) OnUpdate(fn func()) {
	o.mu.Lock()
	o.onUpdate = fn
	o.mu.Unlock()
}

// Start spawns cmd and begins copying its output. Cancelling ctx closes the
// pty.
func (o *Output) Start(ctx context.Context, cmd *exec.Cmd, size Size) error {
	o.mu.Lock()
	if o.rwc != nil {
		o.mu.Unlock()
		return ErrStarted
	}
	rwc, err := o.runner.Start(ctx, cmd, size)
	if err != nil {
		o.mu.Unlock()
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	o.rwc = rwc
	o.cmd = cmd
	o.stop = context.AfterFunc(ctx, func() { rwc.Close() })
	o.mu.Unlock()

	go o.copy(rwc)
	return nil
}

func (o *Output) copy(rwc io.Reader) {
	defer close(o.done)
	// Reading a pty after the child exits fails with EIO, which is the
	// normal end of output.
	_, _ = io.Copy(o, rwc)

	status := "[process exited]"
	if o.cmd != nil && o.cmd.Process != nil {
		if err := o.cmd.Wait(); err != nil {
			status = fmt.Sprintf("[process exited: %v]", err)
		}
	}
	o.appendLine(status)
}

func (o *Output) appendLine(line string) {
	o.mu.Lock()
	if o.partial != "" {
		o.pushLocked(clean(o.partial))
		o.partial = ""
	}
	o.pushLocked(line)
	fn := o.onUpdate
	o.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Write appends raw terminal output.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	text := o.partial + string(p)
	parts := strings.Split(text, "\n")
	for _, line := range parts[:len(parts)-1] {
		o.pushLocked(clean(line))
	}
	o.partial = parts[len(parts)-1]
	fn := o.onUpdate
	o.mu.Unlock()

	if fn != nil {
		fn()
	}
	return len(p), nil
}

func (o *Output) pushLocked(line string) {
	o.lines = append(o.lines, line)
	if over := len(o.lines) - o.limit; over > 0 {
		o.lines = append(o.lines[:0:0], o.lines[over:]...)
	}
}

// clean keeps the text after the last bare \r, which is what a terminal
// would show for progress-style redraws, and drops escape sequences.
func clean(line string) string {
	line = strings.TrimSuffix(line, "\r")
	if i := strings.LastIndexByte(line, '\r'); i >= 0 {
		line = line[i+1:]
	}
	return ansi.Strip(line)
}

// Render returns the kept output, oldest line first.
func (o *Output) Render() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	lines := o.lines
	if o.partial != "" {
		lines = append(lines[:len(lines):len(lines)], clean(o.partial))
	}
	return strings.Join(lines, "\n")
}

// Lines returns the number of complete lines kept.
func (o *Output) Lines() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.lines)
}

// Done is closed once the command's output has ended.
func (o *Output) Done() <-chan struct{} {
	return o.done
}

// Resize changes the pty size of a running command.
func (o *Output) Resize(size Size) error {
	o.mu.Lock()
	rwc := o.rwc
	o.mu.Unlock()
	if rwc == nil {
		return nil
	}
	return o.runner.Resize(rwc, size)
}

// Close ends the session. The command sees a hangup.
func (o *Output) Close() error {
	o.mu.Lock()
	rwc, stop := o.rwc, o.stop
	o.mu.Unlock()
	if rwc == nil {
		return nil
	}
	if stop != nil {
		stop()
	}
	return rwc.Close()
}
