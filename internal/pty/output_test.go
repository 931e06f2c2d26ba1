package pty

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTerm replays fixed output and records writes and resizes.
type fakeTerm struct {
	r *strings.Reader

	mu     sync.Mutex
	closed bool
}

func (f *fakeTerm) Read(p []byte) (int, error) { return f.r.Read(p) }

func (f *fakeTerm) Write(p []byte) (int, error) { return len(p), nil }

func (f *fakeTerm) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeRunner struct {
	output  string
	err     error
	term    *fakeTerm
	resized []Size
}

func (r *fakeRunner) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.term = &fakeTerm{r: strings.NewReader(r.output)}
	return r.term, nil
}

func (r *fakeRunner) Resize(rwc io.ReadWriteCloser, size Size) error {
	r.resized = append(r.resized, size)
	return nil
}

func waitDone(t *testing.T, o *Output) {
	t.Helper()
	select {
	case <-o.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("output did not finish")
	}
}

func TestOutput_CollectsLines(t *testing.T) {
	runner := &fakeRunner{output: "one\r\n\x1b[31mtwo\x1b[0m\r\nthree"}
	o := NewOutput(runner, 0)

	require.NoError(t, o.Start(context.Background(), exec.Command("true"), Size{Rows: 24, Cols: 80}))
	waitDone(t, o)

	assert.Equal(t, "one\ntwo\nthree\n[process exited]", o.Render())
	assert.Equal(t, 4, o.Lines())
}

func TestOutput_KeepsTail(t *testing.T) {
	o := NewOutput(&fakeRunner{}, 2)
	_, err := o.Write([]byte("a\nb\nc\nd\n"))
	require.NoError(t, err)

	assert.Equal(t, "c\nd", o.Render())
}

func TestOutput_PartialLinesJoinAcrossWrites(t *testing.T) {
	o := NewOutput(&fakeRunner{}, 10)
	o.Write([]byte("hel"))
	assert.Equal(t, "hel", o.Render())

	o.Write([]byte("lo\nwor"))
	assert.Equal(t, "hello\nwor", o.Render())
	assert.Equal(t, 1, o.Lines())
}

func TestOutput_CarriageReturnRedraws(t *testing.T) {
	o := NewOutput(&fakeRunner{}, 10)
	o.Write([]byte("10%\r50%\r100%\ndone\n"))

	assert.Equal(t, "100%\ndone", o.Render())
}

func TestOutput_OnUpdate(t *testing.T) {
	o := NewOutput(&fakeRunner{}, 10)
	calls := 0
	o.OnUpdate(func() { calls++ })

	o.Write([]byte("x\n"))
	o.Write([]byte("y"))

	assert.Equal(t, 2, calls)
}

func TestOutput_StartTwice(t *testing.T) {
	o := NewOutput(&fakeRunner{output: "x"}, 10)
	require.NoError(t, o.Start(context.Background(), exec.Command("true"), Size{}))
	waitDone(t, o)

	err := o.Start(context.Background(), exec.Command("true"), Size{})
	assert.ErrorIs(t, err, ErrStarted)
}

func TestOutput_StartError(t *testing.T) {
	boom := errors.New("boom")
	o := NewOutput(&fakeRunner{err: boom}, 10)

	err := o.Start(context.Background(), exec.Command("true"), Size{})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, o.Close())
}

func TestOutput_ResizeAndClose(t *testing.T) {
	runner := &fakeRunner{output: ""}
	o := NewOutput(runner, 10)

	assert.NoError(t, o.Resize(Size{Rows: 1, Cols: 1}), "resize before start is a no-op")
	assert.Empty(t, runner.resized)

	require.NoError(t, o.Start(context.Background(), exec.Command("true"), Size{Rows: 24, Cols: 80}))
	require.NoError(t, o.Resize(Size{Rows: 40, Cols: 120}))
	assert.Equal(t, []Size{{Rows: 40, Cols: 120}}, runner.resized)

	require.NoError(t, o.Close())
	waitDone(t, o)
	runner.term.mu.Lock()
	defer runner.term.mu.Unlock()
	assert.True(t, runner.term.closed)
}

func TestOutput_ContextCancelCloses(t *testing.T) {
	runner := &fakeRunner{output: ""}
	o := NewOutput(runner, 10)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, o.Start(ctx, exec.Command("true"), Size{}))
	cancel()

	require.Eventually(t, func() bool {
		runner.term.mu.Lock()
		defer runner.term.mu.Unlock()
		return runner.term.closed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOutput_CRLFSplitAcrossWrites(t *testing.T) {
	o := NewOutput(&fakeRunner{}, 10)
	o.Write([]byte("one\r"))
	o.Write([]byte("\ntwo\r\n"))

	assert.Equal(t, "one\ntwo", o.Render())
}
