package protocol

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

// DefaultWaitDelay is how long output is still read after the bot has
// exited or been killed
const DefaultWaitDelay = 500 * time.Millisecond

// MaxOutputBytes caps how much of a bot's stdout and stderr is kept. The
// rest is read and discarded.
const MaxOutputBytes = 4096

// Runner executes a bot once and returns its standard output
type Runner interface {
	// Run invokes the bot with arg as its only argument. When ctx is done the
	// bot must be stopped and Run must return promptly.
	Run(ctx context.Context, botPath string, arg string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context, botPath string, arg string) ([]byte, error)

// Run calls f
func (f RunnerFunc) Run(ctx context.Context, botPath string, arg string) ([]byte, error) {
	return f(ctx, botPath, arg)
}

// ExecRunner runs bots as child processes
type ExecRunner struct {
	// WaitDelay bounds the wait for output after the process exits.
	// Zero means DefaultWaitDelay.
	WaitDelay time.Duration
}

// NewExecRunner creates an ExecRunner with default settings
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts botPath and waits for it to exit. The bot runs in its own
// process group, which is killed once the bot exits or ctx is done, so
// background children never outlive the move. Output written before the bot
// exited is returned even if such a child still held the pipe.
func (r *ExecRunner) Run(ctx context.Context, botPath string, arg string) ([]byte, error) {
	waitDelay := r.WaitDelay
	if waitDelay == 0 {
		waitDelay = DefaultWaitDelay
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	defer func() { _ = stdoutR.Close() }()
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		_ = stdoutW.Close()
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	defer func() { _ = stderrR.Close() }()

	cmd := exec.CommandContext(ctx, botPath, arg)
	// Files are handed to the child directly, so Wait returns when the bot
	// exits rather than when every holder of the pipe has closed it
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	stdout := &cappedBuffer{max: MaxOutputBytes}
	stderr := &cappedBuffer{max: MaxOutputBytes}
	var readers sync.WaitGroup
	readers.Go(func() { _, _ = io.Copy(stdout, stdoutR) })
	readers.Go(func() { _, _ = io.Copy(stderr, stderrR) })

	runErr := cmd.Start()
	_ = stdoutW.Close()
	_ = stderrW.Close()
	if runErr == nil {
		runErr = cmd.Wait()
		killGroup(cmd)
	}

	drained := make(chan struct{})
	go func() {
		readers.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(waitDelay):
		// A descendant outside the group still holds a pipe
		_ = stdoutR.Close()
		_ = stderrR.Close()
		<-drained
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitErr.Stderr = stderr.Bytes()
	}
	return stdout.Bytes(), runErr
}

// cappedBuffer keeps the first max bytes written to it and accepts the rest
// without storing them, so the writer is never blocked
type cappedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		b.buf.Write(p[:min(room, len(p))])
	}
	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
