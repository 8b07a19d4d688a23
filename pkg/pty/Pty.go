package pty

import (
	"io"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/delta-vision/deltaterm/pkg/logger"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ErrResizeIgnored reports a resize request with unchanged dimensions.
// It is a no-op outcome, not a failure: callers skip the redundant
// SIGWINCH instead of treating the session as broken.
var ErrResizeIgnored = errors.New("resize ignored: dimensions unchanged")

var ErrClosed = errors.New("pty is closed")

// Spawn allocates a pseudo-terminal, starts command with the slave side
// as its controlling terminal and returns the master side. The child is
// placed in its own session so signals address the whole process group.
func Spawn(command string, environment []string, rows uint16, cols uint16) (*Pty, error) {
	argv, err := shellwords.Parse(command)

	if err != nil {
		return nil, errors.Wrap(err, "failed to parse spawn command")
	}

	if len(argv) == 0 {
		return nil, errors.New("spawn command is empty")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = environment

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})

	if err != nil {
		return nil, errors.Wrapf(err, "failed to spawn %s", argv[0])
	}

	p := &Pty{
		master: master,
		cmd:    cmd,
		rows:   rows,
		cols:   cols,
		exited: make(chan struct{}),
	}

	go func() {
		p.exitErr = cmd.Wait()
		close(p.exited)
	}()

	logger.Log.Info("session process spawned",
		zap.String("command", argv[0]),
		zap.Int("pid", cmd.Process.Pid))

	return p, nil
}

// Read blocks on the master side. Once the child has exited and buffered
// output is drained the master returns EIO on Linux, which is the normal
// end-of-session condition and is reported as io.EOF.
func (p *Pty) Read(b []byte) (int, error) {
	n, err := p.master.Read(b)

	if err != nil {
		if errors.Is(err, unix.EIO) {
			return n, io.EOF
		}

		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()

		if closed {
			return n, io.EOF
		}
	}

	return n, err
}

// Write injects bytes as if typed on the terminal.
func (p *Pty) Write(b []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return 0, ErrClosed
	}

	return p.master.Write(b)
}

// Resize applies a new window size and notifies the child's process
// group. An unchanged size returns ErrResizeIgnored without touching
// the PTY.
func (p *Pty) Resize(rows uint16, cols uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	if rows == p.rows && cols == p.cols {
		return ErrResizeIgnored
	}

	if err := pty.Setsize(p.master, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return errors.Wrap(err, "failed to set window size")
	}

	p.rows = rows
	p.cols = cols

	if err := unix.Kill(-p.cmd.Process.Pid, unix.SIGWINCH); err != nil {
		logger.Log.Debug("failed to signal window change", zap.Error(err))
	}

	return nil
}

// Terminate signals the child's process group with SIGTERM, waits up to
// grace and escalates to SIGKILL. Termination is itself cleanup, so
// failures are logged rather than propagated.
func (p *Pty) Terminate(grace time.Duration) {
	pid := p.cmd.Process.Pid

	select {
	case <-p.exited:
		return
	default:
	}

	if err := unix.Kill(-pid, unix.SIGTERM); err != nil {
		logger.Log.Debug("failed to send SIGTERM to process group", zap.Int("pid", pid), zap.Error(err))
	}

	select {
	case <-p.exited:
	case <-time.After(grace):
		logger.Log.Warn("grace period expired, killing process group", zap.Int("pid", pid))

		if err := unix.Kill(-pid, unix.SIGKILL); err != nil {
			logger.Log.Debug("failed to send SIGKILL to process group", zap.Int("pid", pid), zap.Error(err))
		}

		// A child stuck in uninterruptible sleep survives even SIGKILL;
		// waiting on it forever would wedge the caller's shutdown.
		select {
		case <-p.exited:
		case <-time.After(grace):
			logger.Log.Error("process group survived SIGKILL", zap.Int("pid", pid))
		}
	}
}

// Wait blocks until the child has exited.
func (p *Pty) Wait() error {
	<-p.exited
	return p.exitErr
}

// Exited reports without blocking whether the child is gone.
func (p *Pty) Exited() bool {
	select {
	case <-p.exited:
		return true
	default:
		return false
	}
}

// Close releases the master descriptor. Closing unblocks a pending Read.
func (p *Pty) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		if err := p.master.Close(); err != nil {
			logger.Log.Debug("failed to close pty master", zap.Error(err))
		}
	})
}

func (p *Pty) Pid() int {
	return p.cmd.Process.Pid
}

// WindowSize returns the dimensions last applied to the PTY.
func (p *Pty) WindowSize() (uint16, uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rows, p.cols
}
