package pty

import (
	"os"
	"os/exec"
	"sync"
)

// Pty owns one pseudo-terminal master and the child process attached to
// its slave side. It is the only reader/writer of raw terminal bytes.
type Pty struct {
	master *os.File
	cmd    *exec.Cmd

	mu     sync.Mutex
	rows   uint16
	cols   uint16
	closed bool

	exited  chan struct{}
	exitErr error

	closeOnce sync.Once
}
