package client

import (
	"sync"

	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminal wraps the controlling terminal state. Restore is idempotent
// so it is safe to call from both the deferred path and signal handling.
type Terminal struct {
	fd      int
	state   *term.State
	restore sync.Once
}

func NewTerminal(fd int) *Terminal {
	return &Terminal{fd: fd}
}

func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

func (t *Terminal) Raw() error {
	if !term.IsTerminal(t.fd) {
		return errors.New("stdin is not a terminal")
	}

	state, err := term.MakeRaw(t.fd)

	if err != nil {
		return errors.Wrap(err, "failed to enter raw mode")
	}

	t.state = state
	return nil
}

func (t *Terminal) Restore() {
	t.restore.Do(func() {
		if t.state != nil {
			term.Restore(t.fd, t.state)
		}
	})
}

// Size reports the terminal dimensions, falling back to the protocol
// defaults when the descriptor is not a terminal.
func (t *Terminal) Size() (uint16, uint16) {
	cols, rows, err := term.GetSize(t.fd)

	if err != nil || rows <= 0 || cols <= 0 {
		return static.DEFAULT_ROWS, static.DEFAULT_COLS
	}

	return uint16(rows), uint16(cols)
}
