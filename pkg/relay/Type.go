package relay

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/delta-vision/deltaterm/pkg/pty"
	"github.com/gorilla/websocket"
)

type State int32

const (
	STATE_STARTING State = iota
	STATE_ACTIVE
	STATE_CLOSING
	STATE_CLOSED
)

func (s State) String() string {
	switch s {
	case STATE_STARTING:
		return "starting"
	case STATE_ACTIVE:
		return "active"
	case STATE_CLOSING:
		return "closing"
	case STATE_CLOSED:
		return "closed"
	}

	return "unknown"
}

// Session binds one client connection to one PTY-backed child process.
// The connection is shared by the two pumps; the session closes it
// exactly once during teardown.
type Session struct {
	ID        string
	Peer      string
	Pty       *pty.Pty
	Conn      *websocket.Conn
	StartedAt time.Time

	registry *Registry
	grace    time.Duration

	state atomic.Int32
	done  chan struct{}

	teardownOnce sync.Once
	writeMutex   sync.Mutex
}

// Options carries the spawn parameters supplied by the surrounding
// application: the command to run, its environment and the window size
// used until the client reports its own.
type Options struct {
	Command     string
	Environment []string
	Rows        uint16
	Cols        uint16
	Grace       time.Duration
}

// Info is the inventory view of a session.
type Info struct {
	ID        string    `json:"id"`
	Peer      string    `json:"peer"`
	Pid       int       `json:"pid"`
	Rows      uint16    `json:"rows"`
	Cols      uint16    `json:"cols"`
	State     string    `json:"state"`
	StartedAt time.Time `json:"startedAt"`
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(next State) {
	for {
		current := s.state.Load()

		// Transitions are one-directional; duplicate requests are no-ops.
		if int32(next) <= current {
			return
		}

		if s.state.CompareAndSwap(current, int32(next)) {
			return
		}
	}
}

// Done is closed once the session has reached STATE_CLOSED.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Describe() Info {
	rows, cols := s.Pty.WindowSize()

	return Info{
		ID:        s.ID,
		Peer:      s.Peer,
		Pid:       s.Pty.Pid(),
		Rows:      rows,
		Cols:      cols,
		State:     s.State().String(),
		StartedAt: s.StartedAt,
	}
}

func (s *Session) writeMessage(messageType int, data []byte) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	return s.Conn.WriteMessage(messageType, data)
}
