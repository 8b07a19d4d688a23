package relay

import (
	"io"
	"sync"
	"time"

	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/metrics"
	"github.com/delta-vision/deltaterm/pkg/pty"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrProtocol marks malformed frames. It is fatal to the one session and
// closes the connection with a diagnostic; other sessions are unaffected.
var ErrProtocol = errors.New("protocol error")

// Create spawns the child behind a fresh PTY and registers the session.
// A spawn failure is reported to the client as a close frame before the
// connection is dropped - the client is never silently disconnected.
func Create(conn *websocket.Conn, peer string, options Options, registry *Registry) (*Session, error) {
	p, err := pty.Spawn(options.Command, options.Environment, options.Rows, options.Cols)

	if err != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, truncateReason(err.Error())))
		conn.Close()

		metrics.SessionErrors.Increment("spawn")

		return nil, err
	}

	grace := options.Grace
	if grace <= 0 {
		grace = static.TERMINATE_GRACE
	}

	session := &Session{
		ID:        uuid.NewString(),
		Peer:      peer,
		Pty:       p,
		Conn:      conn,
		StartedAt: time.Now(),
		registry:  registry,
		grace:     grace,
		done:      make(chan struct{}),
	}

	registry.Insert(session)

	metrics.SessionsTotal.Increment()
	metrics.SessionsActive.Set(float64(registry.Len()))

	return session, nil
}

// Relay runs both pumps and blocks until the session has closed. The
// pump that detects termination first runs the teardown; closing the
// connection and the PTY unblocks the other pump immediately.
func (s *Session) Relay() {
	s.setState(STATE_ACTIVE)

	logger.Log.Info("session active",
		zap.String("session", s.ID),
		zap.String("peer", s.Peer),
		zap.Int("pid", s.Pty.Pid()))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.finish(s.pumpInput())
	}()

	go func() {
		defer wg.Done()
		s.finish(s.pumpOutput())
	}()

	wg.Wait()
}

// pumpInput moves frames from the connection to the PTY: binary frames
// are terminal input, text frames are control messages.
func (s *Session) pumpInput() error {
	for {
		messageType, message, err := s.Conn.ReadMessage()

		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return err
		}

		switch messageType {
		case websocket.BinaryMessage:
			if _, err := s.Pty.Write(message); err != nil {
				return err
			}

			metrics.BytesRelayed.Add(float64(len(message)), "input")
		case websocket.TextMessage:
			control, err := UnmarshalControl(message)

			if err != nil {
				return errors.Wrap(ErrProtocol, err.Error())
			}

			if err := s.applyControl(control); err != nil {
				return err
			}
		}
	}
}

// pumpOutput moves child output from the PTY to the connection. io.EOF
// is the normal end-of-session condition (child exited, output drained).
func (s *Session) pumpOutput() error {
	buf := make([]byte, 4096)

	for {
		n, err := s.Pty.Read(buf)

		if n > 0 {
			if werr := s.writeMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}

			metrics.BytesRelayed.Add(float64(n), "output")
		}

		if err != nil {
			return err
		}
	}
}

func (s *Session) applyControl(control *Control) error {
	switch control.Type {
	case RESIZE_TYPE:
		resize, err := control.DecodeResize()

		if err != nil {
			return errors.Wrap(ErrProtocol, err.Error())
		}

		err = s.Pty.Resize(resize.Rows, resize.Cols)

		switch {
		case err == nil:
			logger.Log.Debug("window resized",
				zap.String("session", s.ID),
				zap.Uint16("rows", resize.Rows),
				zap.Uint16("cols", resize.Cols))
		case errors.Is(err, pty.ErrResizeIgnored):
			logger.Log.Debug("resize ignored", zap.String("session", s.ID))
		default:
			// Resize failures are not fatal to the relay.
			logger.Log.Warn("resize failed", zap.String("session", s.ID), zap.Error(err))
		}

		return nil
	default:
		return errors.Wrapf(ErrProtocol, "unsupported control type %d", control.Type)
	}
}

func (s *Session) finish(err error) {
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.Is(err, ErrProtocol):
		metrics.SessionErrors.Increment("protocol")
	default:
		metrics.SessionErrors.Increment("transport")
	}

	s.Teardown(closeReason(err))
}

// Teardown releases everything exactly once: notify the peer, stop the
// child, close the PTY and the connection, drop the registry entry.
// Duplicate calls are no-ops regardless of which trigger fired first.
func (s *Session) Teardown(reason string) {
	s.teardownOnce.Do(func() {
		s.setState(STATE_CLOSING)

		logger.Log.Info("session closing",
			zap.String("session", s.ID),
			zap.String("reason", reason))

		deadline := time.Now().Add(time.Second)
		s.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, truncateReason(reason)), deadline)

		s.Pty.Terminate(s.grace)
		s.Pty.Close()

		if err := s.Conn.Close(); err != nil {
			logger.Log.Debug("failed to close connection", zap.String("session", s.ID), zap.Error(err))
		}

		s.registry.Remove(s.ID)
		s.setState(STATE_CLOSED)

		metrics.SessionsActive.Set(float64(s.registry.Len()))

		close(s.done)

		logger.Log.Info("session closed", zap.String("session", s.ID))
	})
}

func closeReason(err error) string {
	switch {
	case err == nil:
		return "closed by client"
	case errors.Is(err, io.EOF):
		return io.EOF.Error()
	default:
		return err.Error()
	}
}

// Close control frames carry at most 125 payload bytes including the
// two byte status code.
func truncateReason(reason string) string {
	if len(reason) > 123 {
		return reason[:123]
	}

	return reason
}
