package relay

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Log = logger.NewLogger("error", []string{"stdout"}, []string{"stderr"})
	os.Exit(m.Run())
}

func testOptions(command string) Options {
	return Options{
		Command:     command,
		Environment: os.Environ(),
		Rows:        24,
		Cols:        80,
		Grace:       time.Second,
	}
}

func startServer(t *testing.T, options Options) (*httptest.Server, *Registry) {
	t.Helper()

	registry := NewRegistry()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)

		if err != nil {
			return
		}

		session, err := Create(conn, r.RemoteAddr, options, registry)

		if err != nil {
			return
		}

		session.Relay()
	}))

	t.Cleanup(srv.Close)

	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })

	return conn
}

// collect reads frames until the connection closes and returns the
// binary payload plus the close reason.
func collect(t *testing.T, conn *websocket.Conn) (string, string) {
	t.Helper()

	var output strings.Builder

	for {
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		messageType, message, err := conn.ReadMessage()

		if err != nil {
			var closeErr *websocket.CloseError

			if errors.As(err, &closeErr) {
				return output.String(), closeErr.Text
			}

			return output.String(), err.Error()
		}

		if messageType == websocket.BinaryMessage {
			output.Write(message)
		}
	}
}

// readUntil reads binary frames until want shows up in the stream.
func readUntil(t *testing.T, conn *websocket.Conn, want string) string {
	t.Helper()

	var output strings.Builder

	for {
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		messageType, message, err := conn.ReadMessage()
		require.NoError(t, err)

		if messageType == websocket.BinaryMessage {
			output.Write(message)
		}

		if strings.Contains(output.String(), want) {
			return output.String()
		}
	}
}

func TestSessionChildExit(t *testing.T) {
	srv, registry := startServer(t, testOptions("echo hello"))
	conn := dial(t, srv)

	output, reason := collect(t, conn)

	assert.Contains(t, output, "hello")
	assert.Equal(t, "EOF", reason)

	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionRelayBytes(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("marco\r")))
	readUntil(t, conn, "marco")

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionIsolation(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))

	alpha := dial(t, srv)
	bravo := dial(t, srv)

	require.Eventually(t, func() bool {
		return registry.Len() == 2
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, alpha.WriteMessage(websocket.BinaryMessage, []byte("alpha-input\r")))
	require.NoError(t, bravo.WriteMessage(websocket.BinaryMessage, []byte("bravo-input\r")))

	alphaOutput := readUntil(t, alpha, "alpha-input")
	bravoOutput := readUntil(t, bravo, "bravo-input")

	assert.NotContains(t, alphaOutput, "bravo-input")
	assert.NotContains(t, bravoOutput, "alpha-input")
}

func TestSessionResize(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		return registry.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	control, err := NewResize(40, 120)
	require.NoError(t, err)

	data, err := control.Marshal()
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	require.Eventually(t, func() bool {
		sessions := registry.List()
		return len(sessions) == 1 && sessions[0].Rows == 40 && sessions[0].Cols == 120
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionProtocolError(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not a control frame")))

	_, reason := collect(t, conn)
	assert.Contains(t, reason, "protocol error")

	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionChildKilled(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		return registry.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	var session *Session
	for _, info := range registry.List() {
		session = registry.Find(info.ID)
	}
	require.NotNil(t, session)

	session.Pty.Terminate(time.Second)

	_, reason := collect(t, conn)
	assert.Equal(t, "EOF", reason)

	require.Eventually(t, func() bool {
		return registry.Len() == 0 && session.State() == STATE_CLOSED
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRegistryDrainWedgedChildren(t *testing.T) {
	srv, registry := startServer(t, testOptions(`sh -c "trap '' TERM; sleep 30"`))

	for i := 0; i < 3; i++ {
		dial(t, srv)
	}

	require.Eventually(t, func() bool {
		return registry.Len() == 3
	}, 5*time.Second, 10*time.Millisecond)

	// Give the shells a moment to install their traps.
	time.Sleep(300 * time.Millisecond)

	started := time.Now()
	registry.Drain(2 * time.Second)

	// Every child ignores SIGTERM and burns the full one second grace
	// before SIGKILL; serialized teardowns would take three times this.
	assert.Less(t, time.Since(started), 2500*time.Millisecond)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryDrain(t *testing.T) {
	srv, registry := startServer(t, testOptions("cat"))

	first := dial(t, srv)
	second := dial(t, srv)

	require.Eventually(t, func() bool {
		return registry.Len() == 2
	}, 5*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		registry.Drain(5 * time.Second)
		close(done)
	}()

	_, firstReason := collect(t, first)
	_, secondReason := collect(t, second)

	assert.Equal(t, "server shutting down", firstReason)
	assert.Equal(t, "server shutting down", secondReason)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("drain did not finish")
	}

	assert.Equal(t, 0, registry.Len())
}
