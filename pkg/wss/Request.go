package wss

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Request dials a websocket endpoint. The transport is plaintext and
// unauthenticated: anyone who can reach the address can open a session,
// which is why the server binds to loopback by default.
func Request(url string, headers http.Header) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(url, headers)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
