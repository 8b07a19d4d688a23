package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/delta-vision/deltaterm/pkg/wss"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EOT is what a raw-mode terminal delivers for Ctrl-D. It is forwarded
// to the remote shell and then detaches the client locally.
const EOT = 0x04

var ErrDetached = errors.New("detached by user")

func New(host string, port int) *Adapter {
	return &Adapter{
		Host:     host,
		Port:     port,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		terminal: NewTerminal(int(os.Stdin.Fd())),
	}
}

func (a *Adapter) URL() string {
	return fmt.Sprintf("ws://%s/", net.JoinHostPort(a.Host, strconv.Itoa(a.Port)))
}

// Attach connects to the server and relays the local terminal until the
// remote side closes, the user detaches, or the context is cancelled.
// Without a terminal on stdin it degrades to a plain byte pipe.
func (a *Adapter) Attach(parent context.Context) error {
	conn, err := wss.Request(a.URL(), nil)

	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", a.URL())
	}
	defer conn.Close()

	interactive := a.terminal != nil && a.terminal.IsTerminal()

	if interactive {
		if err := a.terminal.Raw(); err != nil {
			return err
		}

		defer fmt.Fprint(a.Stderr, "\n[deltaterm] Disconnected.\n")
		defer a.terminal.Restore()

		rows, cols := a.terminal.Size()

		if err := a.resize(conn, rows, cols); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if interactive {
		go a.watchResize(ctx, conn)
	}

	server := make(chan error, 1)
	client := make(chan error, 1)

	go func() {
		client <- a.pumpInput(ctx, conn, interactive)
	}()

	go func() {
		server <- a.pumpOutput(ctx, conn)
	}()

	select {
	case err := <-client:
		a.write(conn, websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client terminated connection"))

		if errors.Is(err, ErrDetached) {
			return nil
		}

		return err
	case err := <-server:
		return err
	case <-ctx.Done():
		a.write(conn, websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client terminated connection"))

		return nil
	}
}

// pumpInput forwards stdin byte by byte so raw-mode keystrokes are not
// held back by line buffering.
func (a *Adapter) pumpInput(ctx context.Context, conn *websocket.Conn, interactive bool) error {
	reader := bufio.NewReaderSize(a.Stdin, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			input, err := reader.ReadByte()

			if err != nil {
				if errors.Is(err, io.EOF) {
					if interactive {
						return ErrDetached
					}

					// Redirected stdin draining only stops input
					// forwarding; remote output keeps flowing until
					// the server closes or the context is cancelled.
					<-ctx.Done()
					return nil
				}

				return err
			}

			if err := a.write(conn, websocket.BinaryMessage, []byte{input}); err != nil {
				return err
			}

			// The EOF byte still reaches the remote shell, then the
			// client detaches locally.
			if interactive && input == EOT {
				return ErrDetached
			}
		}
	}
}

// pumpOutput writes remote bytes to stdout. A close frame whose reason
// is "EOF" means the remote child exited on its own; any other reason is
// surfaced to the user.
func (a *Adapter) pumpOutput(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			_, message, err := conn.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return err
				}

				var closeErr *websocket.CloseError

				if errors.As(err, &closeErr) {
					text := strings.TrimSpace(closeErr.Text)

					if text != "" && text != io.EOF.Error() {
						fmt.Fprintf(a.Stderr, "\n[deltaterm] %s\n", text)
					}
				}

				return nil
			}

			if _, err := a.Stdout.Write(message); err != nil {
				return err
			}
		}
	}
}

func (a *Adapter) watchResize(ctx context.Context, conn *websocket.Conn) {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-winch:
			rows, cols := a.terminal.Size()

			if err := a.resize(conn, rows, cols); err != nil {
				logger.Log.Debug("failed to send resize", zap.Error(err))
				return
			}
		}
	}
}

func (a *Adapter) resize(conn *websocket.Conn, rows uint16, cols uint16) error {
	control, err := relay.NewResize(rows, cols)

	if err != nil {
		return err
	}

	data, err := control.Marshal()

	if err != nil {
		return err
	}

	return a.write(conn, websocket.TextMessage, data)
}

// write serializes frames from the input pump and the resize watcher.
func (a *Adapter) write(conn *websocket.Conn, messageType int, data []byte) error {
	a.writeMutex.Lock()
	defer a.writeMutex.Unlock()

	return conn.WriteMessage(messageType, data)
}
