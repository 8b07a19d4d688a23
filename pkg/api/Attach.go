package api

import (
	"net/http"

	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/metrics"
	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wssUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Attach upgrades the connection and runs the relay for its lifetime.
// Gin serves each request on its own goroutine, so this handler is the
// per-connection unit of work.
func (api *Api) Attach(c *gin.Context) {
	conn, err := wssUpgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		logger.Log.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	peer := c.Request.RemoteAddr
	connectionID := uuid.NewString()

	logger.Log.Info("client connected", zap.String("peer", peer))

	if !api.Limiter.Add(connectionID) {
		metrics.SessionsRejected.Increment()

		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session limit reached"))
		conn.Close()

		logger.Log.Warn("connection rejected, session limit reached", zap.String("peer", peer))
		return
	}
	defer api.Limiter.Remove(connectionID)

	session, err := relay.Create(conn, peer, api.Options(), api.Registry)

	if err != nil {
		// Create already reported the failure to the client.
		logger.Log.Error("failed to create session", zap.String("peer", peer), zap.Error(err))
		return
	}

	session.Relay()

	logger.Log.Info("client disconnected", zap.String("peer", peer))
}
