package api

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewApi(config *configuration.Configuration) *Api {
	return &Api{
		Config:   config,
		Registry: relay.NewRegistry(),
		Limiter:  NewLimiter(config.Server.MaxSessions),
	}
}

func (api *Api) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", api.Attach)
	router.GET("/healthz", api.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/sessions", api.Sessions)
		v1.GET("/version", api.About)
	}

	return router
}

// Listen binds the configured address and serves until Shutdown. The
// bind happens explicitly so a failure surfaces as a non-zero exit
// instead of a background error.
func (api *Api) Listen() error {
	address := net.JoinHostPort(api.Config.Server.BindAddress, strconv.Itoa(api.Config.Server.Port))

	listener, err := net.Listen("tcp", address)

	if err != nil {
		return errors.Wrapf(err, "failed to bind %s", address)
	}

	if api.Config.Server.BindAddress != "127.0.0.1" && api.Config.Server.BindAddress != "localhost" {
		logger.Log.Warn("server is reachable beyond loopback without authentication or encryption",
			zap.String("bind", api.Config.Server.BindAddress))
	}

	logger.Log.Info("server listening", zap.String("address", address))

	api.server = &http.Server{Handler: api.Router()}

	err = api.server.Serve(listener)

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown drains every session within a bound, then stops the listener.
func (api *Api) Shutdown() {
	logger.Log.Info("shutting down", zap.Int("sessions", api.Registry.Len()))

	api.Registry.Drain(static.DRAIN_TIMEOUT)

	if api.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), static.DRAIN_TIMEOUT)
		defer cancel()

		if err := api.server.Shutdown(ctx); err != nil {
			logger.Log.Warn("listener shutdown failed", zap.Error(err))
		}
	}
}

// Options assembles the per-session spawn parameters from configuration.
func (api *Api) Options() relay.Options {
	return relay.Options{
		Command:     api.Config.Server.Command,
		Environment: api.ChildEnv,
		Rows:        static.DEFAULT_ROWS,
		Cols:        static.DEFAULT_COLS,
		Grace:       api.Config.Server.Grace,
	}
}
