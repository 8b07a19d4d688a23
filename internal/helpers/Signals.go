package helpers

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/delta-vision/deltaterm/pkg/logger"
)

// WatchInterrupts installs the two stage interrupt policy: the first
// SIGINT/SIGTERM runs graceful in its own goroutine, the second one
// exits immediately so a wedged teardown never traps the user.
func WatchInterrupts(graceful func()) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		logger.Log.Info("interrupt received, starting graceful shutdown")

		go graceful()

		<-sigs
		logger.Log.Warn("second interrupt received, forcing exit")
		os.Exit(1)
	}()
}
