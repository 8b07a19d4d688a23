package main

import (
	"os"

	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/delta-vision/deltaterm/pkg/client/commands"
	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/delta-vision/deltaterm/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = static.DEFAULT_LOG_LEVEL
	}

	logger.Log = logger.NewLogger(logLevel, []string{"stdout"}, []string{"stderr"})

	cli := client.New(static.DEFAULT_HOST, static.DEFAULT_PORT)
	cli.Version = version.New(DELTATERM_VERSION)

	cmd := &cobra.Command{
		Use:   "deltactl",
		Short: "deltaterm CLI",
	}

	commands.PreloadCommands()
	commands.Run(cli, cmd)
}
