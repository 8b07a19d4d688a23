package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/delta-vision/deltaterm/internal/helpers"
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/delta-vision/deltaterm/pkg/command"
	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Attach() {
	Commands = append(Commands,
		command.Client{
			Parent:    "deltactl",
			Name:      "attach",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*client.Adapter, []string){
				func(cli *client.Adapter, args []string) {
					cli.Host = viper.GetString("host")
					cli.Port = viper.GetInt("port")

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()

					sigChan := make(chan os.Signal, 1)
					signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
					go func() {
						<-sigChan
						logger.Log.Debug("received termination signal")
						cancel()
					}()

					if err := cli.Attach(ctx); err != nil {
						helpers.PrintAndExit(err, 1)
					}
				},
			},
			DependsOn: EmptyDepend,
			Flags: func(cmd *cobra.Command) {
				cmd.Flags().String("host", static.DEFAULT_HOST, "Server host to attach to")
				cmd.Flags().Int("port", static.DEFAULT_PORT, "Server port")
			},
		},
	)
}
