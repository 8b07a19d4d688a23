package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/delta-vision/deltaterm/internal/helpers"
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/delta-vision/deltaterm/pkg/command"
	"github.com/delta-vision/deltaterm/pkg/formaters"
	"github.com/delta-vision/deltaterm/pkg/network"
	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Sessions() {
	Commands = append(Commands,
		command.Client{
			Parent:    "deltactl",
			Name:      "sessions",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*client.Adapter, []string){
				func(cli *client.Adapter, args []string) {
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()

					address := net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))
					url := fmt.Sprintf("http://%s/api/v1/sessions", address)

					resp, err := network.Raw(ctx, http.DefaultClient, url, http.MethodGet, nil)

					if err != nil {
						helpers.PrintAndExit(errors.Wrapf(err, "failed to reach %s", address), 1)
					}
					defer resp.Body.Close()

					if resp.StatusCode != http.StatusOK {
						helpers.PrintAndExit(errors.Errorf("server returned %s", resp.Status), 1)
					}

					var sessions []relay.Info

					if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
						helpers.PrintAndExit(errors.Wrap(err, "failed to decode session list"), 1)
					}

					formaters.Sessions(sessions)
				},
			},
			DependsOn: EmptyDepend,
			Flags: func(cmd *cobra.Command) {
				cmd.Flags().String("host", static.DEFAULT_HOST, "Server host to query")
				cmd.Flags().Int("port", static.DEFAULT_PORT, "Server port")
			},
		},
	)
}
