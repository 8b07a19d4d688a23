package commands

import (
	"fmt"

	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/delta-vision/deltaterm/pkg/command"
	"github.com/spf13/cobra"
)

func Version() {
	Commands = append(Commands,
		command.Client{
			Parent:    "deltactl",
			Name:      "version",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*client.Adapter, []string){
				func(cli *client.Adapter, args []string) {
					fmt.Println(cli.Version.ToString())
				},
			},
			DependsOn: EmptyDepend,
			Flags:     EmptyFlag,
		},
	)
}
