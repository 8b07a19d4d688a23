package commands

import (
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/spf13/cobra"
)

var (
	EmptyCondition = func(*client.Adapter) bool { return true }
	EmptyFunction  = func(cli *client.Adapter, args []string) {}
	EmptyDepend    = []func(*client.Adapter, []string){EmptyFunction}
	EmptyFlag      = func(cmd *cobra.Command) {}
)
