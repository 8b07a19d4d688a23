package command

import (
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/spf13/cobra"
)

type Client struct {
	Parent    string
	Name      string
	Args      func(*cobra.Command, []string) error
	Condition func(cli *client.Adapter) bool
	Functions []func(*client.Adapter, []string)
	DependsOn []func(*client.Adapter, []string)
	Flags     func(command *cobra.Command)
}
