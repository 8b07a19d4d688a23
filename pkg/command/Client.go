package command

import (
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/spf13/cobra"
)

func (command Client) GetName() string {
	return command.Name
}

func (command Client) GetParent() string {
	return command.Parent
}

func (command Client) GetCondition(cli *client.Adapter) bool {
	return command.Condition(cli)
}

func (command Client) GetFunctions() []func(*client.Adapter, []string) {
	return command.Functions
}

func (command Client) GetDependsOn() []func(*client.Adapter, []string) {
	return command.DependsOn
}

func (command Client) SetFlags(cmd *cobra.Command) {
	command.Flags(cmd)
}
