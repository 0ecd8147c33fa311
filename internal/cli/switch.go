package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <bot>",
	Short: "Switch bot and start a new session",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(nil, runSwitch),
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string, a *app) error {
	id := a.manager.SwitchBot(commandContext(cmd), args[0])
	if id == "" {
		return fmt.Errorf("failed to switch to %s", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, args[0])
	return nil
}
