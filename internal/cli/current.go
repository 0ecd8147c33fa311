package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current session and bot",
	Args:  cobra.NoArgs,
	RunE:  runWithApp(nil, runCurrent),
}

func init() {
	rootCmd.AddCommand(currentCmd)
}

func runCurrent(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	id := a.manager.CurrentSessionID(ctx)
	if id == "" {
		id = "(none)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session: %s\n", id)
	fmt.Fprintf(out, "Bot: %s\n", a.manager.CurrentBot(ctx))
	return nil
}
