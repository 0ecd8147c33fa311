package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show the messages of a session",
	Long:  `Show the messages of a session, oldest first. Defaults to the current session.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWithApp(nil, runHistory),
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of messages (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	id, err := sessionArg(args, a.manager.CurrentSessionID(ctx))
	if err != nil {
		return err
	}

	messages := a.manager.LoadSessionHistory(ctx, id, historyLimit)
	if len(messages) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No messages")
		return nil
	}
	writeMessages(cmd.OutOrStdout(), messages)
	return nil
}
