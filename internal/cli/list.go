package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harun/articuno/pkg/ui"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Long:  `List your most recent sessions. The current session is marked with *.`,
	Args:  cobra.NoArgs,
	RunE:  runWithApp(nil, runList),
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of sessions (default from config)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	sessions := a.manager.ListSessions(ctx, listLimit)
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.NoSessionsText)
		return nil
	}

	current := a.manager.CurrentSessionID(ctx)
	now := time.Now()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tBOT\tMESSAGES\tLAST ACTIVE\tTITLE")
	for _, s := range sessions {
		mark := ""
		if s.SessionID == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			mark, s.SessionID, s.BotName, s.MessageCount, timeAgo(now, s.LastActivity), ui.TruncateTitle(s.Query()))
	}
	return tw.Flush()
}
