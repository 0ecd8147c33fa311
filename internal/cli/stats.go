package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [session-id]",
	Short: "Show statistics of a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWithApp(nil, runStats),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	id, err := sessionArg(args, a.manager.CurrentSessionID(ctx))
	if err != nil {
		return err
	}

	stats := a.manager.SessionStats(ctx, id)
	if stats.IsEmpty() {
		return fmt.Errorf("no statistics for session %s", id)
	}

	now := time.Now()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session: %s\n", id)
	fmt.Fprintf(out, "Bot: %s\n", stats.BotName)
	fmt.Fprintf(out, "Status: %s\n", stats.Status)
	fmt.Fprintf(out, "Messages: %d (user %d, assistant %d)\n", stats.TotalMessages, stats.UserMessages, stats.AssistantMessages)
	fmt.Fprintf(out, "Created: %s\n", timeAgo(now, stats.CreatedAt))
	fmt.Fprintf(out, "Last activity: %s\n", timeAgo(now, stats.LastActivity))

	keys := make([]string, 0, len(stats.Extra))
	for k := range stats.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %v\n", k, stats.Extra[k])
	}
	return nil
}
