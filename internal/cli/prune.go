package cli

import (
	"fmt"
	"time"

	"github.com/harun/articuno/pkg/session"
	"github.com/spf13/cobra"
)

var (
	pruneOlderThan time.Duration
	pruneDryRun    bool
	pruneYes       bool
	pruneLimit     int
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete sessions idle for too long",
	Long: `Delete the listed sessions whose last activity is older than --older-than.
Use --dry-run to only print what would be deleted.`,
	Args: cobra.NoArgs,
	RunE: runWithApp(nil, runPrune),
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", session.DefaultCleanupAge, "idle time after which a session is deleted")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "print the sessions that would be deleted")
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "do not ask for confirmation")
	pruneCmd.Flags().IntVarP(&pruneLimit, "limit", "n", 100, "how many recent sessions to consider")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	cleanup := session.NewCleanup(a.manager, pruneOlderThan)
	out := cmd.OutOrStdout()

	if !pruneDryRun {
		stale := cleanup.Stale(ctx, pruneLimit)
		if len(stale) == 0 {
			fmt.Fprintln(out, "Nothing to prune")
			return nil
		}
		prompt := fmt.Sprintf("Delete %d idle sessions?", len(stale))
		if !confirmerFor(&pruneYes)(cmd).Confirm(ctx, prompt) {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	ids := cleanup.Run(ctx, pruneLimit, pruneDryRun)
	if len(ids) == 0 {
		fmt.Fprintln(out, "Nothing to prune")
		return nil
	}
	verb := "Deleted"
	if pruneDryRun {
		verb = "Would delete"
	}
	for _, id := range ids {
		fmt.Fprintf(out, "%s %s\n", verb, id)
	}
	return nil
}
