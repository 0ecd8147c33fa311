package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchSession string
	searchLimit   int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search your messages",
	Long:  `Search message text across all sessions, or within one with --session.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWithApp(nil, runSearch),
}

func init() {
	searchCmd.Flags().StringVarP(&searchSession, "session", "s", "", "only search this session")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string, a *app) error {
	query := strings.Join(args, " ")
	results := a.manager.SearchMessages(commandContext(cmd), query, searchSession, searchLimit)
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, msg := range results {
		if msg.SessionID != "" {
			fmt.Fprintf(out, "%s: ", msg.SessionID)
		}
		fmt.Fprintln(out, oneLine(msg.Message))
	}
	return nil
}
