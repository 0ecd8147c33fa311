package cli

import (
	"fmt"

	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/ui"
	"github.com/spf13/cobra"
)

var openOutput string

var openCmd = &cobra.Command{
	Use:   "open <session-id>",
	Short: "Open a session and render the chat page",
	Long: `Make a session current, as clicking it in the sidebar does, and print
the resulting chat page HTML, or write it to --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runWithApp(nil, runOpen),
}

func init() {
	openCmd.Flags().StringVarP(&openOutput, "output", "o", "", "write HTML to this file")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	id := args[0]

	page := ui.NewPage()
	sb := a.manager.RenderSessionsList(ctx, page, page.SessionsList())

	if !sb.Click(ctx, id) {
		// Not among the recent sessions: resolve its bot from the stats.
		stats := a.manager.SessionStats(ctx, id)
		if stats.IsEmpty() {
			return fmt.Errorf("session %s not found", id)
		}
		a.manager.SelectSession(ctx, page, sessionapi.SessionSummary{SessionID: id, BotName: stats.BotName})
	}

	html, err := page.HTML()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return writeOutput(cmd, openOutput, html)
}
