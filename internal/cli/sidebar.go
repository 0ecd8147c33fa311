package cli

import (
	"context"

	"github.com/harun/articuno/pkg/ui"
	"github.com/spf13/cobra"
)

var sidebarOutput string

var sidebarCmd = &cobra.Command{
	Use:   "sidebar",
	Short: "Render the session sidebar as HTML",
	Long: `Render the recent sessions the way the web sidebar shows them and print
the HTML, or write it to --output.`,
	Args: cobra.NoArgs,
	RunE: runWithApp(nil, runSidebar),
}

func init() {
	sidebarCmd.Flags().StringVarP(&sidebarOutput, "output", "o", "", "write HTML to this file")
	rootCmd.AddCommand(sidebarCmd)
}

func runSidebar(cmd *cobra.Command, args []string, a *app) error {
	html, err := renderSidebar(commandContext(cmd), a)
	if err != nil {
		return err
	}
	return writeOutput(cmd, sidebarOutput, html)
}

// renderSidebar renders the sidebar on a fresh page and returns its HTML.
func renderSidebar(ctx context.Context, a *app) (string, error) {
	page := ui.NewPage()
	a.manager.RenderSessionsList(ctx, page, page.SessionsList())
	return page.SessionsList().OuterHTML()
}
