package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/harun/articuno/pkg/ui"
	"github.com/spf13/cobra"
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List the bots with a dedicated avatar",
	Long: `List the bots the chat page has an avatar for. Other bot names work too
and are shown with the default avatar.`,
	Args: cobra.NoArgs,
	RunE: runBots,
}

func init() {
	rootCmd.AddCommand(botsCmd)
}

func runBots(cmd *cobra.Command, args []string) error {
	bots := ui.KnownBots()
	sort.Strings(bots)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOT\tAVATAR")
	for _, bot := range bots {
		fmt.Fprintf(tw, "%s\t%s\n", bot, ui.AvatarFor(bot))
	}
	return tw.Flush()
}
