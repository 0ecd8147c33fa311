package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [bot]",
	Short: "Start a new chat session",
	Long: `Start a new chat session with a bot and make it the current session.
Without a bot the configured default bot is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWithApp(nil, runNew),
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string, a *app) error {
	bot := a.cfg.Defaults.Bot
	if len(args) == 1 {
		bot = args[0]
	}

	id := a.manager.CreateSession(commandContext(cmd), bot)
	if id == "" {
		return fmt.Errorf("failed to create session for %s", bot)
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
