package cli

import (
	"fmt"

	"github.com/harun/articuno/pkg/ui"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Long: `Delete a session on the server. Deleting the current session clears it;
the current bot is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runWithApp(nil, runDelete),
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	if !confirmerFor(&deleteYes)(cmd).Confirm(ctx, ui.DeleteConfirmPrompt) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}

	if !a.manager.DeleteSession(ctx, args[0]) {
		return fmt.Errorf("failed to delete session %s", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
