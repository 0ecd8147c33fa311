package cli

import (
	"fmt"
	"path/filepath"

	"github.com/harun/articuno/pkg/session"
	"github.com/spf13/cobra"
)

var (
	archiveDir   string
	archiveLimit int
)

var archiveCmd = &cobra.Command{
	Use:   "archive [session-id]",
	Short: "Save a session's history to a local JSONL file",
	Long: `Fetch the history of a session and save it as JSON lines under the data
directory (or --dir). Defaults to the current session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWithApp(nil, runArchive),
}

func init() {
	archiveCmd.Flags().StringVar(&archiveDir, "dir", "", "archive directory (default <data_dir>/archive)")
	archiveCmd.Flags().IntVarP(&archiveLimit, "limit", "n", 0, "maximum number of messages (default from config)")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string, a *app) error {
	ctx := commandContext(cmd)
	id, err := sessionArg(args, a.manager.CurrentSessionID(ctx))
	if err != nil {
		return err
	}

	dir := archiveDir
	if dir == "" {
		dir = filepath.Join(a.cfg.DataDir, "archive")
	}
	archiver, err := session.NewArchiver(a.manager, dir)
	if err != nil {
		return err
	}

	path, n, err := archiver.Archive(ctx, id, archiveLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d messages to %s\n", n, path)
	return nil
}
