package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/killallgit/video-hunter/internal/services/transient"
	"github.com/killallgit/video-hunter/pkg/config"
)

// sweepCmd removes abandoned temp files once, outside the server's schedule
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove stale temp downloads",
	Long: `Delete temp files left behind by interrupted downloads.

Only files carrying the configured prefix in the configured temp
directory are considered. Without --max-age the storage.max_temp_age
setting is used.

Example:
  video-hunter sweep
  video-hunter sweep --max-age 10m`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().Duration("max-age", 0, "minimum age of files to remove (overrides config)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	maxAge := cfg.Storage.MaxTempAge
	if cmd.Flags().Changed("max-age") {
		maxAge, _ = cmd.Flags().GetDuration("max-age")
	}

	store, err := transient.NewStore(cfg.Storage.TempDir, cfg.Storage.FilePrefix, cfg.Storage.FileExtension)
	if err != nil {
		return err
	}

	return sweepOnce(cmd.OutOrStdout(), store, maxAge)
}

func sweepOnce(out io.Writer, store *transient.Store, maxAge time.Duration) error {
	if maxAge <= 0 {
		return fmt.Errorf("max age must be positive: %s", maxAge)
	}

	removed, err := store.Sweep(maxAge)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	logger.Info().Str("dir", store.Dir()).Int("removed", removed).Msg("sweep complete")
	fmt.Fprintf(out, "Removed %d stale file(s) from %s\n", removed, store.Dir())
	return nil
}
