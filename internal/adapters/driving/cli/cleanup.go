package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var cleanupOlderThan time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old generation files",
	Long: `Removes stored heightmaps and generated STLs for generations whose
files are older than the configured retention period.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().DurationVar(&cleanupOlderThan, "older-than", 0,
		"override the configured retention period (e.g. 48h)")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	maxAge := cleanupOlderThan
	if maxAge <= 0 {
		maxAge = a.cfg.Storage.MaxFileAge()
	}
	removed, err := a.files.CleanupOlderThan(maxAge)
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d file(s) older than %s\n", removed, maxAge)
	return nil
}
