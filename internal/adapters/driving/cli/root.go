// Package cli implements the coinmaker command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "coinmaker",
	Short: "Generate 3D printable coin models from heightmap images",
	Long: `Coin Maker converts grayscale heightmap images into 3D printable
coin models. Bright pixels become raised relief on top of a circular,
square, hexagonal or octagonal coin body, exported as binary STL.

Relief meshing uses the external hmm binary, which must be installed
and reachable (configurable via the config file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default ~/.coinmaker/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellation context, so
// long-running commands stop cleanly on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
