package cmd

import (
	"errors"
	"fmt"

	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Install skill bundles for AI coding agents",
	Long: `Skillet installs skill bundles from git repositories or local
directories into the skill folders of AI coding agents.

Point it at a repo, it fetches through a local cache, finds every
skill inside, validates them, and installs into the agents you use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skillet %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to the process exit code:
// 0 success, 1 nothing installable, 2 bad source or arguments,
// 3 network, git, or IO failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, core.ErrNoCandidates):
		return 1
	case errors.Is(err, core.ErrInvalidSource),
		errors.Is(err, core.ErrRefNotFound),
		errors.Is(err, core.ErrSubpathNotFound):
		return 2
	default:
		return 3
	}
}
