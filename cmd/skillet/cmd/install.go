package cmd

import (
	"fmt"
	"os"

	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install skill(s) from a source",
	Long: `Install skill(s) from a git repository or local directory.

Sources can be:
  owner/repo                       GitHub shorthand
  https://github.com/owner/repo    Full URL
  https://.../tree/REF/SUBPATH     URL pinned to a branch and directory
  git@host:owner/repo.git          SSH clone URL
  ./local/path                     Local directory

Remote repositories are fetched through a local cache, so repeated
installs of the same revision need no network. Discovered skills are
validated before installation; invalid skills are reported and skipped
without blocking the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ref, _ := cmd.Flags().GetString("ref")
		skills, _ := cmd.Flags().GetStringSlice("skill")
		agents, _ := cmd.Flags().GetStringSlice("agent")
		global, _ := cmd.Flags().GetBool("global")
		yes, _ := cmd.Flags().GetBool("yes")
		listOnly, _ := cmd.Flags().GetBool("list")
		offline, _ := cmd.Flags().GetBool("offline")
		noValidate, _ := cmd.Flags().GetBool("no-validate")

		scope := core.ScopeProject
		if global {
			scope = core.ScopeGlobal
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		policy := core.OverwriteAsk
		var confirm core.ConfirmFunc
		switch {
		case yes:
			policy = core.OverwriteAlways
		case !cfg.ConfirmEnabled() || !stdinIsTTY():
			policy = core.OverwriteNever
		default:
			confirm = confirmOverwrite
		}

		var validator core.ValidateFunc
		if cfg.ValidateEnabled() && !noValidate {
			validator = core.DefaultValidator
		}

		report, err := core.Run(core.RunRequest{
			Source:         args[0],
			Ref:            ref,
			Names:          skills,
			Agents:         agents,
			DefaultAgent:   cfg.DefaultAgent,
			Scope:          scope,
			ProjectRoot:    projectRoot,
			Policy:         policy,
			Confirm:        confirm,
			Validator:      validator,
			IgnorePatterns: cfg.IgnorePatterns,
			CacheRoot:      cfg.CacheRoot(),
			Offline:        offline || cfg.Offline,
			ListOnly:       listOnly,
		})
		if report != nil {
			printRejections(report.Rejected)
		}
		if err != nil {
			printGitHints(err)
			return err
		}

		if listOnly {
			fmt.Println(headerStyle.Render(fmt.Sprintf("Skills in %s:", report.Source.DisplayName())))
			for _, cand := range report.Candidates {
				fmt.Printf("  %s  %s\n", cand.Name, dimStyle.Render(cand.Manifest.Description))
			}
			return nil
		}

		for _, out := range report.Outcomes {
			printOutcome(out)
		}
		if report.Failed() {
			return fmt.Errorf("some skills failed to install")
		}
		return nil
	},
}

func init() {
	installCmd.Flags().String("ref", "", "Branch, tag, or commit to install from")
	installCmd.Flags().StringSliceP("skill", "s", nil, "Install only the named skill(s)")
	installCmd.Flags().StringSliceP("agent", "a", nil, "Target agent(s), or 'all' for every detected agent")
	installCmd.Flags().BoolP("global", "g", false, "Install into the user-level skill directories")
	installCmd.Flags().BoolP("yes", "y", false, "Overwrite existing skills without asking")
	installCmd.Flags().Bool("list", false, "List discovered skills without installing")
	installCmd.Flags().Bool("offline", false, "Use only the local cache, no network")
	installCmd.Flags().Bool("no-validate", false, "Skip skill validation")
	rootCmd.AddCommand(installCmd)
}
