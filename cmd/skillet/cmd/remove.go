package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <skill>...",
	Short: "Remove installed skill(s)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		agents, _ := cmd.Flags().GetStringSlice("agent")
		global, _ := cmd.Flags().GetBool("global")
		yes, _ := cmd.Flags().GetBool("yes")

		scope := core.ScopeProject
		if global {
			scope = core.ScopeGlobal
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		targets, err := core.ResolveTargets(agents, scope, projectRoot, cfg.DefaultAgent)
		if err != nil {
			return err
		}

		if !yes && stdinIsTTY() {
			ok := false
			err := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Remove %d skill(s)?", len(args))).
					Value(&ok),
			)).Run()
			if err != nil || !ok {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		failed := false
		for _, name := range args {
			res, err := core.RemoveSkill(name, targets)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("error:"), err)
				failed = true
				continue
			}
			fmt.Printf("%s  %s\n", okStyle.Render("removed"), res.Name)
		}
		if failed {
			return fmt.Errorf("some skills could not be removed")
		}
		return nil
	},
}

func init() {
	removeCmd.Flags().StringSliceP("agent", "a", nil, "Remove from these agent(s) only")
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the user-level skill directories")
	removeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(removeCmd)
}
