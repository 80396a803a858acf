package cmd

import (
	"fmt"
	"os"

	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and which are detected",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		for _, agent := range core.Agents() {
			marks := ""
			if core.DetectedProject(agent, projectRoot) {
				marks += " " + okStyle.Render("[project]")
			}
			if core.DetectedGlobal(agent) {
				marks += " " + okStyle.Render("[global]")
			}
			fmt.Printf("%-16s %s%s\n", agent.Name, dimStyle.Render(agent.SkillsDir), marks)
		}

		if verbose {
			fmt.Println()
			fmt.Println(headerStyle.Render("Feature support:"))
			fmt.Printf("%-16s %-14s %-8s %s\n", "agent", "context-fork", "hooks", "allowed-tools")
			for _, agent := range core.Agents() {
				fmt.Printf("%-16s %-14s %-8s %s\n", agent.Name,
					featureMark(agent.Features.ForkContext),
					featureMark(agent.Features.Hooks),
					featureMark(agent.Features.AllowedTools))
			}
		}
		return nil
	},
}

func featureMark(supported bool) string {
	if supported {
		return okStyle.Render("yes")
	}
	return dimStyle.Render("no")
}

func init() {
	agentsCmd.Flags().BoolP("verbose", "v", false, "Show the feature support matrix")
	rootCmd.AddCommand(agentsCmd)
}
