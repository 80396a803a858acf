package cmd

import (
	"fmt"
	"os"

	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed skills",
	Long: `List skills installed in agent skill directories.

Without flags this scans every agent's project-level directory under
the current working directory. Use --global for user-level skills and
--agent to restrict the scan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agentNames, _ := cmd.Flags().GetStringSlice("agent")
		global, _ := cmd.Flags().GetBool("global")

		scope := core.ScopeProject
		if global {
			scope = core.ScopeGlobal
		}

		agents := core.Agents()
		if len(agentNames) > 0 {
			agents = nil
			for _, name := range agentNames {
				agent, err := core.AgentByName(name)
				if err != nil {
					return err
				}
				agents = append(agents, agent)
			}
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		skills, err := core.ListInstalled(agents, scope, projectRoot)
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			fmt.Println("No skills installed.")
			return nil
		}

		byAgent := make(map[string][]core.InstalledSkill)
		for _, s := range skills {
			byAgent[s.Agent] = append(byAgent[s.Agent], s)
		}

		for _, agent := range agents {
			installed := byAgent[agent.Name]
			if len(installed) == 0 {
				continue
			}
			fmt.Println(headerStyle.Render(agent.DisplayName))
			for _, s := range installed {
				version := ""
				if s.Version != "" {
					version = " v" + s.Version
				}
				fmt.Printf("  %s%s  %s\n", s.Name, version, dimStyle.Render(s.Description))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("agent", "a", nil, "Only list skills for these agent(s)")
	listCmd.Flags().BoolP("global", "g", false, "List user-level skills instead of project-level")
	rootCmd.AddCommand(listCmd)
}
