package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/skilletlabs/skillet/internal/core"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// loadConfig reads the user config, tolerating a missing home directory.
func loadConfig() (*core.Config, error) {
	cm, err := core.NewConfigManager()
	if err != nil {
		return &core.Config{}, nil
	}
	return cm.Load()
}

// stdinIsTTY reports whether stdin is an interactive terminal.
func stdinIsTTY() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// confirmOverwrite prompts whether to replace an existing skill.
func confirmOverwrite(skill, dest string) bool {
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Skill %q already exists", skill)).
			Description(dest).
			Affirmative("Overwrite").
			Negative("Skip").
			Value(&ok),
	)).Run()
	if err != nil {
		return false
	}
	return ok
}

// printOutcome writes one install outcome to stdout.
func printOutcome(out core.Outcome) {
	label := string(out.Status)
	switch out.Status {
	case core.StatusInstalled, core.StatusOverwritten:
		label = okStyle.Render(label)
	case core.StatusSkipped:
		label = dimStyle.Render(label)
	case core.StatusFailed:
		label = errStyle.Render(label)
	}

	fmt.Printf("%s  %s -> %s\n", label, out.Skill, out.Dir)
	if out.Reason != "" {
		fmt.Printf("        %s\n", dimStyle.Render(out.Reason))
	}
	if out.Err != nil {
		fmt.Printf("        %s\n", errStyle.Render(out.Err.Error()))
	}
	for _, w := range out.Warnings {
		fmt.Printf("        %s\n", warnStyle.Render("warning: "+w))
	}
}

// printRejections writes validation failures to stderr.
func printRejections(rejected []core.Rejection) {
	for _, rej := range rejected {
		name := rej.Candidate.Name
		if name == "" {
			name = rej.Candidate.Dir
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render("invalid:"), name)
		for _, e := range rej.Diagnostics.Errors {
			fmt.Fprintf(os.Stderr, "        %s\n", e)
		}
	}
}

// printGitHints writes the actionable hints of a git failure to stderr.
func printGitHints(err error) {
	ge, ok := core.AsGitError(err)
	if !ok || len(ge.Hints) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, dimStyle.Render("hints:"))
	for _, h := range ge.Hints {
		fmt.Fprintf(os.Stderr, "  %s\n", dimStyle.Render(h))
	}
}
