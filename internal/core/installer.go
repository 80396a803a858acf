package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfirmFunc asks the user whether to overwrite an existing skill.
// skill is the skill name, dest the directory that would be replaced.
type ConfirmFunc func(skill, dest string) bool

// InstallOptions configures Install.
type InstallOptions struct {
	Policy OverwritePolicy
	// Confirm is consulted per conflicting skill under OverwriteAsk.
	// A nil Confirm declines every conflict.
	Confirm ConfirmFunc
}

// Install copies one candidate into one target. The destination is
// <target.Dir>/<skill name>/. Feature mismatches between the manifest
// and the target agent become warnings on the outcome, never errors.
// A copy failure removes the partial destination best-effort and is
// reported as StatusFailed.
func Install(cand Candidate, target InstallTarget, opts InstallOptions) Outcome {
	out := Outcome{
		Skill:    cand.Name,
		Agent:    target.Agent.Name,
		Scope:    target.Scope,
		Warnings: featureWarnings(cand, target),
	}

	dest := filepath.Join(target.Dir, sanitizeName(cand.Name))
	out.Dir = dest

	status := StatusInstalled
	if dirExists(dest) {
		switch opts.Policy {
		case OverwriteAlways:
			status = StatusOverwritten
		case OverwriteNever:
			out.Status = StatusSkipped
			out.Reason = "already exists"
			return out
		case OverwriteAsk:
			if opts.Confirm == nil || !opts.Confirm(cand.Name, dest) {
				out.Status = StatusSkipped
				out.Reason = "already exists"
				return out
			}
			status = StatusOverwritten
		}
		if err := os.RemoveAll(dest); err != nil {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("removing existing %s: %w", dest, err)
			return out
		}
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("creating %s: %w", dest, err)
		return out
	}
	if err := copyDirectory(cand.Dir, dest); err != nil {
		_ = os.RemoveAll(dest)
		out.Status = StatusFailed
		out.Err = fmt.Errorf("copying %s: %w", cand.Name, err)
		return out
	}

	out.Status = status
	return out
}

// featureWarnings diffs the manifest's feature usage against what the
// target agent supports.
func featureWarnings(cand Candidate, target InstallTarget) []string {
	m := cand.Manifest
	if m == nil {
		return nil
	}

	var warnings []string
	if m.UsesForkContext() && !target.Features.ForkContext {
		warnings = append(warnings,
			fmt.Sprintf("skill %q uses 'context: fork' which %s does not support", cand.Name, target.Agent.DisplayName))
	}
	if m.UsesHooks() && !target.Features.Hooks {
		warnings = append(warnings,
			fmt.Sprintf("skill %q uses hooks which may not be supported by %s", cand.Name, target.Agent.DisplayName))
	}
	if m.UsesAllowedTools() && !target.Features.AllowedTools {
		warnings = append(warnings,
			fmt.Sprintf("skill %q declares 'allowed-tools' which %s does not honor", cand.Name, target.Agent.DisplayName))
	}
	return warnings
}
