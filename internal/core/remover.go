package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// RemoveResult is the result of removing one skill.
type RemoveResult struct {
	Name   string
	Agents []string // machine names of agents the skill was removed from
}

// RemoveSkill deletes the named skill from every target. Only
// directories that actually hold a SKILL.md are treated as installed
// skills; anything else with a matching name is left alone. Emptied
// skills directories are cleaned up afterwards.
func RemoveSkill(name string, targets []InstallTarget) (*RemoveResult, error) {
	if name == "" {
		return nil, fmt.Errorf("skill name is required")
	}

	res := &RemoveResult{Name: name}
	dirName := sanitizeName(name)

	for _, target := range targets {
		skillPath := filepath.Join(target.Dir, dirName)
		if !fileExists(filepath.Join(skillPath, skillFileName)) {
			continue
		}
		if err := os.RemoveAll(skillPath); err != nil {
			return nil, fmt.Errorf("removing %s for %s: %w", name, target.Agent.DisplayName, err)
		}
		res.Agents = append(res.Agents, target.Agent.Name)

		cleanupEmptyDir(target.Dir)
	}

	if len(res.Agents) == 0 {
		return nil, fmt.Errorf("skill %q is not installed", name)
	}
	return res, nil
}

// cleanupEmptyDir removes a directory if it exists and is empty.
func cleanupEmptyDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	_ = os.Remove(dir)
}
