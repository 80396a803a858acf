package core

import (
	"os"
	"path/filepath"
)

// InstalledSkill is one skill found in an agent's skills directory.
type InstalledSkill struct {
	Name        string
	Description string
	Version     string // from manifest metadata, may be empty
	Path        string
	Agent       string // agent machine name
	Scope       Scope
}

// ListInstalled scans the skills directories of the given agents at the
// given scope and returns every installed skill. Entries without a
// parseable SKILL.md are skipped. Missing directories are not an error.
func ListInstalled(agents []AgentDef, scope Scope, projectRoot string) ([]InstalledSkill, error) {
	var skills []InstalledSkill
	for _, agent := range agents {
		dir := SkillsDirFor(agent, scope, projectRoot)

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			skillPath := filepath.Join(dir, entry.Name())
			m, err := ParseManifestFile(filepath.Join(skillPath, skillFileName))
			if err != nil {
				continue
			}
			skills = append(skills, InstalledSkill{
				Name:        m.Name,
				Description: m.Description,
				Version:     m.Metadata["version"],
				Path:        skillPath,
				Agent:       agent.Name,
				Scope:       scope,
			})
		}
	}
	return skills, nil
}
