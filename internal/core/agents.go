package core

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultAgentName is used when no agent is requested and none is detected.
const DefaultAgentName = "claude"

// agentTable is the fixed set of supported agents. Order is the display
// order for listings.
var agentTable = []AgentDef{
	{
		Name:            "claude",
		DisplayName:     "Claude Code",
		SkillsDir:       ".claude/skills",
		GlobalSkillsDir: "~/.claude/skills",
		DetectPaths:     []string{"~/.claude"},
		ProjectSignals:  []string{"CLAUDE.md", ".claude"},
		Features:        FeatureSet{ForkContext: true, Hooks: true, AllowedTools: true},
	},
	{
		Name:            "opencode",
		DisplayName:     "OpenCode",
		SkillsDir:       ".opencode/skill",
		GlobalSkillsDir: "~/.config/opencode/skill",
		DetectPaths:     []string{"~/.config/opencode"},
		ProjectSignals:  []string{"opencode.json", "opencode.jsonc", ".opencode"},
		Features:        FeatureSet{AllowedTools: true},
	},
	{
		Name:            "codex",
		DisplayName:     "Codex",
		SkillsDir:       ".codex/skills",
		GlobalSkillsDir: "~/.codex/skills",
		DetectPaths:     []string{"~/.codex"},
		ProjectSignals:  []string{"codex.md", ".codex"},
	},
	{
		Name:            "cursor",
		DisplayName:     "Cursor",
		SkillsDir:       ".cursor/skills",
		GlobalSkillsDir: "~/.cursor/skills",
		DetectPaths:     []string{"~/.cursor"},
		ProjectSignals:  []string{".cursor"},
	},
	{
		Name:            "gemini",
		DisplayName:     "Gemini CLI",
		SkillsDir:       ".gemini/skills",
		GlobalSkillsDir: "~/.gemini/skills",
		DetectPaths:     []string{"~/.gemini"},
		ProjectSignals:  []string{"GEMINI.md", ".gemini"},
	},
	{
		Name:            "copilot",
		DisplayName:     "GitHub Copilot",
		SkillsDir:       ".github/skills",
		GlobalSkillsDir: "~/.copilot/skills",
		DetectPaths:     []string{"~/.copilot"},
		ProjectSignals:  []string{".github/copilot-instructions.md"},
	},
	{
		Name:            "goose",
		DisplayName:     "Goose",
		SkillsDir:       ".goose/skills",
		GlobalSkillsDir: "~/.config/goose/skills",
		DetectPaths:     []string{"~/.config/goose"},
		ProjectSignals:  []string{".goose"},
	},
	{
		Name:            "windsurf",
		DisplayName:     "Windsurf",
		SkillsDir:       ".windsurf/skills",
		GlobalSkillsDir: "~/.codeium/windsurf/skills",
		DetectPaths:     []string{"~/.codeium/windsurf"},
		ProjectSignals:  []string{".windsurf"},
	},
}

// Agents returns all supported agent definitions in display order.
func Agents() []AgentDef {
	out := make([]AgentDef, len(agentTable))
	copy(out, agentTable)
	return out
}

// AgentByName looks up an agent by its machine name.
func AgentByName(name string) (AgentDef, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, agent := range agentTable {
		if agent.Name == name {
			return agent, nil
		}
	}
	return AgentDef{}, fmt.Errorf("unknown agent %q (valid: %s)", name, strings.Join(AgentNames(), ", "))
}

// AgentNames returns the machine names of all supported agents, sorted.
func AgentNames() []string {
	names := make([]string, 0, len(agentTable))
	for _, agent := range agentTable {
		names = append(names, agent.Name)
	}
	sort.Strings(names)
	return names
}

// SkillsDirFor returns the absolute skills directory for an agent at a
// scope. Project scope resolves against projectRoot; global scope
// expands the agent's home-relative directory.
func SkillsDirFor(agent AgentDef, scope Scope, projectRoot string) string {
	if scope == ScopeGlobal {
		return expandPath(agent.GlobalSkillsDir)
	}
	return filepath.Join(projectRoot, agent.SkillsDir)
}

// DetectedProject reports whether the agent leaves its own artifacts in
// the project, or already has a project skills directory there.
func DetectedProject(agent AgentDef, projectRoot string) bool {
	for _, sig := range agent.ProjectSignals {
		p := filepath.Join(projectRoot, sig)
		if fileExists(p) || dirExists(p) {
			return true
		}
	}
	return dirExists(filepath.Join(projectRoot, agent.SkillsDir))
}

// DetectedGlobal reports whether the agent appears installed for this
// user, via its global config or skills directories.
func DetectedGlobal(agent AgentDef) bool {
	for _, p := range agent.DetectPaths {
		if dirExists(expandPath(p)) {
			return true
		}
	}
	return dirExists(expandPath(agent.GlobalSkillsDir))
}
