package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAgentByName(t *testing.T) {
	agent, err := AgentByName("claude")
	if err != nil {
		t.Fatalf("AgentByName() error: %v", err)
	}
	if agent.DisplayName != "Claude Code" {
		t.Errorf("DisplayName = %q", agent.DisplayName)
	}
	if !agent.Features.ForkContext || !agent.Features.Hooks || !agent.Features.AllowedTools {
		t.Errorf("claude features = %+v, want all supported", agent.Features)
	}

	// Lookup is case-insensitive and trims whitespace.
	if _, err := AgentByName(" Cursor "); err != nil {
		t.Errorf("AgentByName(\" Cursor \") error: %v", err)
	}

	_, err = AgentByName("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown agent")
	}
	if !strings.Contains(err.Error(), "claude") {
		t.Errorf("error %q does not list valid agents", err)
	}
}

func TestAgentTable(t *testing.T) {
	agents := Agents()
	if len(agents) != 8 {
		t.Fatalf("Agents() = %d entries, want 8", len(agents))
	}

	seen := make(map[string]bool)
	for _, a := range agents {
		if a.Name == "" || a.DisplayName == "" || a.SkillsDir == "" || a.GlobalSkillsDir == "" {
			t.Errorf("agent %q has incomplete definition: %+v", a.Name, a)
		}
		if seen[a.Name] {
			t.Errorf("duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
		if !strings.HasPrefix(a.GlobalSkillsDir, "~/") {
			t.Errorf("agent %q GlobalSkillsDir = %q, want home-relative", a.Name, a.GlobalSkillsDir)
		}
	}
}

func TestSkillsDirFor(t *testing.T) {
	agent, _ := AgentByName("claude")

	got := SkillsDirFor(agent, ScopeProject, "/work/proj")
	if got != filepath.Join("/work/proj", ".claude", "skills") {
		t.Errorf("project dir = %q", got)
	}

	home, _ := os.UserHomeDir()
	got = SkillsDirFor(agent, ScopeGlobal, "/work/proj")
	if got != filepath.Join(home, ".claude", "skills") {
		t.Errorf("global dir = %q", got)
	}
}

func TestDetectedProject(t *testing.T) {
	root := t.TempDir()
	agent, _ := AgentByName("claude")

	if DetectedProject(agent, root) {
		t.Error("detected claude in an empty project")
	}

	if err := os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !DetectedProject(agent, root) {
		t.Error("CLAUDE.md did not trigger detection")
	}
}

func TestDetectedProject_SkillsDir(t *testing.T) {
	root := t.TempDir()
	agent, _ := AgentByName("windsurf")

	if err := os.MkdirAll(filepath.Join(root, ".windsurf", "skills"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !DetectedProject(agent, root) {
		t.Error("existing skills dir did not trigger detection")
	}
}
