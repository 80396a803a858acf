package core

import (
	"os"
	"path/filepath"
	"testing"
)

// makeSkillDir builds a source skill directory with a SKILL.md, a
// reference file, and entries the copy must skip.
func makeSkillDir(t *testing.T, name string) Candidate {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	writeSkillAt(t, dir, name)

	if err := os.MkdirAll(filepath.Join(dir, "references"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "references", "guide.md"), []byte("ref"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "_notes.md"), []byte("private"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ParseManifestFile(filepath.Join(dir, skillFileName))
	if err != nil {
		t.Fatal(err)
	}
	return Candidate{Name: name, Dir: dir, Manifest: m}
}

func claudeTarget(t *testing.T) InstallTarget {
	t.Helper()
	agent, _ := AgentByName("claude")
	return InstallTarget{
		Agent:    agent,
		Scope:    ScopeProject,
		Dir:      filepath.Join(t.TempDir(), ".claude", "skills"),
		Features: agent.Features,
	}
}

func TestInstall_Fresh(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	target := claudeTarget(t)

	out := Install(cand, target, InstallOptions{})
	if out.Status != StatusInstalled {
		t.Fatalf("Status = %q (err: %v)", out.Status, out.Err)
	}

	dest := filepath.Join(target.Dir, "greeter")
	if out.Dir != dest {
		t.Errorf("Dir = %q, want %q", out.Dir, dest)
	}
	if !fileExists(filepath.Join(dest, "SKILL.md")) {
		t.Error("SKILL.md not copied")
	}
	if !fileExists(filepath.Join(dest, "references", "guide.md")) {
		t.Error("references not copied")
	}
	if dirExists(filepath.Join(dest, ".git")) {
		t.Error(".git was copied")
	}
	if fileExists(filepath.Join(dest, "_notes.md")) {
		t.Error("underscore-prefixed file was copied")
	}
}

func TestInstall_OverwriteAlways(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	target := claudeTarget(t)

	dest := filepath.Join(target.Dir, "greeter")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "stale.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := Install(cand, target, InstallOptions{Policy: OverwriteAlways})
	if out.Status != StatusOverwritten {
		t.Fatalf("Status = %q, want overwritten", out.Status)
	}
	if fileExists(filepath.Join(dest, "stale.txt")) {
		t.Error("stale content survived the overwrite")
	}
	if !fileExists(filepath.Join(dest, "SKILL.md")) {
		t.Error("new content missing after overwrite")
	}
}

func TestInstall_OverwriteNever(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	target := claudeTarget(t)

	dest := filepath.Join(target.Dir, "greeter")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := Install(cand, target, InstallOptions{Policy: OverwriteNever})
	if out.Status != StatusSkipped {
		t.Fatalf("Status = %q, want skipped", out.Status)
	}
	if out.Reason != "already exists" {
		t.Errorf("Reason = %q", out.Reason)
	}
	if !fileExists(filepath.Join(dest, "keep.txt")) {
		t.Error("existing content was touched")
	}
}

func TestInstall_AskConfirm(t *testing.T) {
	tests := []struct {
		name    string
		confirm ConfirmFunc
		want    OutcomeStatus
	}{
		{"accepted", func(skill, dest string) bool { return true }, StatusOverwritten},
		{"declined", func(skill, dest string) bool { return false }, StatusSkipped},
		{"nil declines", nil, StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := makeSkillDir(t, "greeter")
			target := claudeTarget(t)
			if err := os.MkdirAll(filepath.Join(target.Dir, "greeter"), 0o755); err != nil {
				t.Fatal(err)
			}

			out := Install(cand, target, InstallOptions{Policy: OverwriteAsk, Confirm: tt.confirm})
			if out.Status != tt.want {
				t.Errorf("Status = %q, want %q", out.Status, tt.want)
			}
		})
	}
}

func TestInstall_FeatureWarnings(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	cand.Manifest.Context = "fork"
	cand.Manifest.Hooks = map[string]string{"post-install": "setup.sh"}
	cand.Manifest.AllowedTools = "Read"

	agent, _ := AgentByName("cursor") // no feature support
	target := InstallTarget{
		Agent: agent,
		Scope: ScopeProject,
		Dir:   filepath.Join(t.TempDir(), ".cursor", "skills"),
	}

	out := Install(cand, target, InstallOptions{})
	if out.Status != StatusInstalled {
		t.Fatalf("Status = %q (err: %v)", out.Status, out.Err)
	}
	if len(out.Warnings) != 3 {
		t.Errorf("Warnings = %v, want 3", out.Warnings)
	}
}

func TestInstall_NoWarningsWhenSupported(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	cand.Manifest.Context = "fork"
	cand.Manifest.AllowedTools = "Read"

	out := Install(cand, claudeTarget(t), InstallOptions{})
	if len(out.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for claude", out.Warnings)
	}
}

func TestInstall_CopyFailureCleansUp(t *testing.T) {
	cand := makeSkillDir(t, "greeter")
	// An unreadable file forces the copy to fail partway.
	bad := filepath.Join(cand.Dir, "references", "secret.md")
	if err := os.WriteFile(bad, []byte("x"), 0o000); err != nil {
		t.Fatal(err)
	}
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	target := claudeTarget(t)
	out := Install(cand, target, InstallOptions{})
	if out.Status != StatusFailed {
		t.Fatalf("Status = %q, want failed", out.Status)
	}
	if out.Err == nil {
		t.Error("failed outcome carries no error")
	}
	if dirExists(filepath.Join(target.Dir, "greeter")) {
		t.Error("partial destination was left behind")
	}
}
