package core

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"code-review", "code-review"},
		{"Code Review", "code-review"},
		{"weird!!chars", "weird--chars"},
		{"", "unnamed-skill"},
		{"---", "unnamed-skill"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSwapDir_FreshDestination(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := swapDir(src, dst); err != nil {
		t.Fatalf("swapDir() error: %v", err)
	}
	if !fileExists(filepath.Join(dst, "f")) {
		t.Error("content missing after swap")
	}
	if dirExists(src) {
		t.Error("source still exists after swap")
	}
}

func TestSwapDir_ReplacesExisting(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")
	for dir, content := range map[string]string{src: "new", dst: "old"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "f"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := swapDir(src, dst); err != nil {
		t.Fatalf("swapDir() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "f"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	// No .old-* leftovers.
	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover entries after swap: %v", entries)
	}
}

func TestRunWithTimeout_TimeoutIsClassifiable(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	output, err := runWithTimeout(exec.Command("sleep", "10"), 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !strings.Contains(output, "timed out") {
		t.Fatalf("output = %q, want the timeout message", output)
	}

	// The output feeds error classification; a timeout must not come
	// back as an unknown git failure.
	ge := ClassifyGitError("https://github.com/o/r.git", "git fetch", output)
	if ge.Kind != GitErrTimeout {
		t.Errorf("Kind = %v, want GitErrTimeout", ge.Kind)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := expandPath("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("expandPath(~/x) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %q", got)
	}
}
