package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMirrorKey_ProtocolCollision(t *testing.T) {
	https := MirrorKey("https://github.com/Acme/Skills.git")
	ssh := MirrorKey("git@github.com:acme/skills")
	if https != ssh {
		t.Errorf("HTTPS and SSH keys differ: %q vs %q", https, ssh)
	}
	if !strings.HasPrefix(https, "github.com-acme-skills-") {
		t.Errorf("key = %q, want github.com-acme-skills- prefix", https)
	}
}

func TestMirrorKey_DistinctRepos(t *testing.T) {
	a := MirrorKey("https://github.com/acme/skills.git")
	b := MirrorKey("https://github.com/acme/other.git")
	if a == b {
		t.Errorf("distinct repos share key %q", a)
	}
}

func TestCheckoutName(t *testing.T) {
	got := checkoutName("github.com-acme-skills-ab12cd34", "0123456789abcdef0123456789abcdef01234567")
	want := "github.com-acme-skills-ab12cd34-0123456789ab"
	if got != want {
		t.Errorf("checkoutName() = %q, want %q", got, want)
	}
}

func TestCache_RecordAndReuseCheckout(t *testing.T) {
	c := NewCache(t.TempDir())

	tree, err := c.TempDir("checkout")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tree, "SKILL.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir, err := c.RecordCheckout("key", "0123456789abcdef", tree)
	if err != nil {
		t.Fatalf("RecordCheckout() error: %v", err)
	}
	if !fileExists(filepath.Join(dir, "SKILL.md")) {
		t.Error("promoted checkout is missing its content")
	}

	got, ok := c.Checkout("key", "0123456789abcdef")
	if !ok {
		t.Fatal("Checkout() did not find recorded checkout")
	}
	if got != dir {
		t.Errorf("Checkout() = %q, want %q", got, dir)
	}

	if _, ok := c.Checkout("key", "ffffffffffffffff"); ok {
		t.Error("Checkout() found a checkout for an unknown commit")
	}
}

func TestCache_RecordCheckoutReplacesExisting(t *testing.T) {
	c := NewCache(t.TempDir())

	for _, content := range []string{"old", "new"} {
		tree, err := c.TempDir("checkout")
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tree, "data"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := c.RecordCheckout("key", "abcdef123456", tree); err != nil {
			t.Fatalf("RecordCheckout() error: %v", err)
		}
	}

	dir, _ := c.Checkout("key", "abcdef123456")
	data, err := os.ReadFile(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestCache_Evict(t *testing.T) {
	c := NewCache(t.TempDir())

	for _, commit := range []string{"aaaaaaaaaaaa", "bbbbbbbbbbbb"} {
		tree, err := c.TempDir("checkout")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := c.RecordCheckout("key", commit, tree); err != nil {
			t.Fatal(err)
		}
	}

	// Age out the first checkout by rewriting its stamp.
	old := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)
	stamp := c.stampPath(checkoutName("key", "aaaaaaaaaaaa"))
	if err := os.WriteFile(stamp, []byte(old+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := c.Evict(24 * time.Hour)
	if err != nil {
		t.Fatalf("Evict() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Evict() removed %d, want 1", removed)
	}

	if _, ok := c.Checkout("key", "aaaaaaaaaaaa"); ok {
		t.Error("stale checkout survived eviction")
	}
	if _, ok := c.Checkout("key", "bbbbbbbbbbbb"); !ok {
		t.Error("fresh checkout was evicted")
	}
}

func TestCache_EvictNeverTouchesMirrors(t *testing.T) {
	c := NewCache(t.TempDir())

	mirror := c.MirrorPath("key")
	if err := os.MkdirAll(mirror, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Evict(0); err != nil {
		t.Fatalf("Evict() error: %v", err)
	}
	if !c.HasMirror("key") {
		t.Error("Evict() removed a mirror")
	}
}

func TestCache_PurgeAll(t *testing.T) {
	c := NewCache(t.TempDir())

	if err := os.MkdirAll(c.MirrorPath("key"), 0o755); err != nil {
		t.Fatal(err)
	}
	tree, _ := c.TempDir("checkout")
	if _, err := c.RecordCheckout("key", "abcdef123456", tree); err != nil {
		t.Fatal(err)
	}

	if err := c.PurgeAll(); err != nil {
		t.Fatalf("PurgeAll() error: %v", err)
	}
	if c.HasMirror("key") {
		t.Error("mirror survived purge")
	}
	if _, ok := c.Checkout("key", "abcdef123456"); ok {
		t.Error("checkout survived purge")
	}
}

func TestCache_Checkouts(t *testing.T) {
	c := NewCache(t.TempDir())

	infos, err := c.Checkouts()
	if err != nil {
		t.Fatalf("Checkouts() error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("empty cache lists %d checkouts", len(infos))
	}

	tree, _ := c.TempDir("checkout")
	if _, err := c.RecordCheckout("key", "abcdef123456", tree); err != nil {
		t.Fatal(err)
	}

	infos, err = c.Checkouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("Checkouts() = %d entries, want 1", len(infos))
	}
	if infos[0].LastAccess.IsZero() {
		t.Error("LastAccess is zero, want stamp time")
	}
}
