package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	mirrorsDirName   = "mirrors"
	checkoutsDirName = "checkouts"
	stampSuffix      = ".stamp"
	commitKeyLen     = 12
)

// Cache owns the on-disk two-tier cache: bare repository mirrors under
// mirrors/ and materialized working trees under checkouts/. No other
// component writes into the cache root.
//
// Mirrors are keyed by normalized origin, so all refs of a remote share
// one mirror and the HTTPS and SSH forms of the same remote collide.
// Checkouts are keyed by (origin key, commit), so two branches pointing
// at the same commit share one checkout.
type Cache struct {
	root string
}

// DefaultCacheRoot returns the cache location used when no override is
// configured.
func DefaultCacheRoot() string {
	return filepath.Join(xdg.CacheHome, "skillet")
}

// NewCache creates a Cache rooted at the given directory.
func NewCache(root string) *Cache {
	return &Cache{root: root}
}

// Root returns the cache root directory.
func (c *Cache) Root() string { return c.root }

// MirrorsDir returns the directory holding bare mirrors.
func (c *Cache) MirrorsDir() string { return filepath.Join(c.root, mirrorsDirName) }

// CheckoutsDir returns the directory holding materialized checkouts.
func (c *Cache) CheckoutsDir() string { return filepath.Join(c.root, checkoutsDirName) }

// MirrorKey derives a filesystem-safe cache key from a clone URL.
// The URL is canonicalized (scheme stripped, host and path lowercased,
// trailing .git removed) before keying, so
// "https://github.com/Owner/Repo.git" and "git@github.com:owner/repo"
// map to the same mirror.
func MirrorKey(cloneURL string) string {
	host, repoPath := normalizeOrigin(cloneURL)

	readable := strings.ReplaceAll(repoPath, "/", "-")
	if host != "" {
		readable = host + "-" + readable
	}
	readable = strings.Trim(readable, "-")

	// Short hash over the canonical form for uniqueness.
	h := sha256.Sum256([]byte(host + "/" + repoPath))
	shortHash := hex.EncodeToString(h[:4])

	if readable == "" {
		return shortHash
	}
	return readable + "-" + shortHash
}

// normalizeOrigin reduces a clone URL to a lowercase (host, path) pair.
func normalizeOrigin(cloneURL string) (host, repoPath string) {
	s := strings.TrimSpace(cloneURL)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	switch {
	case strings.Contains(s, "://"):
		// https://host/owner/repo, ssh://git@host/owner/repo
		_, rest, _ := strings.Cut(s, "://")
		if at := strings.LastIndex(rest, "@"); at >= 0 && at < strings.Index(rest+"/", "/") {
			rest = rest[at+1:]
		}
		host, repoPath, _ = strings.Cut(rest, "/")
	case strings.Contains(s, "@") && strings.Contains(s, ":"):
		// git@host:owner/repo
		_, rest, _ := strings.Cut(s, "@")
		host, repoPath, _ = strings.Cut(rest, ":")
	default:
		repoPath = s
	}

	return strings.ToLower(host), strings.ToLower(strings.Trim(repoPath, "/"))
}

// MirrorPath returns the on-disk path for a mirror key.
func (c *Cache) MirrorPath(key string) string {
	return filepath.Join(c.MirrorsDir(), key)
}

// HasMirror reports whether a mirror exists for the key.
func (c *Cache) HasMirror(key string) bool {
	return dirExists(c.MirrorPath(key))
}

// checkoutName builds the directory name for a (key, commit) pair.
func checkoutName(key, commit string) string {
	short := commit
	if len(short) > commitKeyLen {
		short = short[:commitKeyLen]
	}
	return key + "-" + short
}

// CheckoutPath returns the on-disk path for a (key, commit) pair.
func (c *Cache) CheckoutPath(key, commit string) string {
	return filepath.Join(c.CheckoutsDir(), checkoutName(key, commit))
}

// Checkout returns the path of an existing checkout for (key, commit)
// and refreshes its last-access stamp. It never fetches; the second
// return value reports whether the checkout exists.
func (c *Cache) Checkout(key, commit string) (string, bool) {
	path := c.CheckoutPath(key, commit)
	if !dirExists(path) {
		return "", false
	}
	c.touchStamp(checkoutName(key, commit))
	return path, true
}

// RecordCheckout promotes a freshly materialized tree into the checkouts
// tier, replacing any prior entry for the same (key, commit). The tree
// must live on the same filesystem as the cache (use TempDir to create
// it) so the promotion is a rename, not a copy.
func (c *Cache) RecordCheckout(key, commit, tree string) (string, error) {
	if err := os.MkdirAll(c.CheckoutsDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating checkouts directory: %w", err)
	}

	name := checkoutName(key, commit)
	dst := filepath.Join(c.CheckoutsDir(), name)
	if err := swapDir(tree, dst); err != nil {
		return "", fmt.Errorf("registering checkout %s: %w", name, err)
	}
	c.touchStamp(name)
	return dst, nil
}

// TempDir creates a scratch directory inside the cache root, guaranteeing
// that later renames into mirrors/ or checkouts/ stay on one filesystem.
func (c *Cache) TempDir(prefix string) (string, error) {
	tmpRoot := filepath.Join(c.root, "tmp")
	if err := os.MkdirAll(tmpRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating cache tmp directory: %w", err)
	}
	return os.MkdirTemp(tmpRoot, prefix+"-*")
}

// Checkouts lists all materialized checkouts with their last-access times.
func (c *Cache) Checkouts() ([]CheckoutInfo, error) {
	entries, err := os.ReadDir(c.CheckoutsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checkouts directory: %w", err)
	}

	var infos []CheckoutInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		infos = append(infos, CheckoutInfo{
			Name:       entry.Name(),
			Path:       filepath.Join(c.CheckoutsDir(), entry.Name()),
			LastAccess: c.lastAccess(entry.Name()),
		})
	}
	return infos, nil
}

// Evict removes checkouts whose last access is older than maxAge.
// Mirrors are never touched by eviction; they are only removed by
// PurgeAll. Returns the number of checkouts removed.
func (c *Cache) Evict(maxAge time.Duration) (int, error) {
	infos, err := c.Checkouts()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, info := range infos {
		if info.LastAccess.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(info.Path); err != nil {
			return removed, fmt.Errorf("evicting checkout %s: %w", info.Name, err)
		}
		_ = os.Remove(c.stampPath(info.Name))
		removed++
	}
	return removed, nil
}

// PurgeAll removes both cache tiers entirely.
func (c *Cache) PurgeAll() error {
	for _, dir := range []string{c.MirrorsDir(), c.CheckoutsDir(), filepath.Join(c.root, "tmp")} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("purging %s: %w", dir, err)
		}
	}
	return nil
}

// stampPath returns the sidecar file recording a checkout's last access.
func (c *Cache) stampPath(name string) string {
	return filepath.Join(c.CheckoutsDir(), name+stampSuffix)
}

// touchStamp records the current time as the checkout's last access.
func (c *Cache) touchStamp(name string) {
	data := time.Now().UTC().Format(time.RFC3339) + "\n"
	_ = os.WriteFile(c.stampPath(name), []byte(data), 0o644)
}

// lastAccess reads a checkout's last-access time, falling back to the
// directory's modification time when the stamp is missing or unreadable.
func (c *Cache) lastAccess(name string) time.Time {
	if data, err := os.ReadFile(c.stampPath(name)); err == nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data))); err == nil {
			return t
		}
	}
	if info, err := os.Stat(filepath.Join(c.CheckoutsDir(), name)); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}
