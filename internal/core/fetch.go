package core

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FetchOptions configures a fetch.
type FetchOptions struct {
	// Offline forbids all network access. Sources whose mirror is already
	// cached still work; anything else fails with ErrOfflineCacheMiss.
	Offline bool
}

// Fetcher turns a parsed source into a materialized local tree, using the
// cache for mirrors and checkouts. Fetches for different origins are
// independent; two concurrent fetches of the same origin are safe because
// mirror updates and checkout materializations land in fresh temp
// directories and are promoted with an atomic swap.
type Fetcher struct {
	cache *Cache
}

// NewFetcher creates a Fetcher backed by the given cache.
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{cache: cache}
}

// Fetch materializes the source. For local sources this returns the path
// itself; nothing is copied or cached. For remote sources the bare mirror
// is synced (unless offline), the ref is resolved to a commit, and a
// checkout for that commit is reused or created.
func (f *Fetcher) Fetch(src *Source, opts FetchOptions) (*FetchResult, error) {
	if src.Type == SourceTypeLocal {
		return &FetchResult{Root: src.LocalPath}, nil
	}

	key := MirrorKey(src.CloneURL)

	if err := f.syncMirror(src.CloneURL, key, opts.Offline); err != nil {
		return nil, err
	}

	commit, err := f.resolveRef(key, src.Ref)
	if err != nil {
		return nil, err
	}

	checkoutDir, fromCache := f.cache.Checkout(key, commit)
	if !fromCache {
		checkoutDir, err = f.materialize(key, commit)
		if err != nil {
			return nil, err
		}
	}

	root := checkoutDir
	if src.SubPath != "" {
		root = filepath.Join(checkoutDir, filepath.FromSlash(src.SubPath))
		if !dirExists(root) {
			return nil, fmt.Errorf("%w: %q", ErrSubpathNotFound, src.SubPath)
		}
	}

	return &FetchResult{
		Root:        root,
		CheckoutDir: checkoutDir,
		Commit:      commit,
		FromCache:   fromCache,
	}, nil
}

// syncMirror brings the bare mirror for the origin up to date. When the
// HTTPS transport fails with an authentication error specifically, the
// sync is retried exactly once over the SSH form of the same origin;
// every other failure kind surfaces immediately.
func (f *Fetcher) syncMirror(cloneURL, key string, offline bool) error {
	exists := f.cache.HasMirror(key)

	if offline {
		if exists {
			return nil // serve the stale mirror
		}
		return fmt.Errorf("%w: %s", ErrOfflineCacheMiss, cloneURL)
	}

	err := f.updateMirror(cloneURL, key, exists)
	if err == nil {
		return nil
	}

	ge, ok := AsGitError(err)
	if !ok || ge.Kind != GitErrAuth || ge.Protocol != "https" {
		return err
	}
	sshURL := HTTPSToSSH(cloneURL)
	if sshURL == "" {
		return err
	}
	return f.updateMirror(sshURL, key, exists)
}

// updateMirror clones or refreshes the mirror into a scratch directory
// and atomically swaps it into place. The existing mirror, if any, is
// never mutated: an update starts from a local clone of it so only the
// delta is fetched over the network.
func (f *Fetcher) updateMirror(cloneURL, key string, exists bool) error {
	tmp, err := f.cache.TempDir("mirror")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	mirrorPath := f.cache.MirrorPath(key)

	if exists {
		// Local clone of the current mirror, then fetch the delta.
		if _, err := f.git(cloneURL, "clone", "--mirror", mirrorPath, tmp); err != nil {
			return err
		}
		if _, err := f.git(cloneURL, "-C", tmp, "remote", "set-url", "origin", cloneURL); err != nil {
			return err
		}
		if _, err := f.git(cloneURL, "-C", tmp, "fetch", "--prune", "origin",
			"+refs/heads/*:refs/heads/*", "+refs/tags/*:refs/tags/*"); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(f.cache.MirrorsDir(), 0o755); err != nil {
			return fmt.Errorf("creating mirrors directory: %w", err)
		}
		if _, err := f.git(cloneURL, "clone", "--mirror", cloneURL, tmp); err != nil {
			return err
		}
	}

	return swapDir(tmp, mirrorPath)
}

// resolveRef resolves a branch, tag, or commit hash against the mirror.
// An empty ref resolves the default branch (HEAD).
func (f *Fetcher) resolveRef(key, ref string) (string, error) {
	mirrorPath := f.cache.MirrorPath(key)

	var candidates []string
	if ref == "" {
		candidates = []string{"HEAD"}
	} else {
		candidates = []string{
			"refs/heads/" + ref,
			"refs/tags/" + ref,
			ref, // raw ref or commit hash
		}
	}

	for _, cand := range candidates {
		out, err := f.git("", "-C", mirrorPath, "rev-parse", "--verify", "--quiet", cand+"^{commit}")
		if err != nil {
			continue
		}
		if commit := strings.TrimSpace(out); commit != "" {
			return commit, nil
		}
	}

	if ref == "" {
		return "", fmt.Errorf("%w: repository has no resolvable HEAD", ErrRefNotFound)
	}
	return "", fmt.Errorf("%w: %q", ErrRefNotFound, ref)
}

// materialize creates a working tree for the commit from the mirror and
// registers it with the cache. The tree is a plain directory; git
// metadata is stripped after checkout.
func (f *Fetcher) materialize(key, commit string) (string, error) {
	tmp, err := f.cache.TempDir("checkout")
	if err != nil {
		return "", err
	}

	mirrorPath := f.cache.MirrorPath(key)

	if _, err := f.git("", "clone", mirrorPath, tmp); err != nil {
		_ = os.RemoveAll(tmp)
		return "", err
	}
	if _, err := f.git("", "-C", tmp, "checkout", "--detach", commit); err != nil {
		_ = os.RemoveAll(tmp)
		return "", err
	}
	if err := os.RemoveAll(filepath.Join(tmp, ".git")); err != nil {
		_ = os.RemoveAll(tmp)
		return "", fmt.Errorf("stripping git metadata: %w", err)
	}

	dir, err := f.cache.RecordCheckout(key, commit, tmp)
	if err != nil {
		_ = os.RemoveAll(tmp)
		return "", err
	}
	return dir, nil
}

// git runs a git command and classifies failures. remoteURL is used for
// error classification and may be empty for purely local operations.
func (f *Fetcher) git(remoteURL string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := runWithTimeout(cmd, gitTimeout)
	if err != nil {
		if remoteURL == "" {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(output))
		}
		return "", ClassifyGitError(remoteURL, "git "+strings.Join(args, " "), output)
	}
	return output, nil
}
