package core

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// ownerRepoPattern matches "owner/repo" shorthand (2 segments, no protocol).
var ownerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// ParseSource parses a skill source string into a structured Source.
//
// Supported formats:
//   - "owner/repo"                      → GitHub shorthand
//   - "https://github.com/owner/repo"   → HTTPS git URL (any host)
//   - "https://host/o/r/tree/REF/PATH"  → HTTPS URL pinned to a ref + subpath
//   - "git@host:owner/repo.git"         → SSH git URL
//   - "./local/path" or "/abs/path"     → local directory
func ParseSource(input string) (*Source, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidSource)
	}

	// Local paths: starts with ./ ../ / or ~
	if isLocalPath(input) {
		return parseLocalSource(input)
	}

	// SSH git URL: git@host:owner/repo.git
	if strings.HasPrefix(input, "git@") {
		return parseSSHSource(input)
	}

	// HTTPS URLs
	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		return parseHTTPSource(input)
	}

	// owner/repo (exactly 2 path segments)
	if ownerRepoPattern.MatchString(input) {
		owner, repo, _ := strings.Cut(input, "/")
		return &Source{
			Type:     SourceTypeRemote,
			Host:     "github.com",
			Owner:    owner,
			Repo:     repo,
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", owner, repo),
		}, nil
	}

	// Last chance: a bare relative path that exists on disk.
	if dirExists(input) {
		return parseLocalSource(input)
	}

	return nil, fmt.Errorf("%w: %q (expected owner/repo, a git URL, or a local path)",
		ErrInvalidSource, input)
}

// ParseSourceWithRef parses a source string and applies an explicit ref
// override. The override wins over any ref embedded in the URL.
func ParseSourceWithRef(input, ref string) (*Source, error) {
	src, err := ParseSource(input)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		if src.Type == SourceTypeLocal {
			return nil, fmt.Errorf("%w: a ref cannot be used with local path %q",
				ErrInvalidSource, src.LocalPath)
		}
		src.Ref = ref
	}
	return src, nil
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~")
}

func parseLocalSource(input string) (*Source, error) {
	expanded := expandPath(input)
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: local path not found: %s", ErrInvalidSource, absPath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: local path is not a directory: %s", ErrInvalidSource, absPath)
	}

	return &Source{
		Type:      SourceTypeLocal,
		LocalPath: absPath,
	}, nil
}

func parseSSHSource(input string) (*Source, error) {
	// git@github.com:owner/repo.git
	hostPart, repoPart, ok := strings.Cut(input, ":")
	if !ok || repoPart == "" {
		return nil, fmt.Errorf("%w: SSH URL must be in format git@host:owner/repo.git, got %q",
			ErrInvalidSource, input)
	}

	host := strings.TrimPrefix(hostPart, "git@")
	repoPath := strings.TrimSuffix(repoPart, ".git")

	src := &Source{
		Type:     SourceTypeRemote,
		Host:     host,
		CloneURL: fmt.Sprintf("git@%s:%s.git", host, repoPath),
	}

	if owner, repo, ok := strings.Cut(repoPath, "/"); ok {
		src.Owner = owner
		src.Repo = repo
	}

	return src, nil
}

func parseHTTPSource(input string) (*Source, error) {
	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL %q", ErrInvalidSource, input)
	}

	pathParts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(pathParts) < 2 || pathParts[0] == "" || pathParts[1] == "" {
		return nil, fmt.Errorf("%w: URL %q has no owner/repo path", ErrInvalidSource, input)
	}

	src := &Source{
		Type:  SourceTypeRemote,
		Host:  u.Host,
		Owner: pathParts[0],
		Repo:  strings.TrimSuffix(pathParts[1], ".git"),
	}
	src.CloneURL = fmt.Sprintf("https://%s/%s/%s.git", u.Host, src.Owner, src.Repo)

	// Handle /tree/<ref>/<subpath> suffix.
	if len(pathParts) >= 4 && pathParts[2] == "tree" {
		src.Ref = pathParts[3]
		if len(pathParts) > 4 {
			sub := strings.Join(pathParts[4:], "/")
			if err := checkSubPath(sub); err != nil {
				return nil, err
			}
			src.SubPath = sub
		}
	}

	return src, nil
}

// checkSubPath rejects subpaths that escape the repository root.
func checkSubPath(sub string) error {
	if path.IsAbs(sub) {
		return fmt.Errorf("%w: subpath %q must be relative", ErrInvalidSource, sub)
	}
	cleaned := path.Clean(sub)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: subpath %q escapes the repository root", ErrInvalidSource, sub)
	}
	return nil
}

// DisplayName returns a short human-readable name for the source.
func (s *Source) DisplayName() string {
	if s.Type == SourceTypeLocal {
		return s.LocalPath
	}
	if s.Owner != "" && s.Repo != "" {
		return s.Owner + "/" + s.Repo
	}
	return s.CloneURL
}
