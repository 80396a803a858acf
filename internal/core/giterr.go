package core

import (
	"fmt"
	"strings"
)

// GitErrorKind classifies why a git transport operation failed.
type GitErrorKind int

const (
	// GitErrUnknown is an unclassified git failure.
	GitErrUnknown GitErrorKind = iota
	// GitErrAuth means authentication failed (credentials missing or invalid).
	// This is the only kind that triggers the HTTPS-to-SSH retry.
	GitErrAuth
	// GitErrRepoNotFound means the repository URL is wrong or the user has no access.
	GitErrRepoNotFound
	// GitErrNetwork means the host could not be reached (DNS, connectivity).
	GitErrNetwork
	// GitErrSSHKey means the SSH key was rejected or not found.
	GitErrSSHKey
	// GitErrHostKey means SSH host key verification failed.
	GitErrHostKey
	// GitErrTimeout means the operation timed out.
	GitErrTimeout
)

// String returns a human-readable label for the error kind.
func (k GitErrorKind) String() string {
	switch k {
	case GitErrAuth:
		return "Authentication Required"
	case GitErrRepoNotFound:
		return "Repository Not Found"
	case GitErrNetwork:
		return "Network Error"
	case GitErrSSHKey:
		return "SSH Key Error"
	case GitErrHostKey:
		return "SSH Host Key Error"
	case GitErrTimeout:
		return "Timeout"
	default:
		return "Unknown Error"
	}
}

// GitError is a structured error returned when a git command fails.
// It wraps the raw git output with classification and actionable hints.
type GitError struct {
	Kind      GitErrorKind
	Protocol  string   // "https" or "ssh"
	URL       string   // the remote URL that was attempted
	Command   string   // the git command that was run (for display)
	RawOutput string   // raw stderr/stdout from git
	Hints     []string // actionable suggestions for the user
}

// Error implements the error interface.
func (e *GitError) Error() string {
	return fmt.Sprintf("git %s (%s): %s", e.Command, e.Kind, e.firstLine())
}

// firstLine returns the first non-empty line of raw output for a concise message.
func (e *GitError) firstLine() string {
	for _, line := range strings.Split(e.RawOutput, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "Cloning into") {
			return line
		}
	}
	if e.RawOutput != "" {
		return strings.TrimSpace(e.RawOutput)
	}
	return "command failed"
}

// AsGitError checks whether an error wraps a *GitError and returns it.
func AsGitError(err error) (*GitError, bool) {
	for err != nil {
		if ge, ok := err.(*GitError); ok {
			return ge, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return nil, false
}

// ClassifyGitError examines git output and returns a structured GitError.
func ClassifyGitError(remoteURL, command, rawOutput string) *GitError {
	protocol := detectProtocol(remoteURL)
	kind := classifyOutput(rawOutput)

	return &GitError{
		Kind:      kind,
		Protocol:  protocol,
		URL:       remoteURL,
		Command:   command,
		RawOutput: strings.TrimSpace(rawOutput),
		Hints:     hintsForError(kind, protocol, remoteURL),
	}
}

// detectProtocol returns "ssh" or "https" based on the remote URL format.
func detectProtocol(url string) string {
	if strings.HasPrefix(url, "git@") || strings.HasPrefix(url, "ssh://") {
		return "ssh"
	}
	return "https"
}

// classifyOutput pattern-matches git stderr to determine the error kind.
func classifyOutput(output string) GitErrorKind {
	lower := strings.ToLower(output)

	// Timeout (checked first since it's set by us, not git).
	if strings.Contains(lower, "timed out") {
		return GitErrTimeout
	}

	// SSH key errors.
	if strings.Contains(lower, "permission denied (publickey)") ||
		strings.Contains(lower, "no such identity") ||
		strings.Contains(lower, "load key") ||
		strings.Contains(lower, "identity file") {
		return GitErrSSHKey
	}

	// SSH host key verification.
	if strings.Contains(lower, "host key verification failed") ||
		strings.Contains(lower, "known_hosts") {
		return GitErrHostKey
	}

	// HTTPS auth errors.
	if strings.Contains(lower, "could not read username") ||
		strings.Contains(lower, "could not read password") ||
		strings.Contains(lower, "invalid credentials") ||
		strings.Contains(lower, "authentication failed") ||
		strings.Contains(lower, "401") ||
		strings.Contains(lower, "403") ||
		strings.Contains(lower, "logon failed") {
		return GitErrAuth
	}

	// Repository not found (hosts return this for private repos with no access too).
	if strings.Contains(lower, "repository not found") ||
		strings.Contains(lower, "does not appear to be a git repository") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "project not found") {
		return GitErrRepoNotFound
	}

	// Network errors.
	if strings.Contains(lower, "could not resolve host") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection timed out") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "no route to host") ||
		strings.Contains(lower, "name or service not known") {
		return GitErrNetwork
	}

	return GitErrUnknown
}

// hintsForError returns actionable suggestions based on the error kind and protocol.
func hintsForError(kind GitErrorKind, protocol, remoteURL string) []string {
	switch kind {
	case GitErrAuth:
		hints := []string{
			"Run `gh auth login` in your terminal to authenticate with GitHub",
			"Or configure a git credential helper: `git config --global credential.helper store`",
		}
		if protocol == "https" {
			if sshURL := HTTPSToSSH(remoteURL); sshURL != "" {
				hints = append(hints, fmt.Sprintf("Try SSH instead: %s", sshURL))
			}
		}
		return hints

	case GitErrSSHKey:
		hints := []string{
			"Ensure your SSH key is loaded: `ssh-add -l`",
			"If no keys are listed, add one: `ssh-add ~/.ssh/id_ed25519`",
			"Check `~/.ssh/config` for the correct Host alias if using multiple accounts",
		}
		if protocol == "ssh" {
			if httpsURL := SSHToHTTPS(remoteURL); httpsURL != "" {
				hints = append(hints, fmt.Sprintf("Try HTTPS instead: %s", httpsURL))
			}
		}
		return hints

	case GitErrHostKey:
		return []string{
			"The SSH host key is not trusted. Run: `ssh-keyscan github.com >> ~/.ssh/known_hosts`",
			"Or connect once manually: `ssh -T git@github.com` and accept the host key",
		}

	case GitErrRepoNotFound:
		return []string{
			"Verify the repository URL is correct",
			"Ensure you have access to this repository (it may be private)",
			"If using SSH, check that your key has access to this organization",
		}

	case GitErrNetwork:
		return []string{
			"Check your internet connection",
			"Verify the hostname in the URL is correct",
			"If behind a proxy, ensure git is configured to use it",
		}

	case GitErrTimeout:
		return []string{
			"The git operation timed out",
			"This may indicate a network issue or a very large repository",
			"Try again, the server may have been temporarily unavailable",
		}

	default:
		return []string{
			"Check the error message above for details",
			"Verify the repository URL is correct and accessible",
			"Try cloning manually: `git clone <url>` to diagnose the issue",
		}
	}
}

// HTTPSToSSH converts an HTTPS git URL to SSH format.
// Returns empty string if conversion is not possible.
func HTTPSToSSH(url string) string {
	// https://host/owner/repo.git -> git@host:owner/repo.git
	rest, ok := strings.CutPrefix(url, "https://")
	if !ok {
		return ""
	}
	host, path, ok := strings.Cut(rest, "/")
	if !ok || host == "" || path == "" {
		return ""
	}
	if !strings.HasSuffix(path, ".git") {
		path += ".git"
	}
	return "git@" + host + ":" + path
}

// SSHToHTTPS converts an SSH git URL to HTTPS format.
// Returns empty string if conversion is not possible.
func SSHToHTTPS(url string) string {
	// git@host:owner/repo.git -> https://host/owner/repo.git
	rest, ok := strings.CutPrefix(url, "git@")
	if !ok {
		return ""
	}
	host, path, ok := strings.Cut(rest, ":")
	if !ok || host == "" || path == "" {
		return ""
	}
	return "https://" + host + "/" + path
}
