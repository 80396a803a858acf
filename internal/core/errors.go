package core

import "errors"

// Sentinel errors for pipeline-level failures. The CLI maps these to
// process exit codes; per-candidate and per-target failures are recorded
// in the run report instead of being returned as errors.
var (
	// ErrInvalidSource means the source string matched no recognized form.
	ErrInvalidSource = errors.New("invalid source")

	// ErrRefNotFound means a named branch or tag could not be resolved
	// against the repository. Terminal, never retried.
	ErrRefNotFound = errors.New("ref not found")

	// ErrSubpathNotFound means the requested path does not exist inside
	// the fetched repository. Terminal, never retried.
	ErrSubpathNotFound = errors.New("subpath not found in repository")

	// ErrOfflineCacheMiss means offline mode is on and the repository has
	// never been mirrored, so no network attempt is made.
	ErrOfflineCacheMiss = errors.New("repository not in cache and offline mode is enabled")

	// ErrNoCandidates means discovery found nothing installable, or a
	// requested skill name matched nothing.
	ErrNoCandidates = errors.New("no skills found")
)
