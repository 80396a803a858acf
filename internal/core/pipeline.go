package core

import "fmt"

// RunRequest is everything a single install run needs. The CLI layer
// fills it from flags and config; tests construct it directly.
type RunRequest struct {
	// Source is the raw source string: owner/repo, a git URL, or a path.
	Source string
	// Ref is an explicit branch/tag/commit override.
	Ref string
	// Names restricts installation to these skill names. Empty means all.
	Names []string
	// Agents are agent machine names, or the single sentinel "all".
	Agents []string
	// DefaultAgent is used when Agents is empty or detection finds nothing.
	DefaultAgent string
	// Scope selects project or global destinations.
	Scope Scope
	// ProjectRoot anchors project-scope destinations and detection.
	ProjectRoot string
	// Policy controls conflicting destinations; Confirm is consulted
	// under OverwriteAsk.
	Policy  OverwritePolicy
	Confirm ConfirmFunc
	// Validator gates candidates. Nil admits everything discovered.
	Validator ValidateFunc
	// IgnorePatterns prune directories during discovery.
	IgnorePatterns []string
	// CacheRoot overrides the cache location. Empty uses the default.
	CacheRoot string
	// Offline forbids network access.
	Offline bool
	// ListOnly stops after the validation gate without resolving targets.
	ListOnly bool
}

// RunReport is the result of a run. Pipeline-level failures are returned
// as errors from Run; per-skill and per-target failures land in Rejected
// and Outcomes.
type RunReport struct {
	Source     *Source
	Fetch      *FetchResult
	Candidates []Candidate // candidates that passed the gate
	Rejected   []Rejection
	Targets    []InstallTarget
	Outcomes   []Outcome
}

// Failed reports whether any installation outcome failed.
func (r *RunReport) Failed() bool {
	for _, out := range r.Outcomes {
		if out.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Run executes the full install pipeline: parse the source, fetch it,
// discover skills, gate them, resolve targets, and install. Errors
// before installation abort the run; failures of individual
// (skill, target) pairs are recorded in the report and never abort
// the batch.
func Run(req RunRequest) (*RunReport, error) {
	src, err := ParseSourceWithRef(req.Source, req.Ref)
	if err != nil {
		return nil, err
	}
	report := &RunReport{Source: src}

	cacheRoot := req.CacheRoot
	if cacheRoot == "" {
		cacheRoot = DefaultCacheRoot()
	}
	fetcher := NewFetcher(NewCache(cacheRoot))

	fetched, err := fetcher.Fetch(src, FetchOptions{Offline: req.Offline})
	if err != nil {
		return nil, err
	}
	report.Fetch = fetched

	candidates, unparseable, err := DiscoverSkills(fetched.Root, req.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	report.Rejected = unparseable
	if len(candidates) == 0 {
		if len(unparseable) > 0 {
			return report, fmt.Errorf("%w: all %d skill(s) in %s failed to parse",
				ErrNoCandidates, len(unparseable), src.DisplayName())
		}
		return report, fmt.Errorf("%w: no skills found in %s", ErrNoCandidates, src.DisplayName())
	}

	installable, rejected, err := Gate(candidates, req.Names, req.Validator)
	if err != nil {
		return report, err
	}
	report.Candidates = installable
	report.Rejected = append(report.Rejected, rejected...)

	if len(installable) == 0 {
		return report, fmt.Errorf("%w: all %d discovered skill(s) failed validation",
			ErrNoCandidates, len(candidates))
	}

	if req.ListOnly {
		return report, nil
	}

	targets, err := ResolveTargets(req.Agents, req.Scope, req.ProjectRoot, req.DefaultAgent)
	if err != nil {
		return nil, err
	}
	report.Targets = targets

	opts := InstallOptions{Policy: req.Policy, Confirm: req.Confirm}
	for _, cand := range installable {
		for _, target := range targets {
			report.Outcomes = append(report.Outcomes, Install(cand, target, opts))
		}
	}

	return report, nil
}
