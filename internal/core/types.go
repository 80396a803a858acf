// Package core implements the skillet install pipeline: source parsing,
// fetching through a two-tier git cache, skill discovery, validation
// gating, target resolution, and installation.
// It has zero UI dependencies and is independently testable.
package core

import "time"

// SourceType indicates the kind of skill source.
type SourceType string

const (
	// SourceTypeRemote is a git repository reachable over HTTPS or SSH.
	SourceTypeRemote SourceType = "remote"
	// SourceTypeLocal is a directory on the local filesystem.
	SourceTypeLocal SourceType = "local"
)

// Source is a parsed skill source string. Exactly one variant is
// populated: remote fields for SourceTypeRemote, LocalPath for
// SourceTypeLocal.
type Source struct {
	Type SourceType

	// Remote fields.
	Host     string // hostname, e.g. "github.com"
	Owner    string // repository owner
	Repo     string // repository name
	CloneURL string // full clone URL (HTTPS or SSH)
	Ref      string // branch or tag, empty for the default branch
	SubPath  string // path within the repo to the skill(s), slash-separated

	// Local field.
	LocalPath string // absolute path to a local directory
}

// IsRemote reports whether the source is a git remote.
func (s *Source) IsRemote() bool { return s.Type == SourceTypeRemote }

// Scope is where an installation lands: inside the current project or in
// the user's home directory.
type Scope string

const (
	// ScopeProject installs under the project root.
	ScopeProject Scope = "project"
	// ScopeGlobal installs under the user's home directory.
	ScopeGlobal Scope = "global"
)

// OverwritePolicy controls what happens when a skill's destination
// directory already exists.
type OverwritePolicy int

const (
	// OverwriteAsk prompts per conflicting skill via the Confirm callback.
	OverwriteAsk OverwritePolicy = iota
	// OverwriteAlways replaces existing destinations without asking.
	OverwriteAlways
	// OverwriteNever skips conflicting skills without asking.
	OverwriteNever
)

// FeatureSet records which optional skill features an agent understands.
type FeatureSet struct {
	// ForkContext: the agent can run a skill in a forked context.
	ForkContext bool
	// Hooks: the agent executes lifecycle hooks declared by a skill.
	Hooks bool
	// AllowedTools: the agent honors a pre-approved tool list.
	AllowedTools bool
}

// AgentDef describes an AI coding agent and its skill directory
// conventions. The set of agents is a fixed table, see agents.go.
type AgentDef struct {
	Name            string     // machine name: "claude", "cursor"
	DisplayName     string     // human name: "Claude Code", "Cursor"
	SkillsDir       string     // project-relative skill directory
	GlobalSkillsDir string     // home-relative skill directory (~ expanded at use)
	DetectPaths     []string   // global paths indicating the agent is installed
	ProjectSignals  []string   // project-relative artifacts the agent itself creates
	Features        FeatureSet // feature support for compat warnings
}

// InstallTarget is one concrete destination directory for a run,
// produced by ResolveTargets.
type InstallTarget struct {
	Agent    AgentDef
	Scope    Scope
	Dir      string // absolute skills directory for this agent and scope
	Features FeatureSet
}

// Candidate is a skill discovered inside a fetched tree.
type Candidate struct {
	Name     string    // from the manifest, not the directory
	Dir      string    // absolute directory containing SKILL.md
	Manifest *Manifest // parsed SKILL.md
}

// OutcomeStatus classifies the result of installing one candidate into
// one target.
type OutcomeStatus string

const (
	// StatusInstalled means the skill was copied into a fresh destination.
	StatusInstalled OutcomeStatus = "installed"
	// StatusOverwritten means an existing destination was replaced.
	StatusOverwritten OutcomeStatus = "overwritten"
	// StatusSkipped means the destination was left untouched.
	StatusSkipped OutcomeStatus = "skipped"
	// StatusFailed means the copy failed partway; the destination was
	// cleaned up best-effort and must not be treated as installed.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is the per-(candidate, target) result of an installation.
type Outcome struct {
	Skill    string
	Agent    string // agent machine name
	Scope    Scope
	Dir      string // destination skill directory
	Status   OutcomeStatus
	Reason   string   // populated for StatusSkipped
	Err      error    // populated for StatusFailed
	Warnings []string // non-fatal feature compatibility warnings
}

// Rejection pairs a candidate with the diagnostics that kept it from
// being installed.
type Rejection struct {
	Candidate   Candidate
	Diagnostics Diagnostics
}

// FetchResult is a materialized local tree for a source.
type FetchResult struct {
	// Root is the directory to discover skills in. For remote sources
	// with a subpath this is the subpath subtree, not the checkout root.
	Root string
	// CheckoutDir is the cache-owned checkout the root lives in.
	// Empty for local sources.
	CheckoutDir string
	// Commit is the resolved commit id. Empty for local sources.
	Commit string
	// FromCache reports whether an existing checkout was reused.
	FromCache bool
}

// CheckoutInfo describes one materialized checkout in the cache.
type CheckoutInfo struct {
	Name       string // directory name under checkouts/
	Path       string
	LastAccess time.Time
}
