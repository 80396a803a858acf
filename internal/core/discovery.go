package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const skillsContainerDir = "skills"

// DiscoverSkills finds skill candidates under root. Strategies are tried
// in order and the first one that yields results wins:
//
//  1. root itself contains a SKILL.md
//  2. immediate skills/ subdirectory, one level of children
//  3. each known agent's project skills directory, one level of children
//  4. full recursive walk collecting every SKILL.md
//
// A SKILL.md that fails to parse becomes a rejection rather than a
// candidate; one broken manifest never hides the rest of the tree, and
// a broken root manifest falls through to the remaining strategies.
//
// ignorePatterns are glob patterns matched against both the bare
// directory name and the root-relative path; matching directories are
// pruned entirely. There are no built-in defaults.
func DiscoverSkills(root string, ignorePatterns []string) ([]Candidate, []Rejection, error) {
	var rejected []Rejection

	// Strategy 1: the root is itself a skill.
	rootSkill := filepath.Join(root, skillFileName)
	if fileExists(rootSkill) {
		m, err := ParseManifestFile(rootSkill)
		if err == nil {
			return []Candidate{{Name: m.Name, Dir: root, Manifest: m}}, nil, nil
		}
		rejected = append(rejected, parseRejection(root, err))
	}

	// Strategy 2: a skills/ container directory.
	if cands, rej := scanChildren(filepath.Join(root, skillsContainerDir), root, ignorePatterns); len(cands)+len(rej) > 0 {
		return cands, append(rejected, rej...), nil
	}

	// Strategy 3: agent-convention directories, e.g. .claude/skills.
	for _, agent := range Agents() {
		if cands, rej := scanChildren(filepath.Join(root, agent.SkillsDir), root, ignorePatterns); len(cands)+len(rej) > 0 {
			return cands, append(rejected, rej...), nil
		}
	}

	// Strategy 4: recursive walk. The root's own manifest, if any, was
	// already handled above, so the walk skips it.
	cands, rej, err := walkForSkills(root, ignorePatterns)
	if err != nil {
		return nil, nil, err
	}
	return cands, append(rejected, rej...), nil
}

// parseRejection wraps a manifest parse failure as a rejection so it
// surfaces in the run report alongside validation failures.
func parseRejection(dir string, err error) Rejection {
	return Rejection{
		Candidate: Candidate{Name: filepath.Base(dir), Dir: dir},
		Diagnostics: Diagnostics{
			Errors: []string{fmt.Sprintf("parsing %s: %v", skillFileName, err)},
		},
	}
}

// scanChildren collects candidates one level deep under dir. Children
// whose SKILL.md fails to parse are returned as rejections.
func scanChildren(dir, root string, ignorePatterns []string) ([]Candidate, []Rejection) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	var cands []Candidate
	var rejected []Rejection
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		if ignored(child, root, ignorePatterns) {
			continue
		}
		if !fileExists(filepath.Join(child, skillFileName)) {
			continue
		}
		m, err := ParseManifestFile(filepath.Join(child, skillFileName))
		if err != nil {
			rejected = append(rejected, parseRejection(child, err))
			continue
		}
		cands = append(cands, Candidate{Name: m.Name, Dir: child, Manifest: m})
	}
	return cands, rejected
}

// walkForSkills recursively collects every directory containing a
// SKILL.md, pruning ignored directories without visiting their
// contents. Unparseable manifests become rejections. The root's own
// manifest is skipped; DiscoverSkills handles it before falling back
// to the walk.
func walkForSkills(root string, ignorePatterns []string) ([]Candidate, []Rejection, error) {
	var cands []Candidate
	var rejected []Rejection

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if ignored(path, root, ignorePatterns) {
			return filepath.SkipDir
		}

		skillMd := filepath.Join(path, skillFileName)
		if !fileExists(skillMd) {
			return nil
		}
		m, err := ParseManifestFile(skillMd)
		if err != nil {
			rejected = append(rejected, parseRejection(path, err))
			return nil
		}
		cands = append(cands, Candidate{Name: m.Name, Dir: path, Manifest: m})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(cands, func(i, j int) bool { return cands[i].Dir < cands[j].Dir })
	return cands, rejected, nil
}

// ignored reports whether a directory matches any ignore pattern, by
// bare name or by root-relative path.
func ignored(path, root string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	name := filepath.Base(path)
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)

	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
