package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const skillFileName = "SKILL.md"

const frontmatterDelimiter = "---"

var (
	// ErrMissingFrontmatter means the file does not start with a frontmatter block.
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	// ErrUnclosedFrontmatter means the opening delimiter is never closed.
	ErrUnclosedFrontmatter = errors.New("unclosed frontmatter")
	// ErrInvalidYAML means the frontmatter is not valid YAML.
	ErrInvalidYAML = errors.New("invalid frontmatter YAML")
)

// Manifest is the parsed metadata of one skill, read from the YAML
// frontmatter of its SKILL.md.
type Manifest struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	License       string            `yaml:"license"`
	Compatibility string            `yaml:"compatibility"`
	AllowedTools  string            `yaml:"allowed-tools"`
	Context       string            `yaml:"context"`
	Hooks         map[string]string `yaml:"hooks"`
	Metadata      map[string]string `yaml:"metadata"`

	// RawFrontmatter is the frontmatter text between the delimiters,
	// kept for validators that inspect unknown keys.
	RawFrontmatter string `yaml:"-"`
	// Body is the markdown content after the frontmatter.
	Body string `yaml:"-"`
	// BodyLine is the 1-based line number where the body starts,
	// for diagnostics that point into the file.
	BodyLine int `yaml:"-"`
}

// UsesForkContext reports whether the skill asks to run in a forked context.
func (m *Manifest) UsesForkContext() bool {
	return strings.EqualFold(strings.TrimSpace(m.Context), "fork")
}

// UsesHooks reports whether the skill declares lifecycle hooks.
func (m *Manifest) UsesHooks() bool { return len(m.Hooks) > 0 }

// UsesAllowedTools reports whether the skill declares a pre-approved tool list.
func (m *Manifest) UsesAllowedTools() bool {
	return strings.TrimSpace(m.AllowedTools) != ""
}

// ParseManifestFile reads and parses a SKILL.md from disk.
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := ParseManifest(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest parses SKILL.md content: a YAML frontmatter block
// delimited by "---" lines, followed by a markdown body.
func ParseManifest(content string) (*Manifest, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, ErrMissingFrontmatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, ErrUnclosedFrontmatter
	}

	raw := strings.Join(lines[1:closing], "\n")

	var m Manifest
	if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	m.RawFrontmatter = raw
	m.Body = strings.Join(lines[closing+1:], "\n")
	m.BodyLine = closing + 2

	return &m, nil
}
