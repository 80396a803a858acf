package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Diagnostics is the result of validating one manifest. Errors block
// installation; warnings do not.
type Diagnostics struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the manifest passed validation.
func (d Diagnostics) OK() bool { return len(d.Errors) == 0 }

// ValidateFunc validates a manifest. Implementations must be pure and
// synchronous.
type ValidateFunc func(*Manifest) Diagnostics

// Gate filters candidates by name and validates the survivors. The name
// filter is applied first: names not matching any candidate fail the
// whole gate with ErrNoCandidates listing what is available. Validation
// failures are isolated per candidate and reported as rejections; one
// bad skill never blocks the rest of the batch. A nil fn admits every
// candidate that passes the name filter.
func Gate(candidates []Candidate, names []string, fn ValidateFunc) (installable []Candidate, rejected []Rejection, err error) {
	selected := candidates
	if len(names) > 0 {
		selected, err = filterByName(candidates, names)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, cand := range selected {
		if fn == nil {
			installable = append(installable, cand)
			continue
		}
		diags := fn(cand.Manifest)
		if diags.OK() {
			installable = append(installable, cand)
		} else {
			rejected = append(rejected, Rejection{Candidate: cand, Diagnostics: diags})
		}
	}

	return installable, rejected, nil
}

// filterByName keeps candidates whose manifest name is in names.
// Requested names with no matching candidate are an error.
func filterByName(candidates []Candidate, names []string) ([]Candidate, error) {
	byName := make(map[string][]Candidate)
	for _, cand := range candidates {
		byName[cand.Name] = append(byName[cand.Name], cand)
	}

	var selected []Candidate
	var missing []string
	for _, name := range names {
		matches, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, matches...)
	}

	if len(missing) > 0 {
		var available []string
		for name := range byName {
			available = append(available, name)
		}
		sort.Strings(available)
		return nil, fmt.Errorf("%w: no skill named %s (available: %s)",
			ErrNoCandidates, strings.Join(missing, ", "), strings.Join(available, ", "))
	}

	return selected, nil
}

var skillNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DefaultValidator checks the basic structural rules every skill must
// satisfy. Richer rule packs can be plugged in through ValidateFunc.
func DefaultValidator(m *Manifest) Diagnostics {
	var d Diagnostics

	name := strings.TrimSpace(m.Name)
	switch {
	case name == "":
		d.Errors = append(d.Errors, "name is required")
	case len(name) > 64:
		d.Errors = append(d.Errors, fmt.Sprintf("name is %d characters, maximum is 64", len(name)))
	case !skillNamePattern.MatchString(name):
		d.Errors = append(d.Errors, fmt.Sprintf("name %q must be lowercase letters, digits, and hyphens", name))
	}

	if strings.TrimSpace(m.Description) == "" {
		d.Errors = append(d.Errors, "description is required")
	}

	return d
}
