package rule

import (
	"fmt"

	"github.com/ludo-technologies/reposcan/domain"
)

// Set is a collection of rules keyed by pattern string. Analysers
// contributing the same include pattern share one rule with merged owners.
type Set struct {
	rules map[string]*Rule
	order []string
}

// NewSet creates an empty rule set
func NewSet() *Set {
	return &Set{rules: make(map[string]*Rule)}
}

// Add parses and inserts an include pattern, merging owners when the pattern
// is already present.
func (s *Set) Add(pattern, owner string) (*Rule, error) {
	if existing, ok := s.rules[pattern]; ok {
		if owner != "" {
			existing.AddOwner(owner)
		}
		return existing, nil
	}

	r, err := Parse(pattern, owner)
	if err != nil {
		return nil, err
	}
	s.rules[pattern] = r
	s.order = append(s.order, pattern)
	return r, nil
}

// AddExclude parses and inserts an exclude pattern. Exclude rules must be in
// directory form; anything else is an InvalidRule error.
func (s *Set) AddExclude(pattern, owner string) (*Rule, error) {
	r, err := s.Add(pattern, owner)
	if err != nil {
		return nil, err
	}
	if !r.IsDir {
		return nil, domain.NewInvalidRuleError(pattern, fmt.Errorf("exclusion rule must end with a slash"))
	}
	return r, nil
}

// Rules returns the rules in insertion order
func (s *Set) Rules() []*Rule {
	rules := make([]*Rule, 0, len(s.order))
	for _, pattern := range s.order {
		rules = append(rules, s.rules[pattern])
	}
	return rules
}

// Get returns the rule registered for a pattern, if any
func (s *Set) Get(pattern string) *Rule {
	return s.rules[pattern]
}

// Len returns the number of distinct rules
func (s *Set) Len() int {
	return len(s.order)
}
