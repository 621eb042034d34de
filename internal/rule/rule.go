// Package rule implements the include/exclude pattern language used to route
// repository files to analysers.
package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/reposcan/domain"
)

// Rule is a parsed include/exclude glob pattern. A trailing slash marks a
// directory rule, a leading slash anchors the pattern to the repository
// root. Nested rules match against the path relative to the root, others
// against the bare base name. Rules are immutable after rule-set assembly
// except for owner merging.
type Rule struct {
	// Pattern is the normalized pattern with anchor and directory markers
	// stripped
	Pattern string

	// Raw is the pattern string as registered by the analyser
	Raw string

	// IsDir is true for directory rules (trailing slash)
	IsDir bool

	// IsNested is true when the pattern is anchored or contains a slash
	IsNested bool

	// IsPattern is true when the pattern contains glob metacharacters
	IsPattern bool

	// Owners are the analyser ids that registered this pattern
	Owners []string

	re *regexp.Regexp
}

// Parse builds a rule from a pattern string. The owner may be empty.
func Parse(pattern, owner string) (*Rule, error) {
	if pattern == "" {
		return nil, domain.NewInvalidRuleError(pattern, fmt.Errorf("empty pattern"))
	}

	r := &Rule{Raw: pattern}

	val := pattern
	if strings.HasSuffix(val, "/") {
		r.IsDir = true
		val = strings.TrimSuffix(val, "/")
	}
	if strings.HasPrefix(val, "/") {
		r.IsNested = true
		val = strings.TrimPrefix(val, "/")
	} else {
		r.IsNested = strings.Contains(val, "/")
	}

	r.Pattern = val
	r.IsPattern = strings.ContainsAny(val, "*?[")

	re, err := compile(val)
	if err != nil {
		return nil, domain.NewInvalidRuleError(pattern, err)
	}
	r.re = re

	if owner != "" {
		r.Owners = []string{owner}
	}
	return r, nil
}

// AddOwner registers another analyser interested in this pattern
func (r *Rule) AddOwner(id string) {
	for _, owner := range r.Owners {
		if owner == id {
			return
		}
	}
	r.Owners = append(r.Owners, id)
}

// Match performs shell-style glob matching between the candidate and the
// stored pattern. The candidate must be the slash-separated path relative to
// the repository root for nested rules, the bare base name otherwise.
func (r *Rule) Match(candidate string) bool {
	return r.re.MatchString(candidate)
}

// compile translates a shell glob to an anchored regular expression. Unlike
// filepath.Match, `*` matches any run of characters including slashes, which
// is what lets `*.md` match at any depth. Matching is case-insensitive so
// that `license` also catches LICENSE.
func compile(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// Unterminated set, treat the bracket literally
				sb.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			set := string(runes[i+1 : j])
			set = strings.ReplaceAll(set, `\`, `\\`)
			if strings.HasPrefix(set, "!") {
				set = "^" + set[1:]
			}
			sb.WriteString("[" + set + "]")
			i = j
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
