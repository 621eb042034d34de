package rule

import (
	"testing"

	"github.com/ludo-technologies/reposcan/domain"
)

func TestParse_Flags(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		wantDir   bool
		wantNest  bool
		wantGlob  bool
		wantClean string
	}{
		{"bare name", "license", false, false, false, "license"},
		{"anchored", "/LICENSE", false, true, false, "LICENSE"},
		{"directory", ".git/", true, false, false, ".git"},
		{"anchored directory", "/docs/", true, true, false, "docs"},
		{"nested", "docs/index.md", false, true, false, "docs/index.md"},
		{"glob", "*.md", false, false, true, "*.md"},
		{"anchored glob", "/README.*", false, true, true, "README.*"},
		{"charclass", "setup.[cp]*", false, false, true, "setup.[cp]*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.pattern, "owner")
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			if r.IsDir != tt.wantDir {
				t.Errorf("IsDir = %v, want %v", r.IsDir, tt.wantDir)
			}
			if r.IsNested != tt.wantNest {
				t.Errorf("IsNested = %v, want %v", r.IsNested, tt.wantNest)
			}
			if r.IsPattern != tt.wantGlob {
				t.Errorf("IsPattern = %v, want %v", r.IsPattern, tt.wantGlob)
			}
			if r.Pattern != tt.wantClean {
				t.Errorf("Pattern = %q, want %q", r.Pattern, tt.wantClean)
			}
			if r.Raw != tt.pattern {
				t.Errorf("Raw = %q, want %q", r.Raw, tt.pattern)
			}
		})
	}
}

func TestParse_EmptyPattern(t *testing.T) {
	_, err := Parse("", "owner")
	if err == nil {
		t.Fatal("Expected error for empty pattern")
	}
	if !domain.IsCode(err, domain.ErrCodeInvalidRule) {
		t.Errorf("Expected INVALID_RULE error, got %v", err)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"license", "license", true},
		{"license", "LICENSE", true},
		{"license", "license.txt", false},
		{"license.*", "LICENSE.md", true},
		{"*.md", "README.md", true},
		{"*.md", "readme.txt", false},
		{"README.*", "README.rst", true},
		{"README", "README", true},
		{"setup.??", "setup.py", true},
		{"setup.??", "setup.cfg", false},
		{"setup.[cp]*", "setup.py", true},
		{"setup.[cp]*", "setup.cfg", true},
		{"setup.[cp]*", "setup.sh", false},
		{"setup.[!s]*", "setup.py", true},
		{"setup.[!s]*", "setup.sh", false},
		// `*` crosses slashes, so nested patterns can match deep paths
		{"docs/*.md", "docs/guide/index.md", true},
		{"a+b", "a+b", true},
		{"a+b", "ab", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.candidate, func(t *testing.T) {
			r, err := Parse(tt.pattern, "")
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			if got := r.Match(tt.candidate); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestAddOwner_Deduplicates(t *testing.T) {
	r, err := Parse("*.md", "documentation")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	r.AddOwner("community")
	r.AddOwner("documentation")

	if len(r.Owners) != 2 {
		t.Fatalf("Expected 2 owners, got %d: %v", len(r.Owners), r.Owners)
	}
}

func TestSet_MergesOwners(t *testing.T) {
	s := NewSet()

	first, err := s.Add("*.md", "documentation")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := s.Add("*.md", "community")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first != second {
		t.Error("Same pattern should map to one shared rule")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 rule, got %d", s.Len())
	}
	if len(first.Owners) != 2 {
		t.Errorf("Expected merged owners, got %v", first.Owners)
	}
}

func TestSet_InsertionOrder(t *testing.T) {
	s := NewSet()
	patterns := []string{"/LICENSE", "*.md", ".git/"}
	for _, p := range patterns {
		if _, err := s.Add(p, "x"); err != nil {
			t.Fatalf("Add(%q) failed: %v", p, err)
		}
	}

	rules := s.Rules()
	if len(rules) != len(patterns) {
		t.Fatalf("Expected %d rules, got %d", len(patterns), len(rules))
	}
	for i, r := range rules {
		if r.Raw != patterns[i] {
			t.Errorf("Rule %d = %q, want %q", i, r.Raw, patterns[i])
		}
	}
}

func TestSet_AddExclude(t *testing.T) {
	s := NewSet()

	if _, err := s.AddExclude(".git/", "git"); err != nil {
		t.Fatalf("Directory exclude should be accepted: %v", err)
	}

	_, err := s.AddExclude("*.pyc", "code_python")
	if err == nil {
		t.Fatal("Non-directory exclude should be rejected")
	}
	if !domain.IsCode(err, domain.ErrCodeInvalidRule) {
		t.Errorf("Expected INVALID_RULE error, got %v", err)
	}
}
