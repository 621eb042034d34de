package analyser

import (
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/reposcan/domain"
)

// commonArtifacts are build outputs that a .gitignore is expected to cover
var commonArtifacts = []string{
	"__pycache__/cache.pyc",
	"build/artifact",
	"dist/artifact",
	".venv/bin/python",
}

// Git analyses version control files: the .git directory itself and the
// repository's .gitignore rules.
type Git struct{}

// NewGit creates the git analyser
func NewGit() *Git {
	return &Git{}
}

// Type returns the analyser category
func (a *Git) Type() domain.AnalyserType {
	return domain.TypeVersionControl
}

// Name returns the analyser name
func (a *Git) Name() string {
	return "Git"
}

// Includes catalogues the .git directory and the root .gitignore
func (a *Git) Includes(root string) []string {
	return []string{
		".git/",
		"/.gitignore",
	}
}

// Excludes prunes the .git directory from traversal. It is still catalogued
// by the include rule before pruning.
func (a *Git) Excludes(root string) []string {
	return []string{".git/"}
}

// AnalyseFile handles the catalogued .git directory and the .gitignore file
func (a *Git) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	if filepath.Base(rel) == ".git" {
		reporter.AddNotice("Version control exists.", rel)
		return domain.FileResult{"status": "exists"}, nil
	}

	ignore, err := gitignore.CompileIgnoreFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	var unignored []string
	for _, artifact := range commonArtifacts {
		if !ignore.MatchesPath(artifact) {
			unignored = append(unignored, strings.SplitN(artifact, "/", 2)[0])
		}
	}
	if len(unignored) > 0 {
		reporter.AddSuggestion(
			fmt.Sprintf("Build artifacts are not ignored by version control (%s).", strings.Join(unignored, ", ")),
			rel,
		)
	}

	return domain.FileResult{
		"status":    "exists",
		"unignored": unignored,
	}, nil
}
