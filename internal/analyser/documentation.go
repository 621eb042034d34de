package analyser

import (
	"strings"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// Documentation analyses top-level documentation files
type Documentation struct{}

// NewDocumentation creates the documentation analyser
func NewDocumentation() *Documentation {
	return &Documentation{}
}

// Type returns the analyser category
func (a *Documentation) Type() domain.AnalyserType {
	return domain.TypeDocumentation
}

// Name returns the analyser name
func (a *Documentation) Name() string {
	return "Documentation"
}

// Includes returns the readme patterns
func (a *Documentation) Includes(root string) []string {
	return []string{
		"/README",
		"/README.*",
	}
}

// Excludes returns no patterns
func (a *Documentation) Excludes(root string) []string {
	return nil
}

// AnalyseFile checks a readme file for content
func (a *Documentation) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	data, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	words := len(strings.Fields(string(data)))
	if words == 0 {
		reporter.AddWarning("README file is empty.", rel)
		return domain.FileResult{"status": "empty", "words": 0}, nil
	}

	reporter.AddNotice("README file exists.", rel)
	reporter.AddMetadata(constants.MetadataReadmeFile, rel, rel)

	return domain.FileResult{
		"status": "exists",
		"words":  words,
	}, nil
}
