package analyser

import (
	"path"
	"strings"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// Community analyses community health files: contributing guidelines and
// codes of conduct.
type Community struct{}

// NewCommunity creates the community analyser
func NewCommunity() *Community {
	return &Community{}
}

// Type returns the analyser category
func (a *Community) Type() domain.AnalyserType {
	return domain.TypeCommunity
}

// Name returns the analyser name
func (a *Community) Name() string {
	return "Community"
}

// Includes returns the root-level community file patterns
func (a *Community) Includes(root string) []string {
	return []string{
		"/CONDUCT.*",
		"/CODE_OF_CONDUCT.*",
		"/CONTRIBUTING.*",
	}
}

// Excludes returns no patterns
func (a *Community) Excludes(root string) []string {
	return nil
}

// AnalyseFile classifies a community file by its name
func (a *Community) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	name := strings.ToUpper(path.Base(rel))

	switch {
	case strings.Contains(name, "CONTRIBUTING"):
		reporter.AddNotice("Contributing guidelines exist.", rel)
		reporter.AddMetadata(constants.MetadataContributingFile, rel, rel)
		return domain.FileResult{"kind": "contributing"}, nil

	case strings.Contains(name, "CONDUCT"):
		reporter.AddNotice("Code of conduct exists.", rel)
		reporter.AddMetadata(constants.MetadataConductFile, rel, rel)
		return domain.FileResult{"kind": "conduct"}, nil
	}

	return domain.FileResult{"kind": "unknown"}, nil
}
