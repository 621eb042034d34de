package aggregator

import (
	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// License reports on the repository's license coverage
type License struct{}

// NewLicense creates the license aggregator
func NewLicense() *License { return &License{} }

// Type returns the aggregated category
func (g *License) Type() domain.AnalyserType { return domain.TypeLicense }

// Name returns the aggregator name
func (g *License) Name() string { return "License" }

// Aggregate flags repositories without any license file
func (g *License) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) == 0 {
		reporter.AddIssue("No license file.")
	}
	return nil
}

// VersionControl reports on version control presence
type VersionControl struct{}

// NewVersionControl creates the version control aggregator
func NewVersionControl() *VersionControl { return &VersionControl{} }

// Type returns the aggregated category
func (g *VersionControl) Type() domain.AnalyserType { return domain.TypeVersionControl }

// Name returns the aggregator name
func (g *VersionControl) Name() string { return "Version Control" }

// Aggregate flags repositories without version control
func (g *VersionControl) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) == 0 {
		reporter.AddWarning("No version control.")
	}
	return nil
}

// Citation reports on citation coverage
type Citation struct{}

// NewCitation creates the citation aggregator
func NewCitation() *Citation { return &Citation{} }

// Type returns the aggregated category
func (g *Citation) Type() domain.AnalyserType { return domain.TypeCitation }

// Name returns the aggregator name
func (g *Citation) Name() string { return "Citation" }

// Aggregate suggests adding a citation file when none was found
func (g *Citation) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) == 0 {
		reporter.AddSuggestion("No citation file.")
	}
	return nil
}

// Community reports on community health file coverage
type Community struct{}

// NewCommunity creates the community aggregator
func NewCommunity() *Community { return &Community{} }

// Type returns the aggregated category
func (g *Community) Type() domain.AnalyserType { return domain.TypeCommunity }

// Name returns the aggregator name
func (g *Community) Name() string { return "Community" }

// Aggregate suggests the missing community files
func (g *Community) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	hasContributing, hasConduct := false, false
	for _, result := range results {
		switch result["kind"] {
		case "contributing":
			hasContributing = true
		case "conduct":
			hasConduct = true
		}
	}

	if !hasContributing {
		reporter.AddSuggestion("No contributing guidelines.")
	}
	if !hasConduct {
		reporter.AddSuggestion("No code of conduct.")
	}
	return nil
}

// Documentation reports on documentation coverage
type Documentation struct{}

// NewDocumentation creates the documentation aggregator
func NewDocumentation() *Documentation { return &Documentation{} }

// Type returns the aggregated category
func (g *Documentation) Type() domain.AnalyserType { return domain.TypeDocumentation }

// Name returns the aggregator name
func (g *Documentation) Name() string { return "Documentation" }

// Aggregate flags repositories without a readme
func (g *Documentation) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) == 0 {
		reporter.AddWarning("No README file.")
	}
	return nil
}

// Packaging reports on packaging coverage
type Packaging struct{}

// NewPackaging creates the packaging aggregator
func NewPackaging() *Packaging { return &Packaging{} }

// Type returns the aggregated category
func (g *Packaging) Type() domain.AnalyserType { return domain.TypePackaging }

// Name returns the aggregator name
func (g *Packaging) Name() string { return "Packaging" }

// Aggregate suggests adding packaging metadata when none was found
func (g *Packaging) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) == 0 {
		reporter.AddSuggestion("No packaging metadata.")
	}
	return nil
}

// Metadata checks the collected metadata for completeness
type Metadata struct{}

// NewMetadata creates the metadata aggregator
func NewMetadata() *Metadata { return &Metadata{} }

// Type returns the aggregated category
func (g *Metadata) Type() domain.AnalyserType { return domain.TypeMetadata }

// Name returns the aggregator name
func (g *Metadata) Name() string { return "Metadata" }

// requiredKeys are the attributes every software repository should declare
var requiredKeys = []string{
	constants.MetadataName,
	constants.MetadataVersion,
	constants.MetadataLicense,
}

// Aggregate suggests declaring the missing required metadata attributes
func (g *Metadata) Aggregate(results domain.AnalyserResult, reporter *domain.Reporter) error {
	metadata := reporter.Report().Metadata
	for _, key := range requiredKeys {
		if len(metadata.Get(key)) == 0 {
			reporter.AddSuggestion("No " + key + " metadata.")
		}
	}
	return nil
}
