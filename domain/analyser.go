package domain

// AnalyserType categorizes analysers and aggregators
type AnalyserType string

const (
	TypeCode                  AnalyserType = "Code"
	TypeLicense               AnalyserType = "License"
	TypeCitation              AnalyserType = "Citation"
	TypeVersionControl        AnalyserType = "Version Control"
	TypeDocumentation         AnalyserType = "Documentation"
	TypePackaging             AnalyserType = "Packaging"
	TypeRepository            AnalyserType = "Repository"
	TypeCommunity             AnalyserType = "Community"
	TypeDependency            AnalyserType = "Dependency"
	TypeMetadata              AnalyserType = "Metadata"
	TypeContinuousIntegration AnalyserType = "Continuous Integration"
)

// Key returns the lowercase_with_underscores form used for --skip-type matching
func (t AnalyserType) Key() string {
	key := make([]byte, 0, len(t))
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c >= 'A' && c <= 'Z':
			key = append(key, c+'a'-'A')
		case c == ' ':
			key = append(key, '_')
		default:
			key = append(key, c)
		}
	}
	return string(key)
}

// FileResult holds the raw analysis result for a single file
type FileResult map[string]any

// AnalyserResult maps relative file paths to their per-file results
type AnalyserResult map[string]FileResult

// Analyser extracts metadata and messages from a category of repository files.
// Implementations declare the file patterns they are interested in; the
// scanner routes matched paths back through AnalyseFile.
type Analyser interface {
	// Type returns the analyser category
	Type() AnalyserType

	// Name returns the human-readable analyser name
	Name() string

	// Includes returns file and directory patterns of interest. Patterns may
	// depend on repository contents (e.g. reading .gitignore), hence root.
	Includes(root string) []string

	// Excludes returns directory patterns to prune from traversal entirely.
	// Every pattern must be in directory form (trailing slash).
	Excludes(root string) []string

	// AnalyseFile processes one matched file. The rel path is relative to
	// root; metadata and messages go through the bound reporter.
	AnalyseFile(root, rel string, reporter *Reporter) (FileResult, error)
}

// ResultAnalyser is an optional post-pass over an analyser's per-file results
// (e.g. flagging that multiple citation files were found). The orchestrator
// checks for this capability before calling.
type ResultAnalyser interface {
	AnalyseResults(results AnalyserResult, reporter *Reporter) error
}

// Aggregator synthesizes cross-file, category-level messages from the
// combined output of all analysers in its category.
type Aggregator interface {
	// Type returns the analyser category the aggregator consumes
	Type() AnalyserType

	// Name returns the human-readable aggregator name
	Name() string

	// Aggregate consumes the merged results of the category's analysers
	Aggregate(results AnalyserResult, reporter *Reporter) error
}
