package analyser

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// validCitationAttrs is the set of attributes allowed by the Citation File
// Format (CFF) schema.
var validCitationAttrs = map[string]bool{
	"abstract":            true,
	"authors":             true,
	"cff-version":         true,
	"commit":              true,
	"contact":             true,
	"date-released":       true,
	"doi":                 true,
	"identifiers":         true,
	"keywords":            true,
	"license":             true,
	"license-url":         true,
	"message":             true,
	"preferred-citation":  true,
	"references":          true,
	"repository":          true,
	"repository-artifact": true,
	"repository-code":     true,
	"title":               true,
	"type":                true,
	"url":                 true,
	"version":             true,
}

// Citation analyses CITATION.cff files
type Citation struct{}

// NewCitation creates the citation analyser
func NewCitation() *Citation {
	return &Citation{}
}

// Type returns the analyser category
func (a *Citation) Type() domain.AnalyserType {
	return domain.TypeCitation
}

// Name returns the analyser name
func (a *Citation) Name() string {
	return "Citation"
}

// Includes returns the citation file patterns
func (a *Citation) Includes(root string) []string {
	return []string{"CITATION.cff"}
}

// Excludes returns no patterns
func (a *Citation) Excludes(root string) []string {
	return nil
}

// AnalyseFile parses one citation file and lifts its attributes into the
// metadata store.
func (a *Citation) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	data, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	var content map[string]any
	if err := yaml.Unmarshal(data, &content); err != nil {
		reporter.AddIssue(fmt.Sprintf("Citation file is not valid YAML (%v).", err), rel)
		return domain.FileResult{"status": "invalid"}, nil
	}

	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !validCitationAttrs[key] {
			reporter.AddIssue(fmt.Sprintf("Invalid citation file attribute %s.", key), rel)
		}
	}

	reporter.AddNotice("Citation file exists.", rel)

	if title, ok := content["title"].(string); ok {
		reporter.AddMetadata(constants.MetadataName, title, rel)
	}
	if version := stringValue(content["version"]); version != "" {
		reporter.AddMetadata(constants.MetadataVersion, version, rel)
	}
	if doi, ok := content["doi"].(string); ok {
		reporter.AddMetadata(constants.MetadataDOI, doi, rel)
	}
	if license, ok := content["license"].(string); ok {
		reporter.AddMetadata(constants.MetadataLicense, license, rel)
	}
	if repo, ok := content["repository-code"].(string); ok {
		reporter.AddMetadata(constants.MetadataRepositoryCode, repo, rel)
	}
	if abstract, ok := content["abstract"].(string); ok {
		reporter.AddMetadata(constants.MetadataDescription, abstract, rel)
	}
	if keywords, ok := content["keywords"].([]any); ok {
		reporter.AddMetadataList(constants.MetadataKeywords, keywords, rel)
	}
	if authors, ok := content["authors"].([]any); ok {
		reporter.AddMetadataList(constants.MetadataAuthors, formatAuthors(authors), rel)
	}

	return domain.FileResult{
		"status":  "exists",
		"content": content,
	}, nil
}

// AnalyseResults flags repositories carrying more than one citation file
func (a *Citation) AnalyseResults(results domain.AnalyserResult, reporter *domain.Reporter) error {
	if len(results) > 1 {
		paths := make([]string, 0, len(results))
		for path := range results {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		reporter.AddIssue("Multiple citation files found.", paths...)
	}
	return nil
}

// formatAuthors renders CFF author records as "family, given" strings
func formatAuthors(authors []any) []any {
	formatted := make([]any, 0, len(authors))
	for _, item := range authors {
		author, ok := item.(map[string]any)
		if !ok {
			formatted = append(formatted, item)
			continue
		}

		family, _ := author["family-names"].(string)
		given, _ := author["given-names"].(string)
		switch {
		case family != "" && given != "":
			formatted = append(formatted, family+", "+given)
		case family != "":
			formatted = append(formatted, family)
		case given != "":
			formatted = append(formatted, given)
		default:
			if name, ok := author["name"].(string); ok && name != "" {
				formatted = append(formatted, name)
			}
		}
	}
	return formatted
}

// stringValue renders scalars that YAML may decode as non-strings (e.g. a
// bare version number) back to text.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
