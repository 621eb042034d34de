package analyser

import (
	"fmt"
	"path"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// pyProject models the subset of pyproject.toml consumed by the analyser
type pyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Description  string   `toml:"description"`
		Keywords     []string `toml:"keywords"`
		License      any      `toml:"license"`
		Authors      []map[string]string `toml:"authors"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	BuildSystem struct {
		BuildBackend string `toml:"build-backend"`
	} `toml:"build-system"`
}

// PackagingPython analyses Python packaging files
type PackagingPython struct{}

// NewPackagingPython creates the Python packaging analyser
func NewPackagingPython() *PackagingPython {
	return &PackagingPython{}
}

// Type returns the analyser category
func (a *PackagingPython) Type() domain.AnalyserType {
	return domain.TypePackaging
}

// Name returns the analyser name
func (a *PackagingPython) Name() string {
	return "Python Packaging"
}

// Includes returns the root-level packaging file patterns
func (a *PackagingPython) Includes(root string) []string {
	return []string{
		"/pyproject.toml",
		"/setup.py",
		"/setup.cfg",
	}
}

// Excludes returns no patterns
func (a *PackagingPython) Excludes(root string) []string {
	return nil
}

// AnalyseFile extracts project metadata from a packaging file
func (a *PackagingPython) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	if path.Base(rel) != "pyproject.toml" {
		reporter.AddNotice(fmt.Sprintf("Packaging file %s exists.", path.Base(rel)), rel)
		return domain.FileResult{"status": "exists"}, nil
	}

	data, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	var project pyProject
	if err := toml.Unmarshal(data, &project); err != nil {
		reporter.AddIssue(fmt.Sprintf("Packaging file is not valid TOML (%v).", err), rel)
		return domain.FileResult{"status": "invalid"}, nil
	}

	reporter.AddNotice("Packaging file exists.", rel)

	p := project.Project
	reporter.AddMetadata(constants.MetadataName, p.Name, rel)
	reporter.AddMetadata(constants.MetadataVersion, p.Version, rel)
	reporter.AddMetadata(constants.MetadataDescription, p.Description, rel)
	reporter.AddMetadata(constants.MetadataLicense, licenseString(p.License), rel)
	reporter.AddMetadataList(constants.MetadataKeywords, toAnySlice(p.Keywords), rel)
	reporter.AddMetadataList(constants.MetadataAuthors, authorStrings(p.Authors), rel)
	reporter.AddMetadataList(constants.MetadataPythonDependencies, toAnySlice(p.Dependencies), rel)

	return domain.FileResult{
		"status":  "exists",
		"name":    p.Name,
		"version": p.Version,
		"backend": project.BuildSystem.BuildBackend,
	}, nil
}

// licenseString handles both pyproject license forms: a bare SPDX string or
// a table with a text key.
func licenseString(license any) string {
	switch v := license.(type) {
	case string:
		return v
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
	}
	return ""
}

func authorStrings(authors []map[string]string) []any {
	out := make([]any, 0, len(authors))
	for _, author := range authors {
		name := author["name"]
		if email := author["email"]; email != "" {
			if name != "" {
				name += " <" + email + ">"
			} else {
				name = email
			}
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func toAnySlice(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
