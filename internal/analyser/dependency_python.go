package analyser

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// versionOperators are the specifier operators recognized in requirement
// lines, longest first so prefixes do not shadow them.
var versionOperators = []string{"===", "==", "~=", ">=", "<=", "!=", ">", "<"}

// DependencyPython analyses Python requirements files
type DependencyPython struct{}

// NewDependencyPython creates the Python dependency analyser
func NewDependencyPython() *DependencyPython {
	return &DependencyPython{}
}

// Type returns the analyser category
func (a *DependencyPython) Type() domain.AnalyserType {
	return domain.TypeDependency
}

// Name returns the analyser name
func (a *DependencyPython) Name() string {
	return "Python Dependency"
}

// Includes returns the requirements file pattern
func (a *DependencyPython) Includes(root string) []string {
	return []string{"/requirements.txt"}
}

// Excludes returns no patterns
func (a *DependencyPython) Excludes(root string) []string {
	return nil
}

// AnalyseFile checks every requirement line for a pinned version
func (a *DependencyPython) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	data, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	var requirements []any

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		name, operator := splitRequirement(line)
		requirements = append(requirements, line)

		switch {
		case operator == "":
			reporter.AddIssue(fmt.Sprintf("%s dependency has no version specifier.", name), rel)
		case operator != "==" && operator != "===":
			reporter.AddIssue(fmt.Sprintf("%s dependency version is not pinned.", name), rel)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	reporter.AddMetadataList(constants.MetadataPythonDependencies, requirements, rel)

	return domain.FileResult{
		"status":       "exists",
		"requirements": requirements,
	}, nil
}

// splitRequirement separates the package name from its first version
// operator. Environment markers and extras stay with the name.
func splitRequirement(line string) (name, operator string) {
	for _, op := range versionOperators {
		if i := strings.Index(line, op); i >= 0 {
			return strings.TrimSpace(line[:i]), op
		}
	}
	return strings.TrimSpace(line), ""
}
