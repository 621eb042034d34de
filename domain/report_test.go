package domain

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewReport_AllSeveritiesPresent(t *testing.T) {
	report := NewReport("/repo")

	if len(report.Messages) != len(Severities) {
		t.Fatalf("Expected %d severity buckets, got %d", len(Severities), len(report.Messages))
	}
	for _, severity := range Severities {
		messages, ok := report.Messages[severity]
		if !ok {
			t.Errorf("Missing bucket for %s", severity)
		}
		if messages == nil {
			t.Errorf("Bucket for %s should be empty, not nil", severity)
		}
	}
}

func TestReporter_MessagesCarryAnalyser(t *testing.T) {
	report := NewReport("/repo")
	rp := report.For("license")

	rp.AddIssue("No license file.")
	rp.AddWarning("License file cannot be recognized.", "LICENSE")
	rp.AddNotice("License file exists.", "LICENSE")
	rp.AddSuggestion("Consider adding a citation file.")
	rp.AddInfo("Scanned.")

	for _, severity := range Severities {
		messages := report.Messages[severity]
		if len(messages) != 1 {
			t.Fatalf("Expected 1 %s message, got %d", severity, len(messages))
		}
		if messages[0].Analyser != "license" {
			t.Errorf("Message analyser = %q, want license", messages[0].Analyser)
		}
	}

	warning := report.Messages[SeverityWarning][0]
	if len(warning.Paths) != 1 || warning.Paths[0] != "LICENSE" {
		t.Errorf("Warning paths = %v", warning.Paths)
	}
}

func TestReport_ConcurrentWriters(t *testing.T) {
	report := NewReport("/repo")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rp := report.For("documentation")
			for j := 0; j < 50; j++ {
				rp.AddNotice("README file exists.", "README.md")
				rp.AddMetadata("readme_file", "README.md", "README.md")
			}
		}()
	}
	wg.Wait()

	if len(report.Messages[SeverityNotice]) != 400 {
		t.Errorf("Expected 400 notices, got %d", len(report.Messages[SeverityNotice]))
	}
}

func TestReport_AnalyseMetadata(t *testing.T) {
	report := NewReport("/repo")
	report.For("citation").AddMetadata("version", "1.0.0", "CITATION.cff")
	report.For("packaging_python").AddMetadata("version", "2.0.0", "pyproject.toml")

	report.AnalyseMetadata()

	issues := report.Messages[SeverityIssue]
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	if issues[0].Analyser != "metadata" {
		t.Errorf("Conflict issue analyser = %q, want metadata", issues[0].Analyser)
	}
	if !strings.Contains(issues[0].Text, "Multiple values exist for version") {
		t.Errorf("Unexpected issue text %q", issues[0].Text)
	}
	if !strings.Contains(issues[0].Text, "citation:CITATION.cff") {
		t.Errorf("Issue should name the sources, got %q", issues[0].Text)
	}
}

func TestReport_ToMapSeverityFilter(t *testing.T) {
	report := NewReport("/repo")
	rp := report.For("license")
	rp.AddInfo("info")
	rp.AddWarning("warning")
	rp.AddIssue("issue")

	out := report.ToMap(SeverityWarning, false)
	messages := out["messages"].(map[string][]Message)

	if _, ok := messages["info"]; ok {
		t.Error("Messages below the minimum severity should be omitted")
	}
	if len(messages["warning"]) != 1 || len(messages["issue"]) != 1 {
		t.Errorf("Expected warning and issue to survive, got %v", messages)
	}
	if _, ok := out["results"]; !ok {
		t.Error("Full output should carry raw results")
	}
}

func TestReport_ToMapPlain(t *testing.T) {
	report := NewReport("/repo")
	report.For("citation").AddMetadata("license", "MIT", "CITATION.cff")
	report.SetResult("citation", AnalyserResult{"CITATION.cff": FileResult{"valid": true}})

	out := report.ToMap(SeverityInfo, true)

	metadata := out["metadata"].(map[string]any)
	if metadata["license"] != "MIT" {
		t.Errorf("Plain metadata should collapse to the value, got %v", metadata["license"])
	}
	if _, ok := out["results"]; ok {
		t.Error("Plain output should omit raw results")
	}
}

func TestDomainError(t *testing.T) {
	cause := errors.New("underlying")
	err := NewInvalidPathError("/missing", cause)

	if !strings.Contains(err.Error(), "INVALID_PATH") {
		t.Errorf("Error should carry its code, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("DomainError should unwrap to its cause")
	}
	if !IsCode(err, ErrCodeInvalidPath) {
		t.Error("IsCode should match the error's code")
	}
	if IsCode(err, ErrCodeConfigError) {
		t.Error("IsCode should reject other codes")
	}
	if IsCode(errors.New("plain"), ErrCodeInvalidPath) {
		t.Error("IsCode should reject non-domain errors")
	}
}

func TestParseSeverity(t *testing.T) {
	for _, severity := range Severities {
		parsed, err := ParseSeverity(severity.String())
		if err != nil {
			t.Errorf("ParseSeverity(%q) failed: %v", severity.String(), err)
		}
		if parsed != severity {
			t.Errorf("ParseSeverity(%q) = %v, want %v", severity.String(), parsed, severity)
		}
	}

	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("Unknown severity should be rejected")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityInfo < SeveritySuggestion &&
		SeveritySuggestion < SeverityNotice &&
		SeverityNotice < SeverityWarning &&
		SeverityWarning < SeverityIssue) {
		t.Error("Severities must be ordered from info to issue")
	}
}

func TestAnalyserTypeKey(t *testing.T) {
	tests := []struct {
		typ  AnalyserType
		want string
	}{
		{TypeVersionControl, "version_control"},
		{TypeLicense, "license"},
		{TypeCitation, "citation"},
	}
	for _, tt := range tests {
		if got := tt.typ.Key(); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
