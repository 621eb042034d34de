package analyser

import (
	"testing"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/testutil"
)

func TestCommunity_AnalyseFile(t *testing.T) {
	tests := []struct {
		file     string
		wantKind string
		wantKey  string
	}{
		{"CONTRIBUTING.md", "contributing", "contributing_file"},
		{"contributing.rst", "contributing", "contributing_file"},
		{"CODE_OF_CONDUCT.md", "conduct", "conduct_file"},
		{"CONDUCT.txt", "conduct", "conduct_file"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			report := domain.NewReport("/repo")
			result, err := NewCommunity().AnalyseFile("/repo", tt.file, report.For("community"))
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, tt.wantKind, result["kind"])
			if len(report.Messages[domain.SeverityNotice]) != 1 {
				t.Errorf("Expected one notice, got %v", report.Messages[domain.SeverityNotice])
			}
			testutil.AssertEqual(t, tt.file, report.Metadata.PlainValue(tt.wantKey))
		})
	}
}

func TestDocumentation_AnalyseFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "README.md", "# Demo\n\nSome description here.\n")

	report := domain.NewReport(dir)
	result, err := NewDocumentation().AnalyseFile(dir, "README.md", report.For("documentation"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "exists", result["status"])
	if result["words"].(int) < 3 {
		t.Errorf("words = %v", result["words"])
	}
	testutil.AssertEqual(t, "README.md", report.Metadata.PlainValue("readme_file"))
}

func TestDocumentation_EmptyReadme(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "README", "  \n\t\n")

	report := domain.NewReport(dir)
	result, err := NewDocumentation().AnalyseFile(dir, "README", report.For("documentation"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "empty", result["status"])
	warnings := report.Messages[domain.SeverityWarning]
	if len(warnings) != 1 || warnings[0].Text != "README file is empty." {
		t.Errorf("Expected empty warning, got %v", warnings)
	}
	if report.Metadata.PlainValue("readme_file") != nil {
		t.Error("Empty readme should not set metadata")
	}
}

func TestGit_GitDirectory(t *testing.T) {
	report := domain.NewReport("/repo")
	result, err := NewGit().AnalyseFile("/repo", ".git", report.For("git"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "exists", result["status"])
	notices := report.Messages[domain.SeverityNotice]
	if len(notices) != 1 || notices[0].Text != "Version control exists." {
		t.Errorf("Expected version control notice, got %v", notices)
	}
}

func TestGit_GitignoreCoversArtifacts(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".gitignore", "__pycache__/\nbuild/\ndist/\n.venv/\n")

	report := domain.NewReport(dir)
	result, err := NewGit().AnalyseFile(dir, ".gitignore", report.For("git"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "exists", result["status"])
	if len(report.Messages[domain.SeveritySuggestion]) != 0 {
		t.Errorf("Complete gitignore should raise no suggestion, got %v",
			report.Messages[domain.SeveritySuggestion])
	}
}

func TestGit_GitignoreMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".gitignore", "*.log\n")

	report := domain.NewReport(dir)
	_, err := NewGit().AnalyseFile(dir, ".gitignore", report.For("git"))
	testutil.AssertNoError(t, err)

	suggestions := report.Messages[domain.SeveritySuggestion]
	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %v", suggestions)
	}
}
