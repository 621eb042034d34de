package analyser

import (
	"testing"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/testutil"
)

const samplePyProject = `[build-system]
requires = ["setuptools"]
build-backend = "setuptools.build_meta"

[project]
name = "demo"
version = "0.1.0"
description = "A demonstration package."
keywords = ["demo", "testing"]
license = "MIT"
dependencies = ["requests==2.31.0"]

[[project.authors]]
name = "Jane Doe"
email = "jane@example.org"
`

func TestPackagingPython_PyProject(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "pyproject.toml", samplePyProject)

	report := domain.NewReport(dir)
	result, err := NewPackagingPython().AnalyseFile(dir, "pyproject.toml", report.For("packaging_python"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "exists", result["status"])
	testutil.AssertEqual(t, "demo", result["name"])
	testutil.AssertEqual(t, "setuptools.build_meta", result["backend"])

	metadata := report.Metadata
	testutil.AssertEqual(t, "demo", metadata.PlainValue("name"))
	testutil.AssertEqual(t, "0.1.0", metadata.PlainValue("version"))
	testutil.AssertEqual(t, "A demonstration package.", metadata.PlainValue("description"))
	testutil.AssertEqual(t, "MIT", metadata.PlainValue("license"))

	authors, ok := metadata.PlainValue("authors").([]any)
	if !ok || len(authors) != 1 {
		t.Fatalf("authors = %v", metadata.PlainValue("authors"))
	}
	testutil.AssertEqual(t, "Jane Doe <jane@example.org>", authors[0])

	deps, ok := metadata.PlainValue("python_dependencies").([]any)
	if !ok || len(deps) != 1 {
		t.Fatalf("python_dependencies = %v", metadata.PlainValue("python_dependencies"))
	}
}

func TestPackagingPython_LicenseTable(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "pyproject.toml", "[project]\nname = \"demo\"\nlicense = { text = \"Apache-2.0\" }\n")

	report := domain.NewReport(dir)
	_, err := NewPackagingPython().AnalyseFile(dir, "pyproject.toml", report.For("packaging_python"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "Apache-2.0", report.Metadata.PlainValue("license"))
}

func TestPackagingPython_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "pyproject.toml", "[project\nname = demo")

	report := domain.NewReport(dir)
	result, err := NewPackagingPython().AnalyseFile(dir, "pyproject.toml", report.For("packaging_python"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "invalid", result["status"])
	if len(report.Messages[domain.SeverityIssue]) != 1 {
		t.Errorf("Expected one TOML issue, got %v", report.Messages[domain.SeverityIssue])
	}
}

func TestPackagingPython_SetupPy(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "setup.py", "from setuptools import setup\nsetup()\n")

	report := domain.NewReport(dir)
	result, err := NewPackagingPython().AnalyseFile(dir, "setup.py", report.For("packaging_python"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "exists", result["status"])
	notices := report.Messages[domain.SeverityNotice]
	if len(notices) != 1 || notices[0].Text != "Packaging file setup.py exists." {
		t.Errorf("Expected presence notice, got %v", notices)
	}
	if len(report.Metadata.Keys()) != 0 {
		t.Error("setup.py should not contribute metadata")
	}
}
