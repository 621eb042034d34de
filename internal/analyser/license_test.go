package analyser

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/testutil"
)

func TestLicenseSignature_Normalization(t *testing.T) {
	// Layout differences must not change the signature
	a := licenseSignature("First sentence. Second sentence.", 0)
	b := licenseSignature("First   sentence.\n\n\nSecond\nsentence.", 0)

	if len(a) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(a))
	}
	if len(a) != len(b) || a[0] != b[0] || a[1] != b[1] {
		t.Errorf("Signatures should be layout-invariant: %v vs %v", a, b)
	}

	for _, token := range a {
		if len(token) != 2*tokenSize {
			t.Errorf("Token %q should have %d characters", token, 2*tokenSize)
		}
	}
}

func TestLicenseSignature_TokenLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("another sentence number something. ")
	}
	tokens := licenseSignature(sb.String(), maxSignatureTokens)
	if len(tokens) > maxSignatureTokens {
		t.Errorf("Signature should be capped at %d tokens, got %d", maxSignatureTokens, len(tokens))
	}
}

func TestFindLicense_ExactMatch(t *testing.T) {
	text, err := LicenseText("mit")
	testutil.AssertNoError(t, err)

	ids, score := findLicense(text)
	if score != 0 {
		t.Errorf("Verbatim text should score 0, got %d", score)
	}
	if len(ids) != 1 || ids[0] != "mit" {
		t.Errorf("Expected [mit], got %v", ids)
	}
}

func TestRecognized(t *testing.T) {
	ids, score := findLicense("This project has no license text whatsoever. It is just a short note.")
	if recognized(ids, score) {
		t.Errorf("Unrelated text should not be recognized (ids %v, score %d)", ids, score)
	}

	text, err := LicenseText("mit")
	testutil.AssertNoError(t, err)
	ids, score = findLicense(text)
	if !recognized(ids, score) {
		t.Errorf("Verbatim text should be recognized (ids %v, score %d)", ids, score)
	}

	if recognized(nil, 0) {
		t.Error("No candidate ids should never be recognized")
	}
}

func TestLicense_AnalyseFile_Recognized(t *testing.T) {
	dir := t.TempDir()
	text, err := LicenseText("mit")
	testutil.AssertNoError(t, err)
	testutil.WriteFile(t, dir, "LICENSE", text)

	report := domain.NewReport(dir)
	result, err := NewLicense().AnalyseFile(dir, "LICENSE", report.For("license"))
	testutil.AssertNoError(t, err)

	if result["score"] != 0 {
		t.Errorf("score = %v, want 0", result["score"])
	}

	notices := report.Messages[domain.SeverityNotice]
	if len(notices) != 1 || notices[0].Text != "License file exists." {
		t.Errorf("Expected recognition notice, got %v", notices)
	}
	if got := report.Metadata.PlainValue("license"); got != "mit" {
		t.Errorf("license metadata = %v, want mit", got)
	}
	if got := report.Metadata.PlainValue("license_file"); got != "LICENSE" {
		t.Errorf("license_file metadata = %v, want LICENSE", got)
	}
}

func TestLicense_AnalyseFile_Unrecognized(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "LICENSE", "All rights reserved, do not use this code.")

	report := domain.NewReport(dir)
	_, err := NewLicense().AnalyseFile(dir, "LICENSE", report.For("license"))
	testutil.AssertNoError(t, err)

	warnings := report.Messages[domain.SeverityWarning]
	if len(warnings) != 1 || warnings[0].Text != "License file cannot be recognized." {
		t.Errorf("Expected recognition warning, got %v", warnings)
	}
	if report.Metadata.PlainValue("license") != nil {
		t.Error("Unrecognized file should not set license metadata")
	}
	// The file itself is still recorded
	if got := report.Metadata.PlainValue("license_file"); got != "LICENSE" {
		t.Errorf("license_file metadata = %v, want LICENSE", got)
	}
}

func TestLicense_AnalyseFile_MissingFile(t *testing.T) {
	report := domain.NewReport("/repo")
	_, err := NewLicense().AnalyseFile(t.TempDir(), "LICENSE", report.For("license"))
	testutil.AssertError(t, err)
}
