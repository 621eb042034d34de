package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanCmd_Flags(t *testing.T) {
	cmd := scanCmd()

	for _, name := range []string{
		"skip", "skip-aggregator", "skip-type",
		"format", "output", "config", "min-severity", "plain", "debug",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("scan command missing --%s flag", name)
		}
	}

	if cmd.Flags().ShorthandLookup("f") == nil {
		t.Error("scan command missing -f shorthand")
	}
	if cmd.Flags().ShorthandLookup("o") == nil {
		t.Error("scan command missing -o shorthand")
	}
}

func TestScanCmd_RejectsExtraArgs(t *testing.T) {
	cmd := scanCmd()
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("scan command should accept at most one argument")
	}
	if err := cmd.Args(cmd, nil); err != nil {
		t.Errorf("scan command should accept zero arguments: %v", err)
	}
}

func TestInitCmd_CreatesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".reposcan.yaml")

	cmd := initCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatalf("Set flag failed: %v", err)
	}
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config file should exist: %v", err)
	}
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".reposcan.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: text\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cmd := initCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatalf("Set flag failed: %v", err)
	}
	if err := runInit(cmd, nil); err == nil {
		t.Error("runInit should refuse to overwrite without --force")
	}

	if err := cmd.Flags().Set("force", "true"); err != nil {
		t.Fatalf("Set flag failed: %v", err)
	}
	if err := runInit(cmd, nil); err != nil {
		t.Errorf("runInit with --force should overwrite: %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if cmd.Flags().Lookup("verbose") == nil {
		t.Error("version command missing --verbose flag")
	}
}
