package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/reposcan/internal/config"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a reposcan configuration file",
		Long: `Generate a reposcan configuration file with sensible defaults.

By default, creates ` + constants.ConfigFileName + ` in the current directory.
Use --interactive for a guided setup wizard.

Examples:
  # Create ` + constants.ConfigFileName + ` in current directory
  reposcan init

  # Custom output path
  reposcan init --config custom.yaml

  # Overwrite existing file
  reposcan init --force

  # Interactive setup wizard
  reposcan init --interactive
  reposcan init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	interactive, _ := cmd.Flags().GetBool("interactive")

	cfg := config.DefaultConfig()

	if interactive {
		if err := runInteractiveSetup(cfg); err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'reposcan scan .' to scan your repository.")

	return nil
}

func runInteractiveSetup(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("reposcan Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	formats := []struct {
		Label string
		Value string
	}{
		{"Text (human-readable)", constants.OutputFormatText},
		{"JSON", constants.OutputFormatJSON},
		{"YAML", constants.OutputFormatYAML},
	}

	formatTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	formatPrompt := promptui.Select{
		Label:     "Default output format?",
		Items:     formats,
		Templates: formatTemplates,
	}

	formatIdx, _, err := formatPrompt.Run()
	if err != nil {
		return fmt.Errorf("format selection cancelled: %w", err)
	}
	cfg.Output.Format = formats[formatIdx].Value

	fmt.Println()

	severities := []struct {
		Label       string
		Description string
		Value       string
	}{
		{"Info (everything)", "All messages including informational ones", "info"},
		{"Notice", "Positive findings and above", "notice"},
		{"Warning", "Only warnings and issues", "warning"},
		{"Issue", "Only hard problems", "issue"},
	}

	severityTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	severityPrompt := promptui.Select{
		Label:     "Lowest severity to report?",
		Items:     severities,
		Templates: severityTemplates,
	}

	severityIdx, _, err := severityPrompt.Run()
	if err != nil {
		return fmt.Errorf("severity selection cancelled: %w", err)
	}
	cfg.Output.MinSeverity = severities[severityIdx].Value

	fmt.Println()

	plainPrompt := promptui.Prompt{
		Label:     "Collapse metadata to plain values (drop provenance)",
		IsConfirm: true,
		Default:   "n",
	}
	if _, err := plainPrompt.Run(); err == nil {
		cfg.Output.Plain = true
	}

	fmt.Println()
	return nil
}
