package main

import (
	"fmt"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/reposcan/app"
	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/config"
	"github.com/ludo-technologies/reposcan/service"
)

var (
	skipAnalysers   []string
	skipAggregators []string
	skipTypes       []string
	outputFormat    string
	outputPath      string
	configPath      string
	minSeverity     string
	plainOutput     bool
	debugOutput     bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path|url]",
		Short: "Scan a repository for quality and compliance",
		Long: `Scan a local directory or remote repository URL.

Examples:
  reposcan scan .
  reposcan scan --format json path/to/repo
  reposcan scan --skip code_python --min-severity warning .
  reposcan scan https://github.com/user/repo`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringSliceVar(&skipAnalysers, "skip", nil,
		"Analysers to leave out (comma-separated ids)")
	cmd.Flags().StringSliceVar(&skipAggregators, "skip-aggregator", nil,
		"Aggregators to leave out (comma-separated ids)")
	cmd.Flags().StringSliceVar(&skipTypes, "skip-type", nil,
		"Analysis categories to leave out (comma-separated keys)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "",
		"Lowest severity to report: info, suggestion, notice, warning, issue")
	cmd.Flags().BoolVar(&plainOutput, "plain", false,
		"Collapse metadata to plain values and omit raw results")
	cmd.Flags().BoolVar(&debugOutput, "debug", false,
		"Enable debug logging")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if debugOutput {
		log.SetLevel(log.DebugLevel)
	}

	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := config.LoadConfig(configPath, target)
	if err != nil {
		return err
	}

	// Flags override the configuration file
	if cmd.Flags().Changed("skip") {
		cfg.Scan.SkipAnalysers = skipAnalysers
	}
	if cmd.Flags().Changed("skip-aggregator") {
		cfg.Scan.SkipAggregators = skipAggregators
	}
	if cmd.Flags().Changed("skip-type") {
		cfg.Scan.SkipTypes = skipTypes
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if minSeverity != "" {
		cfg.Output.MinSeverity = minSeverity
	}
	if cmd.Flags().Changed("plain") {
		cfg.Output.Plain = plainOutput
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	severity, err := domain.ParseSeverity(cfg.Output.MinSeverity)
	if err != nil {
		return err
	}

	writer := os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	req := domain.ScanRequest{
		Path:            target,
		SkipAnalysers:   cfg.Scan.SkipAnalysers,
		SkipAggregators: cfg.Scan.SkipAggregators,
		SkipTypes:       cfg.Scan.SkipTypes,
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		OutputWriter:    writer,
		MinSeverity:     severity,
		Plain:           cfg.Output.Plain,
		ConfigPath:      configPath,
	}

	pm := service.NewProgressManager(
		cfg.Output.Format == string(domain.OutputFormatText) && outputPath == "")
	defer pm.Close()

	useCase := app.NewScanUseCase(
		service.NewScanServiceWithProgress(pm),
		service.NewOutputFormatter(),
		service.NewRemoteFetcher(),
	)

	_, err = useCase.Execute(cmd.Context(), req)
	return err
}
