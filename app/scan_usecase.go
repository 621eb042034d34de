// Package app orchestrates the scan workflow: request validation, remote
// repository materialization, scan execution and report output.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/reposcan/domain"
)

// ScanUseCase orchestrates the complete scan workflow
type ScanUseCase struct {
	service   domain.ScanService
	formatter domain.OutputFormatter
	fetcher   domain.RepositoryFetcher
}

// NewScanUseCase creates a new scan use case
func NewScanUseCase(service domain.ScanService, formatter domain.OutputFormatter, fetcher domain.RepositoryFetcher) *ScanUseCase {
	return &ScanUseCase{
		service:   service,
		formatter: formatter,
		fetcher:   fetcher,
	}
}

// Execute performs the complete scan workflow: it scans the requested target
// and writes the report to the request's output writer.
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.ScanRequest) (*domain.Report, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewConfigError("invalid request", err)
	}

	if IsRemoteTarget(req.Path) {
		if uc.fetcher == nil {
			return nil, domain.NewInvalidPathError(req.Path, fmt.Errorf("remote targets are not supported"))
		}
		local, cleanup, err := uc.fetcher.Fetch(ctx, req.Path)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		req.Path = local
	}

	report, err := uc.service.Scan(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		err = uc.formatter.Write(report, req.OutputFormat, req.OutputWriter, req.MinSeverity, req.Plain)
		if err != nil {
			return nil, domain.NewOutputError("failed to write report", err)
		}
	}

	return report, nil
}

// validateRequest validates the scan request
func (uc *ScanUseCase) validateRequest(req domain.ScanRequest) error {
	if req.Path == "" {
		return fmt.Errorf("no scan path specified")
	}
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	default:
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// IsRemoteTarget reports whether the scan target is a repository URL rather
// than a local path.
func IsRemoteTarget(target string) bool {
	return strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "git@") ||
		strings.HasPrefix(target, "ssh://")
}
