package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ScanRequest represents a request to scan a repository
type ScanRequest struct {
	// Path of the code base to scan
	Path string

	// Plugins to leave out
	SkipAnalysers   []string
	SkipAggregators []string
	SkipTypes       []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	MinSeverity  Severity
	Plain        bool

	// Configuration
	ConfigPath string
}

// ScanService defines the core scan orchestration
type ScanService interface {
	// Scan analyses the code base at req.Path and returns the finalized report
	Scan(ctx context.Context, req ScanRequest) (*Report, error)
}

// OutputFormatter defines the interface for serializing reports
type OutputFormatter interface {
	// Write writes the report to the writer in the specified format
	Write(report *Report, format OutputFormat, writer io.Writer, minSeverity Severity, plain bool) error
}

// RepositoryFetcher materializes a remote repository as a local directory
type RepositoryFetcher interface {
	// Fetch clones the repository at url and returns its local path along
	// with a cleanup function
	Fetch(ctx context.Context, url string) (string, func(), error)
}

// ScanStats holds traversal bookkeeping produced by the walker
type ScanStats struct {
	NumDirs         int
	NumDirsExcluded int
	NumFiles        int
}
