package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/reposcan/domain"
)

// OutputFormatterImpl implements report serialization
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// Write writes the report in the specified format. Messages below minSeverity
// are omitted; plain mode collapses metadata to representative values and
// drops raw analyser results.
func (f *OutputFormatterImpl) Write(
	report *domain.Report,
	format domain.OutputFormat,
	writer io.Writer,
	minSeverity domain.Severity,
	plain bool,
) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report.ToMap(minSeverity, plain))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report.ToMap(minSeverity, plain))
	case domain.OutputFormatText:
		return f.writeText(report, writer, minSeverity, plain)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeText writes the report as human-readable plain text
func (f *OutputFormatterImpl) writeText(
	report *domain.Report,
	writer io.Writer,
	minSeverity domain.Severity,
	plain bool,
) error {
	fmt.Fprintf(writer, "\n=== Scan Report ===\n\n")
	fmt.Fprintf(writer, "Path: %s\n", report.Stats.Path)
	fmt.Fprintf(writer, "Date: %s\n", report.Stats.Date.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Version: %s\n\n", report.Stats.Version)

	// Messages, most severe first
	for i := len(domain.Severities) - 1; i >= 0; i-- {
		severity := domain.Severities[i]
		if severity < minSeverity {
			continue
		}
		messages := report.Messages[severity]
		if len(messages) == 0 {
			continue
		}
		fmt.Fprintf(writer, "%ss:\n", title(severity.String()))
		for _, msg := range messages {
			fmt.Fprintf(writer, "  - %s", msg.Text)
			if len(msg.Paths) > 0 {
				fmt.Fprintf(writer, " (%s)", strings.Join(msg.Paths, ", "))
			}
			fmt.Fprintf(writer, "\n")
		}
		fmt.Fprintf(writer, "\n")
	}

	keys := report.Metadata.Keys()
	if len(keys) > 0 {
		fmt.Fprintf(writer, "Metadata:\n")
		for _, key := range keys {
			fmt.Fprintf(writer, "  %s: %s\n", key, formatValue(report.Metadata.PlainValue(key)))
		}
		fmt.Fprintf(writer, "\n")
	}

	fmt.Fprintf(writer, "Statistics:\n")
	fmt.Fprintf(writer, "  Directories scanned: %d\n", report.Stats.NumDirs)
	fmt.Fprintf(writer, "  Directories excluded: %d\n", report.Stats.NumDirsExcluded)
	fmt.Fprintf(writer, "  Files matched: %d\n", report.Stats.NumFiles)
	fmt.Fprintf(writer, "  Duration: %.2fs\n", report.Stats.Duration)

	return nil
}

// formatValue renders a metadata value for text output
func formatValue(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// title uppercases the first letter of a severity name
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
