package domain

import (
	"fmt"
	"sync"
	"time"
)

// Stats holds run statistics for a scan
type Stats struct {
	Path            string    `json:"path" yaml:"path"`
	Date            time.Time `json:"date" yaml:"date"`
	EndDate         time.Time `json:"end_date" yaml:"end_date"`
	Duration        float64   `json:"duration" yaml:"duration"`
	Version         string    `json:"version" yaml:"version"`
	NumDirs         int       `json:"num_dirs" yaml:"num_dirs"`
	NumDirsExcluded int       `json:"num_dirs_excluded" yaml:"num_dirs_excluded"`
	NumFiles        int       `json:"num_files" yaml:"num_files"`
}

// Report is the aggregate result of one scan: the metadata store, the
// severity-leveled message log, per-analyser raw results and run statistics.
// Analysers mutate it only through the Reporter facade; mutation is safe
// under concurrent writers.
type Report struct {
	mu       sync.Mutex
	Path     string
	Messages map[Severity][]Message
	Metadata *Metadata
	Results  map[string]AnalyserResult
	Stats    Stats
}

// NewReport creates an empty report for the given scan root. The message log
// carries every severity from the start so consumers never need existence
// checks.
func NewReport(path string) *Report {
	messages := make(map[Severity][]Message, len(Severities))
	for _, severity := range Severities {
		messages[severity] = []Message{}
	}
	return &Report{
		Path:     path,
		Messages: messages,
		Metadata: NewMetadata(),
		Results:  make(map[string]AnalyserResult),
	}
}

// For returns a write facade bound to the given analyser id. All metadata
// and message provenance flows through the bound id.
func (r *Report) For(analyser string) *Reporter {
	return &Reporter{report: r, analyser: analyser}
}

// AddMessage appends a message at the given severity
func (r *Report) AddMessage(severity Severity, analyser, text string, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages[severity] = append(r.Messages[severity], Message{
		Text:     text,
		Analyser: analyser,
		Paths:    paths,
	})
}

// SetResult records an analyser's raw per-file results
func (r *Report) SetResult(analyser string, result AnalyserResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[analyser] = result
}

// AnalyseMetadata runs the cross-attribute metadata pass: divergent scalar
// values for the same key from different sources become Issues naming the
// conflicting sources.
func (r *Report) AnalyseMetadata() {
	r.mu.Lock()
	conflicts := r.Metadata.Conflicts()
	r.mu.Unlock()

	for _, conflict := range conflicts {
		text := fmt.Sprintf("Multiple values exist for %s (%s).",
			conflict.Key, joinSources(conflict.Sources))
		r.AddMessage(SeverityIssue, "metadata", text, conflict.Paths...)
	}
}

func joinSources(sources []string) string {
	joined := ""
	for i, source := range sources {
		if i > 0 {
			joined += ", "
		}
		joined += source
	}
	return joined
}

// ToMap converts the report to a serializable mapping. Messages below
// minSeverity are omitted. In plain mode each metadata key collapses to its
// representative value; otherwise full provenance records are preserved.
func (r *Report) ToMap(minSeverity Severity, plain bool) map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := make(map[string][]Message)
	for _, severity := range Severities {
		if severity < minSeverity {
			continue
		}
		messages[severity.String()] = r.Messages[severity]
	}

	metadata := make(map[string]any)
	for _, key := range r.Metadata.Keys() {
		if plain {
			metadata[key] = r.Metadata.PlainValue(key)
		} else {
			metadata[key] = r.Metadata.Get(key)
		}
	}

	out := map[string]any{
		"messages": messages,
		"metadata": metadata,
		"stats":    r.Stats,
	}
	if !plain {
		out["results"] = r.Results
	}
	return out
}

// Reporter is the narrow write-only facade handed to analysers and
// aggregators. It binds every mutation to the owning analyser id.
type Reporter struct {
	report   *Report
	analyser string
}

// Analyser returns the bound analyser id
func (rp *Reporter) Analyser() string {
	return rp.analyser
}

// Report returns the underlying report for read access
func (rp *Reporter) Report() *Report {
	return rp.report
}

// AddMetadata records a scalar metadata assertion. Empty values are silently
// dropped; values failing a format rule for well-known keys are downgraded
// to an Issue attributed to the bound analyser.
func (rp *Reporter) AddMetadata(key string, value any, path string) {
	if isEmptyValue(value) {
		return
	}
	if err := validateValue(key, value); err != nil {
		rp.AddIssue(fmt.Sprintf("Invalid %s: %v.", key, err), path)
		return
	}

	rp.report.mu.Lock()
	defer rp.report.mu.Unlock()
	rp.report.Metadata.add(key, MetadataEntry{
		Value:    value,
		Analyser: rp.analyser,
		Path:     path,
		Seq:      rp.report.Metadata.nextSeq(),
	})
}

// AddMetadataList records multiple values for one key at once. All entries
// share a sequence id and carry the list flag, marking the key list-valued.
func (rp *Reporter) AddMetadataList(key string, values []any, path string) {
	kept := make([]any, 0, len(values))
	for _, value := range values {
		if !isEmptyValue(value) {
			kept = append(kept, value)
		}
	}
	if len(kept) == 0 {
		return
	}

	rp.report.mu.Lock()
	defer rp.report.mu.Unlock()
	seq := rp.report.Metadata.nextSeq()
	for _, value := range kept {
		rp.report.Metadata.add(key, MetadataEntry{
			Value:    value,
			Analyser: rp.analyser,
			Path:     path,
			Seq:      seq,
			IsList:   true,
		})
	}
}

// AddIssue records an issue message
func (rp *Reporter) AddIssue(text string, paths ...string) {
	rp.report.AddMessage(SeverityIssue, rp.analyser, text, paths...)
}

// AddWarning records a warning message
func (rp *Reporter) AddWarning(text string, paths ...string) {
	rp.report.AddMessage(SeverityWarning, rp.analyser, text, paths...)
}

// AddNotice records a notice message
func (rp *Reporter) AddNotice(text string, paths ...string) {
	rp.report.AddMessage(SeverityNotice, rp.analyser, text, paths...)
}

// AddSuggestion records a suggestion message
func (rp *Reporter) AddSuggestion(text string, paths ...string) {
	rp.report.AddMessage(SeveritySuggestion, rp.analyser, text, paths...)
}

// AddInfo records an info message
func (rp *Reporter) AddInfo(text string, paths ...string) {
	rp.report.AddMessage(SeverityInfo, rp.analyser, text, paths...)
}
