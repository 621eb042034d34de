package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/charmbracelet/log"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/registry"
	"github.com/ludo-technologies/reposcan/internal/rule"
	"github.com/ludo-technologies/reposcan/internal/scanner"
	"github.com/ludo-technologies/reposcan/internal/version"
)

// ScanServiceImpl implements domain.ScanService. It resolves the repository
// root, assembles the rule sets from the active analysers, drives the
// scanner, dispatches matched files to analysers and category results to
// aggregators, and finalizes the report.
type ScanServiceImpl struct {
	executor *ParallelExecutorImpl
	progress domain.ProgressManager
}

// NewScanService creates a new scan service
func NewScanService() *ScanServiceImpl {
	return &ScanServiceImpl{executor: NewParallelExecutor()}
}

// NewScanServiceWithProgress creates a scan service with progress tracking
func NewScanServiceWithProgress(pm domain.ProgressManager) *ScanServiceImpl {
	return &ScanServiceImpl{
		executor: NewParallelExecutorWithProgress(pm),
		progress: pm,
	}
}

// Scan analyses the code base at req.Path and returns the finalized report
func (s *ScanServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.Report, error) {
	root, err := resolveRoot(req.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("Scanning", "path", root)

	analysers, err := registry.Analysers()
	if err != nil {
		return nil, err
	}
	aggregators, err := registry.Aggregators()
	if err != nil {
		return nil, err
	}
	analysers = registry.Filter(analysers, req.SkipAnalysers, req.SkipTypes)
	aggregators = registry.Filter(aggregators, req.SkipAggregators, req.SkipTypes)

	includes, excludes, err := buildRuleSets(root, analysers)
	if err != nil {
		return nil, err
	}

	report := domain.NewReport(root)
	report.Stats.Path = root
	report.Stats.Date = time.Now()
	report.Stats.Version = version.GetVersion()

	scanResult, err := scanner.Scan(ctx, root, includes, excludes)
	if err != nil {
		return nil, err
	}

	byType := make(map[domain.AnalyserType]domain.AnalyserResult)

	for _, entry := range analysers {
		files := scanResult.Files[entry.ID]
		if len(files) == 0 {
			continue
		}
		log.Debug("Running analyser", "id", entry.ID, "files", len(files))

		results := s.analyseFiles(ctx, root, entry.ID, entry.Plugin, files, report)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(results) == 0 {
			continue
		}

		reporter := report.For(entry.ID)
		if ra, ok := entry.Plugin.(domain.ResultAnalyser); ok {
			if err := ra.AnalyseResults(results, reporter); err != nil {
				reporter.AddWarning(fmt.Sprintf("Result analysis failed (%v).", err))
			}
		}

		report.SetResult(entry.ID, results)
		merged := byType[entry.Plugin.Type()]
		if merged == nil {
			merged = make(domain.AnalyserResult)
			byType[entry.Plugin.Type()] = merged
		}
		for path, result := range results {
			merged[path] = result
		}
	}

	for _, entry := range aggregators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("Running aggregator", "id", entry.ID)

		reporter := report.For(entry.ID)
		if err := entry.Plugin.Aggregate(byType[entry.Plugin.Type()], reporter); err != nil {
			reporter.AddWarning(fmt.Sprintf("Aggregation failed (%v).", err))
		}
	}

	report.AnalyseMetadata()

	report.Stats.NumDirs = scanResult.Stats.NumDirs
	report.Stats.NumDirsExcluded = scanResult.Stats.NumDirsExcluded
	report.Stats.NumFiles = scanResult.Stats.NumFiles
	report.Stats.EndDate = time.Now()
	report.Stats.Duration = report.Stats.EndDate.Sub(report.Stats.Date).Seconds()

	return report, nil
}

// analyseFiles runs one analyser over its matched files through the parallel
// executor. A file's failure is downgraded to a Warning and never aborts the
// rest of the scan.
func (s *ScanServiceImpl) analyseFiles(
	ctx context.Context,
	root, id string,
	analyser domain.Analyser,
	files []string,
	report *domain.Report,
) domain.AnalyserResult {
	results := make(domain.AnalyserResult, len(files))
	reporter := report.For(id)

	var mu sync.Mutex
	tasks := make([]domain.ExecutableTask, 0, len(files))
	for _, rel := range files {
		tasks = append(tasks, &fileTask{
			rel: rel,
			run: func(context.Context) error {
				result, err := analyser.AnalyseFile(root, rel, reporter)
				if err != nil {
					return err
				}
				if result != nil {
					mu.Lock()
					results[rel] = result
					mu.Unlock()
				}
				return nil
			},
		})
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		var aggregated *AggregatedError
		if errors.As(err, &aggregated) {
			for _, taskErr := range aggregated.Errors {
				reporter.AddWarning(
					fmt.Sprintf("File analysis failed (%v).", taskErr.Err), taskErr.TaskName)
			}
		}
	}
	return results
}

// fileTask adapts a per-file analysis closure to the executor task interface
type fileTask struct {
	rel string
	run func(ctx context.Context) error
}

func (t *fileTask) Name() string { return t.rel }

func (t *fileTask) Execute(ctx context.Context) error { return t.run(ctx) }

// resolveRoot validates the scan path and collapses wrapper directories:
// while the directory contains exactly one entry which is itself a
// directory, descend into it. This handles archives extracted into a single
// top-level folder.
func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", domain.NewInvalidPathError(path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", domain.NewInvalidPathError(path, err)
	}
	if !info.IsDir() {
		return "", domain.NewInvalidPathError(path, fmt.Errorf("not a directory"))
	}

	for {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return "", domain.NewInvalidPathError(abs, err)
		}
		if len(entries) != 1 || !entries[0].IsDir() {
			break
		}
		abs = filepath.Join(abs, entries[0].Name())
		log.Debug("Proceeding to wrapper directory", "path", abs)
	}
	return abs, nil
}

// buildRuleSets assembles the include and exclude rule sets from all active
// analysers. Analysers contributing the same include pattern share one rule
// with merged owners. Any exclude pattern not in directory form fails the
// scan before traversal begins.
func buildRuleSets(root string, analysers []registry.Entry[domain.Analyser]) (*rule.Set, *rule.Set, error) {
	includes := rule.NewSet()
	excludes := rule.NewSet()

	for _, entry := range analysers {
		for _, pattern := range entry.Plugin.Includes(root) {
			if _, err := includes.Add(pattern, entry.ID); err != nil {
				return nil, nil, err
			}
		}
		for _, pattern := range entry.Plugin.Excludes(root) {
			if _, err := excludes.AddExclude(pattern, entry.ID); err != nil {
				return nil, nil, err
			}
		}
	}
	return includes, excludes, nil
}
