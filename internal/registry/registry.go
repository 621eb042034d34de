// Package registry exposes the available analyser and aggregator plugins,
// keyed by stable identifier. The tables are static; there is no runtime
// type discovery.
package registry

import (
	"fmt"
	"sync"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/aggregator"
	"github.com/ludo-technologies/reposcan/internal/analyser"
)

// Entry pairs a plugin with its stable id
type Entry[T any] struct {
	ID     string
	Plugin T
}

// analyserTable lists all analysers in dispatch order. Ids are
// lowercase_with_underscores forms of the implementing type name and must
// not collide.
func analyserTable() []Entry[domain.Analyser] {
	return []Entry[domain.Analyser]{
		{ID: "license", Plugin: analyser.NewLicense()},
		{ID: "citation", Plugin: analyser.NewCitation()},
		{ID: "git", Plugin: analyser.NewGit()},
		{ID: "packaging_python", Plugin: analyser.NewPackagingPython()},
		{ID: "dependency_python", Plugin: analyser.NewDependencyPython()},
		{ID: "community", Plugin: analyser.NewCommunity()},
		{ID: "documentation", Plugin: analyser.NewDocumentation()},
		{ID: "code_python", Plugin: analyser.NewCodePython()},
	}
}

// aggregatorTable lists all aggregators in dispatch order
func aggregatorTable() []Entry[domain.Aggregator] {
	return []Entry[domain.Aggregator]{
		{ID: "license", Plugin: aggregator.NewLicense()},
		{ID: "version_control", Plugin: aggregator.NewVersionControl()},
		{ID: "citation", Plugin: aggregator.NewCitation()},
		{ID: "community", Plugin: aggregator.NewCommunity()},
		{ID: "documentation", Plugin: aggregator.NewDocumentation()},
		{ID: "packaging", Plugin: aggregator.NewPackaging()},
		{ID: "metadata", Plugin: aggregator.NewMetadata()},
	}
}

var (
	analysersOnce = sync.OnceValues(func() ([]Entry[domain.Analyser], error) {
		return checked(analyserTable())
	})
	aggregatorsOnce = sync.OnceValues(func() ([]Entry[domain.Aggregator], error) {
		return checked(aggregatorTable())
	})
)

// Analysers returns the available analysers. The result is computed once per
// process and reused.
func Analysers() ([]Entry[domain.Analyser], error) {
	return analysersOnce()
}

// Aggregators returns the available aggregators, computed once per process
func Aggregators() ([]Entry[domain.Aggregator], error) {
	return aggregatorsOnce()
}

// checked verifies that plugin ids are injective. A collision is a
// configuration error, reported as InvalidRule before any scan begins.
func checked[T any](entries []Entry[T]) ([]Entry[T], error) {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.ID] {
			return nil, domain.NewInvalidRuleError(entry.ID, fmt.Errorf("duplicate plugin id"))
		}
		seen[entry.ID] = true
	}
	return entries, nil
}

// typed is the common surface of analysers and aggregators used by Filter
type typed interface {
	Type() domain.AnalyserType
}

// Filter removes entries whose id is in skipIDs or whose category key is in
// skipTypes.
func Filter[T typed](entries []Entry[T], skipIDs, skipTypes []string) []Entry[T] {
	skipID := make(map[string]bool, len(skipIDs))
	for _, id := range skipIDs {
		skipID[id] = true
	}
	skipType := make(map[string]bool, len(skipTypes))
	for _, t := range skipTypes {
		skipType[t] = true
	}

	kept := make([]Entry[T], 0, len(entries))
	for _, entry := range entries {
		if skipID[entry.ID] || skipType[entry.Plugin.Type().Key()] {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
