// Package scanner walks a repository tree once, evaluating include and
// exclude rules against every directory and file, and produces a mapping
// from analyser id to matched relative paths.
package scanner

import (
	"context"
	"os"
	"path"
	"path/filepath"

	log "github.com/charmbracelet/log"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/rule"
)

// Result holds the outcome of one traversal
type Result struct {
	// Files maps analyser ids to matched paths relative to the scan root
	Files map[string][]string

	// Stats holds traversal bookkeeping
	Stats domain.ScanStats
}

// Scan traverses the tree rooted at root top-down, following symlinks.
// Directory includes are catalogued before exclusion, so a directory can be
// both recorded for an analyser and pruned from traversal. The context is
// checked at every directory boundary.
func Scan(ctx context.Context, root string, includes, excludes *rule.Set) (*Result, error) {
	result := &Result{Files: make(map[string][]string)}

	if err := walk(ctx, root, "", includes, excludes, result); err != nil {
		return nil, err
	}
	return result, nil
}

func walk(ctx context.Context, root, rel string, includes, excludes *rule.Set, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(abs)
	if err != nil {
		if rel == "" {
			return domain.NewInvalidPathError(root, err)
		}
		log.Debug("Skipping unreadable directory", "path", rel, "err", err)
		return nil
	}

	result.Stats.NumDirs++

	var pending []string

	for _, entry := range entries {
		name := entry.Name()
		relpath := path.Join(rel, name)

		if !isDir(entry, filepath.Join(abs, name)) {
			for _, r := range includes.Rules() {
				if r.IsDir {
					continue
				}
				if r.Match(candidate(r, relpath, name)) {
					result.Stats.NumFiles++
					record(result, r.Owners, relpath)
				}
			}
			continue
		}

		// Directory includes are evaluated before exclusion so that e.g.
		// `.git/` can be catalogued for the version control analyser and
		// still be pruned.
		for _, r := range includes.Rules() {
			if !r.IsDir {
				continue
			}
			if r.Match(candidate(r, relpath, name)) {
				record(result, r.Owners, relpath)
			}
		}

		excluded := false
		for _, r := range excludes.Rules() {
			if r.Match(candidate(r, relpath, name)) {
				result.Stats.NumDirsExcluded++
				excluded = true
				log.Debug("Directory excluded", "path", relpath)
				break
			}
		}
		if !excluded {
			pending = append(pending, relpath)
		}
	}

	for _, sub := range pending {
		if err := walk(ctx, root, sub, includes, excludes, result); err != nil {
			return err
		}
	}
	return nil
}

// candidate selects what the rule is matched against: the relative path for
// nested rules, the bare name otherwise.
func candidate(r *rule.Rule, relpath, name string) string {
	if r.IsNested {
		return relpath
	}
	return name
}

func record(result *Result, owners []string, relpath string) {
	for _, id := range owners {
		result.Files[id] = append(result.Files[id], relpath)
	}
}

// isDir reports whether the entry is a directory, following symlinks
func isDir(entry os.DirEntry, abs string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.IsDir()
}
