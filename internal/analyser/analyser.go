// Package analyser contains the concrete analyser plugins. Each analyser
// declares the file patterns it is interested in and extracts metadata and
// messages from the files the scanner routes to it.
package analyser

import (
	"os"
	"path/filepath"
)

// readFile reads a matched file given the scan root and relative path
func readFile(root, rel string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
}
