// Package scan collects the source files an analysis pass will consume. It
// walks a project tree, filters by supported extension, prunes excluded
// directories, and returns files in sorted path order.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kestrelworks/depmap/internal/analysis"
)

// defaultExcludes are pruned from every walk in addition to configured ones.
var defaultExcludes = []string{".git", "node_modules", "dist", "build", "coverage"}

// Collect walks root and returns an Input per supported source file, with
// paths made project-relative and slash-separated. extensions must include
// the leading dot; an empty slice means the parser's defaults are supplied by
// the caller.
func Collect(root string, extensions, excludeDirs []string) ([]analysis.Input, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	extSet := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		extSet[strings.ToLower(e)] = true
	}

	excludeSet := make(map[string]bool)
	for _, d := range defaultExcludes {
		excludeSet[d] = true
	}
	for _, d := range excludeDirs {
		excludeSet[d] = true
	}

	var inputs []analysis.Input

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if excludeSet[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		inputs = append(inputs, analysis.Input{
			Path:   filepath.ToSlash(relPath),
			Source: source,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}
