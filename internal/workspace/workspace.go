// Package workspace turns files and directories into analysis inputs.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"corvid/internal/cache"
	"corvid/internal/config"
	"corvid/internal/parser"
	"corvid/internal/semantic"
)

// Files expands paths into the sorted list of source files. Directories
// are walked recursively, skipping hidden and dependency folders; files
// named explicitly are kept whatever their extension.
func Files(cfg config.Config, paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func skipDir(name string) bool {
	if len(name) > 1 && strings.HasPrefix(name, ".") {
		return true
	}
	return name == "vendor" || name == "node_modules"
}

// Parse builds the input for one source text.
func Parse(path string, source []byte) semantic.Input {
	unit, errs := parser.ParseSource(path, string(source))
	return semantic.Input{
		Unit:   unit,
		Hash:   cache.Hash(source),
		Syntax: parser.Diagnostics(errs),
	}
}

// Load reads and parses every file. Sources are returned by path for
// rendering.
func Load(files []string) ([]semantic.Input, map[string]string, error) {
	inputs := make([]semantic.Input, 0, len(files))
	sources := make(map[string]string, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, Parse(path, data))
		sources[path] = string(data)
	}
	return inputs, sources, nil
}
