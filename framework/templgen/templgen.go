// Package templgen compiles .templ components into their _templ.go form.
package templgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/a-h/templ/generator"
	"github.com/a-h/templ/parser/v2"
)

var (
	ErrNoTemplates = errors.New("no templ files found")
	ErrStale       = errors.New("generated component is out of date")
)

type Config struct {
	// Paths are directories searched recursively for .templ files.
	Paths []string
	// BasePath anchors the file names embedded in generated errors.
	BasePath string
	// Check compares instead of writing and reports ErrStale on drift.
	Check bool
}

// Run generates every .templ file under cfg.Paths and returns the
// generated file paths.
func Run(cfg Config) ([]string, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "."
	}
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base path %q: %w", basePath, err)
	}

	sources, err := findTemplates(cfg.Paths)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoTemplates
	}

	targets := make([]string, 0, len(sources))
	var stale []string
	for _, source := range sources {
		target := TargetPath(source)
		output, err := generate(source, baseAbs)
		if err != nil {
			return nil, err
		}

		if cfg.Check {
			current, err := os.ReadFile(target)
			if err != nil || !bytes.Equal(current, output) {
				stale = append(stale, target)
			}
		} else if err := os.WriteFile(target, output, 0o644); err != nil {
			return nil, fmt.Errorf("write %q: %w", target, err)
		}
		targets = append(targets, target)
	}

	if len(stale) > 0 {
		return targets, fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
	}
	return targets, nil
}

// TargetPath maps layout.templ to layout_templ.go.
func TargetPath(source string) string {
	return strings.TrimSuffix(source, ".templ") + "_templ.go"
}

func findTemplates(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var found []string

	for _, root := range roots {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", root, err)
		}

		walkErr := filepath.WalkDir(rootAbs, func(filePath string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				name := entry.Name()
				if filePath != rootAbs && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(filePath) != ".templ" {
				return nil
			}
			if _, ok := seen[filePath]; !ok {
				seen[filePath] = struct{}{}
				found = append(found, filePath)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk path %q: %w", root, walkErr)
		}
	}

	sort.Strings(found)
	return found, nil
}

func generate(source string, baseAbs string) ([]byte, error) {
	tf, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", source, err)
	}

	relName, err := filepath.Rel(baseAbs, source)
	if err != nil {
		return nil, fmt.Errorf("relative name for %q: %w", source, err)
	}

	var output bytes.Buffer
	_, err = generator.Generate(
		tf,
		&output,
		generator.WithFileName(filepath.ToSlash(relName)),
		generator.WithVersion(templ.Version()),
	)
	if err != nil {
		return nil, fmt.Errorf("generate %q: %w", source, err)
	}

	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", source, err)
	}
	return formatted, nil
}
