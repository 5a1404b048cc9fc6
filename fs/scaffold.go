// Package fs writes LocalMind projects and document exports to disk.
package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// Scaffolder materialises a project directory from embedded templates.
type Scaffolder struct {
	// Templates holds the file contents, keyed by their project path.
	Templates iofs.FS

	// Dirs are created before any file is written.
	Dirs []string

	// Files are copied from Templates in order.
	Files []string

	// Keep skips files that already exist instead of overwriting them.
	Keep bool

	// Out receives one status line per directory and file.
	Out io.Writer
}

// ScaffoldResult lists what a Scaffold call did, by project path.
type ScaffoldResult struct {
	Dirs    []string
	Written []string
	Skipped []string
}

// Scaffold creates the project under root.
func (s *Scaffolder) Scaffold(root string) (*ScaffoldResult, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	result := &ScaffoldResult{}
	for _, dir := range s.Dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0755); err != nil {
			return result, fmt.Errorf("create %s: %w", dir, err)
		}
		result.Dirs = append(result.Dirs, dir)
		fmt.Fprintf(out, "Created directory %s/\n", dir)
	}

	for _, name := range s.Files {
		path := filepath.Join(root, filepath.FromSlash(name))

		if s.Keep {
			if _, err := os.Stat(path); err == nil {
				result.Skipped = append(result.Skipped, name)
				fmt.Fprintf(out, "Kept existing %s\n", name)
				continue
			} else if !errors.Is(err, iofs.ErrNotExist) {
				return result, err
			}
		}

		data, err := iofs.ReadFile(s.Templates, name)
		if err != nil {
			return result, fmt.Errorf("read template %s: %w", name, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return result, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return result, fmt.Errorf("write %s: %w", name, err)
		}
		result.Written = append(result.Written, name)
		fmt.Fprintf(out, "Wrote %s (%d bytes)\n", name, len(data))
	}

	return result, nil
}
