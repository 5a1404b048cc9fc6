package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/localmind/fs"
	"github.com/fwojciec/localmind/web"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	root, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Setting up LocalMind in %s\n", root)
	fmt.Fprintln(deps.Stdout, "Dependencies are compiled into the localmind binary; nothing to install.")

	s := &fs.Scaffolder{
		Templates: web.FS(),
		Dirs:      web.Dirs,
		Files:     web.Templates,
		Keep:      c.Keep,
		Out:       deps.Stdout,
	}
	result, err := s.Scaffold(root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nLocalMind setup complete: %d files written, %d kept.\n", len(result.Written), len(result.Skipped))
	fmt.Fprintln(deps.Stdout, "\nNext steps:")
	fmt.Fprintf(deps.Stdout, "  1. localmind serve --web-dir %s --import-dir %s\n", root, filepath.Join(root, "documents"))
	fmt.Fprintln(deps.Stdout, "  2. Open http://localhost:8000 in your browser")
	fmt.Fprintln(deps.Stdout, "  3. Upload documents and start searching")
	return nil
}
