package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}

	n, err := fs.NewExporter(filepath.Dir(dir), filepath.Base(dir)).Export(deps.Ctx, deps.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", n, dir)
	return nil
}
