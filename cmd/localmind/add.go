package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/localmind"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	failed := 0
	for _, path := range c.Paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}

		if info.IsDir() {
			result, err := deps.Ingester.ImportDir(deps.Ctx, path)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
				return err
			}
			for _, s := range result.Successful {
				fmt.Fprintf(deps.Stdout, "Added %s (%s)\n", s.Filename, s.DocID)
			}
			for _, f := range result.Failed {
				fmt.Fprintf(deps.Stderr, "Skipped %s: %s\n", f.Filename, f.Error)
			}
			failed += result.TotalFailed
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}

		doc, err := deps.Uploader.Upload(deps.Ctx, localmind.File{Name: filepath.Base(path), Data: data})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Skipped %s: %s\n", path, localmind.ErrorMessage(err))
			failed++
			continue
		}
		fmt.Fprintf(deps.Stdout, "Added %s (%s)\n", doc.Title, doc.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be added", failed)
	}
	return nil
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	doc, err := deps.Importer.Import(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %s (%s)\n", doc.Title, doc.ID)
	return nil
}
