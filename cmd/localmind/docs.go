package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/localmind"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, localmind.DocumentFilter{Offset: c.Skip, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'localmind add' to add some.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s  %s\n", doc.ID, doc.Type, doc.AddedAt.Format("2006-01-02 15:04"), doc.Title)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:      %s\n", doc.ID)
	fmt.Fprintf(deps.Stdout, "Title:   %s\n", doc.Title)
	fmt.Fprintf(deps.Stdout, "Type:    %s\n", doc.Type)
	fmt.Fprintf(deps.Stdout, "Added:   %s\n", doc.AddedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "Size:    %s\n", localmind.FormatSize(len(doc.Content)))
	for _, key := range slices.Sorted(maps.Keys(doc.Metadata)) {
		fmt.Fprintf(deps.Stdout, "  %s: %v\n", key, doc.Metadata[key])
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", doc.Content)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return localmind.Errorf(localmind.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		if localmind.ErrorCode(err) == localmind.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'localmind list' to see stored documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Document %s deleted successfully\n", c.ID)
	return nil
}
