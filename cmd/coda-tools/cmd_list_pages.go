/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/internal/termfmt"
)

var listPagesCmd = &cobra.Command{
	Use:   "pages DOC_ID",
	Short: "Print the page tree of a doc",
	Long: `
Print every page of a doc, indented under its parent.  Page IDs are what export and dump want.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		pages := []coda.Page{}
		query := coda.ListPagesQuery{}
		for {
			list, err := api.ListPages(cmd.Context(), args[0], query)
			if err != nil {
				return fmt.Errorf("list: couldn't list pages: %w", err)
			}
			pages = append(pages, list.Items...)

			if list.NextPageToken == "" {
				break
			}
			query.PageToken = list.NextPageToken
		}

		fmt.Printf("pages:\n")
		printPageTree(pages)
		return nil
	},
}

// printPageTree prints pages in listing order, children indented below their parent.
func printPageTree(pages []coda.Page) {
	children := map[string][]coda.Page{}
	known := map[string]bool{}
	for _, p := range pages {
		known[p.ID] = true
	}
	for _, p := range pages {
		parent := ""
		if p.Parent != nil && known[p.Parent.ID] {
			parent = p.Parent.ID
		}
		children[parent] = append(children[parent], p)
	}

	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		if depth > 20 {
			return
		}
		for _, p := range children[parent] {
			kind := ""
			if p.ContentType != coda.ContentTypeCanvas {
				kind = fmt.Sprintf(" %s", termfmt.Italic().V("("+p.ContentType+")"))
			}
			fmt.Printf("%s- %s: %s%s\n",
				strings.Repeat("  ", depth+1),
				termfmt.Bold().V(p.ID),
				termfmt.Linked(p.BrowserLink).V(p.Name),
				kind)
			walk(p.ID, depth+1)
		}
	}
	walk("", 0)
}

func init() {
	listCmd.AddCommand(listPagesCmd)
}
