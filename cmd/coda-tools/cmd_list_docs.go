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

var listDocsUsage = strings.TrimSpace(`
If you want to find out which docs you can get at, and what their IDs are, use this command.
`)

var (
	ListDocsQuery    string
	ListDocsAll      bool
	ListDocsMaxPages int
)

var listDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print list of docs",
	Long:  listDocsUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		query := coda.ListDocsQuery{Query: ListDocsQuery}
		if !ListDocsAll {
			query.IsOwner = boolPtr(true)
		}

		fmt.Printf("docs:\n")
		for i := 0; i < ListDocsMaxPages; i++ {
			docs, err := api.ListDocs(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("list: couldn't list Coda docs: %w", err)
			}

			for _, d := range docs.Items {
				fmt.Printf("  - %s: %s\n", termfmt.Bold().V(d.ID), termfmt.Linked(d.BrowserLink).V(d.Name))
			}

			if docs.NextPageToken == "" {
				return nil
			}
			query.PageToken = docs.NextPageToken
		}

		logger.Warn("stopped listing, there are more docs", "max-pages", ListDocsMaxPages)
		return nil
	},
}

func boolPtr(b bool) *bool { return &b }

func init() {
	listCmd.AddCommand(listDocsCmd)

	listDocsCmd.Flags().StringVarP(&ListDocsQuery, "query", "q", "", "only docs matching this search term")
	listDocsCmd.Flags().BoolVar(&ListDocsAll, "all", false, "list every doc you can see, not only your own")
	listDocsCmd.Flags().IntVar(&ListDocsMaxPages, "max-pages", 10, "give up after this many pages of results")
}
