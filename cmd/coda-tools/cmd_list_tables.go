/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/internal/termfmt"
)

var ListTablesViews bool

var listTablesCmd = &cobra.Command{
	Use:   "tables DOC_ID",
	Short: "Print the tables of a doc",
	Long: `
Print the tables of a doc, and the views on them with --views.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		query := coda.ListTablesQuery{SortBy: "name", TableTypes: []string{"table"}}
		if ListTablesViews {
			query.TableTypes = append(query.TableTypes, "view")
		}

		fmt.Printf("tables:\n")
		for {
			tables, err := api.ListTables(cmd.Context(), args[0], query)
			if err != nil {
				return fmt.Errorf("list: couldn't list tables: %w", err)
			}

			for _, t := range tables.Items {
				fmt.Printf("  - %s: %s (%s)\n", termfmt.Bold().V(t.ID), termfmt.Linked(t.BrowserLink).V(t.Name), t.TableType)
			}

			if tables.NextPageToken == "" {
				return nil
			}
			query.PageToken = tables.NextPageToken
		}
	},
}

func init() {
	listCmd.AddCommand(listTablesCmd)

	listTablesCmd.Flags().BoolVar(&ListTablesViews, "views", false, "include views as well as base tables")
}
