/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/localdump"
)

var dumpUsage = strings.TrimSpace(`
Export every page of one or more docs into --store, as Markdown with a YAML header.  Pages are laid
out the way the doc's page tree is: <store>/<doc id>/<parent>/<child>/<page id>-<title>.md.

Pages that haven't changed since the last dump are skipped, so it's cheap to run this regularly.
Docs can be given as arguments or as a "docs" list in the config file.
`)

var (
	AlwaysDownload bool
	WriteMarkdown  bool
	Prune          bool
	KeepGoing      bool
	DumpFormat     string
	DumpDocs       []string
)

var dumpCmd = &cobra.Command{
	Use:   "dump [DOC_ID...]",
	Short: "Dump docs to local Markdown files",
	Long:  dumpUsage,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := append(append([]string{}, args...), DumpDocs...)
		if len(docs) == 0 {
			return fmt.Errorf("dump: no docs given, pass some doc IDs or set 'docs' in your config file")
		}

		if LocalStore == "" {
			return fmt.Errorf("dump: no location set for local store of Coda data, use --store or set it in your config file")
		}
		storePath, err := homedir.Expand(LocalStore)
		if err != nil {
			return fmt.Errorf("dump: couldn't expand homedir: %w", err)
		}
		if err := os.MkdirAll(storePath, 0750); err != nil {
			return fmt.Errorf("dump: couldn't create store %s: %w", storePath, err)
		}

		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		var result *multierror.Error
		for _, docID := range docs {
			dumper := &localdump.DocDumper{
				StorePath:      storePath,
				Workers:        Workers,
				API:            api,
				Format:         DumpFormat,
				AlwaysDownload: AlwaysDownload,
				WriteMarkdown:  WriteMarkdown,
				Prune:          Prune,
				KeepGoing:      KeepGoing,
				Logger:         logger.Named("dump").With("doc", docID),
				Progress:       os.Stderr,
			}

			summary, err := dumper.DumpDoc(cmd.Context(), docID)
			if summary != nil {
				logger.Info("dumped doc", "doc", docID,
					"pages", summary.Pages,
					"fetched", summary.Fetched,
					"cached", summary.Cached,
					"skipped", summary.Skipped,
					"failed", summary.Failed)
			}
			if err != nil {
				if !KeepGoing {
					return fmt.Errorf("dump: %s: %w", docID, err)
				}
				result = multierror.Append(result, fmt.Errorf("dump: %s: %w", docID, err))
			}
		}

		return result.ErrorOrNil()
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVarP(&AlwaysDownload, "always-download", "f", false, "always export pages, skipping the freshness check")
	dumpCmd.Flags().BoolVar(&WriteMarkdown, "write-markdown", true, "write files; with =false nothing on disk changes")
	dumpCmd.Flags().BoolVar(&Prune, "prune", false, "delete local files of pages that no longer exist or have moved")
	dumpCmd.Flags().BoolVar(&KeepGoing, "keep-going", false, "carry on past pages or docs that fail, and report them all at the end")
	dumpCmd.Flags().StringVar(&DumpFormat, "format", coda.FormatHTML, "export format, html (converted to Markdown) or markdown")
	dumpCmd.Flags().StringSliceVar(&DumpDocs, "docs", []string{}, "doc IDs to dump, as well as any arguments")
}
