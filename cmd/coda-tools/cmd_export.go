/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/localdump"
)

var (
	ExportFormat  string
	ExportWait    bool
	ExportTimeout time.Duration
	ExportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export DOC_ID PAGE_ID_OR_NAME",
	Short: "Export one page as HTML or Markdown",
	Long: `
Start an export of a page's content.  Without --wait this prints the request ID to poll with the
get_page_content_export_status tool; with --wait it polls until the export is done and prints the
content (or writes it to --output).
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		docID, page := args[0], args[1]

		if !ExportWait {
			req, err := api.BeginPageContentExport(cmd.Context(), docID, page, ExportFormat)
			if err != nil {
				return fmt.Errorf("export: couldn't begin export: %w", err)
			}
			fmt.Printf("request: %s\nstatus: %s\n", req.ID, req.Status)
			return nil
		}

		logger.Info("exporting", "doc", docID, "page", page, "format", ExportFormat)
		exported, err := localdump.ExportPage(cmd.Context(), api, docID, page, ExportFormat, localdump.NewExportBackOff(ExportTimeout))
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if ExportOutput == "" {
			fmt.Println(exported.Content)
			return nil
		}
		if err := os.WriteFile(ExportOutput, []byte(exported.Content), 0640); err != nil {
			return fmt.Errorf("export: couldn't write %s: %w", ExportOutput, err)
		}
		logger.Info("wrote export", "path", ExportOutput, "bytes", len(exported.Content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&ExportFormat, "format", coda.FormatHTML, "export format, html or markdown")
	exportCmd.Flags().BoolVarP(&ExportWait, "wait", "w", false, "wait for the export and print its content")
	exportCmd.Flags().DurationVar(&ExportTimeout, "timeout", 2*time.Minute, "how long to wait for the export with --wait")
	exportCmd.Flags().StringVarP(&ExportOutput, "output", "o", "", "write the content here instead of stdout")
}
