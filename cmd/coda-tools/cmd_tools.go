/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/internal/termfmt"
	"github.com/toothbrush/coda-tools/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Commands to inspect and call the agent tools",
	Long: `
The same tools "serve" offers an agent, for you to poke at by hand.
`,
}

var ToolsListSchemas bool

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tool catalogue",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		// listing needs no token, but the catalogue wants an API to bind to
		api, err := coda.NewAPI(BaseURL, "unused")
		if err != nil {
			return fmt.Errorf("tools: couldn't instantiate Coda API: %w", err)
		}

		for _, t := range tools.New(api).Tools() {
			summary, _, _ := strings.Cut(t.Description, "\n")
			fmt.Printf("%s: %s\n", termfmt.Bold().V(t.Name), summary)
			if ToolsListSchemas {
				fmt.Printf("%s\n\n", t.Schema)
			}
		}
		return nil
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call TOOL [ARGS_JSON|-]",
	Short: "Call one tool and print its result",
	Long: `
Call one tool.  Arguments are a JSON object of snake_case parameters, given inline or on stdin
with "-".  For example:

  coda-tools tools call get_page '{"doc_id": "AbCDeFGH", "page_id_or_name": "canvas-IjkLmnO"}'
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		switch {
		case len(args) < 2:
		case args[1] == "-":
			in, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("tools: couldn't read arguments from stdin: %w", err)
			}
			raw = in
		default:
			raw = []byte(args[1])
		}

		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		result, err := tools.New(api).Call(cmd.Context(), args[0], raw)
		if err != nil {
			return fmt.Errorf("tools: %s failed: %w", args[0], err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("tools: couldn't encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)

	toolsListCmd.Flags().BoolVar(&ToolsListSchemas, "schemas", false, "print each tool's parameter schema too")
}
