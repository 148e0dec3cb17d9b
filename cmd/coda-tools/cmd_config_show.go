/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s\n", ConfigActual)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()
		fmt.Printf("  Parsed YAML:\n%#v\n", ParsedConfig)
		fmt.Println()
		fmt.Printf("  BaseURL: %s\n", BaseURL)
		fmt.Printf("  APITokenCmd: %v\n", APITokenCmd)
		fmt.Printf("  CODA_API_KEY set: %v\n", os.Getenv("CODA_API_KEY") != "")
		fmt.Printf("  LocalStore: %s\n", LocalStore)
		fmt.Printf("  Workers: %d\n", Workers)
		fmt.Printf("  WithVCR: %v\n", WithVCR)
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
