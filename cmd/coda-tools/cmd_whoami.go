/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/internal/termfmt"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check your API token",
	Long: `
Print the user your API token belongs to.  Handy to check the token works at all.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		user, err := api.WhoAmI(cmd.Context())
		if err != nil {
			return fmt.Errorf("whoami: couldn't query current user: %w", err)
		}

		fmt.Printf("Logged in to Coda as %s (%s)\n", termfmt.Bold().V(user.Name), user.LoginID)
		if user.TokenName != "" {
			fmt.Printf("  token: %s, scoped: %v\n", user.TokenName, user.Scoped)
		}
		if user.Workspace != nil {
			fmt.Printf("  workspace: %s\n", user.Workspace.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
