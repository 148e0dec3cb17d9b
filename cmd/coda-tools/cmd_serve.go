/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toothbrush/coda-tools/mcpserver"
	"github.com/toothbrush/coda-tools/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools to an agent over MCP on stdio",
	Long: `
Speak the Model Context Protocol on stdin and stdout, offering every tool in "tools list".  Point
your agent runtime at this command.  Logs go to stderr.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, done, err := newAPI()
		if err != nil {
			return err
		}
		defer done()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := mcpserver.New(tools.New(api), shortVersion(), logger.Named("mcp"))
		logger.Info("serving on stdio", "server", mcpserver.ServerName)

		return mcpserver.Serve(ctx, s, os.Stdin, os.Stdout, logger.Named("mcp"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
