package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joescharf/connoisseur/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server for coding-agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets coding agents request reviews natively. Configure with:

  {
    "mcpServers": {
      "connoisseur": { "command": "connoisseur", "args": ["serve"] }
    }
  }

Available tools: connoisseur_review_file, connoisseur_index_tree,
connoisseur_feedback_record, connoisseur_feedback_summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveRun(cmd *cobra.Command) error {
	agent, _, err := newAgent(".")
	if err != nil {
		return err
	}

	idx, err := openIndexStore(".")
	if err != nil {
		return err
	}

	fb, err := openFeedbackStore()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(agent, idx, fb)
	ui.Info("MCP server listening on stdio")
	return srv.ServeStdio(cmd.Context())
}
