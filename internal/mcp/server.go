// Package mcp exposes the review pipeline as MCP tools over stdio so coding
// agents can request reviews, rebuild the index, and record feedback.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joescharf/connoisseur/internal/feedback"
	"github.com/joescharf/connoisseur/internal/index"
	"github.com/joescharf/connoisseur/internal/review"
)

// Server wraps the review pipeline and exposes it as MCP tools.
type Server struct {
	agent    *review.Agent
	index    *index.Store
	feedback *feedback.Store
}

// NewServer creates the MCP server wrapper with all required dependencies.
func NewServer(agent *review.Agent, idx *index.Store, fb *feedback.Store) *Server {
	return &Server{
		agent:    agent,
		index:    idx,
		feedback: fb,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("connoisseur", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.reviewFileTool())
	srv.AddTool(s.indexTreeTool())
	srv.AddTool(s.feedbackRecordTool())
	srv.AddTool(s.feedbackSummaryTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// connoisseur_review_file
func (s *Server) reviewFileTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("connoisseur_review_file",
		mcp.WithDescription("Review one source file: diff against an optional prior revision, extracted symbols, lint findings, embedding length, and a 0-100 score. Returns JSON."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to review")),
		mcp.WithString("old_path", mcp.Description("Path of the prior revision; omitted means no prior revision")),
	)
	return tool, s.handleReviewFile
}

func (s *Server) handleReviewFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	oldPath := request.GetString("old_path", "")

	result := s.agent.ReviewFile(ctx, path, oldPath)

	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal review: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// connoisseur_index_tree
func (s *Server) indexTreeTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("connoisseur_index_tree",
		mcp.WithDescription("Embed every recognized source file under a directory and persist one index entry per file. Returns the number of files indexed."),
		mcp.WithString("directory", mcp.Required(), mcp.Description("Root directory to index")),
	)
	return tool, s.handleIndexTree
}

func (s *Server) handleIndexTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := request.RequireString("directory")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: directory"), nil
	}

	count, err := s.index.IndexTree(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to index %s: %v", dir, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(`{"indexed":%d}`, count)), nil
}

// connoisseur_feedback_record
func (s *Server) feedbackRecordTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("connoisseur_feedback_record",
		mcp.WithDescription("Record reviewer feedback for a review: an identifier, a numeric score, and an optional comment."),
		mcp.WithString("review_id", mcp.Required(), mcp.Description("Review identifier")),
		mcp.WithNumber("score", mcp.Required(), mcp.Description("Numeric score for the review")),
		mcp.WithString("comment", mcp.Description("Optional free-form comment")),
	)
	return tool, s.handleFeedbackRecord
}

func (s *Server) handleFeedbackRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reviewID, err := request.RequireString("review_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: review_id"), nil
	}
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: score"), nil
	}
	comment := request.GetString("comment", "")

	if err := s.feedback.Append(reviewID, score, comment); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record feedback: %v", err)), nil
	}
	return mcp.NewToolResultText(`{"recorded":true}`), nil
}

// connoisseur_feedback_summary
func (s *Server) feedbackSummaryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("connoisseur_feedback_summary",
		mcp.WithDescription("Summarize recorded feedback: entry count and, when non-empty, the average score."),
	)
	return tool, s.handleFeedbackSummary
}

func (s *Server) handleFeedbackSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.feedback.Summarize()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to summarize feedback: %v", err)), nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
