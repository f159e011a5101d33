package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHistoryTools() {
	s.addTool(mcp.NewTool("save_history",
		mcp.WithDescription("Record the current sections as an undo step. Call it after a batch of edits you may want to undo as one."),
	), s.handleSaveHistory)

	s.addTool(mcp.NewTool("undo",
		mcp.WithDescription("Go back one recorded step"),
	), s.handleUndo)

	s.addTool(mcp.NewTool("redo",
		mcp.WithDescription("Go forward one recorded step"),
	), s.handleRedo)
}

func (s *Server) handleSaveHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.editor.SaveHistory(ctx)
	return textResult("History step recorded"), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Undo(ctx) {
		return textResult("Nothing to undo"), nil
	}
	return textResult("Undone"), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Redo(ctx) {
		return textResult("Nothing to redo"), nil
	}
	return textResult("Redone"), nil
}
