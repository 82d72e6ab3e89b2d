package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the draft tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("draft-get",
			mcp.WithDescription("Return the current gift draft as JSON"),
		),
		s.handleDraftGet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("draft-update",
			mcp.WithDescription("Merge fields into the gift draft. Keys: basicInfo, story, reasons, photos, finalMessage, secretLetter, selectedTemplate"),
			mcp.WithObject("fields", mcp.Required(),
				mcp.Description("Top-level draft fields to overwrite, in the same shape draft-get returns"),
			),
		),
		s.handleDraftUpdate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("draft-validate",
			mcp.WithDescription("Validate one step of the draft, or every step when no step is given"),
			mcp.WithString("step",
				mcp.Description("Step id, e.g. basic-info, story, reasons, photos, final-message, secret-letter"),
			),
		),
		s.handleDraftValidate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("draft-status",
			mcp.WithDescription("Summarize draft progress: template, current step, completed steps and autosave state"),
		),
		s.handleDraftStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("steps-list",
			mcp.WithDescription("List the wizard steps for a template"),
			mcp.WithString("template",
				mcp.Description("Template id; defaults to the draft's template"),
			),
		),
		s.handleStepsList,
	)
}
