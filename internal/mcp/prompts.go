package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("compose_page",
		mcp.WithPromptDescription("Lay out a storefront page from a short brief"),
		mcp.WithArgument("pageId",
			mcp.ArgumentDescription("ID of the storefront page"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("pageType",
			mcp.ArgumentDescription("Page type, e.g. HOME or CUSTOM"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("brief",
			mcp.ArgumentDescription("What the page should sell or say"),
			mcp.RequiredArgument(),
		),
	), s.handleComposePagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("review_page",
		mcp.WithPromptDescription("Review the open page for gaps and hidden or duplicated sections"),
	), s.handleReviewPagePrompt)
}

func (s *Server) handleComposePagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pageID := req.Params.Arguments["pageId"]
	pageType := req.Params.Arguments["pageType"]
	brief := req.Params.Arguments["brief"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Compose %s page %s", pageType, pageID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build the %s page "%s" for this brief: %s

1. Call open_page with pageId "%s" and pageType "%s". Note which template sections already exist.
2. Read list_section_types (category "template") and pick sections that fit the brief. Room sections only work on CUSTOM pages.
3. Add each section with add_section, then fill its copy with update_section_settings. Call save_history after each section.
4. Use reorder_sections so the strongest message comes first. An image banner in headerGroup shows above the template.
5. Check the result with get_editor_state, then call save_page and report the remote status.`,
						pageType, pageID, brief, pageID, pageType),
				},
			},
		},
	}, nil
}

func (s *Server) handleReviewPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tree := s.editor.State()
	page := tree.SelectedPageID
	if page == "" {
		page = "(none selected)"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review page %s", page),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Review the page currently open in the builder (page %s, %d template sections).

1. Read the builder://editor and builder://preview resources.
2. List hidden sections, sections still holding their default copy, and sections that repeat the same message.
3. Check that the header, footer, announcement bar and cart drawer exist; if not, call initialize_structural_components.
4. Suggest concrete update_section_settings or reorder_sections calls. Do not remove anything without asking.`,
						page, len(tree.Template)),
				},
			},
		},
	}, nil
}
