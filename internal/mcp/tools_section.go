package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/domain"
)

func (s *Server) registerSectionTools() {
	// ── add_section ────────────────────────────────────
	s.addTool(mcp.NewTool("add_section",
		mcp.WithDescription("Append a section built from catalog defaults to a group. Room sections are only allowed in the template of CUSTOM pages; header, footer, announcement bar and cart drawer can exist only once."),
		mcp.WithString("type",
			mcp.Description("Section type id (e.g. rich_text) or API name (e.g. RichText). See list_section_types."),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("headerGroup, asideGroup, template (default) or footerGroup"),
		),
	), s.handleAddSection)

	// ── remove_section ─────────────────────────────────
	s.addTool(mcp.NewTool("remove_section",
		mcp.WithDescription("Remove a section. Requires user approval."),
		mcp.WithString("sectionId",
			mcp.Description("ID of the section"),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("Group of the section; looked up when omitted"),
		),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveSection)

	// ── toggle_section_visibility ──────────────────────
	s.addTool(mcp.NewTool("toggle_section_visibility",
		mcp.WithDescription("Show a hidden section or hide a visible one"),
		mcp.WithString("sectionId",
			mcp.Description("ID of the section"),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("Group of the section; looked up when omitted"),
		),
	), s.handleToggleVisibility)

	// ── update_section_settings ────────────────────────
	s.addTool(mcp.NewTool("update_section_settings",
		mcp.WithDescription("Merge settings into a section. Only top-level keys are replaced; nested objects are replaced whole."),
		mcp.WithString("sectionId",
			mcp.Description("ID of the section"),
			mcp.Required(),
		),
		mcp.WithString("settings",
			mcp.Description(`JSON object, e.g. {"heading":"New arrivals","columns":3}`),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("Group of the section; looked up when omitted"),
		),
	), s.handleUpdateSettings)

	// ── reorder_sections ───────────────────────────────
	s.addTool(mcp.NewTool("reorder_sections",
		mcp.WithDescription("Move the section at position from to position to within a group (zero-based)"),
		mcp.WithNumber("from",
			mcp.Description("Current position"),
			mcp.Required(),
		),
		mcp.WithNumber("to",
			mcp.Description("Target position"),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("headerGroup, asideGroup, template (default) or footerGroup"),
		),
	), s.handleReorderSections)

	// ── select_section ─────────────────────────────────
	s.addTool(mcp.NewTool("select_section",
		mcp.WithDescription("Select a section in the builder UI and open its config panel. An empty sectionId clears the selection."),
		mcp.WithString("sectionId",
			mcp.Description("ID of the section"),
		),
	), s.handleSelectSection)
}

// locate resolves sectionId and its group. An explicit group is trusted;
// otherwise the tree is searched.
func (s *Server) locate(args map[string]any) (domain.Group, string, error) {
	id, _ := args["sectionId"].(string)
	if id == "" {
		return "", "", fmt.Errorf("sectionId is required")
	}
	if raw, _ := args["group"].(string); raw != "" {
		g, err := domain.ParseGroup(raw)
		return g, id, err
	}
	tree := s.editor.State()
	g, _, ok := tree.Find(id)
	if !ok {
		return "", "", fmt.Errorf("section %s not found", id)
	}
	return g, id, nil
}

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw := req.GetString("type", "")
	t, ok := s.editor.Catalog().Resolve(raw)
	if !ok {
		return nil, fmt.Errorf("unknown section type %q (see list_section_types)", raw)
	}
	group, err := groupArg(args)
	if err != nil {
		return nil, err
	}
	sec, err := s.editor.AddSection(ctx, group, t)
	if err != nil {
		return nil, fmt.Errorf("add section: %w", err)
	}
	return jsonResult(sec)
}

func (s *Server) handleRemoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, id, err := s.locate(req.GetArguments())
	if err != nil {
		return nil, err
	}

	// Metadata lets the frontend highlight the section while asking.
	meta := fmt.Sprintf(`{"sectionIds":[%q],"group":%q}`, id, group)
	if err := s.requireApproval(ctx, "remove_section", fmt.Sprintf("Remove section %s from %s", id, group), meta); err != nil {
		if errors.Is(err, ErrRejected) || errors.Is(err, ErrTimedOut) {
			return textResult("Action rejected by user"), nil
		}
		return nil, err
	}

	if !s.editor.RemoveSection(ctx, group, id) {
		return nil, fmt.Errorf("section %s not found in %s", id, group)
	}
	return textResult(fmt.Sprintf("Section %s removed", id)), nil
}

func (s *Server) handleToggleVisibility(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, id, err := s.locate(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if !s.editor.ToggleSectionVisibility(ctx, group, id) {
		return nil, fmt.Errorf("section %s not found in %s", id, group)
	}
	tree := s.editor.State()
	_, idx, _ := tree.Find(id)
	sections, _ := tree.Get(group)
	state := "hidden"
	if idx >= 0 && idx < len(sections) && sections[idx].Visible {
		state = "visible"
	}
	return textResult(fmt.Sprintf("Section %s is now %s", id, state)), nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, id, err := s.locate(req.GetArguments())
	if err != nil {
		return nil, err
	}
	var partial map[string]any
	if err := parseJSON(req.GetString("settings", ""), &partial); err != nil {
		return nil, fmt.Errorf("invalid settings JSON: %w", err)
	}
	if !s.editor.UpdateSectionSettings(ctx, group, id, partial) {
		return nil, fmt.Errorf("section %s not found in %s", id, group)
	}
	return textResult(fmt.Sprintf("Section %s updated (%d keys)", id, len(partial))), nil
}

func (s *Server) handleReorderSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	group, err := groupArg(args)
	if err != nil {
		return nil, err
	}
	from, err := intArg(args, "from")
	if err != nil {
		return nil, err
	}
	to, err := intArg(args, "to")
	if err != nil {
		return nil, err
	}
	if !s.editor.ReorderSections(ctx, group, from, to) {
		return nil, fmt.Errorf("cannot move %s[%d] to %d", group, from, to)
	}
	return textResult(fmt.Sprintf("Moved %s[%d] to %d", group, from, to)), nil
}

func (s *Server) handleSelectSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("sectionId", "")
	s.editor.SelectSection(ctx, id)
	if id == "" {
		return textResult("Selection cleared"), nil
	}
	return textResult(fmt.Sprintf("Section %s selected", id)), nil
}
