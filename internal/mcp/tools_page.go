package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

func (s *Server) registerPageTools() {
	// ── get_editor_state ───────────────────────────────
	s.addTool(mcp.NewTool("get_editor_state",
		mcp.WithDescription("Get the full editor tree: the four section groups, the selected page and section, and the dirty/saving flags"),
	), s.handleGetEditorState)

	// ── list_section_types ─────────────────────────────
	s.addTool(mcp.NewTool("list_section_types",
		mcp.WithDescription("List the section types that can be added, with their group category and whether they are singletons"),
		mcp.WithString("category",
			mcp.Description("Only list types of this category: header, aside, template or footer"),
		),
	), s.handleListSectionTypes)

	// ── open_page ──────────────────────────────────────
	s.addTool(mcp.NewTool("open_page",
		mcp.WithDescription("Select a storefront page and load its sections from the API (or the local preview cache when offline). Header and footer sections are created if missing."),
		mcp.WithString("pageId",
			mcp.Description("ID of the storefront page"),
			mcp.Required(),
		),
		mcp.WithString("pageType",
			mcp.Description("HOME, PRODUCT, CART, CHECKOUT, COLLECTION, ALL_COLLECTIONS, ALL_PRODUCTS or CUSTOM"),
			mcp.Required(),
		),
	), s.handleOpenPage)

	// ── select_page ────────────────────────────────────
	s.addTool(mcp.NewTool("select_page",
		mcp.WithDescription("Switch the selected page without loading its sections"),
		mcp.WithString("pageId",
			mcp.Description("ID of the storefront page"),
			mcp.Required(),
		),
		mcp.WithString("pageType",
			mcp.Description("Page type, e.g. HOME or CUSTOM"),
			mcp.Required(),
		),
	), s.handleSelectPage)

	// ── load_page_sections ─────────────────────────────
	s.addTool(mcp.NewTool("load_page_sections",
		mcp.WithDescription("Replace the template with the given sections. Non-template types are dropped. Missing names and settings are taken from the catalog."),
		mcp.WithString("sections",
			mcp.Description(`JSON array, e.g. [{"type":"rich_text","settings":{"heading":"Hi"}},{"type":"faq","visible":false}]`),
			mcp.Required(),
		),
	), s.handleLoadPageSections)

	// ── initialize_structural_components ───────────────
	s.addTool(mcp.NewTool("initialize_structural_components",
		mcp.WithDescription("Ensure the announcement bar, header, footer and cart drawer exist. Does nothing when they already do."),
	), s.handleInitializeStructural)

	// ── save_page ──────────────────────────────────────
	s.addTool(mcp.NewTool("save_page",
		mcp.WithDescription("Save the selected page: writes the preview cache and pushes the sections to the storefront API. Does nothing when there are no unsaved changes."),
	), s.handleSavePage)

	// ── reset_changes ──────────────────────────────────
	s.addTool(mcp.NewTool("reset_changes",
		mcp.WithDescription("Discard the whole editor tree and the undo history. Requires user approval."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleResetChanges)
}

type editorStateView struct {
	domain.EditorTree
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

func (s *Server) stateView() editorStateView {
	return editorStateView{
		EditorTree: s.editor.State(),
		CanUndo:    s.editor.CanUndo(),
		CanRedo:    s.editor.CanRedo(),
	}
}

func (s *Server) handleGetEditorState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.stateView())
}

func (s *Server) handleListSectionTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := catalog.Category(req.GetString("category", ""))
	types := s.editor.SectionTypes()
	if category == "" {
		return jsonResult(types)
	}
	filtered := make([]catalog.Info, 0, len(types))
	for _, info := range types {
		if info.Category == category {
			filtered = append(filtered, info)
		}
	}
	return jsonResult(filtered)
}

func (s *Server) handleOpenPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID := req.GetString("pageId", "")
	if pageID == "" {
		return nil, fmt.Errorf("pageId is required")
	}
	pageType, err := pageTypeArg(args)
	if err != nil {
		return nil, err
	}
	n, err := s.editor.OpenPage(ctx, pageID, pageType)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Opened %s page %s with %d template sections", pageType, pageID, n)), nil
}

func (s *Server) handleSelectPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID := req.GetString("pageId", "")
	if pageID == "" {
		return nil, fmt.Errorf("pageId is required")
	}
	pageType, err := pageTypeArg(args)
	if err != nil {
		return nil, err
	}
	s.editor.SelectPage(ctx, pageID, pageType)
	return textResult(fmt.Sprintf("Selected %s page %s", pageType, pageID)), nil
}

// agentSection is the loose section shape accepted from agents.
type agentSection struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Visible   *bool          `json:"visible"`
	Settings  map[string]any `json:"settings"`
	SortOrder *int           `json:"sortOrder"`
}

func (s *Server) handleLoadPageSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("sections", "")
	if raw == "" {
		return nil, fmt.Errorf("sections is required")
	}
	var in []agentSection
	if err := parseJSON(raw, &in); err != nil {
		return nil, fmt.Errorf("invalid sections JSON: %w", err)
	}

	sections, skipped, err := s.fromAgent(in)
	if err != nil {
		return nil, err
	}
	n := s.editor.LoadPageSections(ctx, sections)
	msg := fmt.Sprintf("Loaded %d sections into the template", n)
	if dropped := len(in) - n; dropped > 0 {
		msg += fmt.Sprintf(" (%d dropped", dropped)
		if len(skipped) > 0 {
			msg += fmt.Sprintf(", unknown types: %v", skipped)
		}
		msg += ")"
	}
	return textResult(msg), nil
}

// fromAgent fills gaps from catalog defaults. Unknown types are returned
// separately instead of failing the whole call.
func (s *Server) fromAgent(in []agentSection) ([]domain.Section, []string, error) {
	cat := s.editor.Catalog()
	out := make([]domain.Section, 0, len(in))
	var unknown []string
	for i, a := range in {
		t, ok := cat.Resolve(a.Type)
		if !ok {
			unknown = append(unknown, a.Type)
			continue
		}
		def, err := cat.DefaultsFor(t)
		if err != nil {
			return nil, nil, err
		}
		sec := domain.Section{
			ID:        a.ID,
			Type:      t,
			Name:      def.Name,
			Visible:   def.Visible,
			Settings:  def.Settings,
			SortOrder: i,
		}
		if a.Name != "" {
			sec.Name = a.Name
		}
		if a.Visible != nil {
			sec.Visible = *a.Visible
		}
		if a.SortOrder != nil {
			sec.SortOrder = *a.SortOrder
		}
		if sec.Settings == nil {
			sec.Settings = domain.Settings{}
		}
		for k, v := range a.Settings {
			sec.Settings[k] = v
		}
		out = append(out, sec)
	}
	return out, unknown, nil
}

func (s *Server) handleInitializeStructural(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	added, err := s.editor.InitializeStructuralComponents(ctx)
	if err != nil {
		return nil, err
	}
	if !added {
		return textResult("Structural sections already present"), nil
	}
	return textResult("Structural sections created"), nil
}

func (s *Server) handleSavePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.editor.SavePage(ctx)
	if err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	if res.Skipped {
		return textResult("Nothing to save (no page selected or no unsaved changes)"), nil
	}
	return jsonResult(res)
}

func (s *Server) handleResetChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tree := s.editor.State()
	meta := fmt.Sprintf(`{"pageId":%q}`, tree.SelectedPageID)
	if err := s.requireApproval(ctx, "reset_changes", "Discard every section and the undo history", meta); err != nil {
		if errors.Is(err, ErrRejected) || errors.Is(err, ErrTimedOut) {
			return textResult("Action rejected by user"), nil
		}
		return nil, err
	}
	s.editor.ResetChanges(ctx)
	return textResult("Editor reset"), nil
}
