package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/service"
)

const (
	uriEditor  = "builder://editor"
	uriCatalog = "builder://catalog"
	uriPreview = "builder://preview"
)

func (s *Server) registerResources() {
	// ── builder://editor ───────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		uriEditor,
		"Editor State",
		mcp.WithResourceDescription("The full section tree of the page being edited"),
		mcp.WithMIMEType("application/json"),
	), s.handleEditorResource)

	// ── builder://catalog ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		uriCatalog,
		"Section Catalog",
		mcp.WithResourceDescription("Every section type with its category and constraints"),
		mcp.WithMIMEType("application/json"),
	), s.handleCatalogResource)

	// ── builder://preview ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		uriPreview,
		"Page Preview",
		mcp.WithResourceDescription("The section list a save would write: visible header banners followed by the template"),
		mcp.WithMIMEType("application/json"),
	), s.handlePreviewResource)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleEditorResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(uriEditor, s.stateView())
}

func (s *Server) handleCatalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(uriCatalog, s.editor.SectionTypes())
}

func (s *Server) handlePreviewResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(uriPreview, service.BuildPreview(s.editor.State()))
}
