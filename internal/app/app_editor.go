package app

import (
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/service"
)

// ============================================================
// Page builder
// ============================================================

func (a *App) view() EditorView {
	return EditorView{
		EditorTree: a.b.editor.State(),
		CanUndo:    a.b.editor.CanUndo(),
		CanRedo:    a.b.editor.CanRedo(),
	}
}

func (a *App) GetEditorState() EditorView {
	return a.view()
}

func (a *App) ListSectionTypes() []catalog.Info {
	return a.b.editor.SectionTypes()
}

// OpenPage selects a page and loads its sections from the storefront API,
// or from the preview cache when the API is unreachable.
func (a *App) OpenPage(pageID, pageType string) (*OpenPageResult, error) {
	pt, err := domain.ParsePageType(pageType)
	if err != nil {
		return nil, err
	}
	n, err := a.b.editor.OpenPage(a.ctx, pageID, pt)
	if err != nil {
		return nil, err
	}
	return &OpenPageResult{Loaded: n, State: a.view()}, nil
}

func (a *App) SelectPage(pageID, pageType string) error {
	pt, err := domain.ParsePageType(pageType)
	if err != nil {
		return err
	}
	a.b.editor.SelectPage(a.ctx, pageID, pt)
	return nil
}

// ── Sections ───────────────────────────────────────────────

func (a *App) AddSection(group, sectionType string) (*domain.Section, error) {
	g, err := domain.ParseGroup(group)
	if err != nil {
		return nil, err
	}
	t, ok := a.b.editor.Catalog().Resolve(sectionType)
	if !ok {
		return nil, catalog.ErrUnknownSectionType
	}
	sec, err := a.b.editor.AddSection(a.ctx, g, t)
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (a *App) RemoveSection(group, sectionID string) (bool, error) {
	g, err := domain.ParseGroup(group)
	if err != nil {
		return false, err
	}
	return a.b.editor.RemoveSection(a.ctx, g, sectionID), nil
}

func (a *App) ToggleSectionVisibility(group, sectionID string) (bool, error) {
	g, err := domain.ParseGroup(group)
	if err != nil {
		return false, err
	}
	return a.b.editor.ToggleSectionVisibility(a.ctx, g, sectionID), nil
}

func (a *App) UpdateSectionSettings(group, sectionID string, settings map[string]any) (bool, error) {
	g, err := domain.ParseGroup(group)
	if err != nil {
		return false, err
	}
	return a.b.editor.UpdateSectionSettings(a.ctx, g, sectionID, settings), nil
}

func (a *App) ReorderSections(group string, from, to int) (bool, error) {
	g, err := domain.ParseGroup(group)
	if err != nil {
		return false, err
	}
	return a.b.editor.ReorderSections(a.ctx, g, from, to), nil
}

func (a *App) SelectSection(sectionID string) {
	a.b.editor.SelectSection(a.ctx, sectionID)
}

func (a *App) HoverSection(sectionID string) {
	a.b.editor.HoverSection(a.ctx, sectionID)
}

func (a *App) SetConfigPanelOpen(open bool) {
	a.b.editor.SetConfigPanelOpen(a.ctx, open)
}

func (a *App) LoadPageSections(sections []domain.Section) int {
	return a.b.editor.LoadPageSections(a.ctx, sections)
}

func (a *App) InitializeStructuralComponents() (bool, error) {
	return a.b.editor.InitializeStructuralComponents(a.ctx)
}

func (a *App) ResetChanges() {
	a.b.editor.ResetChanges(a.ctx)
}

// ── History ────────────────────────────────────────────────

func (a *App) SaveHistory() {
	a.b.editor.SaveHistory(a.ctx)
}

func (a *App) Undo() bool {
	return a.b.editor.Undo(a.ctx)
}

func (a *App) Redo() bool {
	return a.b.editor.Redo(a.ctx)
}

// ── Saving ─────────────────────────────────────────────────

func (a *App) SavePage() (service.SaveResult, error) {
	return a.b.editor.SavePage(a.ctx)
}

// GetPreview returns what a save would write for the current tree.
func (a *App) GetPreview() []domain.Section {
	return service.BuildPreview(a.b.editor.State())
}
